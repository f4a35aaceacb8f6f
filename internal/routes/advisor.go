package routes

import (
	"net/http"
	"time"

	"Petfolio/internal/contracts"
	"Petfolio/internal/domain/advisor"
	appErrors "Petfolio/internal/errors"
	"Petfolio/internal/logger"

	"github.com/gin-gonic/gin"
)

// parseTransactionDate accepts full RFC 3339 timestamps and bare dates.
func parseTransactionDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func toAdvisorTransactions(lines []contracts.TransactionRequest) ([]advisor.Transaction, error) {
	transactions := make([]advisor.Transaction, 0, len(lines))
	for i, line := range lines {
		date, err := parseTransactionDate(line.Date)
		if err != nil {
			return nil, appErrors.NewValidationError("date", "must be an ISO date").
				WithDetails(map[string]interface{}{"index": i, "value": line.Date})
		}
		transactions = append(transactions, advisor.Transaction{
			Amount:      line.Amount,
			Category:    line.Category,
			Date:        date,
			Description: line.Description,
		})
	}
	return transactions, nil
}

func (h *Handler) AnalyzeBudget(c *gin.Context) {
	var body contracts.AnalyzeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondBindError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	transactions, err := toAdvisorTransactions(body.Transactions)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	result, err := h.AdvisorService.Analyze(ctx, transactions, body.MonthlyBudget)
	if err != nil {
		h.respondError(c, err)
		return
	}

	// Analysis counts toward the check-in quests. Failing to record it must
	// not fail the analysis.
	for _, code := range []string{"run_analysis", "weekly_analysis"} {
		if _, err := h.QuestService.Increment(ctx, userID, code, 1); err != nil {
			logger.Warn().Err(err).Str("quest", code).Msg("failed to record quest progress")
		}
	}

	c.JSON(http.StatusOK, result)
}
