package advisor

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	appErrors "Petfolio/internal/errors"
)

// Service runs the Budget Advisor analysis: a single pass over a validated
// transaction list producing totals, per-category trends, overspending alerts
// and ranked suggestions. It owns no storage and keeps no state between calls.
type Service struct {
	cfg Config
}

func NewService() *Service {
	return NewServiceWithConfig(DefaultConfig())
}

func NewServiceWithConfig(cfg Config) *Service {
	budgets := make(map[string]float64, len(cfg.DefaultCategoryBudgets))
	for key, limit := range cfg.DefaultCategoryBudgets {
		budgets[normalizeCategory(key)] = limit
	}
	cfg.DefaultCategoryBudgets = budgets
	return &Service{cfg: cfg}
}

// Analyze derives a complete AnalysisResult from transactions. monthlyBudget,
// when present, is shared proportionally between categories that have no
// built-in default ceiling. Fails with ErrNoTransactions on an empty list.
func (s *Service) Analyze(ctx context.Context, transactions []Transaction, monthlyBudget *float64) (*AnalysisResult, error) {
	if len(transactions) == 0 {
		return nil, appErrors.ErrNoTransactions
	}

	totalSpending, totalIncome := splitTotals(transactions)
	netBalance := totalIncome - totalSpending

	start, end := datePeriod(transactions)
	avgDaily := averageDailySpending(totalSpending, start, end)

	aggregates := groupExpenses(transactions)
	topCategories := s.topCategories(aggregates)
	trends := s.detectTrends(aggregates)
	alerts := s.detectOverspending(aggregates, totalSpending, monthlyBudget)
	suggestions := s.buildSuggestions(netBalance, avgDaily, trends, alerts)

	return &AnalysisResult{
		TotalSpending:        round2(totalSpending),
		TotalIncome:          round2(totalIncome),
		NetBalance:           round2(netBalance),
		AverageDailySpending: round2(avgDaily),
		TopCategories:        topCategories,
		Trends:               trends,
		OverspendingAlerts:   alerts,
		Suggestions:          suggestions,
		AnalysisPeriod: AnalysisPeriod{
			Start: start.Format("2006-01-02"),
			End:   end.Format("2006-01-02"),
		},
	}, nil
}

// splitTotals partitions by sign: amount > 0 is an expense, amount < 0 is
// income with its magnitude taken. The public endpoint only admits positive
// amounts, so the income branch is reachable only from service-level callers
// feeding raw signed values; that asymmetry is deliberate.
func splitTotals(transactions []Transaction) (totalSpending, totalIncome float64) {
	for _, tx := range transactions {
		if tx.Amount > 0 {
			totalSpending += tx.Amount
		} else if tx.Amount < 0 {
			totalIncome += -tx.Amount
		}
	}
	return totalSpending, totalIncome
}

// datePeriod covers ALL transactions, income included.
func datePeriod(transactions []Transaction) (start, end time.Time) {
	start = dateOnly(transactions[0].Date)
	end = start
	for _, tx := range transactions[1:] {
		d := dateOnly(tx.Date)
		if d.Before(start) {
			start = d
		}
		if d.After(end) {
			end = d
		}
	}
	return start, end
}

func averageDailySpending(totalSpending float64, start, end time.Time) float64 {
	days := int(end.Sub(start).Hours()/24) + 1
	if days <= 0 {
		return 0
	}
	return totalSpending / float64(days)
}

// groupExpenses buckets expenses only, keyed by normalized category. Ties in
// the later ranking are broken by first-encounter order, so it is recorded.
func groupExpenses(transactions []Transaction) []*categoryAggregate {
	byKey := make(map[string]*categoryAggregate)
	var ordered []*categoryAggregate

	for _, tx := range transactions {
		if tx.Amount <= 0 {
			continue
		}
		key := normalizeCategory(tx.Category)
		agg, ok := byKey[key]
		if !ok {
			agg = &categoryAggregate{key: key}
			byKey[key] = agg
			ordered = append(ordered, agg)
		}
		agg.total += tx.Amount
		agg.count++
		agg.transactions = append(agg.transactions, tx)
	}

	return ordered
}

func (s *Service) topCategories(aggregates []*categoryAggregate) []string {
	ranked := make([]*categoryAggregate, len(aggregates))
	copy(ranked, aggregates)

	// Stable keeps first-encounter order between equal totals.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].total > ranked[j].total
	})

	limit := s.cfg.MaxTopCategories
	if len(ranked) < limit {
		limit = len(ranked)
	}

	top := make([]string, 0, limit)
	for _, agg := range ranked[:limit] {
		top = append(top, agg.key)
	}
	return top
}

func (s *Service) detectTrends(aggregates []*categoryAggregate) []SpendingTrend {
	trends := make([]SpendingTrend, 0, len(aggregates))

	for _, agg := range aggregates {
		trend := SpendingTrend{
			Category:         agg.key,
			TotalSpent:       round2(agg.total),
			TransactionCount: agg.count,
			AverageAmount:    round2(agg.total / float64(agg.count)),
			Trend:            TrendStable,
		}

		if agg.count >= 2 {
			change := s.halfSplitChange(agg.transactions)
			trend.Trend = s.classifyTrend(change)
			rounded := round2(change)
			trend.PercentageChange = &rounded
		}

		trends = append(trends, trend)
	}

	return trends
}

// halfSplitChange compares the chronological first and second halves of a
// category. With an odd count the first half gets the smaller share.
func (s *Service) halfSplitChange(transactions []Transaction) float64 {
	sorted := make([]Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	mid := len(sorted) / 2
	var firstHalf, secondHalf float64
	for _, tx := range sorted[:mid] {
		firstHalf += tx.Amount
	}
	for _, tx := range sorted[mid:] {
		secondHalf += tx.Amount
	}

	if firstHalf > 0 {
		return (secondHalf - firstHalf) / firstHalf * 100
	}
	// Spending appearing from nothing counts as a full increase signal.
	if secondHalf > 0 {
		return 100.0
	}
	return 0.0
}

func (s *Service) classifyTrend(percentageChange float64) Trend {
	switch {
	case percentageChange > s.cfg.TrendIncreasePct:
		return TrendIncreasing
	case percentageChange < s.cfg.TrendDecreasePct:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// detectOverspending resolves a ceiling per category: built-in default table
// first, else a share of the overall monthly budget proportional to the
// category's share of spending, else no ceiling and no alert. Being less than
// AlertMinPct over the ceiling is silently tolerated as a noise filter.
func (s *Service) detectOverspending(aggregates []*categoryAggregate, totalSpending float64, monthlyBudget *float64) []OverspendingAlert {
	alerts := make([]OverspendingAlert, 0)

	for _, agg := range aggregates {
		budget, ok := s.resolveBudget(agg, totalSpending, monthlyBudget)
		if !ok || budget <= 0 {
			continue
		}
		if agg.total <= budget {
			continue
		}

		excess := agg.total - budget
		excessPct := excess / budget * 100

		var severity Severity
		switch {
		case excessPct >= s.cfg.SeverityHighPct:
			severity = SeverityHigh
		case excessPct >= s.cfg.SeverityMediumPct:
			severity = SeverityMedium
		case excessPct >= s.cfg.AlertMinPct:
			severity = SeverityLow
		default:
			continue
		}

		alerts = append(alerts, OverspendingAlert{
			Category:        agg.key,
			CurrentSpending: round2(agg.total),
			BudgetLimit:     round2(budget),
			ExcessAmount:    round2(excess),
			Severity:        severity,
			Recommendation:  s.recommendation(agg.key, excess, severity),
		})
	}

	return alerts
}

func (s *Service) resolveBudget(agg *categoryAggregate, totalSpending float64, monthlyBudget *float64) (float64, bool) {
	if budget, ok := s.cfg.DefaultCategoryBudgets[agg.key]; ok {
		return budget, true
	}
	if monthlyBudget != nil && totalSpending > 0 {
		// Proportional allocation: the category's own spending share sets its
		// ceiling, which makes this path nearly alert-free except through
		// rounding. Kept exactly as designed.
		return agg.total / totalSpending * *monthlyBudget, true
	}
	return 0, false
}

func (s *Service) recommendation(category string, excess float64, severity Severity) string {
	switch severity {
	case SeverityHigh:
		return fmt.Sprintf("Critical: spending on %s is %.2f over budget. Cut back on this category immediately.", category, excess)
	case SeverityMedium:
		return fmt.Sprintf("Warning: %s is %.2f over budget. Review your recent purchases in this category.", category, excess)
	default:
		return fmt.Sprintf("Tip: %s is slightly over budget by %.2f. Small adjustments will bring it back in line.", category, excess)
	}
}

// buildSuggestions appends in a fixed priority order and truncates to the cap
// afterwards; insertion order, not a score, decides what survives.
func (s *Service) buildSuggestions(netBalance, avgDaily float64, trends []SpendingTrend, alerts []OverspendingAlert) []string {
	suggestions := make([]string, 0, s.cfg.MaxSuggestions)

	if netBalance < 0 {
		suggestions = append(suggestions, fmt.Sprintf(
			"You spent %.2f more than you earned this period. Consider reviewing your largest expenses.",
			-netBalance))
	}

	if avgDaily > s.cfg.HighDailySpending {
		suggestions = append(suggestions, fmt.Sprintf(
			"Your daily spending averages %.2f. At this pace you are projected to spend %.2f over a month.",
			avgDaily, avgDaily*s.cfg.ProjectionDays))
	}

	if steepest := steepestIncrease(trends); steepest != nil {
		suggestions = append(suggestions, fmt.Sprintf(
			"Spending on %s is up %.1f%% compared to the start of the period. Keep an eye on it.",
			steepest.Category, *steepest.PercentageChange))
	}

	if high := countHighSeverity(alerts); high > 0 {
		suggestions = append(suggestions, fmt.Sprintf(
			"%d categories are far over budget. Tackling those first will have the biggest impact.", high))
	}

	// Fallback only: a balanced affirmation when nothing above fired.
	if len(suggestions) == 0 {
		suggestions = append(suggestions, "Your spending looks balanced this period. Keep it up!")
	}

	if netBalance > s.cfg.SavingsBalanceMin {
		suggestions = append(suggestions, fmt.Sprintf(
			"You ended the period %.2f ahead. Consider moving some of it into savings.", netBalance))
	}

	if len(suggestions) > s.cfg.MaxSuggestions {
		suggestions = suggestions[:s.cfg.MaxSuggestions]
	}
	return suggestions
}

func steepestIncrease(trends []SpendingTrend) *SpendingTrend {
	var steepest *SpendingTrend
	for i := range trends {
		t := &trends[i]
		if t.Trend != TrendIncreasing || t.PercentageChange == nil {
			continue
		}
		if steepest == nil || *t.PercentageChange > *steepest.PercentageChange {
			steepest = t
		}
	}
	return steepest
}

func countHighSeverity(alerts []OverspendingAlert) int {
	count := 0
	for _, alert := range alerts {
		if alert.Severity == SeverityHigh {
			count++
		}
	}
	return count
}

func normalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
