package advisor

import (
	"time"
)

// Transaction is an already-validated input line. Amount carries the sign
// convention used by the whole engine: positive values are expenses, negative
// values are income (magnitude taken). The public HTTP contract only accepts
// positive amounts; negative ones arrive through service-level callers.
type Transaction struct {
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
}

type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// categoryAggregate groups the expenses of one normalized category.
// Transactions keep their input order until the trend stage sorts them
// chronologically.
type categoryAggregate struct {
	key          string
	total        float64
	count        int
	transactions []Transaction
}

type SpendingTrend struct {
	Category         string   `json:"category"`
	TotalSpent       float64  `json:"total_spent"`
	TransactionCount int      `json:"transaction_count"`
	AverageAmount    float64  `json:"average_amount"`
	Trend            Trend    `json:"trend"`
	PercentageChange *float64 `json:"percentage_change"`
}

type OverspendingAlert struct {
	Category        string   `json:"category"`
	CurrentSpending float64  `json:"current_spending"`
	BudgetLimit     float64  `json:"budget_limit"`
	ExcessAmount    float64  `json:"excess_amount"`
	Severity        Severity `json:"severity"`
	Recommendation  string   `json:"recommendation"`
}

type AnalysisPeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type AnalysisResult struct {
	TotalSpending        float64             `json:"total_spending"`
	TotalIncome          float64             `json:"total_income"`
	NetBalance           float64             `json:"net_balance"`
	AverageDailySpending float64             `json:"average_daily_spending"`
	TopCategories        []string            `json:"top_categories"`
	Trends               []SpendingTrend     `json:"trends"`
	OverspendingAlerts   []OverspendingAlert `json:"overspending_alerts"`
	Suggestions          []string            `json:"suggestions"`
	AnalysisPeriod       AnalysisPeriod      `json:"analysis_period"`
}
