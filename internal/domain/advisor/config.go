package advisor

// Config is the process-wide constant tuning of the analysis engine. It is
// copied on service construction, never mutated afterwards.
type Config struct {
	// DefaultCategoryBudgets maps normalized (lowercase, trimmed) category
	// keys to a built-in monthly ceiling. Categories outside this table only
	// get a ceiling when the caller supplies an overall monthly budget.
	DefaultCategoryBudgets map[string]float64

	// Trend classification thresholds, symmetric percentages.
	TrendIncreasePct float64
	TrendDecreasePct float64

	// Severity tiers by percentage over budget. Below AlertMinPct over budget
	// no alert is raised at all.
	SeverityHighPct   float64
	SeverityMediumPct float64
	AlertMinPct       float64

	// Suggestion triggers.
	HighDailySpending float64
	SavingsBalanceMin float64
	MaxSuggestions    int
	MaxTopCategories  int
	ProjectionDays    float64
}

func DefaultConfig() Config {
	return Config{
		DefaultCategoryBudgets: map[string]float64{
			"food":          500,
			"groceries":     400,
			"transport":     300,
			"entertainment": 200,
			"shopping":      400,
			"utilities":     250,
			"health":        300,
			"education":     200,
			"rent":          1500,
			"subscriptions": 100,
		},
		TrendIncreasePct:  10,
		TrendDecreasePct:  -10,
		SeverityHighPct:   50,
		SeverityMediumPct: 25,
		AlertMinPct:       10,
		HighDailySpending: 50,
		SavingsBalanceMin: 100,
		MaxSuggestions:    5,
		MaxTopCategories:  5,
		ProjectionDays:    30,
	}
}
