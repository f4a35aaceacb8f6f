package contracts

// TransactionRequest is one line of the analyze payload. Amounts are
// strictly positive here: the public endpoint only deals in expenses.
type TransactionRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Category    string  `json:"category" binding:"required,min=1,max=100"`
	Date        string  `json:"date" binding:"required"`
	Description string  `json:"description" binding:"omitempty,max=500"`
}

type AnalyzeRequest struct {
	Transactions  []TransactionRequest `json:"transactions" binding:"required,dive"`
	MonthlyBudget *float64             `json:"monthly_budget" binding:"omitempty,gte=0"`
}

// SignedTransactionRequest is a digest line. Negative amounts mean income,
// so the only forbidden value is zero.
type SignedTransactionRequest struct {
	Amount      float64 `json:"amount" binding:"required"`
	Category    string  `json:"category" binding:"required,min=1,max=100"`
	Date        string  `json:"date" binding:"required"`
	Description string  `json:"description" binding:"omitempty,max=500"`
}

type WeeklyDigestRequest struct {
	Transactions  []SignedTransactionRequest `json:"transactions" binding:"required,dive"`
	MonthlyBudget *float64                   `json:"monthly_budget" binding:"omitempty,gte=0"`
}
