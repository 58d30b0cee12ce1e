// Package finance pre-calculates the financial metrics injected into the
// financial planning pipeline. All calculations are pure and deterministic;
// absent fields are treated as zero and income of zero never divides.
package finance

// Minimum payment estimates as a fraction of balance: revolving debt pays
// 2%, installment debt pays 1%.
const (
	revolvingMinRate   = 0.02
	installmentMinRate = 0.01
)

// Debt is one liability with a balance and an annual interest rate
// expressed as a fraction (0.18 = 18%).
type Debt struct {
	Balance      float64 `json:"balance"`
	InterestRate float64 `json:"interest_rate"`
}

// Expenses holds the six monthly expense categories.
type Expenses struct {
	Rent           float64 `json:"rent"`
	Utilities      float64 `json:"utilities"`
	Groceries      float64 `json:"groceries"`
	Transportation float64 `json:"transportation"`
	Entertainment  float64 `json:"entertainment"`
	Other          float64 `json:"other"`
}

// Total returns the sum of all expense categories.
func (e Expenses) Total() float64 {
	return e.Rent + e.Utilities + e.Groceries + e.Transportation + e.Entertainment + e.Other
}

// Debts holds the two tracked debts.
type Debts struct {
	CreditCard  Debt `json:"credit_card"`
	StudentLoan Debt `json:"student_loan"`
}

// FinancialData is the caller-supplied input to the financial pipeline.
type FinancialData struct {
	Income      float64  `json:"income"`
	Expenses    Expenses `json:"expenses"`
	Debts       Debts    `json:"debts"`
	SavingsGoal float64  `json:"savings_goal"`
}

// Metrics holds the derived values injected into the pipeline prompts and
// the post-processed summary table.
type Metrics struct {
	TotalExpenses    float64 // Sum of the six expense categories
	NetIncome        float64 // Income minus total expenses (may be negative)
	AvailableForDebt float64 // max(0, net income - savings goal)
	SavingsRate      float64 // Savings goal as % of income (0 when income is 0)
	ExpenseRatio     float64 // Expenses as % of income (0 when income is 0)
	TotalDebt        float64 // Sum of all debt balances
	DebtToIncome     float64 // Total debt as % of annual income
	CCMinPayment     float64 // 2% of credit card balance
	LoanMinPayment   float64 // 1% of loan balance
	TotalMinPayments float64 // Sum of minimum payment estimates
}

// CalculateMetrics derives all metrics from the financial data. Total over
// all well-formed inputs: no external calls, no error paths.
func CalculateMetrics(data FinancialData) Metrics {
	m := Metrics{}

	m.TotalExpenses = data.Expenses.Total()
	m.NetIncome = data.Income - m.TotalExpenses

	m.AvailableForDebt = m.NetIncome - data.SavingsGoal
	if m.AvailableForDebt < 0 {
		m.AvailableForDebt = 0
	}

	if data.Income > 0 {
		m.SavingsRate = data.SavingsGoal / data.Income * 100
		m.ExpenseRatio = m.TotalExpenses / data.Income * 100
	}

	m.TotalDebt = data.Debts.CreditCard.Balance + data.Debts.StudentLoan.Balance
	if data.Income > 0 {
		m.DebtToIncome = m.TotalDebt / (data.Income * 12) * 100
	}

	m.CCMinPayment = data.Debts.CreditCard.Balance * revolvingMinRate
	m.LoanMinPayment = data.Debts.StudentLoan.Balance * installmentMinRate
	m.TotalMinPayments = m.CCMinPayment + m.LoanMinPayment

	return m
}
