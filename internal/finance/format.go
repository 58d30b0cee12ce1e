package finance

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency renders a dollar amount with thousands separators and two
// decimal places, e.g. "$1,500.00". The string shape is part of the
// pipeline contract: prompt templates and the post-processor both depend
// on it.
func Currency(v float64) string {
	return printer.Sprintf("$%.2f", v)
}

// CurrencyWhole renders a dollar amount with thousands separators and no
// decimals, e.g. "$5,000". Used by the metrics summary table.
func CurrencyWhole(v float64) string {
	return printer.Sprintf("$%.0f", v)
}

// Percent renders a percentage with one decimal place, e.g. "10.0%".
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// PipelineInputs renders the financial data and its derived metrics into
// the flat placeholder map consumed by the financial pipeline templates.
// Nested groups use dot paths ("expense_breakdown.rent").
func PipelineInputs(data FinancialData) map[string]string {
	m := CalculateMetrics(data)

	inputs := map[string]string{
		"monthly_income":             Currency(data.Income),
		"savings_goal":               Currency(data.SavingsGoal),
		"total_monthly_expenses":     Currency(m.TotalExpenses),
		"net_monthly_income":         Currency(m.NetIncome),
		"available_for_debt_payment": Currency(m.AvailableForDebt),
		"savings_rate_percentage":    Percent(m.SavingsRate),
		"expense_ratio_percentage":   Percent(m.ExpenseRatio),
		"debt_to_income_ratio":       Percent(m.DebtToIncome),

		"expense_breakdown.rent":           Currency(data.Expenses.Rent),
		"expense_breakdown.utilities":      Currency(data.Expenses.Utilities),
		"expense_breakdown.groceries":      Currency(data.Expenses.Groceries),
		"expense_breakdown.transportation": Currency(data.Expenses.Transportation),
		"expense_breakdown.entertainment":  Currency(data.Expenses.Entertainment),
		"expense_breakdown.other":          Currency(data.Expenses.Other),

		"debt_details.credit_card_balance": Currency(data.Debts.CreditCard.Balance),
		"debt_details.credit_card_rate":    Percent(data.Debts.CreditCard.InterestRate * 100),
		"debt_details.loan_balance":        Currency(data.Debts.StudentLoan.Balance),
		"debt_details.loan_rate":           Percent(data.Debts.StudentLoan.InterestRate * 100),
		"debt_details.cc_min_payment":      Currency(m.CCMinPayment),
		"debt_details.loan_min_payment":    Currency(m.LoanMinPayment),
		"debt_details.total_min_payments":  Currency(m.TotalMinPayments),
	}

	inputs["mathematical_context"] = mathematicalContext(data, m)
	return inputs
}

// mathematicalContext builds the formula reference and snapshot block
// appended to the budgeting task prompt.
func mathematicalContext(data FinancialData, m Metrics) string {
	return fmt.Sprintf(`FINANCIAL CALCULATION FORMULAS TO USE:

1. Compound Interest: A = P(1 + r/n)^(nt)
2. Debt Payment: M = P[r(1+r)^n]/[(1+r)^n-1]
3. Savings Rate: (Monthly Savings / Monthly Income) x 100
4. Debt-to-Income: (Total Debt / Annual Income) x 100
5. Emergency Fund: Monthly Expenses x 3 to 6 months

CURRENT FINANCIAL SNAPSHOT:
- Income: %s/month = %s/year
- Expenses: %s/month = %s/year
- Net Cash Flow: %s/month
- Current Savings Rate: %s
- Current Expense Ratio: %s`,
		CurrencyWhole(data.Income), CurrencyWhole(data.Income*12),
		CurrencyWhole(m.TotalExpenses), CurrencyWhole(m.TotalExpenses*12),
		CurrencyWhole(m.NetIncome),
		Percent(m.SavingsRate),
		Percent(m.ExpenseRatio))
}

// SummaryTable builds the deterministic quick-metrics table appended to
// every finalized financial report. Byte-reproducible from the same data.
func SummaryTable(data FinancialData) string {
	m := CalculateMetrics(data)

	status := func(ok bool, good, bad string) string {
		if ok {
			return good
		}
		return bad
	}

	return fmt.Sprintf(`## Quick Financial Metrics Summary

| Metric | Current Value | Recommended Range | Status |
|--------|---------------|-------------------|--------|
| Savings Rate | %s | 20-30%% | %s |
| Expense Ratio | %s | 70-80%% | %s |
| Debt-to-Income | %s | <36%% | %s |

### Key Calculations
- **Monthly Cash Flow**: %s - %s = %s
- **Annual Savings Potential**: %s
- **Emergency Fund Target**: %s (6 months expenses)
- **Total Debt Burden**: %s

*All calculations are based on the financial data provided.*`,
		Percent(m.SavingsRate), status(m.SavingsRate >= 20, "Good", "Improve"),
		Percent(m.ExpenseRatio), status(m.ExpenseRatio <= 80, "Good", "High"),
		Percent(m.DebtToIncome), status(m.DebtToIncome < 36, "Good", "High"),
		CurrencyWhole(data.Income), CurrencyWhole(m.TotalExpenses), CurrencyWhole(m.NetIncome),
		CurrencyWhole(m.NetIncome*12),
		CurrencyWhole(m.TotalExpenses*6),
		CurrencyWhole(m.TotalDebt))
}
