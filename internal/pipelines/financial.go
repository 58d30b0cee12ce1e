// Package pipelines holds the compiled-in planning pipeline definitions:
// the roles, the ordered tasks, and the literal prompt templates each task
// binds its inputs into. Definitions are immutable and safe to reuse
// across runs; callers construct them once at startup and hand them to
// the executor.
package pipelines

import (
	"github.com/harrison/advisor/internal/llm"
	"github.com/harrison/advisor/internal/models"
)

// Financial returns the financial planning pipeline: a three-task chain
// through budgeting, investment, and debt management specialists. No
// tools; the numbers arrive pre-calculated in the placeholder map (see
// the finance package).
func Financial() *models.Pipeline {
	budgeting := &models.Role{
		Name: "Budgeting Advisor & Financial Calculator",
		Goal: "Create detailed budgets with mathematical analysis and tabular financial breakdowns.",
		Backstory: `You are an expert financial advisor with strong analytical and mathematical skills.
You excel at creating detailed financial tables, calculating ratios, percentages, and
presenting complex financial data in clear, organized formats. You use precise calculations
to support all your recommendations and present data in tables for easy understanding.`,
		Temperature: llm.DefaultTemperature,
	}

	investment := &models.Role{
		Name: "Investment Advisor & Portfolio Analyst",
		Goal: "Recommend investments with detailed mathematical projections and risk calculations.",
		Backstory: `You are an investment expert who specializes in quantitative analysis and portfolio optimization.
You provide detailed mathematical projections, compound interest calculations, and risk assessments.
You present investment recommendations with supporting tables showing projected returns, scenarios,
and time-based growth calculations.`,
		Temperature: llm.DefaultTemperature,
	}

	debtManagement := &models.Role{
		Name: "Debt Management Specialist & Payment Calculator",
		Goal: "Create mathematical debt repayment strategies with detailed payment schedules and savings calculations.",
		Backstory: `You specialize in debt optimization using mathematical models and payment calculations.
You create detailed amortization schedules, calculate interest savings, and provide
precise payoff timelines. You present all debt strategies in clear tabular formats
showing payment amounts, interest costs, and total savings.`,
		Temperature: llm.DefaultTemperature,
	}

	budgetingTask := &models.Task{
		Name: "budgeting_analysis",
		Role: budgeting,
		Description: `Analyze the client's financial situation with MATHEMATICAL PRECISION using these specific details:

INCOME & EXPENSES DATA:
- Monthly Income: {monthly_income}
- Net Monthly Income: {net_monthly_income}
- Savings Goal: {savings_goal}
- Total Monthly Expenses: {total_monthly_expenses}
- Rent/Mortgage: {expense_breakdown.rent}
- Utilities: {expense_breakdown.utilities}
- Groceries: {expense_breakdown.groceries}
- Transportation: {expense_breakdown.transportation}
- Entertainment: {expense_breakdown.entertainment}
- Other: {expense_breakdown.other}

DEBT DATA:
- Credit Card: {debt_details.credit_card_balance} at {debt_details.credit_card_rate}
- Loan: {debt_details.loan_balance} at {debt_details.loan_rate}

{mathematical_context}

Create a comprehensive analysis with:

1. **EXPENSE ANALYSIS TABLE** showing:
   - Category | Amount | % of Income | Recommended % | Variance

2. **FINANCIAL RATIOS CALCULATION**:
   - Savings Rate = (Savings Goal / Monthly Income) x 100
   - Expense Ratio = (Total Expenses / Monthly Income) x 100
   - Debt-to-Income Ratio calculation

3. **MONTHLY CASH FLOW TABLE**:
   - Income vs Expenses breakdown
   - Available funds for savings/debt payment

4. **50/30/20 BUDGET COMPARISON TABLE**:
   - Current allocation vs recommended 50/30/20 rule

5. **SAVINGS PROJECTION TABLE** (1, 3, 5, 10 years):
   - Monthly savings compound growth calculations

Use MARKDOWN TABLES and show all mathematical calculations.`,
		ExpectedOutput: `A detailed financial budget analysis with:
- Mathematical calculations and percentages
- Multiple comparison tables in markdown format
- Financial ratios and metrics
- Cash flow analysis with precise numbers
- Savings growth projections with compound interest calculations`,
	}

	investmentTask := &models.Task{
		Name:    "investment_strategy",
		Role:    investment,
		Context: []string{"budgeting_analysis"},
		Description: `Based on the financial data provided, create investment recommendations with MATHEMATICAL PROJECTIONS:

Available for Investment: {net_monthly_income} (after covering savings goal of {savings_goal})
Risk Profile: Moderate (based on current financial stability)

Create:

1. **INVESTMENT ALLOCATION TABLE**:
   - Asset Class | Allocation % | Monthly Amount | Annual Amount

2. **COMPOUND GROWTH PROJECTIONS TABLE**:
   - Year | Principal | Interest Earned | Total Value
   - Show 1, 5, 10, 15, 20 year projections

3. **RISK-RETURN SCENARIOS TABLE**:
   - Scenario | Annual Return % | 10-Year Value | 20-Year Value
   - Conservative (4-6%), Moderate (6-8%), Aggressive (8-10%)

4. **MONTHLY INVESTMENT BREAKDOWN**:
   - Emergency Fund: 3-6 months expenses calculation
   - Retirement: 10-15% of income calculation
   - Growth Investments: Remaining available funds

5. **RETIREMENT CALCULATION TABLE**:
   - Current age assumptions (30, 35, 40)
   - Retirement needs calculation
   - Required monthly savings for different retirement goals

Show all compound interest formulas: A = P(1 + r/n)^(nt)`,
		ExpectedOutput: `Investment strategy with:
- Detailed allocation tables with percentages and dollar amounts
- Compound growth projections with mathematical formulas
- Multiple scenario analysis tables
- Retirement planning calculations
- Risk assessment with quantified projections`,
	}

	debtTask := &models.Task{
		Name:    "debt_management",
		Role:    debtManagement,
		Context: []string{"investment_strategy"},
		Description: `Create a MATHEMATICAL DEBT ELIMINATION STRATEGY using:

DEBT DETAILS:
- Credit Card: {debt_details.credit_card_balance} at {debt_details.credit_card_rate}
- Loan: {debt_details.loan_balance} at {debt_details.loan_rate}
- Estimated minimum payments: {debt_details.cc_min_payment} (credit card) + {debt_details.loan_min_payment} (loan) = {debt_details.total_min_payments}

Available for debt payment: {available_for_debt_payment} (net income {net_monthly_income} after savings goal {savings_goal})

Create:

1. **CURRENT DEBT SUMMARY TABLE**:
   - Debt Type | Balance | Interest Rate | Minimum Payment | Total Interest if Min Payments

2. **DEBT AVALANCHE vs SNOWBALL COMPARISON**:
   - Method | Total Interest Paid | Payoff Time | Monthly Payment

3. **PAYMENT STRATEGY TABLE** (Recommended approach):
   - Month | Payment Amount | Principal | Interest | Remaining Balance
   - Show first 12 months and key milestones

4. **INTEREST SAVINGS CALCULATION**:
   - Extra Payment Amount | Time Saved | Interest Saved | Total Savings
   - Show scenarios for +$50, +$100, +$200 extra payments

5. **DEBT-FREE TIMELINE TABLE**:
   - Current payments vs optimized payments
   - Mathematical proof of interest savings

6. **DEBT CONSOLIDATION ANALYSIS** (if applicable):
   - Current total monthly payments
   - Potential consolidated payment at lower rate
   - Savings calculation and break-even analysis

Use precise mathematical formulas for all calculations.
Show amortization formulas: M = P[r(1+r)^n]/[(1+r)^n-1]`,
		ExpectedOutput: `Comprehensive debt management plan with:
- Detailed payment schedules with mathematical calculations
- Comparison tables for different strategies
- Interest savings calculations with precise dollar amounts
- Timeline tables showing month-by-month progress
- Mathematical formulas and compound interest calculations
- ROI analysis for different payment strategies`,
	}

	return &models.Pipeline{
		Name:  "financial-advisor",
		Kind:  models.KindFinancial,
		Roles: []*models.Role{budgeting, investment, debtManagement},
		Tasks: []*models.Task{budgetingTask, investmentTask, debtTask},
	}
}
