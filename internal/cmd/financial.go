package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/advisor/internal/config"
	"github.com/harrison/advisor/internal/finance"
	"github.com/harrison/advisor/internal/models"
	"github.com/harrison/advisor/internal/pipelines"
	"github.com/harrison/advisor/internal/report"
	"github.com/harrison/advisor/internal/session"
)

// NewFinancialCommand creates the financial command.
func NewFinancialCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "financial",
		Short: "Run the personal financial planning pipeline",
		Long: `Run the financial planning pipeline: budgeting analysis, investment
strategy, and debt management, each produced by a specialist role
working from your income, expenses, debts, and savings goal.

Inputs default to the saved configuration (see "advisor config show");
flags override individual values for this run.

Examples:
  advisor financial
  advisor financial --income 6200 --savings-goal 800
  advisor financial --cc-balance 3500 --cc-rate 0.21 --save-defaults`,
		RunE: runFinancial,
	}

	cmd.Flags().Float64("income", 0, "Monthly income")
	cmd.Flags().Float64("savings-goal", 0, "Monthly savings goal")
	cmd.Flags().Float64("rent", 0, "Monthly rent or mortgage")
	cmd.Flags().Float64("utilities", 0, "Monthly utilities")
	cmd.Flags().Float64("groceries", 0, "Monthly groceries")
	cmd.Flags().Float64("transportation", 0, "Monthly transportation")
	cmd.Flags().Float64("entertainment", 0, "Monthly entertainment")
	cmd.Flags().Float64("other", 0, "Other monthly expenses")
	cmd.Flags().Float64("cc-balance", 0, "Credit card balance")
	cmd.Flags().Float64("cc-rate", 0, "Credit card annual interest rate (e.g. 0.18)")
	cmd.Flags().Float64("loan-balance", 0, "Loan balance")
	cmd.Flags().Float64("loan-rate", 0, "Loan annual interest rate (e.g. 0.045)")
	cmd.Flags().Bool("save-defaults", false, "Persist these inputs as the new defaults")

	return cmd
}

func runFinancial(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	data := a.user.FinancialData
	applyFinancialFlags(cmd, &data)
	if err := validateFinancialData(data); err != nil {
		return err
	}

	if save, _ := cmd.Flags().GetBool("save-defaults"); save {
		a.user.FinancialData = data
		if err := config.SaveUserConfig(config.UserConfigPath(a.cfg.OutputDir), a.user); err != nil {
			a.log.Warnf("defaults not saved: %v", err)
		}
	}

	exec, err := a.executor()
	if err != nil {
		return err
	}

	ctx, cancel := a.runContext(cmd.Context())
	defer cancel()

	started := a.now()
	res, err := exec.Run(ctx, pipelines.Financial(), finance.PipelineInputs(data))
	if err != nil {
		a.recordRun(res, "financial-advisor", models.KindFinancial, err, "", started)
		return err
	}
	a.store.Set(res)

	now := a.now()
	enhanced := report.FinancialEnvelope(res.Raw, finance.SummaryTable(data), data.Income, data.SavingsGoal, now)

	path := a.saveReport(session.FinancialReportName(data.Income, now), enhanced)
	if path != "" {
		a.saveReport(session.TextVariantName(session.FinancialReportName(data.Income, now)), report.PlainText(enhanced))
	}
	a.recordRun(res, "financial-advisor", models.KindFinancial, nil, path, started)

	fmt.Fprintln(cmd.OutOrStdout(), enhanced)
	return nil
}

func applyFinancialFlags(cmd *cobra.Command, data *finance.FinancialData) {
	set := func(name string, dst *float64) {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetFloat64(name)
		}
	}
	set("income", &data.Income)
	set("savings-goal", &data.SavingsGoal)
	set("rent", &data.Expenses.Rent)
	set("utilities", &data.Expenses.Utilities)
	set("groceries", &data.Expenses.Groceries)
	set("transportation", &data.Expenses.Transportation)
	set("entertainment", &data.Expenses.Entertainment)
	set("other", &data.Expenses.Other)
	set("cc-balance", &data.Debts.CreditCard.Balance)
	set("cc-rate", &data.Debts.CreditCard.InterestRate)
	set("loan-balance", &data.Debts.StudentLoan.Balance)
	set("loan-rate", &data.Debts.StudentLoan.InterestRate)
}

func validateFinancialData(data finance.FinancialData) error {
	check := func(field string, v float64) error {
		if v < 0 {
			return &models.ValidationError{Field: field, Message: "must not be negative"}
		}
		return nil
	}
	for field, v := range map[string]float64{
		"income":              data.Income,
		"savings_goal":        data.SavingsGoal,
		"rent":                data.Expenses.Rent,
		"utilities":           data.Expenses.Utilities,
		"groceries":           data.Expenses.Groceries,
		"transportation":      data.Expenses.Transportation,
		"entertainment":       data.Expenses.Entertainment,
		"other":               data.Expenses.Other,
		"credit_card_balance": data.Debts.CreditCard.Balance,
		"credit_card_rate":    data.Debts.CreditCard.InterestRate,
		"loan_balance":        data.Debts.StudentLoan.Balance,
		"loan_rate":           data.Debts.StudentLoan.InterestRate,
	} {
		if err := check(field, v); err != nil {
			return err
		}
	}
	return nil
}
