package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/advisor/internal/config"
	"github.com/harrison/advisor/internal/models"
	"github.com/harrison/advisor/internal/pipelines"
	"github.com/harrison/advisor/internal/session"
	"github.com/harrison/advisor/internal/tools"
)

// NewProductCommand creates the product command.
func NewProductCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Run the product launch planning pipeline",
		Long: `Run the product launch pipeline: market research with live web tools,
launch content creation, and a PR outreach plan.

The market research step must produce structured JSON; its output and
the other launch components are collected as separate files alongside
the summary.

Examples:
  advisor product --name "Smart Thermostat" --description "A learning home thermostat"
  advisor product --zip`,
		RunE: runProduct,
	}

	cmd.Flags().String("name", "", "Product name")
	cmd.Flags().String("description", "", "Product description")
	cmd.Flags().String("target-market", "", "Target market")
	cmd.Flags().String("launch-date", "", "Planned launch date (YYYY-MM-DD)")
	cmd.Flags().Float64("budget", 0, "Launch budget")
	cmd.Flags().Bool("zip", false, "Package all launch materials into a zip archive")
	cmd.Flags().Bool("save-defaults", false, "Persist these inputs as the new defaults")

	return cmd
}

func runProduct(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	data := a.user.ProductData
	if cmd.Flags().Changed("name") {
		data.ProductName, _ = cmd.Flags().GetString("name")
	}
	if cmd.Flags().Changed("description") {
		data.ProductDescription, _ = cmd.Flags().GetString("description")
	}
	if cmd.Flags().Changed("target-market") {
		data.TargetMarket, _ = cmd.Flags().GetString("target-market")
	}
	if cmd.Flags().Changed("launch-date") {
		data.LaunchDate, _ = cmd.Flags().GetString("launch-date")
	}
	if cmd.Flags().Changed("budget") {
		data.Budget, _ = cmd.Flags().GetFloat64("budget")
	}

	if data.ProductName == "" {
		return &models.ValidationError{Field: "product_name", Message: "is required"}
	}
	if data.ProductDescription == "" {
		return &models.ValidationError{Field: "product_description", Message: "is required"}
	}

	if save, _ := cmd.Flags().GetBool("save-defaults"); save {
		a.user.ProductData = data
		if err := config.SaveUserConfig(config.UserConfigPath(a.cfg.OutputDir), a.user); err != nil {
			a.log.Warnf("defaults not saved: %v", err)
		}
	}

	exec, err := a.executor()
	if err != nil {
		return err
	}

	fetcher := tools.NewFetcher(0)
	search := tools.NewWebSearchTool(fetcher)
	scrape := tools.NewScrapeTool(fetcher)

	ctx, cancel := a.runContext(cmd.Context())
	defer cancel()

	inputs := map[string]string{
		"product_name":        data.ProductName,
		"product_description": data.ProductDescription,
		"target_market":       data.TargetMarket,
		"launch_date":         data.LaunchDate,
		"budget":              fmt.Sprintf("%.0f", data.Budget),
	}

	started := a.now()
	res, err := exec.Run(ctx, pipelines.Product(search, scrape), inputs)
	if err != nil {
		a.recordRun(res, "product-launcher", models.KindProduct, err, "", started)
		return err
	}
	a.store.Set(res)

	now := a.now()
	path := a.saveReport(session.LaunchSummaryName(data.ProductName, now), res.Raw)
	for _, name := range []string{pipelines.MarketResearchFile, pipelines.ContentPlanFile, pipelines.OutreachReportFile} {
		if content, ok := res.File(name); ok {
			a.saveReport(name, content)
		}
	}

	if zipIt, _ := cmd.Flags().GetBool("zip"); zipIt && !a.noSave {
		if zipPath, err := a.store.LaunchPackage(res, data.ProductName, now); err != nil {
			// Degrade to a single combined text file rather than
			// losing the packaged view.
			a.log.Warnf("launch package not created: %v", err)
			a.saveReport(session.TextVariantName(session.LaunchSummaryName(data.ProductName, now)), session.CombinedText(res, data.ProductName))
		} else {
			a.log.Infof("launch package saved to %s", zipPath)
		}
	}

	a.recordRun(res, "product-launcher", models.KindProduct, nil, path, started)

	fmt.Fprintln(cmd.OutOrStdout(), res.Raw)
	return nil
}
