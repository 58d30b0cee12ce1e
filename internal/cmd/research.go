package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/advisor/internal/config"
	"github.com/harrison/advisor/internal/models"
	"github.com/harrison/advisor/internal/pipeline"
	"github.com/harrison/advisor/internal/pipelines"
	"github.com/harrison/advisor/internal/report"
	"github.com/harrison/advisor/internal/session"
	"github.com/harrison/advisor/internal/tools"
)

// NewResearchCommand creates the research command.
func NewResearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "research",
		Short: "Research a topic on a single website",
		Long: `Run the web research pipeline: a researcher role retrieves relevant
passages from the target website, and an analyst structures the
findings into a report.

If the pipeline fails mid-run, a fallback report with manual research
guidance is produced instead of a bare error.

Examples:
  advisor research --url https://example.com --topic "pricing model"
  advisor research --topic "history of the company"`,
		RunE: runResearch,
	}

	cmd.Flags().String("url", "", "Website to research (http:// or https://)")
	cmd.Flags().String("topic", "", "Research topic")
	cmd.Flags().Bool("save-defaults", false, "Persist these inputs as the new defaults")

	return cmd
}

func runResearch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	url := a.user.WebsiteURL
	topic := a.user.ResearchTopic
	if cmd.Flags().Changed("url") {
		url, _ = cmd.Flags().GetString("url")
	}
	if cmd.Flags().Changed("topic") {
		topic, _ = cmd.Flags().GetString("topic")
	}

	// Input preconditions are checked before any model call.
	if topic == "" {
		return &models.ValidationError{Field: "research_topic", Message: "is required"}
	}
	if !tools.ValidateURL(url) {
		return &models.ValidationError{Field: "website_url", Message: "must start with http:// or https://"}
	}

	if save, _ := cmd.Flags().GetBool("save-defaults"); save {
		a.user.WebsiteURL = url
		a.user.ResearchTopic = topic
		if err := config.SaveUserConfig(config.UserConfigPath(a.cfg.OutputDir), a.user); err != nil {
			a.log.Warnf("defaults not saved: %v", err)
		}
	}

	// Credential problems block before any model call; only failures
	// inside the pipeline itself degrade to the fallback report.
	exec, err := a.executor()
	if err != nil {
		return err
	}
	siteSearch, err := a.siteSearchTool(url)
	if err != nil {
		return err
	}

	final, res, runErr := a.executeResearch(cmd, exec, siteSearch, url, topic)
	started := a.now()
	if res != nil {
		started = res.StartedAt
	}

	path := a.saveResearchReport(final, topic, url)
	a.recordRun(res, "web-researcher", models.KindResearch, runErr, path, started)

	fmt.Fprintln(cmd.OutOrStdout(), final)
	return nil
}

// saveResearchReport persists the report wrapped in the on-disk
// envelope, plus a plain-text variant next to it, and returns the
// markdown path.
func (a *app) saveResearchReport(final, topic, url string) string {
	now := a.now()
	name := session.ResearchReportName(topic, now)
	saved := report.ResearchSaveEnvelope(final, topic, url, now)
	path := a.saveReport(name, saved)
	if path != "" {
		a.saveReport(session.TextVariantName(name), report.PlainText(saved))
	}
	return path
}

// executeResearch runs the pipeline and post-processes the outcome.
// The returned string is always a complete report: the finalized
// research on success, the fallback document on any failure.
func (a *app) executeResearch(cmd *cobra.Command, exec *pipeline.Executor, siteSearch models.Tool, url, topic string) (string, *models.RunResult, error) {
	ctx, cancel := a.runContext(cmd.Context())
	defer cancel()

	inputs := map[string]string{
		"research_topic": topic,
		"website_url":    url,
	}
	res, err := exec.Run(ctx, pipelines.Research(siteSearch), inputs)
	if err != nil {
		return report.Fallback(topic, url, err.Error(), a.now()), res, err
	}
	a.store.Set(res)

	return report.FinalizeResearch(res.Raw, topic, url, a.now()), res, nil
}

// siteSearchTool builds the site-restricted semantic search tool with
// its own embedding client. Tests replace the whole runner instead, so
// this is only reached with real credentials.
func (a *app) siteSearchTool(url string) (models.Tool, error) {
	searchCfg, err := a.provider.SearchClientConfig()
	if err != nil {
		return nil, err
	}
	return tools.NewSiteSearchTool(url, tools.NewFetcher(0), searchCfg.EmbeddingClient(), searchCfg), nil
}
