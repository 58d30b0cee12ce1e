package cmd

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/advisor/internal/config"
	"github.com/harrison/advisor/internal/history"
	"github.com/harrison/advisor/internal/llm"
	"github.com/harrison/advisor/internal/logger"
	"github.com/harrison/advisor/internal/models"
	"github.com/harrison/advisor/internal/pipeline"
	"github.com/harrison/advisor/internal/session"
)

const defaultConfigFile = "advisor.yaml"

// app carries the wired dependencies every pipeline command needs. It
// is built once per invocation from flags and config; tests construct
// it directly with stub runners.
type app struct {
	cfg    *config.AppConfig
	user   *config.UserConfig
	log    *logger.ConsoleLogger
	store  *session.Store
	noSave bool

	// runner overrides the OpenAI-backed role runner when set (tests).
	runner pipeline.RoleRunner
	// provider defaults to the process-wide credential provider.
	provider *llm.Provider

	now func() time.Time
}

func newApp(cmd *cobra.Command) (*app, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigFile
	}
	cfg, err := config.LoadAppConfig(configPath)
	if err != nil {
		return nil, err
	}

	if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
		cfg.OutputDir = dir
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	noSave, _ := cmd.Flags().GetBool("no-save")

	user, _ := config.LoadUserConfig(config.UserConfigPath(cfg.OutputDir))

	return &app{
		cfg:      cfg,
		user:     user,
		log:      logger.NewConsoleLogger(os.Stderr, cfg.LogLevel),
		store:    session.New(cfg.OutputDir),
		noSave:   noSave,
		provider: llm.Default(),
		now:      time.Now,
	}, nil
}

// roleRunner returns the runner pipeline executions use. Credential
// resolution happens here, before any pipeline starts, so a missing
// key surfaces as a ConfigurationError instead of a mid-run failure.
func (a *app) roleRunner() (pipeline.RoleRunner, error) {
	if a.runner != nil {
		return a.runner, nil
	}
	client, err := a.provider.Client()
	if err != nil {
		return nil, err
	}
	return pipeline.NewOpenAIRunner(client, a.cfg.ChatDeployment), nil
}

// executor builds a pipeline executor whose progress events render
// through the console logger.
func (a *app) executor() (*pipeline.Executor, error) {
	runner, err := a.roleRunner()
	if err != nil {
		return nil, err
	}
	return pipeline.New(runner, logger.NewProgressSink(a.log)), nil
}

// runContext applies the configured pipeline timeout.
func (a *app) runContext(parent context.Context) (context.Context, context.CancelFunc) {
	if a.cfg.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, a.cfg.Timeout)
}

// saveReport persists a report unless --no-save was given. Persistence
// failures downgrade to a warning; the result already printed is not
// lost.
func (a *app) saveReport(filename, content string) string {
	if a.noSave {
		return ""
	}
	path, err := a.store.SaveReport(filename, content)
	if err != nil {
		a.log.Warnf("report not saved: %v", err)
		return ""
	}
	a.log.Infof("report saved to %s", path)
	return path
}

// recordRun appends the run to the history database. History is an
// observability aid; failures are warned about and otherwise ignored.
func (a *app) recordRun(res *models.RunResult, pipelineName string, kind models.Kind, runErr error, reportPath string, started time.Time) {
	store, err := history.NewStore(a.cfg.HistoryDB)
	if err != nil {
		a.log.Warnf("run history unavailable: %v", err)
		return
	}
	defer store.Close()

	run := &history.Run{
		Pipeline:   pipelineName,
		Kind:       string(kind),
		Success:    runErr == nil,
		ReportPath: reportPath,
		StartedAt:  started,
		Duration:   time.Since(started),
	}
	if res != nil {
		run.RunID = res.RunID
		run.StartedAt = res.StartedAt
		run.Duration = res.Duration
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	if err := store.Record(context.Background(), run); err != nil {
		a.log.Warnf("run not recorded: %v", err)
	}
}
