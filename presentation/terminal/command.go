package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"todo_automation/application/scenario"
	"todo_automation/domain/entities"
	"todo_automation/domain/interfaces"
	"todo_automation/infrastructure/browser"
	"todo_automation/infrastructure/config"
	"todo_automation/infrastructure/storage"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type flags struct {
	envFile   string
	browser   string
	backend   string
	url       string
	reportDir string
	headless  bool
	failFast  bool
}

// NewRootCommand builds the todo-e2e command tree. Running the root command
// runs the scenario.
func NewRootCommand() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:   "todo-e2e",
		Short: "End-to-end browser tests for the TodoMVC application",
		Long: `todo-e2e drives a browser through an ordered to-do list scenario
against one shared session and reports which cases passed.

Settings come from .env and the environment; flags override both.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd, f)
		},
	}

	root.PersistentFlags().StringVar(&f.envFile, "env-file", ".env", "Optional env file to load before reading the environment")
	root.Flags().StringVar(&f.browser, "browser", "", "Browser to drive: firefox, webkit, anything else means chrome")
	root.Flags().StringVar(&f.backend, "backend", "", "Automation backend: playwright, selenium or simulator")
	root.Flags().StringVar(&f.url, "url", "", "URL of the application under test")
	root.Flags().StringVar(&f.reportDir, "report-dir", "", "Directory for run reports and screenshots")
	root.Flags().BoolVar(&f.headless, "headless", true, "Run the browser without a window")
	root.Flags().BoolVar(&f.failFast, "fail-fast", false, "Stop at the first failed case")

	root.AddCommand(newListCommand(), newReportCommand(f))
	return root
}

func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg, err := config.Load(f.envFile)
	if err != nil {
		return nil, err
	}

	fs := cmd.Flags()
	if fs.Changed("browser") {
		cfg.Browser = entities.ParseBrowserKind(f.browser)
	}
	if fs.Changed("backend") {
		if cfg.Backend, err = entities.ParseBackend(f.backend); err != nil {
			return nil, err
		}
	}
	if fs.Changed("url") {
		cfg.AppURL = f.url
	}
	if fs.Changed("report-dir") {
		cfg.ReportDir = f.reportDir
	}
	if fs.Changed("headless") {
		cfg.Headless = f.headless
	}
	if fs.Changed("fail-fast") {
		cfg.FailFast = f.failFast
	}
	return cfg, nil
}

func runScenario(cmd *cobra.Command, f *flags) error {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}
	logger := cfg.NewLogger()
	logger.SetOutput(cmd.ErrOrStderr())

	store, err := storage.NewReportStore(cfg.ReportDir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	open := func(ctx context.Context) (interfaces.BrowserSession, error) {
		return browser.Launch(ctx, browser.Options{
			Browser:                cfg.Browser,
			Backend:                cfg.Backend,
			Headless:               cfg.Headless,
			SlowMo:                 cfg.SlowMo,
			DriverPath:             cfg.DriverPath,
			ChromeBinary:           cfg.ChromeBinary,
			SeleniumPort:           cfg.SeleniumPort,
			PlaywrightPreinstalled: cfg.PlaywrightPreinstalled,
		}, logger)
	}

	runner := scenario.NewRunner(open, store, logger, scenario.Options{
		URL:          cfg.AppURL,
		Browser:      cfg.Browser,
		Backend:      cfg.Backend,
		ImplicitWait: cfg.ImplicitWait,
		SettleDelay:  cfg.SettleDelay,
		FailFast:     cfg.FailFast,
		Screenshots:  cfg.Screenshots,
	})

	logger.WithFields(logrus.Fields{
		"browser": cfg.Browser,
		"backend": cfg.Backend,
		"url":     cfg.AppURL,
	}).Info("Starting scenario")

	report, err := runner.Run(ctx, scenario.TodoScenario())
	PrintReport(cmd.OutOrStdout(), report)
	if err != nil {
		return err
	}
	if failed := report.Count(entities.CaseStatusFailed); failed > 0 {
		return fmt.Errorf("%d of %d cases failed", failed, len(report.Cases))
	}
	return nil
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the ordered scenario cases",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, c := range scenario.Sorted(scenario.TodoScenario()) {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d  %s\n", c.Order, c.Name)
			}
		},
	}
}

func newReportCommand(f *flags) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the most recent run report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				cfg, err := config.Load(f.envFile)
				if err != nil {
					return err
				}
				dir = cfg.ReportDir
			}
			store, err := storage.NewReportStore(dir)
			if err != nil {
				return err
			}
			report, err := store.LoadLatestReport()
			if err != nil {
				return err
			}
			PrintReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "report-dir", "", "Directory holding run reports")
	return cmd
}

// PrintReport writes a human readable summary of a run
func PrintReport(w io.Writer, report *entities.RunReport) {
	if report == nil {
		return
	}
	fmt.Fprintf(w, "Run %s (%s via %s) %s\n", report.ID, report.Browser, report.Backend, report.URL)
	for _, c := range report.Cases {
		fmt.Fprintf(w, "  %-7s %2d %s (%s)\n", strings.ToUpper(string(c.Status)), c.Order, c.Name, c.Duration.Round(time.Millisecond))
		for _, failure := range c.Failures {
			for _, line := range strings.Split(strings.TrimSpace(failure), "\n") {
				fmt.Fprintf(w, "            %s\n", line)
			}
		}
		if c.Screenshot != "" {
			fmt.Fprintf(w, "            screenshot: %s\n", c.Screenshot)
		}
	}
	if report.Error != "" {
		fmt.Fprintf(w, "Error: %s\n", report.Error)
	}
	fmt.Fprintf(w, "%d passed, %d failed, %d skipped\n",
		report.Count(entities.CaseStatusPassed),
		report.Count(entities.CaseStatusFailed),
		report.Count(entities.CaseStatusSkipped))
}
