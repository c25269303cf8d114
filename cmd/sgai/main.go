package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sgai/internal/common"
	"github.com/ternarybob/sgai/internal/services/credentials"
	"github.com/ternarybob/sgai/internal/services/render"
	"github.com/ternarybob/sgai/internal/sgai"
)

var (
	// Persistent flags
	configFile  string
	timeoutFlag int
	debugFlag   bool
	jsonOutput  bool
	formatFlag  string
	noColor     bool
	quiet       bool

	// Global state, set up once per invocation in setup
	config       *common.Config
	settingsPath string
	logger       arbor.ILogger
	creds        *credentials.Service
	service      *sgai.Service
	printer      *render.Printer
	status       *render.Printer
)

var rootCmd = &cobra.Command{
	Use:   "sgai",
	Short: "ScrapeGraph AI command-line client",
	Long: `sgai talks to the ScrapeGraph AI API: extract structured data from pages,
search the web, convert pages to markdown, crawl sites and inspect your account.

The API key is read from SGAI_API_KEY, then ~/.scrapegraphai/config.toml;
when neither is set you are asked for it once and it is saved.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file (default ~/.scrapegraphai/config.toml)")
	rootCmd.PersistentFlags().IntVar(&timeoutFlag, "timeout", 0, "Time budget in seconds, polling included (overrides SGAI_CLI_TIMEOUT_S)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Trace every request and response (same as SGAI_CLI_DEBUG=1)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print only the raw JSON result (pipeable)")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "json", "Result encoding: json or yaml")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress banner and progress output")

	rootCmd.AddCommand(
		smartScraperCmd,
		searchScraperCmd,
		markdownifyCmd,
		scrapeCmd,
		crawlCmd,
		agenticScraperCmd,
		generateSchemaCmd,
		sitemapCmd,
		creditsCmd,
		validateCmd,
		historyCmd,
		loginCmd,
		versionCmd,
	)
}

func main() {
	defer common.RecoverWithCrashFile()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fail(err)
	}
}

// setup runs before every command. Startup sequence:
// 1. Load config (defaults -> file -> .env -> env)
// 2. Apply CLI overrides (highest priority)
// 3. Initialize logger
// 4. Print banner
func setup(cmd *cobra.Command, args []string) error {
	if cmd == versionCmd {
		return nil
	}

	settingsPath = configFile
	if settingsPath == "" {
		settingsPath = common.DefaultConfigPath()
	}

	var err error
	config, err = common.LoadFromFiles(settingsPath)
	if err != nil {
		return err
	}
	common.ApplyFlagOverrides(config, timeoutFlag, debugFlag)

	logger = common.SetupLogger(config).WithCorrelationId(common.NewCorrelationID())

	format, err := render.ParseFormat(formatFlag)
	if err != nil {
		return &sgai.ValidationError{Message: err.Error()}
	}
	if jsonOutput {
		format = render.FormatJSON
		quiet = true
	}

	color := !noColor && !jsonOutput && isTerminal(os.Stdout)
	printer = render.NewPrinter(os.Stdout, render.WithFormat(format), render.WithColor(color), render.WithLogger(logger))
	status = render.NewPrinter(os.Stderr, render.WithColor(!noColor && isTerminal(os.Stderr)), render.WithLogger(logger))

	creds = credentials.NewService(settingsPath, credentials.WithLogger(logger))

	client := sgai.NewClient(
		sgai.WithBaseURL(config.API.BaseURL),
		sgai.WithLogger(logger),
		sgai.WithRateLimit(config.API.RateLimit),
		sgai.WithTimeout(config.TimeBudget()),
		sgai.WithUserAgent(common.UserAgent()),
		sgai.WithDebug(config.Debug),
	)
	service = sgai.NewService(client,
		sgai.WithTimeBudget(config.TimeBudget()),
		sgai.WithPollInterval(config.PollInterval()),
		sgai.WithServiceLogger(logger),
	)

	if !quiet && isTerminal(os.Stdout) {
		common.PrintBanner(common.Version)
	}

	logger.Debug().
		Str("command", cmd.Name()).
		Str("config", settingsPath).
		Str("base_url", config.API.BaseURL).
		Int("timeout_seconds", config.API.TimeoutSeconds).
		Bool("debug", config.Debug).
		Msg("Configuration loaded")

	return nil
}

// fail prints the classified message of err and exits with status 1.
func fail(err error) {
	msg := err.Error()
	var resultErr *resultError
	if errors.As(err, &resultErr) {
		msg = resultErr.message
	} else if classified := sgai.Classify(err); classified != sgai.MsgUnknown {
		msg = classified
	}

	if status != nil {
		status.Error(msg)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	}
	os.Exit(1)
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
