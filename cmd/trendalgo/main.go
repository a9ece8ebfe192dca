package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
	"trendalgo/api"
	"trendalgo/cmd"
	"trendalgo/internal/app"
	"trendalgo/internal/config"
	"trendalgo/internal/db"
	"trendalgo/internal/logger"

	"github.com/getsentry/sentry-go"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	configPath string
	cfg        *config.Config
)

// loadConfig runs before every subcommand and starts sentry when a dsn
// is configured
func loadConfig(c *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg = loaded

	if cfg.SentryDsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDsn,
			Environment: cfg.Env,
		}); err != nil {
			logger.FromContext(c.Context()).Warnf("failed to initialize sentry: %v", err)
		}
	}
	return nil
}

// withDependencies loads config, wires everything and pushes metrics
// once fn returns
func withDependencies(ctx context.Context, override func(*config.Config), fn func(*cmd.Dependencies) error) error {
	if override != nil {
		override(cfg)
	}

	deps, err := cmd.InitializeDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer cmd.CloseDependencies(deps)

	err = fn(deps)

	if cfg.Metrics.PushgatewayUrl != "" {
		if pushErr := deps.Metrics.Push(ctx, cfg.Metrics.PushgatewayUrl, cfg.Metrics.Job); pushErr != nil {
			logger.FromContext(ctx).Warnf("failed to push metrics: %v", pushErr)
		}
	}

	return err
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the instrument and price tables",
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			return withDependencies(ctx, nil, func(deps *cmd.Dependencies) error {
				if err := db.Migrate(ctx, deps.Db); err != nil {
					return err
				}
				logger.FromContext(ctx).Info("schema is up to date")
				return nil
			})
		},
	}
}

func ingestCmd() *cobra.Command {
	var fromCsv string
	command := &cobra.Command{
		Use:   "ingest",
		Short: "Fetch and store daily closes for the market and cash instruments",
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			override := func(cfg *config.Config) {
				if fromCsv != "" {
					cfg.MarketData.Provider = "csv"
					cfg.MarketData.CsvPath = fromCsv
				}
			}
			return withDependencies(ctx, override, func(deps *cmd.Dependencies) error {
				results, err := deps.TrendAlgoApp.Ingest(ctx)
				for _, r := range results {
					fmt.Printf("%-6s fetched=%d inserted=%d skipped=%d\n", r.Ticker, r.Fetched, r.Inserted, r.Skipped)
				}
				return err
			})
		},
	}
	command.Flags().StringVar(&fromCsv, "from-csv", "", "read bars from a date,symbol,close csv instead of the configured provider")
	return command
}

func runCmd() *cobra.Command {
	var (
		live           bool
		sendEmail      bool
		skipIngest     bool
		portfolioValue string
	)
	command := &cobra.Command{
		Use:   "run",
		Short: "Compute signals, pick market or cash and execute the allocation",
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			return withDependencies(ctx, nil, func(deps *cmd.Dependencies) error {
				input := app.RunInput{
					Live:       live || deps.Config.LiveTrade,
					SendEmail:  sendEmail || deps.Config.Email.Enabled,
					SkipIngest: skipIngest,
				}
				if portfolioValue != "" {
					v, err := decimal.NewFromString(portfolioValue)
					if err != nil {
						return fmt.Errorf("invalid portfolio value %q: %w", portfolioValue, err)
					}
					input.PortfolioValue = &v
				}

				report, err := deps.TrendAlgoApp.Run(ctx, input)
				if report != nil {
					fmt.Printf("market is %s, holding %s\n", report.Market.Condition(), report.TargetSymbol)
					for _, t := range report.Targets {
						fmt.Printf("  %s [%s]\n", t.Target.String(), t.Status)
					}
				}
				return err
			})
		},
	}
	command.Flags().BoolVar(&live, "live", false, "submit orders to the broker")
	command.Flags().BoolVar(&sendEmail, "email", false, "send the report email")
	command.Flags().BoolVar(&skipIngest, "skip-ingest", false, "use stored prices without refreshing them")
	command.Flags().StringVar(&portfolioValue, "portfolio-value", "", "size the allocation from this value instead of the account equity")
	return command
}

func historyCmd() *cobra.Command {
	var days int
	command := &cobra.Command{
		Use:   "history <ticker>",
		Short: "Print stored daily closes for a ticker",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			return withDependencies(ctx, nil, func(deps *cmd.Dependencies) error {
				prices, err := deps.TrendAlgoApp.History(ctx, args[0], days)
				if err != nil {
					return err
				}
				for _, p := range prices {
					fmt.Printf("%s %s\n", p.Date.Format(time.DateOnly), p.Close.StringFixed(2))
				}
				return nil
			})
		},
	}
	command.Flags().IntVar(&days, "days", 30, "number of calendar days to show")
	return command
}

func apiCmd() *cobra.Command {
	var port int
	command := &cobra.Command{
		Use:   "api",
		Short: "Serve the trigger api",
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			return withDependencies(ctx, nil, func(deps *cmd.Dependencies) error {
				if port == 0 {
					port = deps.Config.Api.Port
				}
				deps.ApiHandler.Logger = logger.FromContext(ctx)
				return deps.ApiHandler.StartApi(port)
			})
		},
	}
	command.Flags().IntVar(&port, "port", 0, "port to listen on (default from config)")
	return command
}

func tokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)
	command := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the trigger api",
		RunE: func(c *cobra.Command, args []string) error {
			token, err := api.IssueToken(cfg.Api.JwtSecret, subject, ttl)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
	command.Flags().StringVar(&subject, "subject", "scheduler", "token subject")
	command.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return command
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "trendalgo",
		Short:         "Monthly trend following allocator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: loadConfig,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "settings file (default $TREND_CONFIG_FILE or settings.yaml)")
	root.AddCommand(
		migrateCmd(),
		ingestCmd(),
		runCmd(),
		historyCmd(),
		apiCmd(),
		tokenCmd(),
	)
	return root
}

func main() {
	config.LoadDotEnv()
	log := logger.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.NewContext(ctx, log)

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error(err)
		sentry.CaptureException(err)
		sentry.Flush(2 * time.Second)
		stop()
		log.Sync()
		os.Exit(1)
	}
}
