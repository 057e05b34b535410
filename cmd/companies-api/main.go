// Command companies-api serves a list of companies for local development of
// the directory client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gartstein/directory/internal/companiesapi/db"
	"github.com/gartstein/directory/internal/companiesapi/handlers"
	"github.com/gartstein/directory/internal/companiesapi/seed"
	"github.com/gartstein/directory/internal/directory/models"
	"github.com/gartstein/directory/internal/pkg/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	port           int
	seedFile       string
	generate       int
	randomSeed     int64
	dbDriver       string
	dsn            string
	connectRetries uint64
	delay          time.Duration
	failStatus     int
	logEnv         string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:           "companies-api",
		Short:         "Serve companies over HTTP for the directory client",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), o)
		},
	}

	f := cmd.Flags()
	f.IntVar(&o.port, "port", 3001, "HTTP port")
	f.StringVar(&o.seedFile, "seed-file", "", "JSON file with the companies to serve")
	f.IntVar(&o.generate, "generate", 50, "number of companies to generate when no seed file is given")
	f.Int64Var(&o.randomSeed, "random-seed", 1, "seed for generated companies")
	f.StringVar(&o.dbDriver, "db-driver", db.DriverSQLite, "sqlite or postgres")
	f.StringVar(&o.dsn, "dsn", os.Getenv("COMPANIES_API_DSN"), "database DSN (defaults to in-memory sqlite)")
	f.Uint64Var(&o.connectRetries, "connect-retries", 5, "database connection retries")
	f.DurationVar(&o.delay, "delay", 0, "artificial delay before each /companies response")
	f.IntVar(&o.failStatus, "fail-status", 0, "answer /companies with this HTTP status instead of data")
	f.StringVar(&o.logEnv, "log-env", "development", "production or development logging")
	return cmd
}

func run(ctx context.Context, o *options) error {
	logger, err := logging.New(logging.Options{Env: o.logEnv})
	if err != nil {
		return err
	}
	defer logging.Sync(logger)

	repo, err := db.NewRepository(ctx, &db.Config{
		Driver:         o.dbDriver,
		DSN:            o.dsn,
		ConnectRetries: o.connectRetries,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("failed to close database", zap.Error(err))
		}
	}()

	if err := seedRepository(ctx, repo, o, logger); err != nil {
		return err
	}

	server := handlers.NewServer(o.port, repo, handlers.Options{
		Delay:      o.delay,
		FailStatus: o.failStatus,
	}, logger)
	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return waitForShutdown(server, logger)
}

// seedRepository fills an empty store from the seed file or with generated companies.
func seedRepository(ctx context.Context, repo *db.Repository, o *options, logger *zap.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count companies: %w", err)
	}
	if count > 0 {
		logger.Info("Database already seeded", zap.Int64("companies", count))
		return nil
	}

	var companies []models.Company
	if o.seedFile != "" {
		if companies, err = seed.LoadFile(o.seedFile); err != nil {
			return err
		}
	} else {
		companies = seed.Generate(o.generate, o.randomSeed)
	}

	if err := repo.CreateCompanies(ctx, companies); err != nil {
		return fmt.Errorf("failed to seed companies: %w", err)
	}
	logger.Info("Seeded companies", zap.Int("companies", len(companies)), zap.String("seed_file", o.seedFile))
	return nil
}

// waitForShutdown blocks until an interrupt or SIGTERM is received, then shuts down the server.
func waitForShutdown(server *handlers.Server, logger *zap.Logger) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
	case err, ok := <-server.Errors():
		if ok {
			return err
		}
	}

	server.Stop()
	logger.Info("Server stopped properly")
	return nil
}
