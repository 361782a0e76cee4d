package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/asistencia/internal/adapters/blob"
	"github.com/okian/asistencia/internal/adapters/repository"
	service "github.com/okian/asistencia/internal/app"
	"github.com/okian/asistencia/internal/config"
	"github.com/okian/asistencia/pkg/logger"
)

type runFlags struct {
	date       string
	dryRun     bool
	print      bool
	configPath string
}

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd(os.Stdout).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var flags runFlags

	rootCmd := &cobra.Command{
		Use:           "asistencia",
		Short:         "Publish the daily attendance snapshot",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), flags, out)
		},
	}

	rootCmd.Flags().StringVar(&flags.date, "date", "", "local date to build (YYYY-MM-DD), defaults to today")
	rootCmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "write the snapshot to stdout instead of uploading it")
	rootCmd.Flags().BoolVar(&flags.print, "print", false, "also write the uploaded snapshot to stdout")
	rootCmd.Flags().StringVar(&flags.configPath, "config", "", "YAML config file (overrides "+config.EnvConfigPath+")")

	rootCmd.AddCommand(newSeedCmd())

	return rootCmd
}

func run(ctx context.Context, flags runFlags, out io.Writer) error {
	// Load configuration (defaults -> optional file -> .env -> env)
	path := flags.configPath
	if path == "" {
		path = os.Getenv(config.EnvConfigPath)
	}
	cfg, err := config.LoadFrom(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logOpts := logger.Options{Env: cfg.Env}
	if flags.dryRun || flags.print {
		// Keep stdout for the snapshot itself.
		logOpts.OutputPaths = []string{"stderr"}
	}
	if err := logger.InitWith(logOpts); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("failed to load timezone: %w", err)
	}

	builderOpts := []service.BuilderOption{
		service.WithLocation(loc),
		service.WithBuilderLogger(log.Named("builder")),
	}
	if flags.date != "" {
		date, err := time.ParseInLocation(time.DateOnly, flags.date, loc)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", flags.date, err)
		}
		builderOpts = append(builderOpts, service.WithDate(date))
	}

	publisher, err := newPublisher(cfg, flags, out, log)
	if err != nil {
		log.Error(ctx, "failed to set up publisher", logger.Error(err))
		return err
	}

	store, err := repository.Open(ctx, cfg.DBDriver, cfg.DatabaseURL,
		repository.WithMaxOpenConns(cfg.DBMaxOpenConns),
		repository.WithLogger(log.Named("repository")))
	if err != nil {
		log.Error(ctx, "failed to open attendance store", logger.Error(err))
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn(ctx, "failed to close attendance store", logger.Error(err))
		}
	}()

	jobOpts := []service.JobOption{
		service.WithLogger(log.Named("job")),
		service.WithPushgateway(cfg.PushgatewayURL, cfg.MetricsJobName),
	}
	if flags.print && !flags.dryRun {
		jobOpts = append(jobOpts, service.WithPrinter(blob.NewStdoutPublisher(out)))
	}

	job := service.NewJob(service.NewBuilder(store, builderOpts...), publisher, jobOpts...)
	return job.Run(ctx)
}

func newPublisher(cfg *config.Config, flags runFlags, out io.Writer, log logger.Logger) (service.Publisher, error) {
	if flags.dryRun {
		return blob.NewStdoutPublisher(out), nil
	}
	if cfg.BlobEndpoint == "" {
		return nil, fmt.Errorf("%w: blob_endpoint is required unless --dry-run is set", config.ErrInvalidConfig)
	}

	client, err := blob.NewMinioClient(blob.ClientConfig{
		Endpoint:  cfg.BlobEndpoint,
		AccessKey: cfg.BlobAccessKey,
		SecretKey: cfg.BlobSecretKey,
		UseSSL:    cfg.BlobUseSSL,
	})
	if err != nil {
		return nil, err
	}
	return blob.NewMinioPublisher(client, cfg.BlobBucket, cfg.BlobObjectName,
		blob.WithLogger(log.Named("blob"))), nil
}
