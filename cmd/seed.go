package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/asistencia/internal/adapters/repository"
	"github.com/okian/asistencia/internal/config"
	"github.com/okian/asistencia/internal/seed"
	"github.com/okian/asistencia/pkg/logger"
)

func newSeedCmd() *cobra.Command {
	var (
		cfg        seed.Config
		today      string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill a development database with a synthetic school",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			path := configPath
			if path == "" {
				path = os.Getenv(config.EnvConfigPath)
			}
			appCfg, err := config.LoadFrom(ctx, path)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := logger.InitWith(logger.Options{Env: appCfg.Env, OutputPaths: []string{"stderr"}}); err != nil {
				return fmt.Errorf("failed to initialize logging: %w", err)
			}
			defer func() { _ = logger.Sync() }()
			_ = logger.SetLevelString(appCfg.LogLevel)

			if today != "" {
				loc, err := time.LoadLocation(appCfg.Timezone)
				if err != nil {
					return fmt.Errorf("failed to load timezone: %w", err)
				}
				if cfg.Today, err = time.ParseInLocation(time.DateOnly, today, loc); err != nil {
					return fmt.Errorf("invalid --today %q: %w", today, err)
				}
			}

			log := logger.Named("seed")
			store, err := repository.Open(ctx, appCfg.DBDriver, appCfg.DatabaseURL,
				repository.WithLogger(log))
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			stats, err := seed.Run(ctx, store, cfg, log)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(),
				"seeded %d secondary teachers (%d courses), %d primary teachers, %d assistants, %d administrative staff; %d inactive\n",
				stats.SecondaryTeachers, stats.Courses, stats.PrimaryTeachers, stats.Assistants,
				stats.AdministrativeStaff, stats.Inactive)
			return err
		},
	}

	cmd.Flags().IntVar(&cfg.SecondaryTeachers, "secondary", seed.DefaultSecondaryTeachers, "secondary teachers to create")
	cmd.Flags().IntVar(&cfg.PrimaryTeachers, "primary", seed.DefaultPrimaryTeachers, "primary teachers to create")
	cmd.Flags().IntVar(&cfg.Assistants, "assistants", seed.DefaultAssistants, "auxiliary staff to create")
	cmd.Flags().IntVar(&cfg.AdministrativeStaff, "administrative", seed.DefaultAdministrativeStaff, "administrative staff to create")
	cmd.Flags().Float64Var(&cfg.InactiveRatio, "inactive-ratio", seed.DefaultInactiveRatio, "share of people marked inactive (0-1)")
	cmd.Flags().StringVar(&today, "today", "", "date that gets an active announcement (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML config file (overrides "+config.EnvConfigPath+")")

	return cmd
}
