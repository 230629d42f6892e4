// Package cmd implements the catalogadm operator commands.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-course-catalog/internal/config"
	"github.com/MKhiriev/go-course-catalog/internal/logger"
	"github.com/MKhiriev/go-course-catalog/internal/service"
	"github.com/MKhiriev/go-course-catalog/internal/store"
	"github.com/MKhiriev/go-course-catalog/models"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Build is replaced by main with the linker-injected build metadata.
var Build = models.NewBuildInfo("dev", "", "")

var (
	okFmt   = color.New(color.FgGreen).SprintFunc()
	infoFmt = color.New(color.FgYellow).SprintFunc()
	errFmt  = color.New(color.FgRed, color.Bold).SprintFunc()
)

// environment is what the database commands work against. It is opened by
// the root command before any of them runs.
type environment struct {
	cfg      *config.AdminConfig
	db       *store.DB
	services *service.Services
}

func (e *environment) close() {
	if e.db != nil {
		e.db.Close()
	}
}

// noDatabase marks commands that run without opening the database.
const noDatabase = "noDatabase"

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var (
		configPath string
		env        = &environment{}
	)

	rootCmd := &cobra.Command{
		Use:   "catalogadm",
		Short: "Operator tool for the course catalog",
		Long: `catalogadm manages the course catalog database: it applies schema
migrations, seeds sample data and maintains administrator accounts.

Configuration is read from the same environment variables and JSON file as
the server.`,
		Version:       Build.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, skip := cmd.Annotations[noDatabase]; skip || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			return env.open(cmd.Context(), configPath)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			env.close()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the JSON configuration file")

	rootCmd.AddCommand(
		newMigrateCmd(env),
		newSeedCmd(env),
		newCreateAdminCmd(env),
		newResetPasswordCmd(env),
		newVersionCmd(),
	)

	return rootCmd
}

func (e *environment) open(ctx context.Context, configPath string) error {
	cfg, err := config.GetAdminConfig(configPath)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	if cfg.App.Version == "" {
		cfg.App.Version = Build.Version
	}

	log := logger.Nop()
	if cfg.App.LogLevel == "debug" {
		log = logger.NewConsoleLogger("catalogadm", os.Stderr)
	}

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	services, err := service.NewServices(store.NewStorages(db, log), config.StructuredConfig{
		App:      cfg.App,
		Security: cfg.Security,
		Storage:  cfg.Storage,
	}, log)
	if err != nil {
		db.Close()
		return err
	}

	e.cfg = cfg
	e.db = db
	e.services = services
	return nil
}

// Execute runs the root command and reports a failure on stderr.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), errFmt("Error:"), err)
		return err
	}
	return nil
}
