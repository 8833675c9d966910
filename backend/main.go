package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cookmastery/backend/config"
	"cookmastery/backend/database"
	"cookmastery/backend/routes"
	"cookmastery/backend/utils"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var seedFile string

// rootCmd runs the server when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:           "cookmastery",
	Short:         "Cook Mastery learning backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the database and serve the HTTP API",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update database tables and exit",
	RunE:  runMigrate,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert tutorials and articles from a YAML file",
	Long: `Load tutorials (with their steps) and articles from a YAML file.

Items without an id get a stable one derived from kind and title, so
running the same file twice updates rows instead of duplicating them.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Path to the content YAML file")
	_ = seedCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// bootstrap loads configuration, the logger and the database.
func bootstrap() (*config.Config, *utils.Logger, *gorm.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := utils.InitLogger(cfg.LogMode)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}
	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Sync()
		return nil, nil, nil, fmt.Errorf("init database: %w", err)
	}
	return cfg, logger, db, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	app := routes.NewApp(db, cfg, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.ServerPort, "env", cfg.Env, "db_driver", cfg.DBDriver)
		errCh <- app.Listen(":" + cfg.ServerPort)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.ShutdownTimeout.String())
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		logger.Error("shutdown failed", "error", err)
		return err
	}
	return <-errCh
}

func runMigrate(cmd *cobra.Command, args []string) error {
	_, logger, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logger.Info("migrations applied")
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	_, logger, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close(db)

	file, err := database.LoadSeedFile(seedFile)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	res, err := database.Seed(db.WithContext(cmd.Context()), file)
	if err != nil {
		return fmt.Errorf("seed %s: %w", seedFile, err)
	}
	logger.Info("content seeded", "file", seedFile, "tutorials", res.Tutorials, "articles", res.Articles)
	return nil
}
