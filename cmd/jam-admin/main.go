package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jamapp/jam-admin/internal/config"
	"github.com/jamapp/jam-admin/internal/constants"
	"github.com/jamapp/jam-admin/internal/database"
	"github.com/jamapp/jam-admin/internal/handlers"
	"github.com/jamapp/jam-admin/internal/logging"
	appSignals "github.com/jamapp/jam-admin/internal/signals"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const defaultConfigPath = "configs/jam-admin.toml"

func main() {
	// A missing .env file is fine, the environment may be set another way
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "failed to load .env file:", err)
	}

	isDev := os.Getenv("ENV") != "production"
	logging.Initialize(isDev)

	if err := newRootCommand().Execute(); err != nil {
		logger := logging.GetLogger("main")
		logger.Error().Err(err).Msg("Application run failed")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "jam-admin",
		Short:         constants.AppName,
		Long:          "Admin interface for managing the bars and restaurants listed in the Jam app.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), resolveConfigPath(cmd, configPath))
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("jam-admin {{.Version}} (commit %s, built %s)\n", commit, date))
	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "Path to the TOML configuration file (env CONFIG_FILE)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the admin web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), resolveConfigPath(cmd, configPath))
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and seed the catalog, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context(), resolveConfigPath(cmd, configPath))
		},
	})

	return root
}

// resolveConfigPath prefers the --config flag, then CONFIG_FILE, then the
// default path. A missing default file means defaults and environment only.
func resolveConfigPath(cmd *cobra.Command, flagValue string) string {
	logger := logging.GetLogger("main")
	if cmd.Flags().Changed("config") {
		return flagValue
	}
	if envPath := os.Getenv("CONFIG_FILE"); envPath != "" {
		return envPath
	}
	if _, err := os.Stat(defaultConfigPath); err != nil {
		logger.Info().Str("config_path", defaultConfigPath).Msg("No configuration file found, using defaults and environment")
		return ""
	}
	return defaultConfigPath
}

// loadConfig loads the configuration and applies its log level
func loadConfig(configPath string) (*config.Config, error) {
	logger := logging.GetLogger("main")

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error().Err(err).Str("config_path", configPath).Msg("Failed to load configuration")
		return nil, err
	}

	if err := logging.SetLogLevel(cfg.Service.LogLevel); err != nil {
		logger.Warn().Err(err).Msg("Falling back to info log level")
	}
	logger.Info().Str("log_level", cfg.Service.LogLevel).Msg("Log level set")
	return cfg, nil
}

// openDatabase opens, migrates and seeds the database described by cfg
func openDatabase(ctx context.Context, cfg *config.Config) (*database.DB, error) {
	logger := logging.GetLogger("main")

	if err := os.MkdirAll(filepath.Dir(cfg.Service.StateFile), 0755); err != nil {
		logger.Error().Err(err).Str("path", filepath.Dir(cfg.Service.StateFile)).Msg("Failed to create data directory")
		return nil, err
	}

	dbOpts := database.NewDefaultOptions(cfg.Service.StateFile)
	dbOpts.AutoVacuum = "incremental"
	db, err := database.New(dbOpts)
	if err != nil {
		wrappedErr := fmt.Errorf("failed to initialize database: %w", err)
		logger.Error().Err(wrappedErr).Str("db_path", cfg.Service.StateFile).Msg("Database initialization failed")
		return nil, wrappedErr
	}

	if err := db.MigrateDatabase(); err != nil {
		db.Close()
		wrappedErr := fmt.Errorf("failed to initialize database schema: %w", err)
		logger.Error().Err(wrappedErr).Msg("Database schema initialization failed")
		return nil, wrappedErr
	}

	seeder := database.NewCatalogSeeder(database.NewCatalogStore(db))
	if err := seeder.SeedFromConfig(ctx, cfg); err != nil {
		db.Close()
		wrappedErr := fmt.Errorf("failed to seed catalog: %w", err)
		logger.Error().Err(wrappedErr).Msg("Catalog seeding failed")
		return nil, wrappedErr
	}

	return db, nil
}

func runMigrate(ctx context.Context, configPath string) error {
	logger := logging.GetLogger("main")

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	logger.Info().Str("db_path", db.Path()).Msg("Database is up to date")
	return nil
}

func runServe(ctx context.Context, configPath string) error {
	logger := logging.GetLogger("main")
	logger.Info().
		Str("version", version).
		Str("commit", commit).
		Str("build_date", date).
		Msg("Starting " + constants.AppName)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info().Str("signal", sig.String()).Msg("Received signal, initiating shutdown")
			cancel()
		case <-ctx.Done():
		}
	}()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	restaurantStore := database.NewRestaurantStore(db)
	catalogStore := database.NewCatalogStore(db)

	staticHandler, err := handlers.NewStaticHandler()
	if err != nil {
		wrappedErr := fmt.Errorf("failed to initialize static handler: %w", err)
		logger.Error().Err(wrappedErr).Msg("Static handler initialization failed")
		return wrappedErr
	}

	baseHandler, err := handlers.NewBaseHandler(restaurantStore, catalogStore)
	if err != nil {
		wrappedErr := fmt.Errorf("failed to initialize base handler: %w", err)
		logger.Error().Err(wrappedErr).Msg("Base handler initialization failed")
		return wrappedErr
	}
	healthHandler := handlers.NewHealthHandler(db)

	mux := http.NewServeMux()
	staticHandler.RegisterRoutes(mux)
	healthHandler.RegisterRoutes(mux)
	handlers.NewHomeHandler(baseHandler).RegisterRoutes(mux)
	handlers.NewRestaurantsHandler(baseHandler).RegisterRoutes(mux)
	handlers.NewRestaurantHandler(baseHandler).RegisterRoutes(mux)

	registerSignalListeners()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      mux,
		ReadTimeout:  cfg.Service.ReadTimeout,
		WriteTimeout: cfg.Service.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Int("port", cfg.App.Port).Str("app_url", cfg.App.AppURL).Msg("Starting web server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	healthHandler.MarkReady()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error().Err(err).Msg("HTTP server error")
			return err
		}
	case <-ctx.Done():
		logger.Info().Msg("Context cancelled, initiating shutdown sequence")
	}

	healthHandler.MarkNotReady()
	logger.Info().Msg("Shutting down HTTP server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Service.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
		return err
	}
	logger.Info().Msg("Shutdown complete")
	return nil
}

// registerSignalListeners logs every restaurant change
func registerSignalListeners() {
	appSignals.OnRestaurantSaved(func(ctx context.Context, data appSignals.RestaurantSavedData) {
		signalLogger := logging.GetLogger("signal-restaurant-saved")
		signalLogger.Info().
			Str("restaurant_id", data.ID).
			Str("name", data.Name).
			Bool("created", data.Created).
			Msg("Restaurant saved")
	}, "main-restaurant-saved-handler")

	appSignals.OnRestaurantDeleted(func(ctx context.Context, data appSignals.RestaurantDeletedData) {
		signalLogger := logging.GetLogger("signal-restaurant-deleted")
		signalLogger.Info().Str("restaurant_id", data.ID).Msg("Restaurant deleted")
	}, "main-restaurant-deleted-handler")
}
