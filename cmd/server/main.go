package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"sellerstore/internal/config"
	"sellerstore/internal/handler"
	"sellerstore/internal/loader"
	"sellerstore/internal/logger"
	"sellerstore/internal/repository/sqlstore"
	"sellerstore/internal/service"
)

func main() {
	// Command line flags override the config file
	configPath := flag.String("config", "", "config file path (default: search standard locations)")
	addr := flag.String("addr", "", "HTTP listen address")
	driver := flag.String("driver", "", "database driver: sqlite or pgx")
	dsn := flag.String("db", "", "database DSN or SQLite file path")
	seedPath := flag.String("seed", "", "YAML seed file imported at startup")
	exportPath := flag.String("export", "", "write all departments and sellers as a seed file and exit")
	flag.Parse()

	cfg, source, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	override(&cfg.Server.Addr, *addr)
	override(&cfg.Database.Driver, *driver)
	override(&cfg.Database.DSN, *dsn)
	override(&cfg.Seed, *seedPath)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log, os.Stderr)
	if source == "" {
		source = "defaults"
	}
	log.Info().Str("source", source).Msg(cfg.Summary())

	if err := run(cfg, *exportPath, log); err != nil {
		log.Fatal().Err(err).Msg("sellerstore stopped")
	}
}

func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func run(cfg *config.Config, exportPath string, log zerolog.Logger) error {
	ctx := context.Background()

	db, err := sqlstore.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	log.Info().Str("driver", string(db.Dialect())).Msg("database opened")

	if cfg.Seed != "" {
		if err := importSeed(ctx, db, cfg.Seed, log); err != nil {
			return err
		}
	}

	if exportPath != "" {
		return exportSeed(ctx, db, exportPath, log)
	}

	svc := service.NewSellerService(db.Sellers(), db.Departments(), log)
	if cfg.Log.Level != "debug" && cfg.Log.Level != "trace" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handler.NewRouter(handler.NewSellerHandler(svc, log), log)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for interrupt signal or listener failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down server")
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("server stopped")
	return nil
}

func importSeed(ctx context.Context, db *sqlstore.DB, path string, log zerolog.Logger) error {
	seed, err := loader.LoadSeedFile(path)
	if err != nil {
		return fmt.Errorf("seed %s: %w", path, err)
	}
	res, err := loader.Import(ctx, db.Departments(), db.Sellers(), seed)
	if err != nil {
		return fmt.Errorf("seed %s: %w", path, err)
	}
	log.Info().
		Str("file", path).
		Int("departments", res.Departments).
		Int("sellers", res.Sellers).
		Int("skipped_departments", res.SkippedDepartments).
		Int("skipped_sellers", res.SkippedSellers).
		Msg("seed imported")
	return nil
}

func exportSeed(ctx context.Context, db *sqlstore.DB, path string, log zerolog.Logger) error {
	seed, err := loader.Export(ctx, db.Departments(), db.Sellers())
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	data, err := loader.ExportYAML(seed)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	log.Info().Str("file", path).Int("sellers", len(seed.Sellers)).Msg("seed exported")
	return nil
}
