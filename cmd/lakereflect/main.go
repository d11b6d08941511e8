// Command lakereflect serves schema reflection over HTTP.
//
// It connects to the configured backend (a Databricks-style SQL warehouse,
// PostgreSQL or MySQL), exposes the reflected tables and key constraints as
// a JSON API, and optionally persists schema snapshots to object storage.
//
// Run with:
//
//	lakereflect -config /etc/lakereflect/lakereflect.yaml
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

	"github.com/lakereflect/lakereflect/internal/config"
	"github.com/lakereflect/lakereflect/internal/database"
	"github.com/lakereflect/lakereflect/internal/database/mysql"
	"github.com/lakereflect/lakereflect/internal/database/postgres"
	"github.com/lakereflect/lakereflect/internal/database/warehouse"
	"github.com/lakereflect/lakereflect/internal/logger"
	"github.com/lakereflect/lakereflect/internal/schema"
	"github.com/lakereflect/lakereflect/internal/server"
	"github.com/lakereflect/lakereflect/internal/snapshot"
	snapminio "github.com/lakereflect/lakereflect/internal/snapshot/minio"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reflector, err := openReflector(ctx, cfg)
	if err != nil {
		return err
	}
	defer reflector.Close()
	log.With().Str("driver", cfg.Database.Driver).Logger().Info("reflection backend connected")

	var store snapshot.Store
	if cfg.Snapshot.Enabled {
		store, err = snapminio.New(ctx, &snapshot.Config{
			Endpoint:  cfg.Snapshot.Endpoint,
			AccessKey: cfg.Snapshot.AccessKey,
			SecretKey: cfg.Snapshot.SecretKey,
			Bucket:    cfg.Snapshot.Bucket,
			Region:    cfg.Snapshot.Region,
			UseSSL:    cfg.Snapshot.UseSSL,
		})
		if err != nil {
			return err
		}
		defer store.Close()
		log.With().Str("bucket", cfg.Snapshot.Bucket).Logger().Info("snapshot store connected")
	}

	srv := server.New(reflector, store, cfg.Database.Catalog, log)
	httpSrv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Router(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.With().Str("addr", cfg.Server.Addr).Logger().Info("http server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// openReflector builds the backend named by the config.
func openReflector(ctx context.Context, cfg *config.Config) (schema.Reflector, error) {
	dbCfg := database.DefaultConfig(database.Driver(cfg.Database.Driver), cfg.Database.DSN)
	dbCfg.Catalog = cfg.Database.Catalog
	dbCfg.Schema = cfg.Database.Schema
	if cfg.Database.MaxConns > 0 {
		dbCfg.MaxConns = cfg.Database.MaxConns
	}
	if cfg.Database.MinConns > 0 {
		dbCfg.MinConns = cfg.Database.MinConns
	}
	if cfg.Database.ConnectTimeoutSeconds > 0 {
		dbCfg.ConnectTimeout = cfg.Database.ConnectTimeout()
	}
	if cfg.Database.QueryTimeoutSeconds > 0 {
		dbCfg.QueryTimeout = cfg.Database.QueryTimeout()
	}

	switch dbCfg.Driver {
	case database.DriverWarehouse:
		return warehouse.New(ctx, dbCfg)
	case database.DriverPostgres:
		return postgres.New(ctx, dbCfg)
	case database.DriverMySQL:
		return mysql.New(ctx, dbCfg)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}
