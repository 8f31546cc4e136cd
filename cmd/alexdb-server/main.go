// Command alexdb-server runs the alexdb HTTP collaborator: it loads
// configuration from the environment (with CLI flag overrides), opens
// and restores the in-memory store, starts the persistence and GC
// background loops under a supervising errgroup, and serves the HTTP
// API until signaled to stop. Grounded on
// edirooss-zmux-server/cmd/zmux-server/main.go for the Gin wiring and
// *http.Server construction, generalized with golang.org/x/sync/errgroup
// for the supervised background loops the teacher's single-purpose
// binary never needed.
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

	"github.com/alexdb/alexdb/internal/env"
	"github.com/alexdb/alexdb/internal/httpapi"
	"github.com/alexdb/alexdb/internal/store"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

func main() {
	var (
		dataDir        = flag.String("data-dir", "", "directory for the persistence snapshot (overrides ALEXDB_DATA_DIR; persistence is disabled when neither is set)")
		port           = flag.Uint("port", uint(env.Port(8080)), "HTTP listen port (overrides ALEXDB_PORT)")
		disableAPIKeys = flag.Bool("no-auth", !env.SecurityAPIKeysEnabled(true), "disable API-key authentication (overrides ALEXDB_SECURITY_API_KEYS)")
	)
	flag.Parse()

	logConfig := zap.NewDevelopmentConfig()
	logConfig.EncoderConfig.TimeKey = ""
	logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logConfig.DisableStacktrace = true
	logConfig.DisableCaller = true
	log := zap.Must(logConfig.Build())
	defer log.Sync()
	log = log.Named("main")

	cfg := store.DefaultConfig()
	cfg.EnableSecurityAPIKeys = !*disableAPIKeys
	cfg.SleepBetweenSavesMs = env.SavedWritesSleepMs(cfg.SleepBetweenSavesMs)
	cfg.SaveTriggeredByThreshold = env.SavedWritesThreshold(cfg.SaveTriggeredByThreshold)
	if dir := *dataDir; dir != "" {
		cfg.DataDir = &dir
	} else {
		cfg.DataDir = env.DataDir()
	}

	s := store.New(cfg, log)

	if cfg.DataDir != nil {
		if err := s.Restore(); err != nil {
			log.Fatal("restore failed", zap.Error(err))
		}
	}

	if cfg.EnableSecurityAPIKeys {
		id, err := s.APIKeys.Init()
		if err != nil {
			log.Fatal("api key init failed", zap.Error(err))
		}
		if id != nil {
			log.Info("generated initial API key", zap.String("key", id.String()))
		}
	}

	router := httpapi.NewRouter(s, log)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: router,

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,

		MaxHeaderBytes: 1 << 15,

		ErrorLog: zap.NewStdLog(log.Named("http").WithOptions(zap.AddCallerSkip(1))),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	if cfg.DataDir != nil {
		g.Go(func() error { return s.RunPersistenceLoop(gctx) })
	}
	g.Go(func() error { return s.RunGCLoop(gctx) })

	g.Go(func() error {
		log.Info("running HTTP server", zap.Uint("port", *port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", zap.Error(err))
		os.Exit(1)
	}
	log.Info("server stopped")
}
