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

	"github.com/pkg/browser"
	"github.com/sirupsen/logrus"

	"github.com/nhle/backlog-dashboard/internal/credential"
	"github.com/nhle/backlog-dashboard/internal/model"
	"github.com/nhle/backlog-dashboard/internal/server"
	"github.com/nhle/backlog-dashboard/internal/source/backlog"
)

func main() {
	configFlag := flag.String("config", "", "Optional YAML config file overriding BACKLOG_* env vars")
	flag.Parse()

	cfg, err := model.LoadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "backlog-dash: %v\n", err)
		os.Exit(1)
	}

	// The environment wins; the OS keyring is the fallback for the
	// credential only.
	if cfg.APIKey == "" {
		if key, err := credential.Get(credential.APIKeyName); err == nil {
			cfg.APIKey = key
		}
	}

	log := setupLogger(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	client := backlog.NewClient(cfg.SpaceURL, cfg.APIKey)
	service, err := backlog.NewService(client, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("creating task service")
	}

	srv := server.New(service, log, cfg.StaticDir)

	addr := fmt.Sprintf(":%d", cfg.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv.Engine(),
	}

	go func() {
		log.WithField("addr", addr).Info("starting dashboard server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server stopped unexpectedly")
		}
	}()

	if cfg.OpenBrowser {
		dashURL := fmt.Sprintf("http://localhost:%d", cfg.Port)
		if err := browser.OpenURL(dashURL); err != nil {
			log.WithError(err).Warn("could not open browser")
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.WithError(err).Error("failed to shut down server")
	}

	log.Info("server stopped")
}

// setupLogger builds the process logger at the configured level.
func setupLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	return log
}
