package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"NavBot/internal/collector"
	"NavBot/internal/config"
	"NavBot/internal/logger"
	"NavBot/internal/metrics"
	"NavBot/internal/notifier"
	"NavBot/internal/pipeline"
	"NavBot/internal/server"
)

func main() {
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	logger.Init(cfg)
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("config validation: %v", err)
	}
	if missing := cfg.MissingCredentials(); len(missing) > 0 {
		logrus.Warnf("%s publisher is missing %s; posts will fail until they are set",
			cfg.Publisher.Kind, strings.Join(missing, ", "))
	}
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	fetcher := collector.NewMufgFetcher(cfg.Fund.APIURL, cfg.Fund.Code, cfg.Proxy, cfg.Fund.Timeout)
	publisher := newPublisher(cfg)
	logrus.WithFields(logrus.Fields{
		"source":    fetcher.Name(),
		"fund":      fetcher.FundCode,
		"publisher": publisher.Name(),
	}).Info("NavBot starting...")

	var opts []server.Option
	var m *metrics.Metrics
	if cfg.MetricsEnabled() {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m = metrics.New(reg)
		opts = append(opts, server.WithMetrics(reg))
	}

	srv := server.New(pipeline.New(fetcher, publisher, m), opts...)
	httpServer := &http.Server{
		Addr:    cfg.Addr(),
		Handler: srv,
	}

	go func() {
		logrus.Infof("Server running on port %d", cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("listen: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logrus.Info("shutdown signal received, stopping...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logrus.Errorf("forced shutdown: %v", err)
	}
	logrus.Info("NavBot stopped")
}

func newPublisher(cfg *config.Config) notifier.Publisher {
	switch cfg.Publisher.Kind {
	case config.PublisherTelegram:
		return notifier.NewTelegramPublisher(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, cfg.Publisher.Timeout)
	case config.PublisherLog:
		return notifier.NewLogPublisher(nil)
	default:
		return notifier.NewXPublisher(notifier.XCredentials{
			AppKey:       cfg.X.AppKey,
			AppSecret:    cfg.X.AppSecret,
			AccessToken:  cfg.X.AccessToken,
			AccessSecret: cfg.X.AccessSecret,
		}, cfg.Proxy, cfg.Publisher.Timeout)
	}
}
