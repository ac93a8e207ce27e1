package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/Prahallad321/invoice-qc-service/internal/config"
	httpadapter "github.com/Prahallad321/invoice-qc-service/internal/interfaces/http"
	"github.com/Prahallad321/invoice-qc-service/internal/invoice"
	"github.com/Prahallad321/invoice-qc-service/internal/report"
	"github.com/Prahallad321/invoice-qc-service/pkg/utils"
)

// sugaredLogger adapts zap's sugared logger to the HTTP layer's Logger
// interface.
type sugaredLogger struct {
	s *zap.SugaredLogger
}

func (l *sugaredLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Infow(msg, keysAndValues...)
}

func (l *sugaredLogger) Error(msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, keysAndValues...)
}

func main() {
	gotenv.Load()

	configPath := os.Getenv("INVOICEQC_CONFIG")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Invoice QC Service",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	extractor := invoice.NewExtractor(logger)
	renderer := report.NewPDFRenderer()

	server := httpadapter.NewServer(
		httpadapter.ServerConfig{
			Host:         cfg.Server.Host,
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		extractor,
		renderer,
		cfg.Reports.JSONPath,
		&sugaredLogger{logger.Sugar()},
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}
}
