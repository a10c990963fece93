// Package main is the entry point for the media server Smart Home skill Lambda.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/snackk/media-power-skill/internal/config"
	"github.com/snackk/media-power-skill/internal/handler"
	"github.com/snackk/media-power-skill/internal/logging"
	"github.com/snackk/media-power-skill/internal/warmup"
	"github.com/snackk/media-power-skill/internal/wol"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type app struct {
	handler *handler.Handler
	warmer  *warmup.Warmer
	logger  *slog.Logger
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.Logging, version)
	logger.Info("cold start", "wake_url", cfg.WakeURL, "status_url", cfg.StatusURL, "timeout", cfg.Timeout.String())
	if !cfg.HasCredentials() {
		logger.Warn("WOL credentials are not set, the remote service will reject requests")
	}

	a := newApp(cfg, logger)
	lambda.Start(a.handleRequest)
}

func newApp(cfg *config.Config, logger *slog.Logger) *app {
	remote := wol.New(wol.Options{
		WakeURL:   cfg.WakeURL,
		StatusURL: cfg.StatusURL,
		Username:  cfg.Username,
		Password:  cfg.Password,
		Timeout:   cfg.Timeout,
	})

	return &app{
		handler: handler.New(remote, logger),
		warmer: &warmup.Warmer{
			NewInvoker:   newLambdaClient,
			FunctionName: os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
			Delay:        warmup.Delay,
		},
		logger: logger,
	}
}

func (a *app) handleRequest(ctx context.Context, event json.RawMessage) (interface{}, error) {
	// Warmup detection must run before directive decoding.
	if ev, ok := warmup.Parse(event); ok {
		resp, err := a.warmer.Handle(ctx, ev)
		if err != nil {
			a.logger.Warn("warmup fan-out failed", "error", err)
		}
		return resp, nil
	}

	return a.handler.Handle(ctx, event), nil
}

func newLambdaClient(ctx context.Context) (warmup.Invoker, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return lambdasdk.NewFromConfig(cfg), nil
}
