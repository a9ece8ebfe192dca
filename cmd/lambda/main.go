package main

import (
	"context"
	"encoding/json"
	"fmt"
	"trendalgo/cmd"
	"trendalgo/internal/app"
	"trendalgo/internal/config"
	"trendalgo/internal/logger"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
)

type lambdaHandler struct {
	deps      *cmd.Dependencies
	ginLambda *ginadapter.GinLambda
}

// scheduled events carry a detail-type, api gateway requests don't
type eventProbe struct {
	DetailType string `json:"detail-type"`
}

func (m lambdaHandler) Handler(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	log := logger.New()
	ctx = logger.NewContext(ctx, log)

	probe := eventProbe{}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}

	if probe.DetailType != "" {
		event := events.CloudWatchEvent{}
		if err := json.Unmarshal(raw, &event); err != nil {
			return nil, fmt.Errorf("failed to decode scheduled event: %w", err)
		}
		return nil, m.scheduledRun(ctx, event)
	}

	req := events.APIGatewayProxyRequest{}
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("failed to decode api gateway request: %w", err)
	}
	log.Infow("api gateway request", "method", req.HTTPMethod, "path", req.Path)

	return m.ginLambda.ProxyWithContext(ctx, req)
}

func (m lambdaHandler) scheduledRun(ctx context.Context, event events.CloudWatchEvent) error {
	log := logger.FromContext(ctx)
	log.Infow("scheduled run", "eventId", event.ID, "time", event.Time)

	cfg := m.deps.Config
	report, err := m.deps.TrendAlgoApp.Run(ctx, app.RunInput{
		Live:      cfg.LiveTrade,
		SendEmail: cfg.Email.Enabled,
	})
	if report != nil {
		log.Infow("run finished", "runId", report.RunID, "target", report.TargetSymbol, "targets", len(report.Targets))
	}

	if cfg.Metrics.PushgatewayUrl != "" {
		if pushErr := m.deps.Metrics.Push(ctx, cfg.Metrics.PushgatewayUrl, cfg.Metrics.Job); pushErr != nil {
			log.Warnf("failed to push metrics: %v", pushErr)
		}
	}

	return err
}

func main() {
	config.LoadDotEnv()
	log := logger.Init()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}
	deps, err := cmd.InitializeDependencies(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.CloseDependencies(deps)

	handler := lambdaHandler{
		deps:      deps,
		ginLambda: ginadapter.New(deps.ApiHandler.InitializeRouterEngine()),
	}
	lambda.Start(handler.Handler)
}
