package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"trendalgo/api"
	integration_tests "trendalgo/integration-tests"
	"trendalgo/internal/app"
	"trendalgo/internal/config"
	"trendalgo/internal/db"
	"trendalgo/internal/logger"
	"trendalgo/internal/metrics"
	"trendalgo/internal/repository"
	"trendalgo/internal/service"
	l1_service "trendalgo/internal/service/l1"
	l2_service "trendalgo/internal/service/l2"
	fred_client "trendalgo/pkg/fred"

	_ "github.com/lib/pq"
)

// Dependencies is everything the entrypoints need after wiring
type Dependencies struct {
	Config       *config.Config
	Db           *sql.DB
	Metrics      *metrics.Recorder
	TrendAlgoApp app.TrendAlgoApp
	ApiHandler   *api.ApiHandler
}

func CloseDependencies(deps *Dependencies) {
	if err := deps.Db.Close(); err != nil {
		logger.New().Errorf("failed to close db: %v", err)
	}
}

func newMarketDataRepository(cfg *config.Config) (repository.MarketDataRepository, error) {
	switch cfg.MarketData.Provider {
	case "alpaca":
		if cfg.Alpaca.ApiKey == "" || cfg.Alpaca.ApiSecret == "" {
			return nil, fmt.Errorf("alpaca market data requires an api key and secret")
		}
		return repository.NewAlpacaMarketDataRepository(cfg.Alpaca.ApiKey, cfg.Alpaca.ApiSecret, cfg.Alpaca.DataFeed), nil
	case "yahoo":
		return repository.NewYahooMarketDataRepository(), nil
	case "csv":
		return repository.NewCsvMarketDataRepository(cfg.MarketData.CsvPath), nil
	}
	return nil, fmt.Errorf("unknown market data provider %q", cfg.MarketData.Provider)
}

func newAlpacaRepository(cfg *config.Config) repository.AlpacaRepository {
	if strings.EqualFold(cfg.Env, "test") {
		return integration_tests.NewMockAlpacaRepositoryForTests()
	}
	if cfg.Alpaca.ApiKey == "" || cfg.Alpaca.ApiSecret == "" {
		return nil
	}
	return repository.NewAlpacaRepository(cfg.Alpaca.ApiKey, cfg.Alpaca.ApiSecret, cfg.Alpaca.Endpoint)
}

func InitializeDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	dbConn, err := sql.Open("postgres", cfg.Db.ToConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	instrumentRepository := repository.NewInstrumentRepository(dbConn)
	priceObservationRepository := repository.NewPriceObservationRepository(dbConn)

	marketDataRepository, err := newMarketDataRepository(cfg)
	if err != nil {
		dbConn.Close()
		return nil, err
	}

	macroRepository := repository.NewMacroRepository(fred_client.New(cfg.Fred.BaseUrl, cfg.Fred.ApiKey))

	var tradeService l1_service.TradeService
	if alpacaRepository := newAlpacaRepository(cfg); alpacaRepository != nil {
		tradeService = l1_service.NewTradeService(alpacaRepository)
	}

	var emailService service.EmailService
	if cfg.Email.Enabled {
		emailRepository, err := repository.NewEmailRepository(ctx, cfg.Email.Region, cfg.Email.FromAddress)
		if err != nil {
			dbConn.Close()
			return nil, fmt.Errorf("failed to create email repository: %w", err)
		}
		emailService = service.NewEmailService(emailRepository)
	}

	recorder := metrics.New()

	ingestionService := l1_service.NewIngestionService(
		db.NewTxRunner(dbConn),
		instrumentRepository,
		priceObservationRepository,
		marketDataRepository,
	)
	signalService := l2_service.NewSignalService(priceObservationRepository, macroRepository)

	trendAlgoApp := app.NewTrendAlgoApp(
		cfg.Model,
		cfg.Email.ToAddresses,
		ingestionService,
		tradeService,
		signalService,
		emailService,
		priceObservationRepository,
		recorder,
	)

	return &Dependencies{
		Config:       cfg,
		Db:           dbConn,
		Metrics:      recorder,
		TrendAlgoApp: trendAlgoApp,
		ApiHandler: &api.ApiHandler{
			TrendAlgoApp: trendAlgoApp,
			Metrics:      recorder,
			JwtSecret:    cfg.Api.JwtSecret,
		},
	}, nil
}
