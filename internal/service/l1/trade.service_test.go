package l1_service

import (
	"context"
	"fmt"
	"testing"
	"trendalgo/internal/domain"
	"trendalgo/internal/repository"
	mock_repository "trendalgo/internal/repository/mocks"
	"trendalgo/internal/util"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_tradeServiceHandler_Execute(t *testing.T) {
	ctx := context.Background()
	targets := []domain.AllocationTarget{
		{Symbol: "SHY", Action: domain.ActionSell, Quantity: decimal.RequireFromString("12.5")},
		{Symbol: "SPY", Action: domain.ActionBuy, Quantity: decimal.NewFromInt(30)},
	}

	t.Run("simulated sends nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		alpacaRepository := mock_repository.NewMockAlpacaRepository(ctrl)
		handler := tradeServiceHandler{AlpacaRepository: alpacaRepository}

		result, err := handler.Execute(ctx, targets, false)
		require.NoError(t, err)

		expected := []domain.ExecutedTarget{
			{Target: targets[0], Status: domain.OrderStatusSimulated},
			{Target: targets[1], Status: domain.OrderStatusSimulated},
		}
		require.Equal(t, "", cmp.Diff(expected, result))
	})

	t.Run("happy path submits in order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		alpacaRepository := mock_repository.NewMockAlpacaRepository(ctrl)
		handler := tradeServiceHandler{AlpacaRepository: alpacaRepository}

		gomock.InOrder(
			alpacaRepository.EXPECT().IsMarketOpen().Return(true, nil),
			alpacaRepository.EXPECT().
				PlaceOrder(gomock.Any()).
				DoAndReturn(func(req repository.AlpacaPlaceOrderRequest) (*alpaca.Order, error) {
					require.Equal(t, "SHY", req.Symbol)
					require.Equal(t, alpaca.Sell, req.Side)
					require.True(t, req.Quantity.Equal(decimal.RequireFromString("12.5")))
					return &alpaca.Order{ID: "order-1"}, nil
				}),
			alpacaRepository.EXPECT().
				PlaceOrder(gomock.Any()).
				DoAndReturn(func(req repository.AlpacaPlaceOrderRequest) (*alpaca.Order, error) {
					require.Equal(t, "SPY", req.Symbol)
					require.Equal(t, alpaca.Buy, req.Side)
					return &alpaca.Order{ID: "order-2"}, nil
				}),
		)

		result, err := handler.Execute(ctx, targets, true)
		require.NoError(t, err)

		expected := []domain.ExecutedTarget{
			{Target: targets[0], Status: domain.OrderStatusSubmitted, OrderID: util.StringPointer("order-1")},
			{Target: targets[1], Status: domain.OrderStatusSubmitted, OrderID: util.StringPointer("order-2")},
		}
		require.Equal(t, "", cmp.Diff(expected, result))
	})

	t.Run("stops after first failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		alpacaRepository := mock_repository.NewMockAlpacaRepository(ctrl)
		handler := tradeServiceHandler{AlpacaRepository: alpacaRepository}

		alpacaRepository.EXPECT().IsMarketOpen().Return(true, nil)
		alpacaRepository.EXPECT().
			PlaceOrder(gomock.Any()).
			Return(nil, fmt.Errorf("insufficient qty")).
			Times(1)

		result, err := handler.Execute(ctx, targets, true)
		require.ErrorContains(t, err, "insufficient qty")

		expected := []domain.ExecutedTarget{
			{Target: targets[0], Status: domain.OrderStatusFailed, Error: util.StringPointer("insufficient qty")},
			{Target: targets[1], Status: domain.OrderStatusNotSubmitted},
		}
		require.Equal(t, "", cmp.Diff(expected, result))
	})

	t.Run("closed market still submits", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		alpacaRepository := mock_repository.NewMockAlpacaRepository(ctrl)
		handler := tradeServiceHandler{AlpacaRepository: alpacaRepository}

		alpacaRepository.EXPECT().IsMarketOpen().Return(false, nil)
		alpacaRepository.EXPECT().PlaceOrder(gomock.Any()).Return(&alpaca.Order{ID: "queued"}, nil).Times(2)

		result, err := handler.Execute(ctx, targets, true)
		require.NoError(t, err)
		for _, r := range result {
			require.Equal(t, domain.OrderStatusSubmitted, r.Status)
		}
	})

	t.Run("clock failure submits nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		alpacaRepository := mock_repository.NewMockAlpacaRepository(ctrl)
		handler := tradeServiceHandler{AlpacaRepository: alpacaRepository}

		alpacaRepository.EXPECT().IsMarketOpen().Return(false, fmt.Errorf("401 unauthorized"))

		result, err := handler.Execute(ctx, targets, true)
		require.ErrorContains(t, err, "failed to read market clock")

		expected := []domain.ExecutedTarget{
			{Target: targets[0], Status: domain.OrderStatusNotSubmitted},
			{Target: targets[1], Status: domain.OrderStatusNotSubmitted},
		}
		require.Equal(t, "", cmp.Diff(expected, result))
	})
}

func Test_tradeServiceHandler_Execute_zeroQuantity(t *testing.T) {
	ctrl := gomock.NewController(t)
	alpacaRepository := mock_repository.NewMockAlpacaRepository(ctrl)
	handler := tradeServiceHandler{AlpacaRepository: alpacaRepository}

	alpacaRepository.EXPECT().IsMarketOpen().Return(true, nil)

	target := domain.AllocationTarget{Symbol: "SPY", Action: domain.ActionBuy, Quantity: decimal.Zero}
	result, err := handler.Execute(context.Background(), []domain.AllocationTarget{target}, true)
	require.NoError(t, err)
	require.Equal(t, "", cmp.Diff([]domain.ExecutedTarget{{Target: target, Status: domain.OrderStatusNotSubmitted}}, result))
}

func Test_tradeServiceHandler_GetPositions(t *testing.T) {
	ctrl := gomock.NewController(t)
	alpacaRepository := mock_repository.NewMockAlpacaRepository(ctrl)
	handler := tradeServiceHandler{AlpacaRepository: alpacaRepository}

	alpacaRepository.EXPECT().GetPositions().Return([]alpaca.Position{
		{Symbol: "SHY", Qty: decimal.NewFromInt(5)},
	}, nil)
	alpacaRepository.EXPECT().GetAccount().Return(&alpaca.Account{Equity: decimal.NewFromInt(10000)}, nil)

	positions, err := handler.GetPositions(context.Background())
	require.NoError(t, err)
	require.Equal(t, "", cmp.Diff([]domain.Position{{Symbol: "SHY", Quantity: decimal.NewFromInt(5)}}, positions))

	account, err := handler.GetAccount(context.Background())
	require.NoError(t, err)
	require.True(t, account.Equity.Equal(decimal.NewFromInt(10000)))
}
