package repository

import (
	"os"
	"testing"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestAlpacaPlaceOrderRequest_isValid(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		err := AlpacaPlaceOrderRequest{
			ClientOrderID: uuid.New(),
			Quantity:      decimal.NewFromInt(30),
			Symbol:        "SPY",
			Side:          alpaca.Buy,
		}.isValid()
		require.NoError(t, err)
	})

	t.Run("zero quantity", func(t *testing.T) {
		err := AlpacaPlaceOrderRequest{
			Quantity: decimal.Zero,
			Symbol:   "SPY",
			Side:     alpaca.Sell,
		}.isValid()
		require.Error(t, err)
	})

	t.Run("invalid side", func(t *testing.T) {
		err := AlpacaPlaceOrderRequest{
			Quantity: decimal.NewFromInt(1),
			Symbol:   "SHY",
			Side:     alpaca.Side("day"),
		}.isValid()
		require.Error(t, err)
	})
}

func Test_alpacaRepositoryHandler_GetAccount(t *testing.T) {
	apiKey, apiSecret := os.Getenv("ALPACA_KEY_ID"), os.Getenv("ALPACA_SECRET_KEY")
	if apiKey == "" || apiSecret == "" {
		t.Skip("alpaca paper credentials not set")
	}

	handler := NewAlpacaRepository(apiKey, apiSecret, "https://paper-api.alpaca.markets")
	account, err := handler.GetAccount()
	require.NoError(t, err)
	require.True(t, account.Equity.GreaterThanOrEqual(decimal.Zero))

	_, err = handler.GetPositions()
	require.NoError(t, err)
}
