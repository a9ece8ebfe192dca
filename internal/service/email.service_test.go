package service

import (
	"context"
	"fmt"
	"testing"
	"time"
	"trendalgo/internal/domain"
	mock_repository "trendalgo/internal/repository/mocks"
	"trendalgo/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func sampleReport(live bool) domain.RunReport {
	return domain.RunReport{
		RunID:          uuid.New(),
		Date:           time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC),
		Live:           live,
		PortfolioValue: decimal.RequireFromString("10000.5"),
		Market: domain.MarketSignal{
			Symbol: "SPY",
			IsBull: false,
		},
		Macro: domain.MacroSignal{
			IndicatorID:  "RRSFS",
			YearOverYear: -1.25,
		},
		TargetSymbol: "SHY",
		Targets: []domain.ExecutedTarget{
			{
				Target: domain.AllocationTarget{Symbol: "SPY", Action: domain.ActionSell, Quantity: decimal.NewFromInt(29)},
				Status: domain.OrderStatusSubmitted,
			},
			{
				Target: domain.AllocationTarget{Symbol: "SHY", Action: domain.ActionBuy, Quantity: decimal.NewFromInt(121)},
				Status: domain.OrderStatusFailed,
				Error:  util.StringPointer("rejected"),
			},
		},
	}
}

func Test_emailServiceHandler_GenerateReportEmail(t *testing.T) {
	handler := emailServiceHandler{}

	subject, body, plain, err := handler.GenerateReportEmail(sampleReport(true))
	require.NoError(t, err)

	require.Equal(t, "Monthly Trend Algo Report - Live", subject)
	require.Contains(t, body, "Portfolio Value: 10000.50<br>")
	require.Contains(t, body, "Market Condition: Bear<br>")
	require.Contains(t, body, "March YoY Retail and Food Services Sales Change: -1.25<br>")
	require.Contains(t, body, `href="https://finviz.com/quote.ashx?t=SPY"`)
	require.Contains(t, body, ">SHY</a>: 121 (buy) [failed]<br>")

	require.Equal(t, "Portfolio Value: 10000.50\n"+
		"Market Condition: Bear\n"+
		"March YoY Retail and Food Services Sales Change: -1.25\n"+
		"SPY: 29 (sell)\n"+
		"SHY: 121 (buy) [failed]\n", plain)

	subject, _, _, err = handler.GenerateReportEmail(sampleReport(false))
	require.NoError(t, err)
	require.Equal(t, "Monthly Trend Algo Report - Test", subject)
}

func Test_emailServiceHandler_SendReportEmail(t *testing.T) {
	t.Run("one email per recipient", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		emailRepository := mock_repository.NewMockEmailRepository(ctrl)
		handler := emailServiceHandler{EmailRepository: emailRepository}
		ctx := context.Background()

		emailRepository.EXPECT().
			SendEmail(ctx, "a@example.com", "Monthly Trend Algo Report - Test", gomock.Any()).
			Return(fmt.Errorf("throttled"))
		emailRepository.EXPECT().
			SendEmail(ctx, "b@example.com", "Monthly Trend Algo Report - Test", gomock.Any()).
			Return(nil)

		err := handler.SendReportEmail(ctx, sampleReport(false), []string{"a@example.com", " b@example.com ", ""})
		require.ErrorContains(t, err, "a@example.com")
	})
}
