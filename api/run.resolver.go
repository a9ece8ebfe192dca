package api

import (
	"fmt"
	"net/http"
	"time"
	"trendalgo/internal/app"
	"trendalgo/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type runRequest struct {
	Live           bool             `json:"live"`
	SendEmail      bool             `json:"sendEmail"`
	SkipIngest     bool             `json:"skipIngest"`
	PortfolioValue *decimal.Decimal `json:"portfolioValue"`
}

type runTarget struct {
	Symbol   string  `json:"symbol"`
	Action   string  `json:"action"`
	Quantity string  `json:"quantity"`
	Status   string  `json:"status"`
	OrderID  *string `json:"orderID,omitempty"`
	Error    *string `json:"error,omitempty"`
}

type runResponse struct {
	RunID           uuid.UUID   `json:"runID"`
	Date            string      `json:"date"`
	Live            bool        `json:"live"`
	PortfolioValue  string      `json:"portfolioValue"`
	MarketCondition string      `json:"marketCondition"`
	LatestClose     string      `json:"latestClose"`
	TrailingMean    string      `json:"trailingMean"`
	MacroYoY        float64     `json:"macroYoY"`
	TargetSymbol    string      `json:"targetSymbol"`
	Targets         []runTarget `json:"targets"`
	Error           *string     `json:"error,omitempty"`
}

func newRunResponse(report *domain.RunReport) runResponse {
	out := runResponse{
		RunID:           report.RunID,
		Date:            report.Date.Format(time.DateOnly),
		Live:            report.Live,
		PortfolioValue:  report.PortfolioValue.String(),
		MarketCondition: report.Market.Condition(),
		LatestClose:     report.Market.LatestClose.String(),
		TrailingMean:    report.Market.Mean.StringFixed(4),
		MacroYoY:        report.Macro.YearOverYear,
		TargetSymbol:    report.TargetSymbol,
		Targets:         []runTarget{},
	}
	for _, t := range report.Targets {
		out.Targets = append(out.Targets, runTarget{
			Symbol:   t.Target.Symbol,
			Action:   string(t.Target.Action),
			Quantity: t.Target.Quantity.String(),
			Status:   string(t.Status),
			OrderID:  t.OrderID,
			Error:    t.Error,
		})
	}
	return out
}

func (m ApiHandler) run(c *gin.Context) {
	var requestBody runRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to parse request body: %w", err), c, http.StatusBadRequest)
		return
	}

	report, err := m.TrendAlgoApp.Run(c.Request.Context(), app.RunInput{
		Live:           requestBody.Live,
		SendEmail:      requestBody.SendEmail,
		SkipIngest:     requestBody.SkipIngest,
		PortfolioValue: requestBody.PortfolioValue,
	})
	if report == nil {
		if err == nil {
			err = fmt.Errorf("run produced no report")
		}
		returnErrorJson(err, c)
		return
	}

	out := newRunResponse(report)
	status := 200
	if err != nil {
		msg := err.Error()
		out.Error = &msg
		status = 207
	}

	c.JSON(status, out)
}
