package api

import (
	"time"

	"github.com/gin-gonic/gin"
)

type ingestResult struct {
	Ticker        string  `json:"ticker"`
	Start         string  `json:"start,omitempty"`
	End           string  `json:"end,omitempty"`
	Fetched       int     `json:"fetched"`
	Inserted      int64   `json:"inserted"`
	Skipped       int     `json:"skipped"`
	ProviderError *string `json:"providerError,omitempty"`
	Error         *string `json:"error,omitempty"`
}

type ingestResponse struct {
	Results []ingestResult `json:"results"`
	Error   *string        `json:"error,omitempty"`
}

func (m ApiHandler) ingest(c *gin.Context) {
	results, err := m.TrendAlgoApp.Ingest(c.Request.Context())

	out := ingestResponse{Results: []ingestResult{}}
	for _, r := range results {
		res := ingestResult{
			Ticker:        r.Ticker,
			Fetched:       r.Fetched,
			Inserted:      r.Inserted,
			Skipped:       r.Skipped,
			ProviderError: r.ProviderError,
			Error:         r.Error,
		}
		if !r.Start.IsZero() {
			res.Start = r.Start.Format(time.DateOnly)
			res.End = r.End.Format(time.DateOnly)
		}
		out.Results = append(out.Results, res)
	}

	status := 200
	if err != nil {
		msg := err.Error()
		out.Error = &msg
		status = 207
	}

	c.JSON(status, out)
}
