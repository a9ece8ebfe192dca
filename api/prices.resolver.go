package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type priceResponse struct {
	Date  string `json:"date"`
	Close string `json:"close"`
}

func (m ApiHandler) getPrices(c *gin.Context) {
	ticker := strings.ToUpper(c.Param("ticker"))

	days := 30
	if v := c.Query("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			returnErrorJsonCode(fmt.Errorf("invalid days %q", v), c, http.StatusBadRequest)
			return
		}
		days = parsed
	}

	prices, err := m.TrendAlgoApp.History(c.Request.Context(), ticker, days)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := []priceResponse{}
	for _, p := range prices {
		out = append(out, priceResponse{
			Date:  p.Date.Format(time.DateOnly),
			Close: p.Close.String(),
		})
	}

	c.JSON(200, out)
}
