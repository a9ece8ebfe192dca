package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	r := New()

	r.RecordIngest("SPY", 3, 1)
	r.RecordIngest("SPY", 2, 0)
	r.RecordIngestError("SHY")
	r.RecordSignals(true, -1.5)
	r.RecordOrder("SPY", "buy", "submitted")

	require.Equal(t, 5.0, testutil.ToFloat64(r.observationsInserted.WithLabelValues("SPY")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.barsSkipped.WithLabelValues("SPY")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.ingestErrors.WithLabelValues("SHY")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.marketBull))
	require.Equal(t, -1.5, testutil.ToFloat64(r.macroYearOverYear))
	require.Equal(t, 1.0, testutil.ToFloat64(r.ordersTotal.WithLabelValues("SPY", "buy", "submitted")))
}

func TestRecorder_Handler(t *testing.T) {
	r := New()
	r.RecordSignals(false, 2)

	server := httptest.NewServer(r.Handler())
	defer server.Close()

	response, err := http.Get(server.URL)
	require.NoError(t, err)
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "trendalgo_macro_year_over_year 2")
}

func TestRecorder_Push(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path = req.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	r := New()
	r.RecordRun(1.2)

	require.NoError(t, r.Push(context.Background(), server.URL, "trendalgo"))
	require.Equal(t, "/metrics/job/trendalgo", path)
}
