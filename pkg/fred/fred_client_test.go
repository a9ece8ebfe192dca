package fred_client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestClient_GetObservations(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/fred/series/observations", r.URL.Path)
			require.Equal(t, "RRSFS", r.URL.Query().Get("series_id"))
			require.Equal(t, "key", r.URL.Query().Get("api_key"))
			require.Equal(t, "json", r.URL.Query().Get("file_type"))
			require.Equal(t, "2023-01-01", r.URL.Query().Get("observation_start"))
			require.Equal(t, "2024-02-01", r.URL.Query().Get("observation_end"))
			w.Write([]byte(`{"observations":[
				{"date":"2023-01-01","value":"100"},
				{"date":"2023-02-01","value":"."},
				{"date":"2024-01-01","value":"110.5"}
			]}`))
		}))
		defer server.Close()

		client := New(server.URL, "key")
		result, err := client.GetObservations(
			context.Background(),
			"RRSFS",
			time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)

		expected := []Observation{
			{Date: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), Value: 100},
			{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Value: 110.5},
		}
		require.Equal(t, "", cmp.Diff(expected, result))
	})

	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error_message":"bad api key"}`))
		}))
		defer server.Close()

		_, err := New(server.URL, "bad").GetObservations(context.Background(), "RRSFS", time.Now(), time.Now())
		require.ErrorContains(t, err, "status code 400")
	})

	t.Run("missing series id", func(t *testing.T) {
		_, err := New("", "key").GetObservations(context.Background(), "", time.Now(), time.Now())
		require.Error(t, err)
	})
}
