package repository

import (
	"context"
	"fmt"
	"time"
	"trendalgo/internal/domain"
	fred_client "trendalgo/pkg/fred"
)

// MacroRepository reads economic indicator series
type MacroRepository interface {
	GetSeries(ctx context.Context, indicatorID string, start, end time.Time) ([]domain.MacroObservation, error)
}

type fredMacroRepositoryHandler struct {
	Client *fred_client.Client
}

func NewMacroRepository(client *fred_client.Client) MacroRepository {
	return fredMacroRepositoryHandler{Client: client}
}

func (h fredMacroRepositoryHandler) GetSeries(ctx context.Context, indicatorID string, start, end time.Time) ([]domain.MacroObservation, error) {
	observations, err := h.Client.GetObservations(ctx, indicatorID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s series: %w", indicatorID, err)
	}

	out := []domain.MacroObservation{}
	for _, o := range observations {
		out = append(out, domain.MacroObservation{
			Date:  o.Date,
			Value: o.Value,
		})
	}

	return out, nil
}
