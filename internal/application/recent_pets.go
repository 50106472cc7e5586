package application

import (
	"context"

	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/domain/mascota"
)

// RecentLimit is how many records the recent panel shows.
const RecentLimit = 3

// MsgNoRecent is shown when the shelter has no records yet.
const MsgNoRecent = "No hay mascotas registradas aún"

// PetSummary is the compact form of a record shown in the recent panel.
type PetSummary struct {
	ID      int64  `json:"id"`
	Icon    string `json:"icon"`
	Name    string `json:"nombre"`
	Species string `json:"especie"`
}

// RecentPets keeps a recent records panel in step with the API.
type RecentPets struct {
	gateway mascota.Gateway
	panel   RecentPanel
	logger  *zap.Logger
}

// NewRecentPets creates a new RecentPets.
func NewRecentPets(gateway mascota.Gateway, panel RecentPanel, logger *zap.Logger) *RecentPets {
	return &RecentPets{gateway: gateway, panel: panel, logger: logger}
}

// Refresh fetches the records and renders the first RecentLimit of them in
// server order. Safe to call any number of times.
func (r *RecentPets) Refresh(ctx context.Context) error {
	items, err := r.gateway.List(ctx)
	if err != nil {
		r.logger.Warn("failed to load recent mascotas", zap.Error(err))
		r.panel.ShowError(mascota.MsgRecentFetchFailed)
		return err
	}

	if len(items) == 0 {
		r.panel.ShowEmpty(MsgNoRecent)
		return nil
	}
	if len(items) > RecentLimit {
		items = items[:RecentLimit]
	}

	summaries := make([]PetSummary, len(items))
	for i, m := range items {
		summaries[i] = toPetSummary(m)
	}
	r.panel.ShowRecent(summaries)
	return nil
}

func toPetSummary(m mascota.Mascota) PetSummary {
	return PetSummary{
		ID:      m.ID,
		Icon:    m.Species.Icon(),
		Name:    m.Name,
		Species: string(m.Species),
	}
}
