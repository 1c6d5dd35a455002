package repo

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"pumpadmin/models"
	"pumpadmin/normalize"
)

// Pumps is the petrol pump collection repository.
type Pumps struct {
	store Store

	mu       sync.RWMutex
	snapshot []models.PetrolPump
}

// NewPumps creates a pump repository over the given store.
func NewPumps(store Store) *Pumps {
	return &Pumps{store: store}
}

// List fetches the full pump collection, normalizes every record and replaces
// the held snapshot.
func (r *Pumps) List(ctx context.Context) ([]models.PetrolPump, error) {
	docs, err := r.store.ListAll(ctx, PumpsCollection, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list petrol pumps: %w", err)
	}

	pumps := make([]models.PetrolPump, 0, len(docs))
	for _, doc := range docs {
		pumps = append(pumps, normalize.Pump(doc.ID, doc.Data))
	}

	r.mu.Lock()
	r.snapshot = pumps
	r.mu.Unlock()

	return pumps, nil
}

// Snapshot returns the most recently fetched pump list.
func (r *Pumps) Snapshot() []models.PetrolPump {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

// Create writes a new pump listing.
func (r *Pumps) Create(ctx context.Context, p models.PetrolPump, actor string) (models.PetrolPump, error) {
	now := time.Now()
	p.PumpID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.CreatedBy = actor
	p.UpdatedBy = actor

	if err := r.store.Create(ctx, PumpsCollection, p.PumpID, pumpFields(p)); err != nil {
		return models.PetrolPump{}, err
	}

	r.refresh(ctx)
	return p, nil
}

// Update merges only the submitted fields and stamps the update metadata.
func (r *Pumps) Update(ctx context.Context, id string, fields map[string]interface{}, actor string) error {
	fields["updatedAt"] = time.Now()
	fields["updatedBy"] = actor

	if err := r.store.Update(ctx, PumpsCollection, id, fields); err != nil {
		return err
	}

	r.refresh(ctx)
	return nil
}

func (r *Pumps) refresh(ctx context.Context) {
	if _, err := r.List(ctx); err != nil {
		log.Printf("Warning: failed to refresh pump snapshot: %v", err)
	}
}

func pumpFields(p models.PetrolPump) map[string]interface{} {
	return map[string]interface{}{
		"customerName":   p.CustomerName,
		"dealerName":     p.DealerName,
		"company":        string(p.Company),
		"zone":           p.Zone,
		"salesArea":      p.SalesArea,
		"coClDo":         p.CoClDo,
		"regionalOffice": p.RegionalOffice,
		"district":       p.District,
		"sapCode":        p.SapCode,
		"addressLine1":   p.AddressLine1,
		"addressLine2":   p.AddressLine2,
		"pincode":        p.Pincode,
		"contact":        p.Contact,
		"location": map[string]interface{}{
			"latitude":  p.Location.Latitude,
			"longitude": p.Location.Longitude,
		},
		"verified":  p.Verified,
		"active":    p.Active,
		"createdAt": p.CreatedAt,
		"updatedAt": p.UpdatedAt,
		"createdBy": p.CreatedBy,
		"updatedBy": p.UpdatedBy,
	}
}
