package repo

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"pumpadmin/models"
	"pumpadmin/normalize"
)

// Teams is the team collection repository.
type Teams struct {
	store Store

	mu       sync.RWMutex
	snapshot []models.Team
}

// NewTeams creates a team repository over the given store.
func NewTeams(store Store) *Teams {
	return &Teams{store: store}
}

// List fetches the full team collection, normalizes every record and replaces
// the held snapshot.
func (r *Teams) List(ctx context.Context) ([]models.Team, error) {
	docs, err := r.store.ListAll(ctx, TeamsCollection, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	teams := make([]models.Team, 0, len(docs))
	for _, doc := range docs {
		teams = append(teams, normalize.Team(doc.ID, doc.Data))
	}

	r.mu.Lock()
	r.snapshot = teams
	r.mu.Unlock()

	return teams, nil
}

// Snapshot returns the most recently fetched team list.
func (r *Teams) Snapshot() []models.Team {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

// Create writes a new team. A missing team code is generated from the new
// document ID.
func (r *Teams) Create(ctx context.Context, t models.Team, actor string) (models.Team, error) {
	now := time.Now()
	t.TeamID = uuid.NewString()
	if t.TeamCode == "" {
		t.TeamCode = strings.ToUpper(t.TeamID[:6])
	}
	t.CreatedAt = now
	t.UpdatedAt = now
	t.CreatedBy = actor
	t.UpdatedBy = actor

	data := map[string]interface{}{
		"name":            t.Name,
		"teamCode":        t.TeamCode,
		"owner":           t.Owner,
		"activeMembers":   t.ActiveMembers,
		"memberCount":     t.MemberCount,
		"pendingRequests": t.PendingRequests,
		"stats": map[string]interface{}{
			"uploads":    t.Stats.Uploads,
			"distanceKm": t.Stats.DistanceKm,
			"visits":     t.Stats.Visits,
			"fuelLitres": t.Stats.FuelLitres,
		},
		"createdAt": t.CreatedAt,
		"updatedAt": t.UpdatedAt,
		"createdBy": t.CreatedBy,
		"updatedBy": t.UpdatedBy,
	}

	if err := r.store.Create(ctx, TeamsCollection, t.TeamID, data); err != nil {
		return models.Team{}, err
	}

	r.refresh(ctx)
	return t, nil
}

// Update merges only the submitted fields and stamps the update metadata.
func (r *Teams) Update(ctx context.Context, id string, fields map[string]interface{}, actor string) error {
	fields["updatedAt"] = time.Now()
	fields["updatedBy"] = actor

	if err := r.store.Update(ctx, TeamsCollection, id, fields); err != nil {
		return err
	}

	r.refresh(ctx)
	return nil
}

func (r *Teams) refresh(ctx context.Context) {
	if _, err := r.List(ctx); err != nil {
		log.Printf("Warning: failed to refresh team snapshot: %v", err)
	}
}
