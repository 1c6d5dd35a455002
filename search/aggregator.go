// Package search fans a free-text query out across the entity repositories
// and merges the matches into one typed result list.
package search

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"pumpadmin/models"
)

// ErrStale marks a search invocation that was superseded by a newer one
// before it finished. Its results must be discarded.
var ErrStale = errors.New("search superseded by a newer query")

// The aggregator consumes only the list operation of each repository.
type (
	UserSource interface {
		List(ctx context.Context) ([]models.User, error)
	}
	TeamSource interface {
		List(ctx context.Context) ([]models.Team, error)
	}
	PumpSource interface {
		List(ctx context.Context) ([]models.PetrolPump, error)
	}
	RequestSource interface {
		List(ctx context.Context) ([]models.PumpRequest, error)
	}
)

// Aggregator performs global search across users, teams, petrol pumps and
// onboarding requests.
type Aggregator struct {
	users    UserSource
	teams    TeamSource
	pumps    PumpSource
	requests RequestSource

	generation atomic.Uint64
}

// NewAggregator wires the aggregator to the four repositories.
func NewAggregator(users UserSource, teams TeamSource, pumps PumpSource, requests RequestSource) *Aggregator {
	return &Aggregator{users: users, teams: teams, pumps: pumps, requests: requests}
}

// Search matches the query case-insensitively as a substring against each
// entity type's designated fields and returns the merged results in fixed
// type order: users, teams, petrol pumps, requests.
//
// An empty or whitespace-only query short-circuits to an empty result without
// touching any repository. One entity type failing does not abort the others;
// only when every type fails is the joined error returned. If a newer Search
// begins while this one is in flight, this one returns ErrStale so the
// caller never interleaves stale results over fresher ones.
func (a *Aggregator) Search(ctx context.Context, query string) ([]models.SearchResultItem, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []models.SearchResultItem{}, nil
	}

	gen := a.generation.Add(1)
	results := []models.SearchResultItem{}
	var failures []error

	users, err := a.users.List(ctx)
	if err != nil {
		log.Printf("Warning: user search failed: %v", err)
		failures = append(failures, err)
	}
	for _, u := range users {
		if containsAny(q, u.FirstName, u.LastName, u.Mobile, u.Email) {
			results = append(results, models.SearchResultItem{
				Type:        models.ResultUser,
				Name:        strings.TrimSpace(u.FirstName + " " + u.LastName),
				Description: string(u.UserType),
				Contact:     u.Mobile,
				RefID:       u.UserID,
			})
		}
	}

	teams, err := a.teams.List(ctx)
	if err != nil {
		log.Printf("Warning: team search failed: %v", err)
		failures = append(failures, err)
	}
	for _, t := range teams {
		if containsAny(q, t.Name, t.TeamCode, t.Owner) {
			results = append(results, models.SearchResultItem{
				Type:        models.ResultTeam,
				Name:        t.Name,
				Description: "Team " + t.TeamCode,
				RefID:       t.TeamID,
			})
		}
	}

	pumps, err := a.pumps.List(ctx)
	if err != nil {
		log.Printf("Warning: pump search failed: %v", err)
		failures = append(failures, err)
	}
	for _, p := range pumps {
		if containsAny(q, p.CustomerName, p.DealerName, p.District, p.SapCode, string(p.Company)) {
			results = append(results, models.SearchResultItem{
				Type:        models.ResultPump,
				Name:        p.CustomerName,
				Description: string(p.Company) + " · " + p.District,
				Contact:     p.Contact,
				RefID:       p.PumpID,
			})
		}
	}

	requests, err := a.requests.List(ctx)
	if err != nil {
		log.Printf("Warning: request search failed: %v", err)
		failures = append(failures, err)
	}
	for _, req := range requests {
		if containsAny(q, req.CustomerName, req.DealerName, req.District, req.SapCode, string(req.Company)) {
			results = append(results, models.SearchResultItem{
				Type:        models.ResultRequest,
				Name:        req.CustomerName,
				Description: string(req.Company) + " · " + string(req.Status),
				Contact:     req.Contact,
				RefID:       req.RequestID,
			})
		}
	}

	// A newer invocation started while this one ran; its result is
	// authoritative and this one is discarded.
	if a.generation.Load() != gen {
		return nil, ErrStale
	}

	if len(failures) == 4 {
		return []models.SearchResultItem{}, errors.Join(failures...)
	}
	return results, nil
}

func containsAny(q string, fields ...string) bool {
	for _, field := range fields {
		if field != "" && strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
