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

// Requests is the pump onboarding request repository. Requests follow a
// one-way workflow: pending -> approved | rejected. Terminal states never
// transition again.
type Requests struct {
	store Store

	mu       sync.RWMutex
	snapshot []models.PumpRequest
}

// NewRequests creates a request repository over the given store.
func NewRequests(store Store) *Requests {
	return &Requests{store: store}
}

// List fetches the full request collection, normalizes every record and
// replaces the held snapshot.
func (r *Requests) List(ctx context.Context) ([]models.PumpRequest, error) {
	docs, err := r.store.ListAll(ctx, RequestsCollection, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list pump requests: %w", err)
	}

	requests := make([]models.PumpRequest, 0, len(docs))
	for _, doc := range docs {
		requests = append(requests, normalize.Request(doc.ID, doc.Data))
	}

	r.mu.Lock()
	r.snapshot = requests
	r.mu.Unlock()

	return requests, nil
}

// Snapshot returns the most recently fetched request list.
func (r *Requests) Snapshot() []models.PumpRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

// FindByID fetches and normalizes a single request.
func (r *Requests) FindByID(ctx context.Context, id string) (models.PumpRequest, error) {
	doc, err := r.store.Get(ctx, RequestsCollection, id)
	if err != nil {
		return models.PumpRequest{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return normalize.Request(doc.ID, doc.Data), nil
}

// Create writes a new onboarding request in the pending state.
func (r *Requests) Create(ctx context.Context, req models.PumpRequest, actor string) (models.PumpRequest, error) {
	now := time.Now()
	req.RequestID = uuid.NewString()
	req.Status = models.RequestPending
	req.ReviewedBy = ""
	req.ReviewedAt = time.Time{}
	req.ReviewNotes = ""
	req.CreatedAt = now
	req.UpdatedAt = now
	req.CreatedBy = actor
	req.UpdatedBy = actor

	data := requestFields(req)
	if err := r.store.Create(ctx, RequestsCollection, req.RequestID, data); err != nil {
		return models.PumpRequest{}, err
	}

	r.refresh(ctx)
	return req, nil
}

// Approve moves a pending request to approved, stamping the approver and the
// review time. A request already approved or rejected cannot be approved.
func (r *Requests) Approve(ctx context.Context, id, actor, notes string) (models.PumpRequest, error) {
	return r.review(ctx, id, actor, notes, models.RequestApproved)
}

// Reject moves a pending request to rejected, stamping the reviewer and the
// review time. A request already approved or rejected cannot be rejected.
func (r *Requests) Reject(ctx context.Context, id, actor, notes string) (models.PumpRequest, error) {
	return r.review(ctx, id, actor, notes, models.RequestRejected)
}

func (r *Requests) review(ctx context.Context, id, actor, notes string, to models.RequestStatus) (models.PumpRequest, error) {
	req, err := r.FindByID(ctx, id)
	if err != nil {
		return models.PumpRequest{}, err
	}
	if req.Status != models.RequestPending {
		return models.PumpRequest{}, fmt.Errorf("%w: already %s", ErrInvalidTransition, req.Status)
	}

	now := time.Now()
	fields := map[string]interface{}{
		"status":      string(to),
		"reviewedBy":  actor,
		"reviewedAt":  now,
		"reviewNotes": notes,
		"updatedAt":   now,
		"updatedBy":   actor,
	}
	if err := r.store.Update(ctx, RequestsCollection, id, fields); err != nil {
		return models.PumpRequest{}, err
	}

	req.Status = to
	req.ReviewedBy = actor
	req.ReviewedAt = now
	req.ReviewNotes = notes
	req.UpdatedAt = now
	req.UpdatedBy = actor

	r.refresh(ctx)
	return req, nil
}

func (r *Requests) refresh(ctx context.Context) {
	if _, err := r.List(ctx); err != nil {
		log.Printf("Warning: failed to refresh request snapshot: %v", err)
	}
}

func requestFields(req models.PumpRequest) map[string]interface{} {
	return map[string]interface{}{
		"customerName":   req.CustomerName,
		"dealerName":     req.DealerName,
		"company":        string(req.Company),
		"zone":           req.Zone,
		"salesArea":      req.SalesArea,
		"coClDo":         req.CoClDo,
		"regionalOffice": req.RegionalOffice,
		"district":       req.District,
		"sapCode":        req.SapCode,
		"addressLine1":   req.AddressLine1,
		"addressLine2":   req.AddressLine2,
		"pincode":        req.Pincode,
		"contact":        req.Contact,
		"location": map[string]interface{}{
			"latitude":  req.Location.Latitude,
			"longitude": req.Location.Longitude,
		},
		"status":      string(req.Status),
		"reviewNotes": req.ReviewNotes,
		"createdAt":   req.CreatedAt,
		"updatedAt":   req.UpdatedAt,
		"createdBy":   req.CreatedBy,
		"updatedBy":   req.UpdatedBy,
	}
}

// PumpFromRequest builds the pump listing published when a request is
// approved.
func PumpFromRequest(req models.PumpRequest) models.PetrolPump {
	return models.PetrolPump{
		CustomerName:   req.CustomerName,
		DealerName:     req.DealerName,
		Company:        req.Company,
		Zone:           req.Zone,
		SalesArea:      req.SalesArea,
		CoClDo:         req.CoClDo,
		RegionalOffice: req.RegionalOffice,
		District:       req.District,
		SapCode:        req.SapCode,
		AddressLine1:   req.AddressLine1,
		AddressLine2:   req.AddressLine2,
		Pincode:        req.Pincode,
		Contact:        req.Contact,
		Location:       req.Location,
		Verified:       true,
		Active:         true,
	}
}
