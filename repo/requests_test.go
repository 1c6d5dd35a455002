package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pumpadmin/models"
)

func seedPendingRequest(store *fakeStore, id string) {
	store.seed(RequestsCollection, id, map[string]interface{}{
		"customerName": "Maa Sharda Filling Station",
		"company":      "BPCL",
		"district":     "Sehore",
		"sapCode":      "60917433",
		"pincode":      "466116",
		"status":       "pending",
	})
}

func TestRequests_Approve(t *testing.T) {
	store := newFakeStore()
	seedPendingRequest(store, "r1")
	requests := NewRequests(store)

	approved, err := requests.Approve(context.Background(), "r1", "admin-1", "documents verified")
	require.NoError(t, err)

	assert.Equal(t, models.RequestApproved, approved.Status)
	assert.Equal(t, "admin-1", approved.ReviewedBy)
	assert.False(t, approved.ReviewedAt.IsZero(), "approval must stamp the review time")
	assert.Equal(t, "documents verified", approved.ReviewNotes)

	doc, err := store.Get(context.Background(), RequestsCollection, "r1")
	require.NoError(t, err)
	assert.Equal(t, "approved", doc.Data["status"])
	assert.Equal(t, "admin-1", doc.Data["reviewedBy"])
}

func TestRequests_Reject(t *testing.T) {
	store := newFakeStore()
	seedPendingRequest(store, "r1")
	requests := NewRequests(store)

	rejected, err := requests.Reject(context.Background(), "r1", "admin-1", "SAP code mismatch")
	require.NoError(t, err)
	assert.Equal(t, models.RequestRejected, rejected.Status)
	assert.Equal(t, "SAP code mismatch", rejected.ReviewNotes)
}

// A terminal request never transitions again: rejected can not become
// approved, and approved can not be re-reviewed.
func TestRequests_TerminalStatesAreFinal(t *testing.T) {
	store := newFakeStore()
	seedPendingRequest(store, "r1")
	requests := NewRequests(store)

	_, err := requests.Reject(context.Background(), "r1", "admin-1", "")
	require.NoError(t, err)

	_, err = requests.Approve(context.Background(), "r1", "admin-2", "changed my mind")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = requests.Reject(context.Background(), "r1", "admin-2", "again")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	doc, err := store.Get(context.Background(), RequestsCollection, "r1")
	require.NoError(t, err)
	assert.Equal(t, "rejected", doc.Data["status"], "the stored status must stay rejected")
	assert.Equal(t, "admin-1", doc.Data["reviewedBy"])
}

func TestRequests_ApproveMissing(t *testing.T) {
	store := newFakeStore()
	requests := NewRequests(store)

	_, err := requests.Approve(context.Background(), "nope", "admin-1", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRequests_Create(t *testing.T) {
	store := newFakeStore()
	requests := NewRequests(store)

	created, err := requests.Create(context.Background(), models.PumpRequest{
		CustomerName: "Sagar Highway Services",
		Company:      models.CompanyIOCL,
		SapCode:      "52218401",
		Pincode:      "603002",
		// Clients cannot smuggle a pre-approved request in.
		Status:     models.RequestApproved,
		ReviewedBy: "self",
	}, "u1")
	require.NoError(t, err)

	assert.Equal(t, models.RequestPending, created.Status)
	assert.Empty(t, created.ReviewedBy)
	assert.Equal(t, "u1", created.CreatedBy)
}

func TestPumpFromRequest(t *testing.T) {
	req := models.PumpRequest{
		CustomerName: "Maa Sharda Filling Station",
		DealerName:   "S Verma",
		Company:      models.CompanyBPCL,
		District:     "Sehore",
		SapCode:      "60917433",
		Pincode:      "466116",
		Location:     models.GeoPoint{Latitude: 23.0175, Longitude: 76.7221},
	}

	pump := PumpFromRequest(req)
	assert.Equal(t, req.CustomerName, pump.CustomerName)
	assert.Equal(t, req.SapCode, pump.SapCode)
	assert.Equal(t, req.Location, pump.Location)
	assert.True(t, pump.Verified, "an approved request publishes a verified pump")
	assert.True(t, pump.Active)
}
