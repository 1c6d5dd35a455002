package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pumpadmin/db"
	"pumpadmin/middleware"
	"pumpadmin/models"
	"pumpadmin/repo"
)

// countingStore is a minimal in-memory Store for handler tests. It counts
// writes so tests can assert that validation failures never reach the store.
type countingStore struct {
	mu      sync.Mutex
	docs    map[string]map[string]map[string]interface{}
	creates int
	updates int
}

func newCountingStore() *countingStore {
	return &countingStore{docs: make(map[string]map[string]map[string]interface{})}
}

func (s *countingStore) seed(collection, id string, data map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docs[collection] == nil {
		s.docs[collection] = make(map[string]map[string]interface{})
	}
	s.docs[collection][id] = data
}

func (s *countingStore) ListAll(ctx context.Context, collection, orderBy string) ([]db.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []db.Document
	for id, data := range s.docs[collection] {
		out = append(out, db.Document{ID: id, Data: data})
	}
	return out, nil
}

func (s *countingStore) Query(ctx context.Context, collection, field string, value interface{}) ([]db.Document, error) {
	return nil, nil
}

func (s *countingStore) Get(ctx context.Context, collection, id string) (db.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.docs[collection][id]
	if !ok {
		return db.Document{}, fmt.Errorf("no document %s/%s", collection, id)
	}
	return db.Document{ID: id, Data: data}, nil
}

func (s *countingStore) Create(ctx context.Context, collection, id string, data map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	if s.docs[collection] == nil {
		s.docs[collection] = make(map[string]map[string]interface{})
	}
	s.docs[collection][id] = data
	return nil
}

func (s *countingStore) Update(ctx context.Context, collection, id string, data map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++
	existing, ok := s.docs[collection][id]
	if !ok {
		return fmt.Errorf("no document %s/%s", collection, id)
	}
	for k, v := range data {
		existing[k] = v
	}
	return nil
}

func adminRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	admin := models.User{UserID: "admin-1", FirstName: "Admin", UserType: models.UserTypeAdmin}
	ctx := context.WithValue(r.Context(), middleware.UserContextKey, &admin)
	return r.WithContext(ctx)
}

func TestPumpCreate_InvalidPincodeBlocksStoreWrite(t *testing.T) {
	store := newCountingStore()
	h := NewPumpHandler(repo.NewPumps(store), 10)

	body := `{
		"customerName": "Shree Balaji Fuels",
		"company": "HPCL",
		"sapCode": "41052736",
		"pincode": "12345",
		"location": {"latitude": 28.6, "longitude": 77.2}
	}`
	w := httptest.NewRecorder()
	h.Create(w, adminRequest(http.MethodPost, "/api/pumps/create", body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, store.creates, "invalid input must never reach the store")

	var resp map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Contains(t, resp["error"], "pincode")
}

func TestPumpCreate_Valid(t *testing.T) {
	store := newCountingStore()
	h := NewPumpHandler(repo.NewPumps(store), 10)

	body := `{
		"customerName": "Shree Balaji Fuels",
		"company": "HPCL",
		"sapCode": "41052736",
		"pincode": "110001",
		"location": {"latitude": 28.6, "longitude": 77.2}
	}`
	w := httptest.NewRecorder()
	h.Create(w, adminRequest(http.MethodPost, "/api/pumps/create", body))

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 1, store.creates)

	var created models.PetrolPump
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.NotEmpty(t, created.PumpID)
	assert.Equal(t, "admin-1", created.CreatedBy)
}

func TestPumpCreate_NoUserInContext(t *testing.T) {
	store := newCountingStore()
	h := NewPumpHandler(repo.NewPumps(store), 10)

	w := httptest.NewRecorder()
	h.Create(w, httptest.NewRequest(http.MethodPost, "/api/pumps/create", strings.NewReader("{}")))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, store.creates)
}

func TestPumpUpdate_InvalidSapCodeBlocksStoreWrite(t *testing.T) {
	store := newCountingStore()
	store.seed(repo.PumpsCollection, "p1", map[string]interface{}{
		"customerName": "Shree Balaji Fuels",
		"sapCode":      "41052736",
	})
	h := NewPumpHandler(repo.NewPumps(store), 10)

	body := `{"pumpId": "p1", "fields": {"sapCode": "12ab"}}`
	w := httptest.NewRecorder()
	h.Update(w, adminRequest(http.MethodPut, "/api/pumps/update", body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, store.updates)
}

func TestPumpList_FacetsAndPaging(t *testing.T) {
	store := newCountingStore()
	store.seed(repo.PumpsCollection, "p1", map[string]interface{}{
		"customerName": "Shree Balaji Fuels", "company": "HPCL", "verified": true,
	})
	store.seed(repo.PumpsCollection, "p2", map[string]interface{}{
		"customerName": "Sagar Highway Services", "company": "IOCL", "verified": true,
	})
	store.seed(repo.PumpsCollection, "p3", map[string]interface{}{
		"customerName": "Balaji Service Station", "company": "HPCL", "verified": false,
	})
	h := NewPumpHandler(repo.NewPumps(store), 10)

	w := httptest.NewRecorder()
	h.List(w, adminRequest(http.MethodGet, "/api/pumps?company=HPCL&tab=verified", ""))

	require.Equal(t, http.StatusOK, w.Code)
	var resp ListResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Count, "only the verified HPCL pump matches")
}
