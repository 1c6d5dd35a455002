package repo

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"pumpadmin/db"
)

// fakeStore is an in-memory Store used by the repository tests. It counts
// writes so tests can assert that validation and duplicate checks block the
// store call entirely.
type fakeStore struct {
	mu          sync.Mutex
	collections map[string]map[string]map[string]interface{}
	listErr     map[string]error
	creates     int
	updates     int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		collections: make(map[string]map[string]map[string]interface{}),
		listErr:     make(map[string]error),
	}
}

func (f *fakeStore) seed(collection, id string, data map[string]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.collections[collection] == nil {
		f.collections[collection] = make(map[string]map[string]interface{})
	}
	f.collections[collection][id] = data
}

func (f *fakeStore) ListAll(ctx context.Context, collection, orderBy string) ([]db.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.listErr[collection]; err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(f.collections[collection]))
	for id := range f.collections[collection] {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	docs := make([]db.Document, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, db.Document{ID: id, Data: f.collections[collection][id]})
	}
	return docs, nil
}

func (f *fakeStore) Query(ctx context.Context, collection, field string, value interface{}) ([]db.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var docs []db.Document
	for id, data := range f.collections[collection] {
		if data[field] == value {
			docs = append(docs, db.Document{ID: id, Data: data})
		}
	}
	return docs, nil
}

func (f *fakeStore) Get(ctx context.Context, collection, id string) (db.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, ok := f.collections[collection][id]
	if !ok {
		return db.Document{}, fmt.Errorf("no document %s/%s", collection, id)
	}
	return db.Document{ID: id, Data: data}, nil
}

func (f *fakeStore) Create(ctx context.Context, collection, id string, data map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.creates++
	if f.collections[collection] == nil {
		f.collections[collection] = make(map[string]map[string]interface{})
	}
	f.collections[collection][id] = data
	return nil
}

// Update merges the submitted fields, mirroring the Firestore MergeAll
// behavior the real store uses.
func (f *fakeStore) Update(ctx context.Context, collection, id string, data map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.updates++
	existing, ok := f.collections[collection][id]
	if !ok {
		return fmt.Errorf("no document %s/%s", collection, id)
	}
	for key, value := range data {
		existing[key] = value
	}
	return nil
}
