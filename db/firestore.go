package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Document is a raw record from a collection. Historical documents are
// heterogeneously keyed, so Data stays untyped until the normalizer runs.
type Document struct {
	ID   string
	Data map[string]interface{}
}

// FirestoreDB wraps the Firestore client behind collection-generic operations.
type FirestoreDB struct {
	client *firestore.Client
}

// NewFirestoreDB initializes a new Firestore client
func NewFirestoreDB(ctx context.Context, projectID, credentialsPath string) (*FirestoreDB, error) {
	opt := option.WithCredentialsFile(credentialsPath)

	config := &firebase.Config{ProjectID: projectID}
	app, err := firebase.NewApp(ctx, config, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firestore client: %w", err)
	}

	log.Printf("✅ Connected to Firestore project: %s", projectID)

	return &FirestoreDB{client: client}, nil
}

// Close closes the Firestore client
func (db *FirestoreDB) Close() error {
	return db.client.Close()
}

// ListAll retrieves every document in a collection, optionally ordered by a
// field. Documents that fail to read are skipped with a warning rather than
// aborting the whole listing.
func (db *FirestoreDB) ListAll(ctx context.Context, collection, orderBy string) ([]Document, error) {
	query := db.client.Collection(collection).Query
	if orderBy != "" {
		query = query.OrderBy(orderBy, firestore.Asc)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var docs []Document
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate %s: %w", collection, err)
		}
		docs = append(docs, Document{ID: doc.Ref.ID, Data: doc.Data()})
	}

	return docs, nil
}

// Query retrieves documents where a field equals a value.
func (db *FirestoreDB) Query(ctx context.Context, collection, field string, value interface{}) ([]Document, error) {
	iter := db.client.Collection(collection).
		Where(field, "==", value).
		Documents(ctx)
	defer iter.Stop()

	var docs []Document
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query %s: %w", collection, err)
		}
		docs = append(docs, Document{ID: doc.Ref.ID, Data: doc.Data()})
	}

	return docs, nil
}

// Get retrieves a single document by ID.
func (db *FirestoreDB) Get(ctx context.Context, collection, id string) (Document, error) {
	doc, err := db.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	return Document{ID: doc.Ref.ID, Data: doc.Data()}, nil
}

// Create writes a new document under the given ID.
func (db *FirestoreDB) Create(ctx context.Context, collection, id string, data map[string]interface{}) error {
	_, err := db.client.Collection(collection).Doc(id).Set(ctx, data)
	if err != nil {
		return fmt.Errorf("failed to create %s/%s: %w", collection, id, err)
	}
	return nil
}

// Update merges only the supplied fields into an existing document. Fields
// the caller does not submit are left untouched.
func (db *FirestoreDB) Update(ctx context.Context, collection, id string, data map[string]interface{}) error {
	_, err := db.client.Collection(collection).Doc(id).Set(ctx, data, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}
	return nil
}

// --- Password Operations ---

// StorePasswordHash stores a password hash for a user
func (db *FirestoreDB) StorePasswordHash(ctx context.Context, userID, passwordHash string) error {
	_, err := db.client.Collection("passwords").Doc(userID).Set(ctx, map[string]interface{}{
		"userId":       userID,
		"passwordHash": passwordHash,
		"updatedAt":    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to store password hash: %w", err)
	}
	return nil
}

// GetPasswordHash retrieves a password hash for a user
func (db *FirestoreDB) GetPasswordHash(ctx context.Context, userID string) (string, error) {
	doc, err := db.client.Collection("passwords").Doc(userID).Get(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get password hash: %w", err)
	}

	data := doc.Data()
	if hash, ok := data["passwordHash"].(string); ok {
		return hash, nil
	}

	return "", fmt.Errorf("password hash not found for user: %s", userID)
}
