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

// Users is the user collection repository.
type Users struct {
	store Store

	mu       sync.RWMutex
	snapshot []models.User
}

// NewUsers creates a user repository over the given store.
func NewUsers(store Store) *Users {
	return &Users{store: store}
}

// List fetches the full user collection, normalizes every record and replaces
// the held snapshot.
func (r *Users) List(ctx context.Context) ([]models.User, error) {
	docs, err := r.store.ListAll(ctx, UsersCollection, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]models.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, normalize.User(doc.ID, doc.Data))
	}

	r.mu.Lock()
	r.snapshot = users
	r.mu.Unlock()

	return users, nil
}

// Snapshot returns the most recently fetched user list without touching the
// store. Empty until the first List.
func (r *Users) Snapshot() []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

// FindByID fetches and normalizes a single user.
func (r *Users) FindByID(ctx context.Context, id string) (models.User, error) {
	doc, err := r.store.Get(ctx, UsersCollection, id)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return normalize.User(doc.ID, doc.Data), nil
}

// FindByMobile looks a user up by mobile number, matching on the last 10
// digits regardless of how the stored record is prefixed.
func (r *Users) FindByMobile(ctx context.Context, mobile string) (models.User, error) {
	digits := normalize.MobileDigits(mobile)
	users, err := r.List(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if normalize.MobileDigits(u.Mobile) == digits {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("%w: mobile %s", ErrNotFound, digits)
}

// IsMobileTaken reports whether any other user already holds this mobile
// number. Stored numbers may or may not carry the +91 prefix, so the check
// compares the last 10 digits.
func (r *Users) IsMobileTaken(ctx context.Context, mobile, excludeID string) (bool, error) {
	digits := normalize.MobileDigits(mobile)
	if digits == "" {
		return false, nil
	}
	users, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u.UserID != excludeID && normalize.MobileDigits(u.Mobile) == digits {
			return true, nil
		}
	}
	return false, nil
}

// IsEmailTaken reports whether any other user already holds this email
// address. The comparison is case-insensitive.
func (r *Users) IsEmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, nil
	}
	users, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u.UserID != excludeID && u.Email != "" && strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

// Create writes a new user. The mobile number is persisted with the +91
// prefix. Duplicate mobile/email checks run first; on a duplicate no
// document is written.
func (r *Users) Create(ctx context.Context, u models.User, actor string) (models.User, error) {
	taken, err := r.IsMobileTaken(ctx, u.Mobile, "")
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, ErrDuplicateMobile
	}

	taken, err = r.IsEmailTaken(ctx, u.Email, "")
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, ErrDuplicateEmail
	}

	now := time.Now()
	u.UserID = uuid.NewString()
	u.Mobile = "+91" + normalize.MobileDigits(u.Mobile)
	u.CreatedAt = now
	u.UpdatedAt = now
	u.CreatedBy = actor
	u.UpdatedBy = actor

	data := map[string]interface{}{
		"firstName":          u.FirstName,
		"lastName":           u.LastName,
		"mobile":             u.Mobile,
		"email":              u.Email,
		"userType":           string(u.UserType),
		"teamCode":           u.TeamCode,
		"teamName":           u.TeamName,
		"isTeamOwner":        u.IsTeamOwner,
		"teamMemberStatus":   string(u.TeamMemberStatus),
		"isBlocked":          u.IsBlocked,
		"preferredCompanies": companyStrings(u.PreferredCompanies),
		"createdAt":          u.CreatedAt,
		"updatedAt":          u.UpdatedAt,
		"createdBy":          u.CreatedBy,
		"updatedBy":          u.UpdatedBy,
	}

	if err := r.store.Create(ctx, UsersCollection, u.UserID, data); err != nil {
		return models.User{}, err
	}

	r.refresh(ctx)
	return u, nil
}

// Update merges only the submitted fields into the document and stamps the
// update metadata. Fields the editor did not submit are never clobbered. If
// the edit changes mobile or email the duplicate checks run again.
func (r *Users) Update(ctx context.Context, id string, fields map[string]interface{}, actor string) error {
	if mobile, ok := fields["mobile"].(string); ok {
		taken, err := r.IsMobileTaken(ctx, mobile, id)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateMobile
		}
		fields["mobile"] = "+91" + normalize.MobileDigits(mobile)
	}
	if email, ok := fields["email"].(string); ok && email != "" {
		taken, err := r.IsEmailTaken(ctx, email, id)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateEmail
		}
	}
	// The preferred-companies set must never be emptied once assigned.
	// JSON-decoded payloads carry []interface{}, direct callers []string.
	switch list := fields["preferredCompanies"].(type) {
	case []string:
		if len(list) == 0 {
			return fmt.Errorf("at least one preferred company is required")
		}
	case []interface{}:
		if len(list) == 0 {
			return fmt.Errorf("at least one preferred company is required")
		}
	}

	fields["updatedAt"] = time.Now()
	fields["updatedBy"] = actor

	if err := r.store.Update(ctx, UsersCollection, id, fields); err != nil {
		return err
	}

	r.refresh(ctx)
	return nil
}

// refresh refetches the snapshot after a mutation. A fetch failure leaves the
// prior snapshot untouched.
func (r *Users) refresh(ctx context.Context) {
	if _, err := r.List(ctx); err != nil {
		log.Printf("Warning: failed to refresh user snapshot: %v", err)
	}
}

func companyStrings(list []models.Company) []string {
	out := make([]string, 0, len(list))
	for _, c := range list {
		out = append(out, string(c))
	}
	return out
}
