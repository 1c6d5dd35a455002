package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pumpadmin/models"
)

func newUser(first, mobile, email string) models.User {
	return models.User{
		FirstName:          first,
		Mobile:             mobile,
		Email:              email,
		UserType:           models.UserTypeUser,
		PreferredCompanies: []models.Company{models.CompanyHPCL},
	}
}

func TestUsers_Create(t *testing.T) {
	store := newFakeStore()
	users := NewUsers(store)

	created, err := users.Create(context.Background(), newUser("Asha", "9876543210", "asha@example.com"), "admin-1")
	require.NoError(t, err)

	assert.NotEmpty(t, created.UserID)
	assert.Equal(t, "+919876543210", created.Mobile, "mobile is persisted with the +91 prefix")
	assert.Equal(t, "admin-1", created.CreatedBy)
	assert.Equal(t, "admin-1", created.UpdatedBy)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, 1, store.creates)
}

func TestUsers_Create_DuplicateMobile(t *testing.T) {
	store := newFakeStore()
	// The stored record carries the +91 prefix; the new form submits bare
	// digits. The check must still catch the duplicate.
	store.seed(UsersCollection, "u1", map[string]interface{}{
		"firstName": "Asha",
		"mobile":    "+919876543210",
	})
	users := NewUsers(store)

	_, err := users.Create(context.Background(), newUser("Ravi", "9876543210", "ravi@example.com"), "admin-1")
	assert.ErrorIs(t, err, ErrDuplicateMobile)
	assert.Zero(t, store.creates, "no document may be written on a duplicate")
}

func TestUsers_Create_DuplicateEmailCaseInsensitive(t *testing.T) {
	store := newFakeStore()
	store.seed(UsersCollection, "u1", map[string]interface{}{
		"firstName": "Asha",
		"mobile":    "+919876543210",
		"email":     "Asha@Example.com",
	})
	users := NewUsers(store)

	_, err := users.Create(context.Background(), newUser("Ravi", "9811022033", "asha@example.com"), "admin-1")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Zero(t, store.creates)
}

func TestUsers_Update_MergesOnlySubmittedFields(t *testing.T) {
	store := newFakeStore()
	store.seed(UsersCollection, "u1", map[string]interface{}{
		"firstName": "Asha",
		"lastName":  "Patel",
		"mobile":    "+919876543210",
		"teamCode":  "NZS001",
	})
	users := NewUsers(store)

	err := users.Update(context.Background(), "u1", map[string]interface{}{
		"lastName": "Sharma",
	}, "admin-1")
	require.NoError(t, err)

	doc, err := store.Get(context.Background(), UsersCollection, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Sharma", doc.Data["lastName"])
	assert.Equal(t, "Asha", doc.Data["firstName"], "unsubmitted fields are never clobbered")
	assert.Equal(t, "NZS001", doc.Data["teamCode"])
	assert.Equal(t, "admin-1", doc.Data["updatedBy"])
	assert.NotNil(t, doc.Data["updatedAt"])
}

func TestUsers_Update_RejectsEmptyingCompanies(t *testing.T) {
	store := newFakeStore()
	store.seed(UsersCollection, "u1", map[string]interface{}{
		"mobile":             "+919876543210",
		"preferredCompanies": []interface{}{"HPCL"},
	})
	users := NewUsers(store)

	err := users.Update(context.Background(), "u1", map[string]interface{}{
		"preferredCompanies": []string{},
	}, "admin-1")
	assert.Error(t, err)
	assert.Zero(t, store.updates)
}

func TestUsers_IsMobileTaken_PrefixForms(t *testing.T) {
	store := newFakeStore()
	store.seed(UsersCollection, "u1", map[string]interface{}{"mobile": "919876543210"})
	users := NewUsers(store)

	for _, form := range []string{"+919876543210", "919876543210", "9876543210"} {
		taken, err := users.IsMobileTaken(context.Background(), form, "")
		require.NoError(t, err)
		assert.True(t, taken, form)
	}

	t.Run("the record itself is excluded", func(t *testing.T) {
		taken, err := users.IsMobileTaken(context.Background(), "9876543210", "u1")
		require.NoError(t, err)
		assert.False(t, taken)
	})
}

func TestUsers_FindByMobile(t *testing.T) {
	store := newFakeStore()
	store.seed(UsersCollection, "u1", map[string]interface{}{
		"firstName": "Asha",
		"mobile":    "+919876543210",
	})
	users := NewUsers(store)

	got, err := users.FindByMobile(context.Background(), "9876543210")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)

	_, err = users.FindByMobile(context.Background(), "9000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUsers_List_NormalizesAndSnapshots(t *testing.T) {
	store := newFakeStore()
	store.seed(UsersCollection, "u1", map[string]interface{}{
		"First Name": "Asha",
		"mobile":     float64(9876543210),
	})
	users := NewUsers(store)

	assert.Empty(t, users.Snapshot(), "snapshot is empty before the first fetch")

	got, err := users.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Asha", got[0].FirstName)
	assert.Equal(t, "9876543210", got[0].Mobile, "numeric legacy mobile coerces to string")

	assert.Len(t, users.Snapshot(), 1)
}
