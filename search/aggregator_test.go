package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pumpadmin/models"
)

type fakeUsers struct {
	users []models.User
	err   error
	calls int
}

func (f *fakeUsers) List(ctx context.Context) ([]models.User, error) {
	f.calls++
	return f.users, f.err
}

type fakeTeams struct {
	teams []models.Team
	err   error
	calls int
}

func (f *fakeTeams) List(ctx context.Context) ([]models.Team, error) {
	f.calls++
	return f.teams, f.err
}

type fakePumps struct {
	pumps []models.PetrolPump
	err   error
	calls int
	hook  func() // runs on List, used to trigger a superseding search
}

func (f *fakePumps) List(ctx context.Context) ([]models.PetrolPump, error) {
	f.calls++
	if f.hook != nil {
		f.hook()
	}
	return f.pumps, f.err
}

type fakeRequests struct {
	requests []models.PumpRequest
	err      error
	calls    int
}

func (f *fakeRequests) List(ctx context.Context) ([]models.PumpRequest, error) {
	f.calls++
	return f.requests, f.err
}

func sampleData() (*fakeUsers, *fakeTeams, *fakePumps, *fakeRequests) {
	users := &fakeUsers{users: []models.User{
		{UserID: "u1", FirstName: "Asha", LastName: "Patel", Mobile: "+919876543210", Email: "asha@example.com", UserType: models.UserTypeAdmin},
		{UserID: "u2", FirstName: "Ravi", LastName: "Sharma", Mobile: "+919811022033"},
	}}
	teams := &fakeTeams{teams: []models.Team{
		{TeamID: "t1", Name: "North Zone Surveyors", TeamCode: "NZS001", Owner: "Rakesh Sharma"},
	}}
	pumps := &fakePumps{pumps: []models.PetrolPump{
		{PumpID: "p1", CustomerName: "Shree Balaji Fuels", District: "New Delhi", SapCode: "41052736", Company: models.CompanyHPCL},
		{PumpID: "p2", CustomerName: "Sagar Highway Services", District: "Kanchipuram", SapCode: "52218401", Company: models.CompanyIOCL},
	}}
	requests := &fakeRequests{requests: []models.PumpRequest{
		{RequestID: "r1", CustomerName: "Maa Sharda Filling Station", District: "Sehore", SapCode: "60917433", Company: models.CompanyHPCL, Status: models.RequestPending},
	}}
	return users, teams, pumps, requests
}

func TestSearch_EmptyQueryShortCircuits(t *testing.T) {
	users, teams, pumps, requests := sampleData()
	agg := NewAggregator(users, teams, pumps, requests)

	for _, q := range []string{"", "   ", "\t\n"} {
		got, err := agg.Search(context.Background(), q)
		require.NoError(t, err)
		assert.Empty(t, got)
	}

	assert.Zero(t, users.calls, "empty query must not touch the user repository")
	assert.Zero(t, teams.calls)
	assert.Zero(t, pumps.calls)
	assert.Zero(t, requests.calls)
}

func TestSearch_FixedTypeOrder(t *testing.T) {
	users, teams, pumps, requests := sampleData()
	agg := NewAggregator(users, teams, pumps, requests)

	// "shar" matches a user (Sharma), a team owner (Rakesh Sharma) and a
	// request (Maa Sharda). Order must be users, teams, pumps, requests.
	got, err := agg.Search(context.Background(), "shar")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, models.ResultUser, got[0].Type)
	assert.Equal(t, models.ResultTeam, got[1].Type)
	assert.Equal(t, models.ResultRequest, got[2].Type)
}

func TestSearch_CompanyQueryTagsTypes(t *testing.T) {
	users, teams, pumps, requests := sampleData()
	agg := NewAggregator(users, teams, pumps, requests)

	got, err := agg.Search(context.Background(), "HPCL")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.ResultPump, got[0].Type)
	assert.Equal(t, "p1", got[0].RefID)
	assert.Equal(t, models.ResultRequest, got[1].Type)
	assert.Equal(t, "r1", got[1].RefID)
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	users, teams, pumps, requests := sampleData()
	agg := NewAggregator(users, teams, pumps, requests)

	got, err := agg.Search(context.Background(), "balaji")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Shree Balaji Fuels", got[0].Name)
}

func TestSearch_PartialFailureKeepsOtherTypes(t *testing.T) {
	users, teams, pumps, requests := sampleData()
	teams.err = errors.New("team fetch failed")
	agg := NewAggregator(users, teams, pumps, requests)

	got, err := agg.Search(context.Background(), "shar")
	require.NoError(t, err, "one failing type must not abort the aggregation")
	require.Len(t, got, 2)
	assert.Equal(t, models.ResultUser, got[0].Type)
	assert.Equal(t, models.ResultRequest, got[1].Type)
}

func TestSearch_TotalFailureReturnsEmptyAndError(t *testing.T) {
	users, teams, pumps, requests := sampleData()
	boom := errors.New("store down")
	users.err, teams.err, pumps.err, requests.err = boom, boom, boom, boom
	users.users, teams.teams, pumps.pumps, requests.requests = nil, nil, nil, nil
	agg := NewAggregator(users, teams, pumps, requests)

	got, err := agg.Search(context.Background(), "anything")
	require.Error(t, err)
	assert.Empty(t, got)
}

func TestSearch_StaleInvocationDiscarded(t *testing.T) {
	users, teams, pumps, requests := sampleData()
	agg := NewAggregator(users, teams, pumps, requests)

	// The second query starts while the first is mid-flight; the first must
	// come back stale, the second must win.
	var newer []models.SearchResultItem
	var newerErr error
	fired := false
	pumps.hook = func() {
		if fired {
			return
		}
		fired = true
		newer, newerErr = agg.Search(context.Background(), "HPCL")
	}

	_, err := agg.Search(context.Background(), "balaji")
	assert.ErrorIs(t, err, ErrStale)

	require.NoError(t, newerErr)
	require.Len(t, newer, 2)
	assert.Equal(t, models.ResultPump, newer[0].Type)
}
