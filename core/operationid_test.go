package core

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationIDsDeterministic(t *testing.T) {
	api := NewAPI("users")
	get := api.Group("users").Route("/users/{id}").Get()

	snap := NewSnapshot([]ResourceApi{api})
	ids := NewOperationIDs(snap)

	first, err := ids.IDFor(get)
	require.NoError(t, err)
	second, err := ids.IDFor(get)
	require.NoError(t, err)

	assert.Equal(t, "getUsersById", first)
	assert.Equal(t, first, second)
}

func TestOperationIDsDerivation(t *testing.T) {
	cases := []struct {
		verb, path, want string
	}{
		{"GET", "/users", "getUsers"},
		{"POST", "/users", "postUsers"},
		{"GET", "/users/{id}", "getUsersById"},
		{"GET", "/users/:id/orders", "getUsersByIdOrders"},
		{"DELETE", "/files/*filepath", "deleteFilesByFilepath"},
		{"GET", "/", "get"},
		{"PUT", "/api/v1/user-settings", "putApiV1UserSettings"},
	}

	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, deriveOperationID(tc.verb, tc.path))
		})
	}
}

func TestOperationIDsCollisionSuffix(t *testing.T) {
	api := NewAPI("twins")
	route := api.Group("g").Route("/things")
	first := route.Get()
	second := route.Get()
	third := route.Get()

	snap := NewSnapshot([]ResourceApi{api})
	ids := NewOperationIDs(snap)

	id1, err := ids.IDFor(first)
	require.NoError(t, err)
	id2, err := ids.IDFor(second)
	require.NoError(t, err)
	id3, err := ids.IDFor(third)
	require.NoError(t, err)

	assert.Equal(t, "getThings", id1)
	assert.Equal(t, "getThings_2", id2)
	assert.Equal(t, "getThings_3", id3)
}

func TestOperationIDsLabelWins(t *testing.T) {
	api := NewAPI("users")
	route := api.Group("users").Route("/users")
	labelled := route.Get().WithLabel("listUsers")
	clash := route.Post().WithLabel("listUsers")

	snap := NewSnapshot([]ResourceApi{api})
	ids := NewOperationIDs(snap)

	id1, err := ids.IDFor(labelled)
	require.NoError(t, err)
	id2, err := ids.IDFor(clash)
	require.NoError(t, err)

	assert.Equal(t, "listUsers", id1)
	assert.Equal(t, "listUsers_2", id2)
}

func TestOperationIDsLabelBlocksSuffix(t *testing.T) {
	// An explicit label that looks like a suffixed id must not be handed
	// out a second time to a derived id.
	api := NewAPI("twins")
	route := api.Group("g").Route("/things")
	labelled := route.Get().WithLabel("getThings_2")
	first := route.Get()
	second := route.Get()

	snap := NewSnapshot([]ResourceApi{api})
	ids := NewOperationIDs(snap)

	idLabelled, err := ids.IDFor(labelled)
	require.NoError(t, err)
	idFirst, err := ids.IDFor(first)
	require.NoError(t, err)
	idSecond, err := ids.IDFor(second)
	require.NoError(t, err)

	assert.Equal(t, "getThings_2", idLabelled)
	assert.Equal(t, "getThings", idFirst)
	assert.Equal(t, "getThings_3", idSecond, "claimed suffix is skipped over")
	assert.NotEqual(t, idLabelled, idSecond)
}

func TestOperationIDsSuffixYieldsToEarlierLabel(t *testing.T) {
	// Same collision, opposite allocation order: the derived id arrives
	// after the label already claimed its would-be suffix.
	api := NewAPI("twins")
	route := api.Group("g").Route("/things")
	first := route.Get()
	labelled := route.Get().WithLabel("getThings_2")
	second := route.Get()

	snap := NewSnapshot([]ResourceApi{api})
	ids := NewOperationIDs(snap)

	idFirst, err := ids.IDFor(first)
	require.NoError(t, err)
	idLabelled, err := ids.IDFor(labelled)
	require.NoError(t, err)
	idSecond, err := ids.IDFor(second)
	require.NoError(t, err)

	assert.Equal(t, "getThings", idFirst)
	assert.Equal(t, "getThings_2", idLabelled)
	assert.Equal(t, "getThings_3", idSecond)
}

func TestOperationIDsOrphan(t *testing.T) {
	snap := NewSnapshot(nil)
	ids := NewOperationIDs(snap)

	foreign := NewAPI("x").Group("g").Route("/x").Get()
	_, err := ids.IDFor(foreign)
	require.ErrorIs(t, err, ErrOrphanMethod)
}

func TestOperationIDsConcurrentAllocation(t *testing.T) {
	api := NewAPI("bulk")
	route := api.Group("g").Route("/bulk")
	methods := make([]Method, 32)
	for i := range methods {
		methods[i] = route.Get()
	}

	snap := NewSnapshot([]ResourceApi{api})
	ids := NewOperationIDs(snap)

	results := make([]string, len(methods))
	var wg sync.WaitGroup
	for i, m := range methods {
		wg.Add(1)
		go func(i int, m Method) {
			defer wg.Done()
			id, err := ids.IDFor(m)
			if err != nil {
				t.Errorf("IDFor: %v", err)
				return
			}
			results[i] = id
		}(i, m)
	}
	wg.Wait()

	seen := make(map[string]struct{}, len(results))
	for _, id := range results {
		require.NotEmpty(t, id)
		_, dup := seen[id]
		require.False(t, dup, "duplicate operation id %q", id)
		seen[id] = struct{}{}
	}
}
