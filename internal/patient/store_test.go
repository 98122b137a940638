package patient

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"ward/internal/logging"
	"ward/internal/resource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "ward.db"), logging.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testPatient(mrn, name string, status Status) *Patient {
	return &Patient{
		ID:     resource.NewID(resource.Patient),
		MRN:    mrn,
		Name:   name,
		Ward:   "General",
		Age:    50,
		Status: status,
	}
}

func TestStore_SaveAndList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := newTestStore(t)

	n, err := store.Save(ctx,
		testPatient("MRN-001", "Ada Lovelace", StatusAdmitted),
		testPatient("MRN-002", "Grace Hopper", StatusDischarged),
	)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := store.List(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Ordered by name.
	assert.Equal(t, "Ada Lovelace", got[0].Name)
	assert.Equal(t, "Grace Hopper", got[1].Name)
	assert.Equal(t, StatusAdmitted, got[0].Status)
}

func TestStore_UpsertByMRN(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := newTestStore(t)

	p := testPatient("MRN-001", "Ada Lovelace", StatusAdmitted)
	_, err := store.Save(ctx, p)
	require.NoError(t, err)

	p.Status = StatusDischarged
	p.Ward = "Cardiology"
	_, err = store.Save(ctx, p)
	require.NoError(t, err)

	got, err := store.List(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, StatusDischarged, got[0].Status)
	assert.Equal(t, "Cardiology", got[0].Ward)
}

func TestStore_List(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := newTestStore(t)
	_, err := store.Save(ctx,
		testPatient("MRN-001", "Ada Lovelace", StatusAdmitted),
		testPatient("MRN-002", "Grace Hopper", StatusDischarged),
		testPatient("MRN-003", "Alan Turing", StatusAdmitted),
		testPatient("MRN-004", "Barbara Liskov", StatusObservation),
	)
	require.NoError(t, err)

	tests := []struct {
		name string
		opts ListOptions
		want []string
	}{
		{
			"all",
			ListOptions{},
			[]string{"Ada Lovelace", "Alan Turing", "Barbara Liskov", "Grace Hopper"},
		},
		{
			"by status",
			ListOptions{Status: StatusAdmitted},
			[]string{"Ada Lovelace", "Alan Turing"},
		},
		{
			"search name is case-insensitive",
			ListOptions{Search: "lov"},
			[]string{"Ada Lovelace"},
		},
		{
			"search matches mrn",
			ListOptions{Search: "MRN-004"},
			[]string{"Barbara Liskov"},
		},
		{
			"search and status",
			ListOptions{Search: "a", Status: StatusAdmitted},
			[]string{"Ada Lovelace", "Alan Turing"},
		},
		{
			"limit and offset",
			ListOptions{Limit: 2, Offset: 1},
			[]string{"Alan Turing", "Barbara Liskov"},
		},
		{
			"no match",
			ListOptions{Search: "zzz"},
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.List(ctx, tt.opts)
			require.NoError(t, err)

			var names []string
			for _, p := range got {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestStore_Count(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := newTestStore(t)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	for i := 0; i < 5; i++ {
		_, err := store.Save(ctx, testPatient(fmt.Sprintf("MRN-%03d", i), fmt.Sprintf("Patient %d", i), StatusAdmitted))
		require.NoError(t, err)
	}

	n, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestStore_RoundTripsID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := newTestStore(t)

	p := testPatient("MRN-001", "Ada Lovelace", StatusAdmitted)
	_, err := store.Save(ctx, p)
	require.NoError(t, err)

	got, err := store.List(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, p.ID, got[0].ID)
}
