package storage

import (
	"context"
	"path/filepath"
	"testing"

	"mercari/internal/item"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "db", "test_mercari.sqlite3"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_AddAndList(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	empty, err := s.ListItems(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty, "empty list must encode as [] not null")
	assert.Empty(t, empty)

	chair, err := s.AddItem(ctx, item.Item{Name: "Chair", Category: "Furniture", ImageName: "a.jpg"})
	require.NoError(t, err)
	lamp, err := s.AddItem(ctx, item.Item{Name: "Lamp", Category: "Lighting"})
	require.NoError(t, err)
	assert.Less(t, chair.ID, lamp.ID)

	got, err := s.ListItems(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff([]item.Item{chair, lamp}, got); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_AddRejectsIncomplete(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddItem(context.Background(), item.Item{Name: "", Category: "phone"})
	assert.Error(t, err)
}

func TestStore_GetItem(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	added, err := s.AddItem(ctx, item.Item{Name: "used iPhone 16e", Category: "phone"})
	require.NoError(t, err)

	got, err := s.GetItem(ctx, added.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, added, *got)

	missing, err := s.GetItem(ctx, added.ID+100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStore_SearchItems(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	for _, name := range []string{"blue chair", "red chair", "lamp"} {
		_, err := s.AddItem(ctx, item.Item{Name: name, Category: "home"})
		require.NoError(t, err)
	}

	got, err := s.SearchItems(ctx, "chair")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "blue chair", got[0].Name)
	assert.Equal(t, "red chair", got[1].Name)

	none, err := s.SearchItems(ctx, "sofa")
	require.NoError(t, err)
	assert.Empty(t, none)
}
