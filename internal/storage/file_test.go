// AngelaMos | 2026
// file_test.go

package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.json")
	slot := NewFileSlot(path)
	ctx := context.Background()

	_, err := slot.Load(ctx)
	require.ErrorIs(t, err, ErrSlotEmpty)

	doc := []byte(`{"users":[]}`)
	require.NoError(t, slot.Save(ctx, doc))

	got, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	// Each save replaces the whole document.
	next := []byte(`{"users":[{"id":"1"}]}`)
	require.NoError(t, slot.Save(ctx, next))

	got, err = slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, next, got)
}
