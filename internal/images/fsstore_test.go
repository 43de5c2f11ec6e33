package images

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notesapp/notes-backend/internal/model"
)

func TestFSStore_SaveOpenRemove(t *testing.T) {
	ctx := context.Background()
	s, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	name, err := s.Save(ctx, "cover.PNG", strings.NewReader("image-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".png"), "name %q should keep the lowered extension", name)
	assert.NotContains(t, name, "/")

	rc, err := s.Open(ctx, name)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "image-bytes", string(data))

	require.NoError(t, s.Remove(ctx, name))
	_, err = s.Open(ctx, name)
	assert.True(t, model.IsNotFoundError(err))

	// removing twice stays silent
	assert.NoError(t, s.Remove(ctx, name))
}

func TestFSStore_RejectsPathEscapes(t *testing.T) {
	ctx := context.Background()
	s, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Open(ctx, "../etc/passwd")
	assert.True(t, model.IsNotFoundError(err))
	assert.NoError(t, s.Remove(ctx, "../escape"))

	name, err := s.Save(ctx, "../../evil/../x.png", strings.NewReader("d"))
	require.NoError(t, err)
	assert.Equal(t, name, strings.TrimLeft(name, "./"))
}

func TestMemStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	name, err := s.Save(ctx, "pic.jpg", strings.NewReader("jpeg"))
	require.NoError(t, err)

	rc, err := s.Open(ctx, name)
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	assert.Equal(t, "jpeg", string(data))

	require.NoError(t, s.Remove(ctx, name))
	_, err = s.Open(ctx, name)
	assert.True(t, model.IsNotFoundError(err))
}
