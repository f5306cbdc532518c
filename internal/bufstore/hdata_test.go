package bufstore

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/termchat/termchat-core/internal/hook"
	"github.com/termchat/termchat-core/internal/reflect"
)

func TestBufferGetFallsBackFromIntegerToString(t *testing.T) {
	s := New(hook.New())
	b, err := s.NewBuffer(BufferOptions{PluginOwner: "core", Name: "alpha"})
	assert.NoError(t, err)

	v, ok := b.Get("number")
	assert.True(t, ok)
	assert.Equal(t, int64(1), v)

	v, ok = b.Get("full_name")
	assert.True(t, ok)
	assert.Equal(t, "core.alpha", v)

	_, ok = b.Get("not_a_field")
	assert.False(t, ok)
}

func TestRegisterSchemaDeclaresBufferKind(t *testing.T) {
	r := reflect.New()
	RegisterSchema(r)

	s, ok := r.Schema("buffer")
	assert.True(t, ok)
	assert.NotEmpty(t, s.Fields)
}

func TestInfolistSnapshotsAllBuffers(t *testing.T) {
	s := New(hook.New())
	_, err := s.NewBuffer(BufferOptions{PluginOwner: "core", Name: "alpha"})
	assert.NoError(t, err)
	_, err = s.NewBuffer(BufferOptions{PluginOwner: "core", Name: "beta"})
	assert.NoError(t, err)

	il := s.Infolist()
	assert.Len(t, il.Items, 2)

	name, ok := il.Items[0].Get("full_name")
	assert.True(t, ok)
	assert.Equal(t, "core.alpha", name)
}
