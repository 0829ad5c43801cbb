package depm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptorSetOnce(t *testing.T) {
	b := NewDefaultBuiltins()

	m := NewModuleDescriptor("m", b)
	m.Initialize(newBuiltinsProvider())
	assert.Panics(t, func() { m.Initialize(newBuiltinsProvider()) })

	m.SetDependencies([]*ModuleDescriptor{m, b.Module()})
	assert.Panics(t, func() { m.SetDependencies(nil) })
}

func TestDescriptorDependenciesCopied(t *testing.T) {
	b := NewDefaultBuiltins()
	m := NewModuleDescriptor("m", b)

	deps := []*ModuleDescriptor{m}
	m.SetDependencies(deps)

	deps[0] = nil
	require.Len(t, m.Dependencies(), 1)
	assert.Same(t, m, m.Dependencies()[0])
}

func TestDescriptorName(t *testing.T) {
	m := NewModuleDescriptor("collections", NewDefaultBuiltins())
	assert.Equal(t, "<collections>", m.Name())
}
