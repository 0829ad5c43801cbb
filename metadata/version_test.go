package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCompatibility(t *testing.T) {
	assert.True(t, CurrentVersion.IsCompatible())

	// Older minor versions of the same major are loadable.
	older := Version{Major: CurrentVersion.Major, Minor: CurrentVersion.Minor - 1, Patch: 9}
	assert.True(t, older.IsCompatible())

	// Patch differences never matter.
	patched := Version{Major: CurrentVersion.Major, Minor: CurrentVersion.Minor, Patch: CurrentVersion.Patch + 5}
	assert.True(t, patched.IsCompatible())

	// Newer minor versions are not loadable.
	newer := Version{Major: CurrentVersion.Major, Minor: CurrentVersion.Minor + 1}
	assert.False(t, newer.IsCompatible())

	// Different majors are never loadable, in either direction.
	assert.False(t, Version{Major: CurrentVersion.Major + 1}.IsCompatible())
	assert.False(t, Version{Major: CurrentVersion.Major - 1, Minor: CurrentVersion.Minor}.IsCompatible())
}

func TestVersionString(t *testing.T) {
	assert.Equal(t, "1.3.0", Version{Major: 1, Minor: 3, Patch: 0}.String())
}
