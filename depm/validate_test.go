package depm

import (
	"os"
	"path/filepath"
	"testing"

	"matcha/common"
	"matcha/metadata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckEmptyLibraryList(t *testing.T) {
	cfg := NewModuleConfig(Options{ModuleName: "main"})

	rep := &testReporter{}
	assert.True(t, cfg.CheckLibraries(rep))
	assert.Empty(t, rep.errors)
	assert.Empty(t, rep.warnings)

	descriptors, err := cfg.ModuleDescriptors()
	require.NoError(t, err)
	assert.Empty(t, descriptors)
}

func TestCheckMissingLibrary(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope"+common.MatchaLibExt)
	cfg := NewModuleConfig(Options{ModuleName: "main", Libraries: []string{missing}})

	rep := &testReporter{}
	assert.False(t, cfg.CheckLibraries(rep))
	require.Len(t, rep.errors, 1)
	assert.Contains(t, rep.errors[0], missing)

	// The strict path fails the same way and never publishes a graph.
	_, err := cfg.ModuleDescriptors()
	require.Error(t, err)
	assert.Contains(t, err.Error(), missing)
}

func TestCheckInvalidLibraryFormat(t *testing.T) {
	dir := t.TempDir()
	junk := filepath.Join(dir, "junk"+common.MatchaLibExt)
	require.NoError(t, os.WriteFile(junk, []byte("not a library"), 0666))
	lib := writeLib(t, dir, "a.mlib", makeBlock("A", metadata.CurrentVersion))

	cfg := NewModuleConfig(Options{ModuleName: "main", Libraries: []string{junk, lib}})

	rep := &testReporter{}
	assert.True(t, cfg.CheckLibraries(rep))
	assert.Empty(t, rep.errors)
	require.Len(t, rep.warnings, 1)
	assert.Contains(t, rep.warnings[0], "not a valid compiled Matcha library")

	// The junk library contributes nothing.
	descriptors, err := cfg.ModuleDescriptors()
	require.NoError(t, err)
	require.Len(t, descriptors, 1)
	assert.Equal(t, "<A>", descriptors[0].Name())
}

func TestCheckDuplicateModuleName(t *testing.T) {
	dir := t.TempDir()
	libs := []string{
		writeLib(t, dir, "m1.mlib", makeBlock("M", metadata.CurrentVersion)),
		writeLib(t, dir, "m2.mlib", makeBlock("M", metadata.CurrentVersion)),
	}

	cfg := NewModuleConfig(Options{ModuleName: "main", Libraries: libs})

	rep := &testReporter{}
	assert.True(t, cfg.CheckLibraries(rep))
	require.Len(t, rep.warnings, 1)
	assert.Contains(t, rep.warnings[0], `module "M" is defined in more than one file`)

	// Duplicates are retained, not merged.
	descriptors, err := cfg.ModuleDescriptors()
	require.NoError(t, err)
	require.Len(t, descriptors, 2)
	assert.Equal(t, "<M>", descriptors[0].Name())
	assert.Equal(t, "<M>", descriptors[1].Name())
	assert.NotSame(t, descriptors[0], descriptors[1])
}

func TestCheckSelfNameCollision(t *testing.T) {
	dir := t.TempDir()
	lib := writeLib(t, dir, "main.mlib", makeBlock("main", metadata.CurrentVersion))

	cfg := NewModuleConfig(Options{ModuleName: "main", Libraries: []string{lib}})

	rep := &testReporter{}
	assert.True(t, cfg.CheckLibraries(rep))
	require.Len(t, rep.warnings, 1)
	assert.Contains(t, rep.warnings[0], `depends on module with the same name`)
}

func TestCheckIncompatibleVersion(t *testing.T) {
	old := metadata.Version{Major: metadata.CurrentVersion.Major - 1, Minor: 9, Patch: 9}

	dir := t.TempDir()
	lib := writeLib(t, dir, "old.mlib", makeBlock("old", old))

	cfg := NewModuleConfig(Options{ModuleName: "main", Libraries: []string{lib}})
	rep := &testReporter{}
	assert.False(t, cfg.CheckLibraries(rep))
	require.Len(t, rep.errors, 1)
	assert.Contains(t, rep.errors[0], "incompatible version")
	assert.Contains(t, rep.errors[0], old.String())
	assert.Contains(t, rep.errors[0], metadata.CurrentVersion.String())

	// The same input succeeds when the check is relaxed.
	relaxed := NewModuleConfig(Options{
		ModuleName:               "main",
		Libraries:                []string{lib},
		SkipMetadataVersionCheck: true,
	})
	rep = &testReporter{}
	assert.True(t, relaxed.CheckLibraries(rep))
	assert.Empty(t, rep.errors)
}

func TestCheckSkipSet(t *testing.T) {
	// A skipped library is never touched, even if it does not exist.
	missing := filepath.Join(t.TempDir(), "gone"+common.MatchaLibExt)

	cfg := NewModuleConfig(Options{
		ModuleName:      "main",
		Libraries:       []string{missing},
		LibrariesToSkip: []string{missing},
	})

	rep := &testReporter{}
	assert.True(t, cfg.CheckLibraries(rep))
	assert.Empty(t, rep.errors)

	descriptors, err := cfg.ModuleDescriptors()
	require.NoError(t, err)
	assert.Empty(t, descriptors)
}

func TestCheckRetryAfterFailure(t *testing.T) {
	dir := t.TempDir()
	good := writeLib(t, dir, "a.mlib", makeBlock("A", metadata.CurrentVersion))
	missing := filepath.Join(dir, "missing.mlib")

	cfg := NewModuleConfig(Options{ModuleName: "main", Libraries: []string{good, missing}})

	rep := &testReporter{}
	require.False(t, cfg.CheckLibraries(rep))

	// Materialize the missing library and retry: the partial state from the
	// failed run must not leak into the second one.
	writeLib(t, dir, "missing.mlib", makeBlock("B", metadata.CurrentVersion))

	rep = &testReporter{}
	require.True(t, cfg.CheckLibraries(rep))
	assert.Empty(t, rep.warnings)

	descriptors, err := cfg.ModuleDescriptors()
	require.NoError(t, err)
	require.Len(t, descriptors, 2)
	assert.Equal(t, "<A>", descriptors[0].Name())
	assert.Equal(t, "<B>", descriptors[1].Name())
}
