package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"matcha/common"
	"matcha/depm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProfile = `name = "app"
kind = "commonjs"
language-version = "0.4"
libraries = ["libs/std.mlib", "/opt/matcha/net.mlib"]
friend-paths = ["libs/std.mlib"]
skip-metadata-version-check = true
stdlib-builtins = true
source-map-roots = ["src"]
source-map-embed-sources = "never"
`

func TestLoadProfile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, common.MatchaBuildFileName), []byte(sampleProfile), 0666))

	opts, ok := LoadProfile(dir)
	require.True(t, ok)

	assert.Equal(t, "app", opts.ModuleName)
	assert.Equal(t, depm.KindCommonJS, opts.ModuleKind)
	assert.Equal(t, "0.4", opts.LanguageVersion)
	assert.True(t, opts.SkipMetadataVersionCheck)
	assert.True(t, opts.LoadBuiltinsFromStdlib)
	assert.Equal(t, depm.EmbedNever, opts.SourceMapEmbedSources)

	// Relative library paths are resolved against the project root.
	require.Len(t, opts.Libraries, 2)
	assert.Equal(t, filepath.Join(dir, "libs", "std.mlib"), opts.Libraries[0])
	assert.Equal(t, filepath.Clean("/opt/matcha/net.mlib"), opts.Libraries[1])
	assert.Equal(t, opts.Libraries[0], opts.FriendPaths[0])
}

func TestValidateProfileRejectsBadNames(t *testing.T) {
	for _, name := range []string{"", "123abc", "has space", "dash-ed"} {
		_, ok := validateProfile("/proj", &tomlProfile{Name: name})
		assert.False(t, ok, "name %q should be rejected", name)
	}

	for _, name := range []string{"app", "_hidden", "camelCase", "v2"} {
		_, ok := validateProfile("/proj", &tomlProfile{Name: name})
		assert.True(t, ok, "name %q should be accepted", name)
	}
}

func TestValidateProfileRejectsUnknownKinds(t *testing.T) {
	_, ok := validateProfile("/proj", &tomlProfile{Name: "app", Kind: "esm2015"})
	assert.False(t, ok)

	_, ok = validateProfile("/proj", &tomlProfile{Name: "app", SourceMapEmbedSources: "sometimes"})
	assert.False(t, ok)
}
