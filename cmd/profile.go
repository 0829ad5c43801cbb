package cmd

import (
	"os"
	"path/filepath"
	"unicode"

	"matcha/common"
	"matcha/depm"
	"matcha/report"

	"github.com/pelletier/go-toml"
)

// tomlProfile represents a build profile as it is encoded in TOML.
type tomlProfile struct {
	Name                     string   `toml:"name"`
	Kind                     string   `toml:"kind"`
	LanguageVersion          string   `toml:"language-version"`
	Libraries                []string `toml:"libraries"`
	SkipLibraries            []string `toml:"skip-libraries"`
	FriendPaths              []string `toml:"friend-paths"`
	DisableFriendPaths       bool     `toml:"disable-friend-paths"`
	SkipMetadataVersionCheck bool     `toml:"skip-metadata-version-check"`
	StdlibBuiltins           bool     `toml:"stdlib-builtins"`
	SourceMapPrefix          string   `toml:"source-map-prefix"`
	SourceMapRoots           []string `toml:"source-map-roots"`
	SourceMapEmbedSources    string   `toml:"source-map-embed-sources"`
}

// moduleKinds maps TOML kind strings to enumerated module kinds.
var moduleKinds = map[string]depm.ModuleKind{
	"":         depm.KindPlain,
	"plain":    depm.KindPlain,
	"amd":      depm.KindAMD,
	"commonjs": depm.KindCommonJS,
	"umd":      depm.KindUMD,
}

// embeddingModes maps TOML embedding strings to enumerated embedding modes.
var embeddingModes = map[string]depm.SourceMapEmbedding{
	"":         depm.EmbedInlining,
	"inlining": depm.EmbedInlining,
	"never":    depm.EmbedNever,
	"always":   depm.EmbedAlways,
}

// LoadProfile loads and validates the build profile of the project rooted at
// `abspath`.  This function returns the resolution options extracted from the
// profile and a success boolean.
func LoadProfile(abspath string) (depm.Options, bool) {
	buff, err := os.ReadFile(filepath.Join(abspath, common.MatchaBuildFileName))
	if err != nil {
		report.ReportFatal("unable to read build profile at `%s`: %s", abspath, err)
		return depm.Options{}, false
	}

	profile := &tomlProfile{}
	if err := toml.Unmarshal(buff, profile); err != nil {
		report.ReportFatal("error parsing build profile at `%s`: %s", abspath, err)
		return depm.Options{}, false
	}

	return validateProfile(abspath, profile)
}

// validateProfile checks the profile contents and converts them into
// resolution options.
func validateProfile(abspath string, profile *tomlProfile) (depm.Options, bool) {
	if profile.Name == "" {
		report.ReportModuleError("build profile at `%s` is missing a module name", abspath)
		return depm.Options{}, false
	}

	if !isValidIdentifier(profile.Name) {
		report.ReportModuleError("module name `%s` must be a valid identifier", profile.Name)
		return depm.Options{}, false
	}

	kind, ok := moduleKinds[profile.Kind]
	if !ok {
		report.ReportModuleError("unknown module kind: `%s`", profile.Kind)
		return depm.Options{}, false
	}

	embedding, ok := embeddingModes[profile.SourceMapEmbedSources]
	if !ok {
		report.ReportModuleError("unknown source map embedding mode: `%s`", profile.SourceMapEmbedSources)
		return depm.Options{}, false
	}

	// Library paths in the profile are relative to the project root.
	libraries := make([]string, len(profile.Libraries))
	for i, lib := range profile.Libraries {
		libraries[i] = resolveLibPath(abspath, lib)
	}

	skip := make([]string, len(profile.SkipLibraries))
	for i, lib := range profile.SkipLibraries {
		skip[i] = resolveLibPath(abspath, lib)
	}

	friends := make([]string, len(profile.FriendPaths))
	for i, lib := range profile.FriendPaths {
		friends[i] = resolveLibPath(abspath, lib)
	}

	return depm.Options{
		ModuleName:               profile.Name,
		ModuleKind:               kind,
		LanguageVersion:          profile.LanguageVersion,
		Libraries:                libraries,
		LibrariesToSkip:          skip,
		FriendPaths:              friends,
		FriendPathsDisabled:      profile.DisableFriendPaths,
		SkipMetadataVersionCheck: profile.SkipMetadataVersionCheck,
		LoadBuiltinsFromStdlib:   profile.StdlibBuiltins,
		SourceMapPrefix:          profile.SourceMapPrefix,
		SourceMapRoots:           profile.SourceMapRoots,
		SourceMapEmbedSources:    embedding,
	}, true
}

// resolveLibPath resolves a profile library path against the project root.
func resolveLibPath(abspath, lib string) string {
	if filepath.IsAbs(lib) {
		return filepath.Clean(lib)
	}

	return filepath.Join(abspath, lib)
}

// isValidIdentifier returns whether the given name is a valid Matcha
// identifier.
func isValidIdentifier(name string) bool {
	if len(name) == 0 {
		return false
	}

	for i, c := range name {
		if i == 0 {
			if unicode.IsLetter(c) || c == '_' {
				continue
			}
		} else if unicode.IsLetter(c) || '0' <= c && c <= '9' || c == '_' {
			continue
		}

		return false
	}

	return true
}
