package depm

import (
	"errors"
	"sync"

	"matcha/common"
	"matcha/metadata"

	"golang.org/x/mod/semver"
)

// ModuleKind tags the produced module for a downstream code-generation
// strategy.  It is opaque to module resolution.
type ModuleKind int

// Enumeration of module kinds.
const (
	KindPlain ModuleKind = iota
	KindAMD
	KindCommonJS
	KindUMD
)

// SourceMapEmbedding selects how source text is embedded into generated source
// maps.  Consumed only by downstream output generation.
type SourceMapEmbedding int

// Enumeration of source map embedding modes.
const (
	EmbedInlining SourceMapEmbedding = iota // Embed sources used in inlined declarations (default).
	EmbedNever                              // Never embed sources.
	EmbedAlways                             // Embed all sources.
)

// CachedModule is a pre-decoded header/body bundle supplied by an incremental
// metadata provider.  Cached modules are merged into the graph as if they were
// freshly decoded descriptors, but they are never friends.
type CachedModule struct {
	Name    string
	Version metadata.Version
	Header  []byte
	Body    []byte
}

// Options is the flat configuration surface of module resolution.  Values are
// supplied by the build profile loader.
type Options struct {
	// ModuleName names the module under compilation.
	ModuleName string

	// ModuleKind tags the produced module for downstream code generation.
	ModuleKind ModuleKind

	// LanguageVersion is the language version compilation targets, eg. "0.4".
	// Empty means the compiler's own version.
	LanguageVersion string

	// Libraries is the list of compiled library paths visible to compilation.
	Libraries []string

	// LibrariesToSkip is the set of library paths excluded from validation.
	LibrariesToSkip []string

	// FriendPaths is the set of library paths granted access to
	// internal-visibility declarations.
	FriendPaths []string

	// FriendPathsDisabled clears the friend set entirely regardless of the
	// configured paths.
	FriendPathsDisabled bool

	// SkipMetadataVersionCheck relaxes the metadata version compatibility
	// check to a no-op.
	SkipMetadataVersionCheck bool

	// LoadBuiltinsFromStdlib requests that built-in declarations be loaded
	// from the standard library module if one is among the libraries, as
	// opposed to the compiler's bundled defaults (which may not correspond to
	// the rest of the standard library when compiler and stdlib versions do
	// not match).
	LoadBuiltinsFromStdlib bool

	// MetadataCache holds pre-decoded modules from an incremental metadata
	// provider.
	MetadataCache []*CachedModule

	// Source map options, consumed only by downstream output generation.
	SourceMapPrefix       string
	SourceMapRoots        []string
	SourceMapEmbedSources SourceMapEmbedding

	// LookupTracker and ExpectActualTracker are observers passed through to
	// declaration binding.  Nil means the do-nothing defaults.
	LookupTracker       LookupTracker
	ExpectActualTracker ExpectActualTracker
}

// -----------------------------------------------------------------------------

// ModuleConfig owns the validated library set of a compilation and the lazily
// resolved module graph built from it.  A config moves through three states:
// unvalidated, validated (metadata extracted), and resolved (descriptors
// built).  Resolution happens at most once; the resolved lists are returned by
// reference forever after.
type ModuleConfig struct {
	opts Options

	// m guards the state transitions so that validation and graph building
	// each execute exactly once even under concurrent first access.
	m sync.Mutex

	// metadata is the list of blocks extracted during validation, in library
	// order.
	metadata []*metadata.Metadata

	// friends is the set of blocks originating from friend paths.
	friends map[*metadata.Metadata]struct{}

	// validated transitions false to true exactly once.
	validated bool

	// The memoized resolution output.  Non-nil once resolved.
	descriptors       []*ModuleDescriptor
	friendDescriptors []*ModuleDescriptor
}

// NewModuleConfig creates a new, unvalidated module config from the given
// options.
func NewModuleConfig(opts Options) *ModuleConfig {
	return &ModuleConfig{
		opts:    opts,
		friends: make(map[*metadata.Metadata]struct{}),
	}
}

// ModuleName returns the name of the module under compilation.
func (cfg *ModuleConfig) ModuleName() string {
	return cfg.opts.ModuleName
}

// Kind returns the module kind tag.
func (cfg *ModuleConfig) Kind() ModuleKind {
	return cfg.opts.ModuleKind
}

// Libraries returns the configured library paths.
func (cfg *ModuleConfig) Libraries() []string {
	return cfg.opts.Libraries
}

// FriendPaths returns the configured friend paths, or nothing at all if friend
// paths are disabled.
func (cfg *ModuleConfig) FriendPaths() []string {
	if cfg.opts.FriendPathsDisabled {
		return nil
	}

	return cfg.opts.FriendPaths
}

// SourceMapPrefix returns the configured source map prefix.
func (cfg *ModuleConfig) SourceMapPrefix() string {
	return cfg.opts.SourceMapPrefix
}

// SourceMapRoots returns the configured source map source roots.
func (cfg *ModuleConfig) SourceMapRoots() []string {
	return cfg.opts.SourceMapRoots
}

// ShouldGenerateRelativePathsInSourceMap returns whether downstream output
// generation should emit relative source paths: true when neither a prefix nor
// source roots are configured.
func (cfg *ModuleConfig) ShouldGenerateRelativePathsInSourceMap() bool {
	return cfg.opts.SourceMapPrefix == "" && len(cfg.opts.SourceMapRoots) == 0
}

// SourceMapContentEmbedding returns the configured source embedding mode.
func (cfg *ModuleConfig) SourceMapContentEmbedding() SourceMapEmbedding {
	return cfg.opts.SourceMapEmbedSources
}

// LookupTracker returns the configured lookup tracker or the do-nothing
// default.
func (cfg *ModuleConfig) LookupTracker() LookupTracker {
	if cfg.opts.LookupTracker == nil {
		return DoNothingLookupTracker
	}

	return cfg.opts.LookupTracker
}

// ExpectActualTracker returns the configured expect-actual tracker or the
// do-nothing default.
func (cfg *ModuleConfig) ExpectActualTracker() ExpectActualTracker {
	if cfg.opts.ExpectActualTracker == nil {
		return DoNothingExpectActualTracker
	}

	return cfg.opts.ExpectActualTracker
}

// IsAtLeast returns whether the configured language version is at least the
// expected version.  Versions are compared as semantic versions.
func (cfg *ModuleConfig) IsAtLeast(expected string) bool {
	actual := cfg.opts.LanguageVersion
	if actual == "" {
		actual = common.MatchaVersion
	}

	return semver.Compare("v"+actual, "v"+expected) >= 0
}

// -----------------------------------------------------------------------------

// ModuleDescriptors returns the resolved module descriptors: one per metadata
// block plus any cached modules.  The first call validates the libraries in
// strict mode (the first error aborts resolution) and builds the graph; every
// subsequent call returns the identical cached list.
func (cfg *ModuleConfig) ModuleDescriptors() ([]*ModuleDescriptor, error) {
	cfg.m.Lock()
	defer cfg.m.Unlock()

	if err := cfg.resolve(); err != nil {
		return nil, err
	}

	return cfg.descriptors, nil
}

// FriendModuleDescriptors returns the resolved descriptors originating from
// friend paths.  It shares ModuleDescriptors' resolution behavior.
func (cfg *ModuleConfig) FriendModuleDescriptors() ([]*ModuleDescriptor, error) {
	cfg.m.Lock()
	defer cfg.m.Unlock()

	if err := cfg.resolve(); err != nil {
		return nil, err
	}

	return cfg.friendDescriptors, nil
}

// resolve performs the validated-to-resolved transition.  It must be called
// with cfg.m held.
func (cfg *ModuleConfig) resolve() error {
	if cfg.descriptors != nil {
		return nil
	}

	if !cfg.validated {
		strict := &abortReporter{}
		if !cfg.checkLibraries(strict) {
			return strict.err
		}
	}

	descriptors, friendDescriptors, err := cfg.createModuleDescriptors()
	if err != nil {
		return err
	}

	cfg.descriptors = descriptors
	cfg.friendDescriptors = friendDescriptors
	return nil
}

// abortReporter is the strict reporter used for resolution on first use: the
// first error call is recorded as the abort signal and warnings are dropped.
type abortReporter struct {
	err error
}

func (r *abortReporter) Error(msg string) {
	if r.err == nil {
		r.err = errors.New(msg)
	}
}

func (r *abortReporter) Warning(msg string) {}
