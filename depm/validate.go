package depm

import (
	"fmt"
	"os"

	"matcha/metadata"
	"matcha/report"
)

// CheckLibraries validates the configured libraries and extracts their
// metadata blocks, reporting all diagnostics through the given reporter.  This
// is the lenient pre-check: warnings never stop processing and the caller is
// told about the first fatal condition through both the reporter and the
// returned flag.  It returns false on the first fatal condition and true
// otherwise.  A failed check caches nothing, so calling again is safe.
func (cfg *ModuleConfig) CheckLibraries(rep report.Reporter) bool {
	cfg.m.Lock()
	defer cfg.m.Unlock()

	if cfg.validated {
		return true
	}

	return cfg.checkLibraries(rep)
}

// checkLibraries is the validation walk.  It must be called with cfg.m held.
func (cfg *ModuleConfig) checkLibraries(rep report.Reporter) bool {
	// An empty library list is a valid "no external dependencies"
	// configuration.
	if len(cfg.opts.Libraries) == 0 {
		cfg.validated = true
		return true
	}

	// A retry after a failed check starts over.
	cfg.metadata = nil
	cfg.friends = make(map[*metadata.Metadata]struct{})

	skipSet := make(map[string]struct{}, len(cfg.opts.LibrariesToSkip))
	for _, path := range cfg.opts.LibrariesToSkip {
		skipSet[path] = struct{}{}
	}

	friendSet := make(map[string]struct{}, len(cfg.FriendPaths()))
	for _, path := range cfg.FriendPaths() {
		friendSet[path] = struct{}{}
	}

	// modules accumulates the module names seen across all libraries so that
	// duplicate definitions can be warned about.
	modules := make(map[string]struct{})

	for _, path := range cfg.opts.Libraries {
		if _, ok := skipSet[path]; ok {
			continue
		}

		finfo, err := os.Stat(path)
		if err != nil || finfo.IsDir() {
			rep.Error(fmt.Sprintf("path `%s` does not exist or could not be read", path))
			return false
		}

		blocks, err := metadata.LoadMetadata(path)
		if err != nil {
			rep.Error(fmt.Sprintf("file `%s` could not be read: %s", path, err))
			return false
		}

		// A readable file with no metadata blocks contributes nothing but does
		// not abort the run.
		if len(blocks) == 0 {
			rep.Warning(fmt.Sprintf("`%s` is not a valid compiled Matcha library", path))
			continue
		}

		// The names declared by this library, deduplicated but in block order.
		var moduleNames []string
		seenInLib := make(map[string]struct{})

		for _, block := range blocks {
			if !block.Version.IsCompatible() && !cfg.opts.SkipMetadataVersionCheck {
				rep.Error(fmt.Sprintf(
					"file `%s` was compiled with an incompatible version of Matcha: the binary version of its metadata is %s, expected version is %s",
					path, block.Version, metadata.CurrentVersion,
				))
				return false
			}

			if _, ok := seenInLib[block.ModuleName]; !ok {
				seenInLib[block.ModuleName] = struct{}{}
				moduleNames = append(moduleNames, block.ModuleName)
			}
		}

		for _, name := range moduleNames {
			if _, ok := modules[name]; ok {
				rep.Warning(fmt.Sprintf("module \"%s\" is defined in more than one file", name))
			} else {
				modules[name] = struct{}{}
			}
		}

		if _, ok := modules[cfg.opts.ModuleName]; ok {
			rep.Warning(fmt.Sprintf("module \"%s\" depends on module with the same name", cfg.opts.ModuleName))
		}

		cfg.metadata = append(cfg.metadata, blocks...)

		if _, ok := friendSet[path]; ok {
			for _, block := range blocks {
				cfg.friends[block] = struct{}{}
			}
		}
	}

	cfg.validated = true
	return true
}
