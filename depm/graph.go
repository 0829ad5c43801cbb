package depm

import (
	"fmt"

	"matcha/metadata"
)

// createModuleDescriptors turns the validated metadata blocks plus any cached
// modules into fully linked module descriptors.  It must be called with cfg.m
// held, after validation.
//
// Every descriptor receives the same flat dependency list: the full set of
// descriptors plus the built-ins module.  Already-compiled modules cannot
// reference the module under compilation, so the graph only needs to support
// lookup; cyclic mutual visibility among them is intentional and no ordering
// is ever derived from it.
func (cfg *ModuleConfig) createModuleDescriptors() ([]*ModuleDescriptor, []*ModuleDescriptor, error) {
	builtins, stdlibBlock := resolveBuiltins(cfg.metadata, cfg.opts.LoadBuiltinsFromStdlib)

	descriptors := make([]*ModuleDescriptor, 0, len(cfg.metadata)+len(cfg.opts.MetadataCache))
	friendDescriptors := make([]*ModuleDescriptor, 0)

	for _, block := range cfg.metadata {
		provider, err := providerFromBlock(block)
		if err != nil {
			return nil, nil, fmt.Errorf("module \"%s\" in `%s`: %w", block.ModuleName, block.FilePath, err)
		}

		// The standard library block supplying built-ins gets an extra
		// capability beyond what its bytes encode: the synthetic built-in
		// declarations, queried after the decoded ones.
		if block == stdlibBlock {
			provider = NewCompositeProvider(provider, newBuiltinsProvider())
		}

		descriptor := NewModuleDescriptor(block.ModuleName, builtins)
		descriptor.Initialize(provider)
		descriptors = append(descriptors, descriptor)

		if _, ok := cfg.friends[block]; ok {
			friendDescriptors = append(friendDescriptors, descriptor)
		}

		if block == stdlibBlock {
			builtins.module = descriptor
		}
	}

	// Cached modules are appended after the freshly built descriptors.  They
	// predate friend tracking and are never friends.
	for _, cached := range cfg.opts.MetadataCache {
		syms, err := metadata.DecodeDeclarations(cached.Header, cached.Body)
		if err != nil {
			return nil, nil, fmt.Errorf("cached module \"%s\": %w", cached.Name, err)
		}

		descriptor := NewModuleDescriptor(cached.Name, builtins)
		descriptor.Initialize(NewTableProvider(syms))
		descriptors = append(descriptors, descriptor)
	}

	// When built-ins were consumed from the stdlib block directly, the
	// built-ins module is already one of the descriptors and must not be
	// appended twice.
	deps := descriptors
	if !builtins.fromStdlib {
		deps = append(descriptors[:len(descriptors):len(descriptors)], builtins.module)
	}

	for _, descriptor := range descriptors {
		descriptor.SetDependencies(deps)
	}

	return descriptors, friendDescriptors, nil
}
