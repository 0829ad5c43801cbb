// Package depm implements the module-resolution layer of the compiler: it
// validates compiled libraries, extracts their metadata, and assembles the
// fully linked graph of module descriptors that semantic analysis binds
// against.
package depm

import (
	"matcha/common"
	"matcha/metadata"
)

// DeclarationProvider is the lookup surface of a module: it maps names to the
// symbols the module declares.
type DeclarationProvider interface {
	// Lookup attempts to retrieve a declared symbol by name.
	Lookup(name string) (*common.Symbol, bool)
}

// TableProvider is a DeclarationProvider backed by an in-memory symbol table.
type TableProvider struct {
	table map[string]*common.Symbol
}

// NewTableProvider creates a table provider over the given symbols.  If two
// symbols share a name, the first one wins.
func NewTableProvider(syms []*common.Symbol) *TableProvider {
	table := make(map[string]*common.Symbol, len(syms))
	for _, sym := range syms {
		if _, ok := table[sym.Name]; !ok {
			table[sym.Name] = sym
		}
	}

	return &TableProvider{table: table}
}

func (tp *TableProvider) Lookup(name string) (*common.Symbol, bool) {
	sym, ok := tp.table[name]
	return sym, ok
}

// CompositeProvider is a DeclarationProvider which queries an ordered list of
// providers: the first provider to know a name supplies its symbol.  This is
// how the standard library module exposes both its decoded declarations and
// the synthetic built-in declarations.
type CompositeProvider struct {
	providers []DeclarationProvider
}

// NewCompositeProvider creates a composite provider.  Providers are queried in
// the order given.
func NewCompositeProvider(providers ...DeclarationProvider) *CompositeProvider {
	return &CompositeProvider{providers: providers}
}

func (cp *CompositeProvider) Lookup(name string) (*common.Symbol, bool) {
	for _, p := range cp.providers {
		if sym, ok := p.Lookup(name); ok {
			return sym, true
		}
	}

	return nil, false
}

// -----------------------------------------------------------------------------

// ModuleDescriptor is a resolved semantic module: a named declaration provider
// together with the list of modules visible to it.  Descriptors are immutable
// once their provider and dependencies are set and are safe for concurrent
// read-only use.
type ModuleDescriptor struct {
	// name is the display name of the module in special form: `<name>`.
	name string

	// builtins is the built-ins instance shared by every module in the graph.
	builtins *Builtins

	// provider is the module's declaration provider.  Set exactly once.
	provider DeclarationProvider

	// deps is the module's dependency list.  Set exactly once.
	deps    []*ModuleDescriptor
	depsSet bool
}

// NewModuleDescriptor creates a new module descriptor with the given plain
// name.  The descriptor must be initialized with a provider and assigned its
// dependencies before it is published to callers.
func NewModuleDescriptor(name string, builtins *Builtins) *ModuleDescriptor {
	return &ModuleDescriptor{name: "<" + name + ">", builtins: builtins}
}

// Name returns the display name of the module: `<name>`.
func (m *ModuleDescriptor) Name() string {
	return m.name
}

// Builtins returns the built-ins instance this module was created against.
func (m *ModuleDescriptor) Builtins() *Builtins {
	return m.builtins
}

// Provider returns the module's declaration provider.
func (m *ModuleDescriptor) Provider() DeclarationProvider {
	return m.provider
}

// Initialize sets the module's declaration provider.  A module may only be
// initialized once.
func (m *ModuleDescriptor) Initialize(provider DeclarationProvider) {
	if m.provider != nil {
		panic("module " + m.name + " initialized more than once")
	}

	m.provider = provider
}

// Dependencies returns the module's dependency list.  The returned slice must
// not be mutated.
func (m *ModuleDescriptor) Dependencies() []*ModuleDescriptor {
	return m.deps
}

// SetDependencies assigns the module's dependency list.  Dependencies may only
// be set once; the list is copied so later changes to the argument cannot leak
// into the descriptor.
func (m *ModuleDescriptor) SetDependencies(deps []*ModuleDescriptor) {
	if m.depsSet {
		panic("dependencies of module " + m.name + " set more than once")
	}

	m.deps = append([]*ModuleDescriptor(nil), deps...)
	m.depsSet = true
}

// -----------------------------------------------------------------------------

// providerFromBlock builds a module's declaration provider by decoding the
// header and body payloads of its metadata block.
func providerFromBlock(block *metadata.Metadata) (DeclarationProvider, error) {
	syms, err := metadata.DecodeDeclarations(block.Header, block.Body)
	if err != nil {
		return nil, err
	}

	return NewTableProvider(syms), nil
}
