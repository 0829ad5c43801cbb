package analysis

import (
	"fmt"

	"matcha/common"
	"matcha/depm"
)

// DeclarationBinder is the default Analyzer.  It declares each file's
// definitions into the new module's global table and then resolves every
// referenced name by walking the module's dependencies in order.  It performs
// no type checking: binding stops at "every name maps to exactly one visible
// declaration".
type DeclarationBinder struct {
	lookupTracker depm.LookupTracker
}

// NewDeclarationBinder creates a declaration binder using the trackers
// configured on cfg.
func NewDeclarationBinder(cfg *depm.ModuleConfig) *DeclarationBinder {
	return &DeclarationBinder{lookupTracker: cfg.LookupTracker()}
}

// Analyze implements the Analyzer contract.
func (b *DeclarationBinder) Analyze(files []*SourceFile, module *depm.ModuleDescriptor, friends map[*depm.ModuleDescriptor]struct{}) (*Result, error) {
	table := make(map[string]*common.Symbol)
	var trace []string

	// Declare all global symbols before resolving any references so that
	// declaration order between files never matters.
	var declared []*common.Symbol
	for _, file := range files {
		for _, sym := range file.Decls {
			if _, ok := table[sym.Name]; ok {
				return nil, fmt.Errorf("symbol defined multiple times: `%s`", sym.Name)
			}

			table[sym.Name] = sym
			declared = append(declared, sym)
			trace = append(trace, fmt.Sprintf("declare `%s` in %s", sym.Name, module.Name()))
		}
	}

	module.Initialize(depm.NewTableProvider(declared))

	for _, file := range files {
		for _, name := range file.Imports {
			b.lookupTracker.Record(file.Path, name)

			owner, ok := b.resolve(name, module, friends)
			if !ok {
				return nil, fmt.Errorf("undefined symbol: `%s`", name)
			}

			trace = append(trace, fmt.Sprintf("bind `%s` to %s", name, owner.Name()))
		}
	}

	return &Result{Module: module, Table: table, Trace: trace}, nil
}

// resolve finds the first visible declaration of name by querying the module's
// dependency providers in dependency-list order, returning the owning module.
// A declaration in a dependency is visible if it is exported or if the
// dependency is a friend; the module's own declarations are always visible.
func (b *DeclarationBinder) resolve(name string, module *depm.ModuleDescriptor, friends map[*depm.ModuleDescriptor]struct{}) (*depm.ModuleDescriptor, bool) {
	for _, dep := range module.Dependencies() {
		sym, ok := dep.Provider().Lookup(name)
		if !ok {
			continue
		}

		if dep == module || sym.Exported {
			return dep, true
		}

		if _, isFriend := friends[dep]; isFriend {
			return dep, true
		}
	}

	return nil, false
}
