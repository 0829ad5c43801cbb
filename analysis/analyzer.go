// Package analysis orchestrates declaration binding for the module under
// compilation: it creates the new module's descriptor, wires its dependencies
// to the resolved module graph, and hands the file set to an Analyzer.
package analysis

import (
	"matcha/common"
	"matcha/depm"
)

// SourceFile is a pre-parsed source file of the module under compilation.
// Parsing itself happens upstream; this layer sees only the declarations a
// file defines and the names it references.
type SourceFile struct {
	// Path is the absolute path of the source file.
	Path string

	// Decls is the list of symbols the file declares, in source order.
	Decls []*common.Symbol

	// Imports is the list of names the file references from its dependencies.
	Imports []string
}

// Result carries the outcome of a successful binding pass.
type Result struct {
	// Module is the dependency-linked descriptor of the module under
	// compilation.
	Module *depm.ModuleDescriptor

	// Table is the module's bound global symbol table.
	Table map[string]*common.Symbol

	// Trace is the accumulated binding trace, in binding order.
	Trace []string
}

// Analyzer is the declaration-binding contract: analyze the given files
// against the dependency-linked module, producing bound results or an error.
// The friends set grants access to internal-visibility declarations of its
// members.
type Analyzer interface {
	Analyze(files []*SourceFile, module *depm.ModuleDescriptor, friends map[*depm.ModuleDescriptor]struct{}) (*Result, error)
}

// AnalyzeFiles binds the declarations of the given files against the module
// graph resolved by cfg.  It creates the descriptor for the module under
// compilation, assigns it the graph plus built-ins as dependencies, and
// delegates binding to the analyzer.  Binding failures propagate unchanged.
func AnalyzeFiles(files []*SourceFile, cfg *depm.ModuleConfig, analyzer Analyzer) (*Result, error) {
	moduleGraph, err := cfg.ModuleDescriptors()
	if err != nil {
		return nil, err
	}

	friendGraph, err := cfg.FriendModuleDescriptors()
	if err != nil {
		return nil, err
	}

	// Built-ins come from the resolved graph when there is one; a module with
	// no dependencies at all gets the compiler's bundled defaults.
	var builtins *depm.Builtins
	if len(moduleGraph) > 0 {
		builtins = moduleGraph[0].Builtins()
	} else {
		builtins = depm.NewDefaultBuiltins()
	}

	module := depm.NewModuleDescriptor(cfg.ModuleName(), builtins)

	deps := make([]*depm.ModuleDescriptor, 0, len(moduleGraph)+2)
	deps = append(deps, module)
	deps = append(deps, moduleGraph...)

	builtinsMember := false
	for _, dep := range deps {
		if dep == builtins.Module() {
			builtinsMember = true
			break
		}
	}

	if !builtinsMember {
		deps = append(deps, builtins.Module())
	}

	module.SetDependencies(deps)

	friends := make(map[*depm.ModuleDescriptor]struct{}, len(friendGraph))
	for _, friend := range friendGraph {
		friends[friend] = struct{}{}
	}

	return analyzer.Analyze(files, module, friends)
}
