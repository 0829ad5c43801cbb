package depm

import (
	"matcha/common"
	"matcha/metadata"
)

// builtinsModuleName is the plain name of the compiler-bundled built-ins
// module.
const builtinsModuleName = "builtins"

// Builtins supplies the language's foundational types: the symbols assumed to
// exist without explicit declaration.  Exactly one instance exists per
// ModuleConfig and every resolved module depends on its module.
type Builtins struct {
	// module is the module descriptor supplying the built-in declarations.
	// Either the compiler-bundled default or the standard library's own
	// descriptor when built-ins are stdlib-sourced.
	module *ModuleDescriptor

	// fromStdlib indicates that the built-ins module is one of the descriptors
	// decoded from the libraries rather than the bundled default.
	fromStdlib bool
}

// Module returns the module descriptor supplying the built-in declarations.
func (b *Builtins) Module() *ModuleDescriptor {
	return b.module
}

// FromStdlib returns whether built-ins were sourced from the standard library
// module found among the libraries.
func (b *Builtins) FromStdlib() bool {
	return b.fromStdlib
}

// -----------------------------------------------------------------------------

// builtinSymbols returns the compiler-bundled built-in declarations.  These
// are visible in every module without being imported.
func builtinSymbols() []*common.Symbol {
	names := []string{"Any", "Unit", "Nothing", "Bool", "Int", "Float", "Rune", "String"}

	syms := make([]*common.Symbol, len(names))
	for i, name := range names {
		syms[i] = &common.Symbol{
			Name:       name,
			ModuleName: builtinsModuleName,
			DefKind:    common.DefKindType,
			Exported:   true,
		}
	}

	return syms
}

// newBuiltinsProvider creates the synthetic declaration provider carrying the
// compiler-bundled built-in symbols.
func newBuiltinsProvider() DeclarationProvider {
	return NewTableProvider(builtinSymbols())
}

// NewDefaultBuiltins creates a built-ins instance backed by the compiler's
// bundled defaults.  The built-ins module depends only on itself.
func NewDefaultBuiltins() *Builtins {
	b := &Builtins{}

	module := NewModuleDescriptor(builtinsModuleName, b)
	module.Initialize(newBuiltinsProvider())
	module.SetDependencies([]*ModuleDescriptor{module})

	b.module = module
	return b
}

// resolveBuiltins decides where built-ins come from.  If loadFromStdlib is set
// and one of the blocks is the standard library module, built-ins are derived
// from that block: the returned instance has no module yet (the graph builder
// assigns the stdlib descriptor once it is constructed) and the chosen block is
// returned alongside.  Otherwise the compiler-bundled defaults are used and the
// returned block is nil regardless of whether a stdlib block existed.
func resolveBuiltins(blocks []*metadata.Metadata, loadFromStdlib bool) (*Builtins, *metadata.Metadata) {
	if loadFromStdlib {
		for _, block := range blocks {
			if block.ModuleName == common.StdlibModuleName {
				return &Builtins{fromStdlib: true}, block
			}
		}
	}

	return NewDefaultBuiltins(), nil
}
