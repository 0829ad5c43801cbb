package common

// Symbol represents a semantic symbol: a named declaration belonging to a
// module.  Symbols are produced either by decoding a library's metadata or by
// declaring the definitions of the module under compilation.
type Symbol struct {
	// The name of the symbol.
	Name string

	// The name of the module this symbol is declared in.
	ModuleName string

	// The symbol's kind: what kind of thing this symbol represents.  This must
	// be one of the enumerated definition kinds.
	DefKind int

	// Whether or not the symbol is visible outside its defining module.
	Exported bool

	// The serialized type signature of the symbol.  The type system proper is
	// outside this layer: signatures pass through it opaquely.
	Signature string
}

// Enumeration of different symbol kinds.
const (
	DefKindValue = iota
	DefKindFunc
	DefKindType
)
