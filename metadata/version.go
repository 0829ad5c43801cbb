// Package metadata implements the codec for compiled Matcha libraries: files
// containing one or more versioned metadata blocks, each describing the
// declarations of a single previously compiled module.
package metadata

import "fmt"

// Version is the binary version of a metadata block.  Versions are ordered
// tuples: they are compared component-wise, major first.
type Version struct {
	Major, Minor, Patch uint16
}

// CurrentVersion is the metadata version produced and expected by this
// compiler.
var CurrentVersion = Version{Major: 1, Minor: 3, Patch: 0}

// IsCompatible returns whether metadata with this version can be loaded by the
// current compiler.  A block is compatible if it has the same major version and
// a minor version no newer than the current one: patch changes never affect the
// format.
func (v Version) IsCompatible() bool {
	return v.Major == CurrentVersion.Major && v.Minor <= CurrentVersion.Minor
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
