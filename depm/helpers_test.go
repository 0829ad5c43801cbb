package depm

import (
	"os"
	"path/filepath"
	"testing"

	"matcha/common"
	"matcha/metadata"

	"github.com/stretchr/testify/require"
)

// testReporter collects diagnostics for assertions.
type testReporter struct {
	errors   []string
	warnings []string
}

func (r *testReporter) Error(msg string) {
	r.errors = append(r.errors, msg)
}

func (r *testReporter) Warning(msg string) {
	r.warnings = append(r.warnings, msg)
}

// makeBlock builds a metadata block declaring the given symbols.
func makeBlock(name string, version metadata.Version, syms ...*common.Symbol) *metadata.Metadata {
	header, body := metadata.EncodeDeclarations(name, syms)
	return &metadata.Metadata{ModuleName: name, Version: version, Header: header, Body: body}
}

// writeLib writes a library file containing the given blocks and returns its
// path.
func writeLib(t *testing.T, dir, fileName string, blocks ...*metadata.Metadata) string {
	t.Helper()

	path := filepath.Join(dir, fileName)
	require.NoError(t, os.WriteFile(path, metadata.EncodeLibrary(blocks), 0666))
	return path
}

func exportedFunc(name string) *common.Symbol {
	return &common.Symbol{Name: name, DefKind: common.DefKindFunc, Exported: true}
}

func internalFunc(name string) *common.Symbol {
	return &common.Symbol{Name: name, DefKind: common.DefKindFunc}
}
