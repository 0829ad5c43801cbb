// Package cmd is the top-level "driver" package for the Matcha compiler: it
// contains the functionality for parsing command-line arguments, managing
// compiler state, and running the phases of compilation this layer owns.
package cmd

import "matcha/report"

// RunCompiler is the main entry point for the Matcha compiler.  This should be
// called directly from main.  It returns the process exit code.
func RunCompiler() int {
	c := NewCompilerFromArgs()

	ok := c.Analyze()

	report.ReportCompilationFinished()

	if !ok {
		return 1
	}

	return 0
}
