package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"matcha/analysis"
	"matcha/common"
	"matcha/depm"
	"matcha/report"

	"github.com/kr/pretty"
)

// Compiler represents the global state of the compiler.
type Compiler struct {
	// rootAbsPath is the absolute path to the project root.
	rootAbsPath string

	// debug indicates whether the compiler should output debug information.
	debug bool

	// config owns the validated library set and the resolved module graph.
	config *depm.ModuleConfig

	// result is the outcome of declaration binding, consumed by later phases.
	result *analysis.Result
}

// NewCompiler creates a new compiler rooted at the given path.
func NewCompiler(rootRelPath string) *Compiler {
	rootAbsPath, err := filepath.Abs(rootRelPath)
	if err != nil {
		report.ReportFatal("error calculating absolute path: %s", err)
		return nil
	}

	return &Compiler{rootAbsPath: rootAbsPath}
}

// Analyze runs the module-resolution and declaration-binding phase of the
// compiler.
func (c *Compiler) Analyze() bool {
	// Load the build profile of the project being compiled.
	opts, ok := LoadProfile(c.rootAbsPath)
	if !ok {
		return false
	}

	if c.debug {
		fmt.Printf("%# v\n", pretty.Formatter(opts))
	}

	c.config = depm.NewModuleConfig(opts)

	report.ReportCompileHeader(opts.ModuleName, len(opts.Libraries))

	// Validate the libraries leniently first so the user sees every warning
	// before resolution aborts on the first error.
	if !c.config.CheckLibraries(report.ConsoleReporter{}) {
		return false
	}

	// Collect the source files of the module under compilation.
	files, ok := c.collectSourceFiles()
	if !ok {
		return false
	}

	// Bind declarations against the resolved module graph.
	result, err := analysis.AnalyzeFiles(files, c.config, analysis.NewDeclarationBinder(c.config))
	if err != nil {
		report.ReportModuleError("%s", err)
		return false
	}

	c.result = result

	if c.debug {
		for _, dep := range result.Module.Dependencies() {
			fmt.Printf("dep: %s\n", dep.Name())
		}
	}

	return report.ShouldProceed()
}

// collectSourceFiles lists the Matcha source files of the project.  The files
// are handed to analysis unparsed: the parser runs upstream of this layer and
// attaches declarations before binding in the full pipeline.
func (c *Compiler) collectSourceFiles() ([]*analysis.SourceFile, bool) {
	finfos, err := os.ReadDir(c.rootAbsPath)
	if err != nil {
		report.ReportFatal("failed to read project directory: %s", err)
		return nil, false
	}

	var files []*analysis.SourceFile
	for _, finfo := range finfos {
		if !finfo.IsDir() && filepath.Ext(finfo.Name()) == common.MatchaFileExt {
			files = append(files, &analysis.SourceFile{
				Path: filepath.Join(c.rootAbsPath, finfo.Name()),
			})
		}
	}

	return files, true
}
