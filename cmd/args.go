package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"matcha/common"
	"matcha/report"
)

const usage = `Usage: matchac [flags|options] <path to project root>

Flags:
------
-h, --help      Displays usage information (ie. this text).
-v, --version   Displays the current compiler version.
-d, --debug     Whether the compiler should output debug information.

Options:
--------
-ll, --loglevel   Sets the compiler's log-level.  Valid values are:
                    - "verbose" for outputting all messages (default)
                    - "warn" for outputting errors and warnings
                    - "error" for outputting errors only
                    - "silent" for no output
`

// Prints the usage message and exits the compiler with the given exit code.
func printUsage(exitCode int) {
	fmt.Print(usage, "\n")
	os.Exit(exitCode)
}

// argumentError displays an argument error and exits the program.
func argumentError(message string, args ...interface{}) {
	fmt.Print("argument error: ", fmt.Sprintf(message, args...), "\n\n")
	printUsage(1)
}

// argParser is a command-line argument parser.
type argParser struct {
	// The arguments being parsed.
	args []string

	// The argument parser's position within those arguments.
	ndx int
}

// Set containing all the argument names that correspond to options.
var options = map[string]struct{}{
	"ll":        {},
	"-loglevel": {},
}

// nextArg parses the next command-line argument if one exists.  The first
// value is the name of the argument; if the argument is positional, this value
// is empty.  The second value is the value of the argument; if this value is
// empty, the argument is a flag.  The final value indicates whether or not
// there was an argument to parse.
func (ap *argParser) nextArg() (string, string, bool) {
	if ap.ndx < len(ap.args) {
		arg := ap.args[ap.ndx]
		ap.ndx++

		if strings.HasPrefix(arg, "-") { // flag or option
			name := arg[1:]

			if _, ok := options[name]; ok { // option
				// Make sure the option value exists.
				if ap.ndx < len(ap.args) && !strings.HasPrefix(ap.args[ap.ndx], "-") {
					value := ap.args[ap.ndx]
					ap.ndx++
					return name, value, true
				}

				argumentError("option %s requires an argument", strings.TrimLeft(name, "-"))
			} else { // flag
				return name, "", true
			}
		} else { // positional
			return "", arg, true
		}
	}

	// No arguments to parse.
	return "", "", false
}

// useArg attempts to use a single command-line argument to initialize the
// compiler.  If the argument is invalid, the program will exit.
func useArg(c *Compiler, name, value string) {
	switch name {
	case "h", "-help":
		printUsage(0)
	case "v", "-version":
		fmt.Println(common.MatchaCompilerID)
		os.Exit(0)
	case "d", "-debug":
		c.debug = true
	case "ll", "-loglevel":
		switch value {
		case "silent":
			report.InitReporter(report.LogLevelSilent)
		case "error":
			report.InitReporter(report.LogLevelError)
		case "warn":
			report.InitReporter(report.LogLevelWarn)
		case "verbose":
			report.InitReporter(report.LogLevelVerbose)
		default:
			argumentError("invalid log level")
		}
	case "":
		if c.rootAbsPath == "" {
			absPath, err := filepath.Abs(value)
			if err != nil {
				argumentError("invalid root path: %s", value)
			}

			c.rootAbsPath = absPath
		} else {
			argumentError("root path specified multiple times")
		}
	default:
		argumentError("unknown flag: %s", name)
	}
}

// NewCompilerFromArgs creates a new compiler instance based on the given
// command-line arguments if the arguments are valid and compilation should
// continue: eg. if the user requests the compiler version, then compilation
// should not continue.
func NewCompilerFromArgs() *Compiler {
	c := &Compiler{}

	ap := argParser{args: os.Args[1:]}

	// Parse all command-line arguments.
	for {
		name, value, ok := ap.nextArg()
		if !ok {
			break
		}

		useArg(c, name, value)
	}

	// Check to make sure a root path was specified.
	if c.rootAbsPath == "" {
		argumentError("a root path must be specified")
	}

	return c
}
