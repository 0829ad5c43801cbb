package common

// MatchaVersion is the current Matcha compiler version as a string.
const MatchaVersion string = "0.4.2"

// MatchaCompilerID is the full identification string of the compiler displayed
// when the user requests the compiler version.
const MatchaCompilerID string = "matchac " + MatchaVersion

// StdlibModuleName is the well-known name of the standard library module.  If a
// library on the search path contains a metadata block with this name, it is
// eligible to supply the built-in symbol set.
const StdlibModuleName string = "matcha"

// MatchaLibExt is the file extension for compiled Matcha libraries.
const MatchaLibExt string = ".mlib"

// MatchaFileExt is the file extension for a Matcha source file.
const MatchaFileExt string = ".mt"

// MatchaBuildFileName is the name of the TOML build profile file located at the
// root of a Matcha project.
const MatchaBuildFileName string = "matcha-build.toml"
