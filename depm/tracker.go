package depm

import "matcha/common"

// LookupTracker observes every name lookup performed while binding the module
// under compilation.  Incremental compilation uses the recorded lookups to
// decide which files to rebuild when a dependency changes.
type LookupTracker interface {
	// Record notes that the file at fromPath looked up the given name.
	Record(fromPath, name string)
}

// ExpectActualTracker observes the pairing of expected declarations with their
// actual implementations across modules.
type ExpectActualTracker interface {
	// Report notes that the expected declaration was matched by the actual one.
	Report(expected, actual *common.Symbol)
}

// DoNothingLookupTracker is the default LookupTracker: it discards all
// recorded lookups.
var DoNothingLookupTracker LookupTracker = noopLookupTracker{}

// DoNothingExpectActualTracker is the default ExpectActualTracker.
var DoNothingExpectActualTracker ExpectActualTracker = noopExpectActualTracker{}

type noopLookupTracker struct{}

func (noopLookupTracker) Record(fromPath, name string) {}

type noopExpectActualTracker struct{}

func (noopExpectActualTracker) Report(expected, actual *common.Symbol) {}
