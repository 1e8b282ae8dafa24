package pantry

import (
	_ "embed"
)

// Version is the version of the library and the pantry binary.
//
//go:embed VERSION
var Version string
