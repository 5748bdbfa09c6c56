// ABOUTME: Package backends links the default set of backend providers into a binary
// ABOUTME: Build tags notermios and notcell leave a provider out, as if it were never compiled

// Package backends registers every provider this module ships. Import it
// for side effects:
//
//	import _ "github.com/mauromedda/termroot/pkg/tui/backends"
package backends
