//go:build !callcounters

package formula

// incrementOpCounter is a no-op without -tags callcounters, so the
// instrumentation costs nothing in the default build.
func incrementOpCounter(op Op) {}
