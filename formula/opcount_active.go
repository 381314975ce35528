//go:build callcounters

package formula

// incrementOpCounter is only compiled with -tags callcounters; the
// default build uses opcount_inactive.go's no-op instead, per
// Bandersnatch's callcounters_active.go/callcounters_inactive.go split.
func incrementOpCounter(op Op) {
	counterFor(op).Increment()
}
