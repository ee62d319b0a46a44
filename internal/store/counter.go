package store

import "strconv"

// CounterIDs returns an IDFunc yielding prefix-1, prefix-2, ... It gives
// reproducible ids for seeded runs and tests.
func CounterIDs(prefix string) IDFunc {
	n := 0
	return func() (string, error) {
		n++
		return prefix + "-" + strconv.Itoa(n), nil
	}
}
