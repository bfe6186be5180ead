package catalog

import (
	"strconv"
	"time"
)

// nextID derives an id from the creation time in milliseconds. When that
// value is already taken by an existing product it is bumped until free.
func nextID(now time.Time, existing []Product) string {
	taken := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		taken[p.ID] = struct{}{}
	}
	candidate := now.UnixMilli()
	for {
		id := strconv.FormatInt(candidate, 10)
		if _, ok := taken[id]; !ok {
			return id
		}
		candidate++
	}
}
