// Package tokens allocates the hidden entry names that carry one sidebar line
// each. A token is two distinct non-format colour codes, so it renders as
// nothing while still being a unique score entry.
//
// The pool is finite: with 17 non-format codes there are 17*16 ordered pairs,
// which is the hard ceiling on lines a single surface can show at once.
package tokens

import (
	"fmt"

	"github.com/aaronzipp/scoreboards/internal/chat"
)

// pool holds every token in allocation order.
var pool = build()

func build() []string {
	var codes []chat.Color
	for _, c := range chat.Values() {
		if !c.IsFormat() {
			codes = append(codes, c)
		}
	}

	out := make([]string, 0, len(codes)*(len(codes)-1))
	for _, first := range codes {
		for _, second := range codes {
			if first == second {
				continue
			}
			out = append(out, first.String()+second.String())
		}
	}
	return out
}

// CapacityError is returned when more tokens are requested than exist.
type CapacityError struct {
	Requested int
	Capacity  int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("cannot allocate %d line tokens: capacity is %d", e.Requested, e.Capacity)
}

// Capacity is the number of distinct tokens available.
func Capacity() int {
	return len(pool)
}

// Allocate returns the first n tokens. The sequence is the same on every call.
func Allocate(n int) ([]string, error) {
	if n <= 0 {
		return []string{}, nil
	}
	if n > len(pool) {
		return nil, &CapacityError{Requested: n, Capacity: len(pool)}
	}
	out := make([]string, n)
	copy(out, pool[:n])
	return out, nil
}
