package tests

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrMockWrite is returned by storage writes failed by FailWrites.
var ErrMockWrite = errors.New("Mock write failure")

// FailWrites fails every storage write whose key contains any of the substrings. Call with no
// arguments to clear.
func (test *Test) FailWrites(substrings ...string) {
	if len(substrings) == 0 {
		test.Storage.FailWrite = nil
		return
	}

	test.Storage.FailWrite = func(key string) error {
		for _, s := range substrings {
			if strings.Contains(key, s) {
				return errors.Wrap(ErrMockWrite, key)
			}
		}
		return nil
	}
}
