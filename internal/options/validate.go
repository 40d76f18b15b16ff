// Package options provides shared utilities for option validation across packages.
package options

import "errors"

// ExactlyOne ensures exactly one input source is specified.
// sources is a variadic list of booleans indicating whether each source is
// set. noSourceMsg is the error message when no source is specified,
// multiSourceMsg when more than one is.
func ExactlyOne(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	count := 0
	for _, set := range sources {
		if set {
			count++
		}
	}

	if count == 0 {
		return errors.New(noSourceMsg)
	}
	if count > 1 {
		return errors.New(multiSourceMsg)
	}
	return nil
}
