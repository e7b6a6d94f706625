// SPDX-License-Identifier: MIT

package markov

import "fmt"

// wrapf prefixes a formatted error with the operation tag. The format must
// contain exactly one %w verb for the sentinel.
func wrapf(op, format string, args ...any) error {
	return fmt.Errorf(op+": "+format, args...)
}
