// SPDX-License-Identifier: MIT
package translate

import "gitlab.com/fisherprime/fortrs/errkind"

// EmissionState tracks the block nesting of the code being emitted.
//
// The zero value is a state at depth 0.
type EmissionState struct {
	depth int
}

// Depth retrieves the current block nesting depth.
func (s *EmissionState) Depth() int { return s.depth }

// Enter opens a block.
func (s *EmissionState) Enter() { s.depth++ }

// Leave closes a block, offset locates the closing construct for error reporting.
func (s *EmissionState) Leave(offset int) error {
	if s.depth < 1 {
		return errkind.NewUnbalancedBlock(offset)
	}
	s.depth--

	return nil
}
