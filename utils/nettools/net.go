// Package nettools contains helpers working on raw socket descriptors.
package nettools

import "time"

// pollSlice bounds a single blocking poll so the process doesn't hang in
// syscalls and cancellation is noticed in time.
const pollSlice = 50 * time.Millisecond
