package internal

import (
	"github.com/segmentio/ksuid"
)

// NextCheckId returns a fresh identifier used to correlate the log lines of a
// single guard invocation. ksuid collisions are theoretically possible, but
// not within the lifetime of this process.
func NextCheckId() string {
	return ksuid.New().String()
}
