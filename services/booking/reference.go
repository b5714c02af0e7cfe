package booking

import (
	"crypto/rand"
	"fmt"
	"time"
)

// Reference alphabet avoids ambiguous glyphs (0/O, 1/I/L).
const referenceAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

// newBookingReference builds a human-readable reference like
// PF-20260830-X7K2QD. Collisions are caught by the unique index and retried
// by the caller.
func newBookingReference(now time.Time) string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failure means the process is in serious trouble;
		// fall back to a time-derived suffix rather than panicking.
		nano := now.UnixNano()
		for i := range buf {
			buf[i] = referenceAlphabet[nano%int64(len(referenceAlphabet))]
			nano /= int64(len(referenceAlphabet))
		}
	} else {
		for i, b := range buf {
			buf[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
		}
	}
	return fmt.Sprintf("PF-%s-%s", now.Format("20060102"), string(buf))
}
