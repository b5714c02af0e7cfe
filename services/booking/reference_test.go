package booking

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var referencePattern = regexp.MustCompile(`^PF-\d{8}-[23456789ABCDEFGHJKMNPQRSTUVWXYZ]{6}$`)

func TestNewBookingReference_Format(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC)

	ref := newBookingReference(now)
	require.Regexp(t, referencePattern, ref)
	assert.True(t, strings.HasPrefix(ref, "PF-20260830-"))
}

func TestNewBookingReference_Varies(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		seen[newBookingReference(now)] = true
	}
	// Collisions over 200 draws from a 31^6 space would point at a broken
	// generator, not bad luck.
	assert.Greater(t, len(seen), 195)
}
