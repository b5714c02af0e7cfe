// File: utils/constants.go
package utils

import "time"

// RefreshTokenPrefix is the prefix used for Redis refresh-token keys.
const RefreshTokenPrefix = "refresh:"

// AuthCacheTTL is the default time-to-live for auth cache entries.
const AuthCacheTTL = 10 * time.Minute
