package constants

import (
	"time"
)

// Redis key layout
// Pattern: tvoja-karta:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_SEMI_STATIC_SHORT = 1 * time.Hour // catalog rows, reseeded rarely
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "tvoja-karta"
)

// ================== CATALOG MODULE ==================

const (
	CACHE_KEY_CATALOG_EVENTS = CACHE_PREFIX + ":catalog:events:all"
)

const (
	TTL_CATALOG_EVENTS = TTL_SEMI_STATIC_SHORT
)

// ================== PREFERENCES MODULE ==================

// Preference keys hang off the client id: tvoja-karta:<client>:<name>
const (
	PREFERENCE_KEY_LANGUAGE           = "language"
	PREFERENCE_KEY_COOKIE_CONSENT     = "cookie-consent"
	PREFERENCE_KEY_COOKIE_PREFERENCES = "cookie-preferences"
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_CATALOG_ALL = CACHE_PREFIX + ":catalog:*"
)

// ================== HELPER FUNCTIONS ==================

// BuildPreferenceKey -> "tvoja-karta:<client>:language"
func BuildPreferenceKey(clientID, name string) string {
	return CACHE_PREFIX + ":" + clientID + ":" + name
}
