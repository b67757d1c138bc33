package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string such as "12h" or "30m". A value that
// does not parse falls back to the given default, so a typo in config cannot
// leave tokens without an expiry.
func ParseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		// Global logger: config may not be fully loaded at this point.
		log.Warn().Err(err).Str("value", value).Dur("fallback", fallback).Msg("Failed to parse duration, using fallback")
		return fallback
	}
	return duration
}
