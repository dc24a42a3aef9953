package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxNameLength bounds tournament and team names accepted from users.
const MaxNameLength = 200

// ValidateName validates a tournament or team name.
//
// Names are free text, but empty names, control characters and
// overlong input are rejected.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}

	if len(name) > MaxNameLength {
		return New(ErrCodeInvalidInput, "name too long (max %d characters)", MaxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}

	return nil
}

// tournamentIDRegex matches ids generated by the stores (uuids) and
// hand-picked slugs used in fixtures.
var tournamentIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)

// ValidateTournamentID validates a tournament id before it reaches a store.
// File-backed stores use the id as a file name, so anything that could
// escape the store directory is rejected.
func ValidateTournamentID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "tournament id cannot be empty")
	}
	if !tournamentIDRegex.MatchString(id) {
		return New(ErrCodeInvalidID, "invalid tournament id: %q", id)
	}
	return nil
}

// ValidateMatchToken validates a leaf match id.
// Leaf ids are opaque but must be non-empty and must not contain the
// lineage separator.
func ValidateMatchToken(token, separator string) error {
	if token == "" {
		return New(ErrCodeMalformedLineage, "empty match id")
	}
	if strings.Contains(token, separator) {
		return New(ErrCodeMalformedLineage, "leaf match id %q contains separator %q", token, separator)
	}
	for _, r := range token {
		if unicode.IsControl(r) {
			return New(ErrCodeMalformedLineage, "match id %q contains control characters", token)
		}
	}
	return nil
}
