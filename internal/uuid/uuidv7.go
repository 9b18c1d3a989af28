// Package uuid generates UUIDv7 identifiers for database primary keys.
package uuid

import googleuuid "github.com/google/uuid"

// New returns a new UUIDv7 string. UUIDv7 is time-ordered, which keeps
// primary keys roughly insertion-ordered and makes "ORDER BY id" a stable
// tie-break for rows sharing the same date.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// Fallback to a random UUIDv4 if the system clock or entropy
		// source is unavailable.
		return googleuuid.New().String()
	}
	return id.String()
}

// IsValid checks if a string is a valid UUID.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
