package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New generates a new ULID string. ULIDs are lexicographically sortable
// by creation time, which keeps flow listings in mount order.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}

// Valid reports whether s parses as a ULID. The {id} handlers use it to
// reject malformed flow ids before touching a registry.
func Valid(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}
