package storage

import (
	"net/url"
	"strings"
)

// HasEmbeddedCredentials reports whether a postgres connection string
// carries a password inline. Inline passwords end up in shell history and
// process listings, so the CLI rejects them and points users at the keyring
// or environment instead.
func HasEmbeddedCredentials(connString string) bool {
	if strings.HasPrefix(connString, "postgres://") || strings.HasPrefix(connString, "postgresql://") {
		u, err := url.Parse(connString)
		if err != nil {
			// Unparseable strings are treated as suspect
			return strings.Contains(connString, "@") && strings.Contains(connString, ":")
		}
		if u.User != nil {
			if _, hasPassword := u.User.Password(); hasPassword {
				return true
			}
		}
		return false
	}

	// DSN format: host=... user=... password=...
	for _, field := range strings.Fields(connString) {
		if strings.HasPrefix(field, "password=") && len(field) > len("password=") {
			return true
		}
	}
	return false
}
