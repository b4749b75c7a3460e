package service

import "crypto/subtle"

// CredentialVerifier compares a stored credential against a presented one.
// The comparison is behind this interface so a hashing scheme can replace
// the current plaintext storage without touching login call sites.
type CredentialVerifier interface {
	Verify(stored, presented string) bool
}

// PlaintextVerifier compares passwords as stored, in constant time. Matches
// the legacy behaviour: passwords are persisted unhashed. Known security
// gap, kept deliberately visible rather than silently fixed.
type PlaintextVerifier struct{}

// Verify reports whether the presented password equals the stored one.
func (PlaintextVerifier) Verify(stored, presented string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}
