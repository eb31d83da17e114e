package passwords

import (
	"crypto/sha1"
	"encoding/hex"
)

// SecurityStatus is the security level the server computed for a password.
type SecurityStatus int

const (
	SecurityOK                SecurityStatus = 0
	SecurityUserRulesViolated SecurityStatus = 1
	SecurityBreached          SecurityStatus = 2
)

func (s SecurityStatus) String() string {
	switch s {
	case SecurityOK:
		return "ok"
	case SecurityUserRulesViolated:
		return "user rules violated"
	case SecurityBreached:
		return "breached"
	default:
		return "unknown"
	}
}

// StatusCode explains a password's SecurityStatus.
type StatusCode string

const (
	StatusGood      StatusCode = "GOOD"
	StatusOutdated  StatusCode = "OUTDATED"
	StatusDuplicate StatusCode = "DUPLICATE"
	StatusBreached  StatusCode = "BREACHED"
)

// HashPassword returns the hash the server expects next to a password on
// create and update: the hex encoded SHA-1 of the secret.
func HashPassword(secret string) string {
	sum := sha1.Sum([]byte(secret))
	return hex.EncodeToString(sum[:])
}
