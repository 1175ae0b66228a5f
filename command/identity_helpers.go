package command

import (
	"strings"

	"github.com/goliatone/go-players/pkg/types"
)

const (
	generatedIdentityPrefix = "user-"
	generatedRandomPrefix   = "player-"
	identityKeyLength       = 8
	defaultDisplayName      = "New Player"
)

// identityKey derives a short stable token from a provider subject. Provider
// ids arrive as "user_2abc1234..."; the prefix carries no entropy and is
// stripped before taking the leading characters.
func identityKey(identityID string) string {
	key := strings.TrimPrefix(identityID, "user_")
	if len(key) > identityKeyLength {
		key = key[:identityKeyLength]
	}
	return strings.ToLower(key)
}

func emailLocalPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return ""
}

// rawHandleHint picks the best provider hint to derive a handle from:
// username, then email local-part, then a token built from the subject id.
func rawHandleHint(identity types.Identity) string {
	if identity.Username != "" {
		return identity.Username
	}
	if local := emailLocalPart(identity.Email); local != "" {
		return local
	}
	return generatedRandomPrefix + identityKey(identity.ID)
}

func displayNameHint(identity types.Identity) string {
	full := strings.TrimSpace(strings.TrimSpace(identity.FirstName) + " " + strings.TrimSpace(identity.LastName))
	if full != "" {
		return full
	}
	if identity.Username != "" {
		return identity.Username
	}
	if local := emailLocalPart(identity.Email); local != "" {
		return local
	}
	return defaultDisplayName
}

// looksGenerated reports whether a handle still carries one of the
// machine-assigned prefixes. Custom handles never match and are therefore
// never overwritten by synchronization.
func looksGenerated(handle string) bool {
	return strings.HasPrefix(handle, generatedIdentityPrefix) ||
		strings.HasPrefix(handle, generatedRandomPrefix)
}
