package security

import (
	"strings"

	"github.com/amirhosseinghanipour/orgauth/internal/application/ports"
)

// MultiHasher hashes with a primary scheme and verifies any supported stored scheme,
// so bcrypt hashes from earlier deployments keep working after switching to Argon2id.
type MultiHasher struct {
	primary ports.PasswordHasher
	argon2  *Argon2Hasher
	bcrypt  *BcryptHasher
}

// NewMultiHasher builds a MultiHasher. primary must be one of argon or bc.
func NewMultiHasher(primary ports.PasswordHasher, argon *Argon2Hasher, bc *BcryptHasher) *MultiHasher {
	return &MultiHasher{primary: primary, argon2: argon, bcrypt: bc}
}

func (h *MultiHasher) Hash(password string) (string, error) {
	return h.primary.Hash(password)
}

func (h *MultiHasher) Verify(password, hash string) bool {
	switch {
	case strings.HasPrefix(hash, argon2Prefix) && h.argon2 != nil:
		return h.argon2.Verify(password, hash)
	case isBcryptHash(hash) && h.bcrypt != nil:
		return h.bcrypt.Verify(password, hash)
	default:
		return false
	}
}

var _ ports.PasswordHasher = (*MultiHasher)(nil)
