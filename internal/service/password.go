package service

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// passwordHasher wraps bcrypt at a fixed cost.
type passwordHasher struct {
	cost int

	once  sync.Once
	dummy []byte
}

func newPasswordHasher(cost int) *passwordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &passwordHasher{cost: cost}
}

// hash returns the bcrypt hash of plain.
func (h *passwordHasher) hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// verify safely compares a bcrypt hash and a plain password.
func (h *passwordHasher) verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// burn spends the same time as verify against a throwaway hash.  Login
// calls it for unknown emails so response time does not reveal which
// addresses are registered.
func (h *passwordHasher) burn(plain string) {
	h.once.Do(func() {
		h.dummy, _ = bcrypt.GenerateFromPassword([]byte("cinepedia-timing-pad"), h.cost)
	})
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(plain))
}
