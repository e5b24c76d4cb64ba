package mockserver

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/crypto/bcrypt"
)

const (
	// CodeTTL is how long a one-time code stays valid.
	CodeTTL = 10 * time.Minute

	// ResendCooldown is the minimum gap between codes for one address.
	ResendCooldown = 30 * time.Second

	codeDigits      = 6
	cleanupInterval = time.Minute
)

// CooldownError is returned when a code is requested too soon.
type CooldownError struct {
	Wait time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("a code was sent recently, try again in %ds", int(e.Wait.Seconds()+0.5))
}

// CodeStore issues and checks one-time codes. Only bcrypt hashes are kept.
type CodeStore struct {
	codes    *gocache.Cache
	cooldown *gocache.Cache
	ttl      time.Duration
	wait     time.Duration
	now      func() time.Time
}

// NewCodeStore creates a store with the given code lifetime and resend cooldown.
func NewCodeStore(ttl, cooldown time.Duration) *CodeStore {
	return &CodeStore{
		codes:    gocache.New(ttl, cleanupInterval),
		cooldown: gocache.New(cooldown, cleanupInterval),
		ttl:      ttl,
		wait:     cooldown,
		now:      time.Now,
	}
}

func key(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Issue generates a code for email and returns it in clear text so it can
// be delivered. Issuing replaces any previous code.
func (s *CodeStore) Issue(email string) (string, error) {
	k := key(email)
	if _, expires, found := s.cooldown.GetWithExpiration(k); found {
		return "", &CooldownError{Wait: expires.Sub(s.now())}
	}

	code, err := randomDigits(codeDigits)
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.MinCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash code: %w", err)
	}

	s.codes.Set(k, hash, s.ttl)
	s.cooldown.Set(k, s.now(), s.wait)
	return code, nil
}

// Check reports whether code matches the live code for email. A matching
// code is consumed.
func (s *CodeStore) Check(email, code string) bool {
	k := key(email)
	v, found := s.codes.Get(k)
	if !found {
		return false
	}
	hash, ok := v.([]byte)
	if !ok {
		return false
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(code)) != nil {
		return false
	}
	s.codes.Delete(k)
	return true
}

func randomDigits(n int) (string, error) {
	var b strings.Builder
	ten := big.NewInt(10)
	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("failed to generate code: %w", err)
		}
		b.WriteByte(byte('0' + d.Int64()))
	}
	return b.String(), nil
}
