// Package token issues and verifies the signed session credential carried by
// the browser. Tokens are self-contained: possession of a validly signed,
// unexpired token is sufficient for authentication, and there is no
// server-side revocation list.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalid is returned for any token that fails verification: bad
// signature, malformed payload, or past expiry. An absent token is not this
// package's concern; the caller treats absence as an anonymous request.
var ErrInvalid = errors.New("invalid session token")

// Claims is the identity embedded in a session token.
type Claims struct {
	AccountID string `json:"account_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies session tokens with HS256. The secret and TTL
// are fixed at construction; rotating the secret invalidates every
// outstanding token.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL returns the fixed token lifetime, which doubles as the session cookie
// max-age.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue returns a signed token embedding claims, expiring TTL from now.
func (i *Issuer) Issue(c Claims) (string, error) {
	now := i.now()
	c.IssuedAt = jwt.NewNumericDate(now)
	c.ExpiresAt = jwt.NewNumericDate(now.Add(i.ttl))
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, &c)
	return t.SignedString(i.secret)
}

// Verify checks signature integrity and expiry and returns the embedded
// claims. Any failure comes back as ErrInvalid.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	var c Claims
	tkn, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !tkn.Valid {
		return nil, ErrInvalid
	}
	return &c, nil
}
