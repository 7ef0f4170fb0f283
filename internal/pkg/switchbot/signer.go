package switchbot

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const nonceLength = 16

// Signature is the per-request authentication material.  It must not be
// reused: the API rejects stale timestamps and repeated nonces.
type Signature struct {
	Timestamp string
	Nonce     string
	Sign      string
}

// Signer computes base64(HMAC-SHA256(secret, token+t+nonce))
type Signer struct {
	now   func() time.Time
	nonce func() (string, error)
}

func NewSigner() Signer {
	return Signer{
		now:   time.Now,
		nonce: uuidNonce,
	}
}

// WithClock replaces the time source
func (s Signer) WithClock(now func() time.Time) Signer {
	s.now = now
	return s
}

// WithNonceSource replaces the nonce generator
func (s Signer) WithNonceSource(nonce func() (string, error)) Signer {
	s.nonce = nonce
	return s
}

// uniqueness matters here, not secrecy: the hex form of a random uuid
func uuidNonce() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(u[:])[:nonceLength], nil
}

func (s Signer) Sign(token string, secret string) (Signature, error) {
	if secret == "" {
		return Signature{}, &SigningError{Err: errors.New("empty HMAC secret")}
	}

	now := s.now()
	if now.IsZero() || now.Unix() <= 0 {
		return Signature{}, &SigningError{Err: errors.Errorf("system clock unavailable: %s", now)}
	}
	timestamp := strconv.FormatInt(now.UnixNano()/int64(time.Millisecond), 10)

	nonce, err := s.nonce()
	if err != nil {
		return Signature{}, &SigningError{Err: errors.Wrap(err, "generating nonce")}
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token + timestamp + nonce))

	return Signature{
		Timestamp: timestamp,
		Nonce:     nonce,
		Sign:      base64.StdEncoding.EncodeToString(mac.Sum(nil)),
	}, nil
}
