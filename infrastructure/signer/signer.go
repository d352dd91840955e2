package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

var (
	ErrExpiredGrant     = errors.New("grant expired")
	ErrInvalidSignature = errors.New("invalid signature")
)

// IURLSigner mints and verifies time-boxed retrieval URLs for video assets.
type IURLSigner interface {
	// Sign returns a signed URL for the storage key plus its TTL in seconds.
	Sign(storageKey string, now time.Time) (string, int)
	// Verify checks the exp/sig pair presented back at the storage edge.
	Verify(storageKey, expUnix, sig string, now time.Time) error
}

// URLSigner signs storageKey:expiry with HMAC-SHA256. Issuance is a pure
// function of (key, time, TTL, secret); no shared mutable state, so any number
// of concurrent requests can sign without coordination.
type URLSigner struct {
	secret  []byte
	baseURL string
	ttl     time.Duration
}

func NewURLSigner(secret, baseURL string, ttlSeconds int) *URLSigner {
	return &URLSigner{
		secret:  []byte(secret),
		baseURL: baseURL,
		ttl:     time.Duration(ttlSeconds) * time.Second,
	}
}

func (s *URLSigner) Sign(storageKey string, now time.Time) (string, int) {
	expiry := now.UTC().Add(s.ttl)
	exp := strconv.FormatInt(expiry.Unix(), 10)
	sig := s.signature(storageKey, exp)
	// Storage keys are slash-separated paths; escape each segment but keep
	// the separators so the URL routes back to the stream edge.
	path := url.URL{Path: "/stream/" + storageKey}
	signed := fmt.Sprintf("%s%s?exp=%s&sig=%s", s.baseURL, path.EscapedPath(), exp, sig)
	return signed, int(s.ttl / time.Second)
}

func (s *URLSigner) Verify(storageKey, expUnix, sig string, now time.Time) error {
	expSecs, err := strconv.ParseInt(expUnix, 10, 64)
	if err != nil {
		return ErrInvalidSignature
	}
	expected := s.signature(storageKey, expUnix)
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return ErrInvalidSignature
	}
	if now.UTC().Unix() >= expSecs {
		return ErrExpiredGrant
	}
	return nil
}

func (s *URLSigner) signature(storageKey, exp string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(storageKey + ":" + exp))
	return hex.EncodeToString(mac.Sum(nil))
}
