package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNoToken indicates that the request carried no session token.
	ErrNoToken = errors.New("no session token")
	// ErrInvalidToken indicates a token that failed verification.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrVerifierDisabled indicates that no verification key is configured.
	ErrVerifierDisabled = errors.New("session verification is not configured")
)

// Session is the authenticated caller.
type Session struct {
	UserID   string
	Role     Role
	SchoolID string
	StateID  string
}

// Metadata is the public metadata the identity provider embeds in session tokens.
type Metadata struct {
	Role     string `json:"role,omitempty"`
	SchoolID string `json:"schoolId,omitempty"`
	StateID  string `json:"stateId,omitempty"`
	TeamID   string `json:"teamId,omitempty"`
}

// Claims are the session token claims.
type Claims struct {
	Metadata Metadata `json:"metadata"`
	jwt.RegisteredClaims
}

// Verifier checks session tokens.
type Verifier struct {
	key     any
	methods []string
}

// NewVerifier builds a verifier from an RS256 PEM public key or an HS256 secret.
// With neither, every token is rejected with ErrVerifierDisabled.
func NewVerifier(publicKeyPEM, secret string) (*Verifier, error) {
	switch {
	case publicKeyPEM != "":
		// keys passed through env files often carry escaped newlines
		pem := strings.ReplaceAll(publicKeyPEM, `\n`, "\n")
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pem))
		if err != nil {
			return nil, fmt.Errorf("parse session public key: %w", err)
		}
		return &Verifier{key: key, methods: []string{jwt.SigningMethodRS256.Alg()}}, nil
	case secret != "":
		return &Verifier{key: []byte(secret), methods: []string{jwt.SigningMethodHS256.Alg()}}, nil
	default:
		return &Verifier{}, nil
	}
}

// Enabled reports whether a verification key is configured.
func (v *Verifier) Enabled() bool {
	return v != nil && v.key != nil
}

// Verify parses and validates a token.
func (v *Verifier) Verify(token string) (*Session, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	if !v.Enabled() {
		return nil, ErrVerifierDisabled
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return v.key, nil },
		jwt.WithValidMethods(v.methods),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return &Session{
		UserID:   claims.Subject,
		Role:     Role(claims.Metadata.Role),
		SchoolID: claims.Metadata.SchoolID,
		StateID:  claims.Metadata.StateID,
	}, nil
}
