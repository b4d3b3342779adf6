package crypto

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// TokenTTL is how long an issued token stays valid.
	TokenTTL = time.Hour

	tokenIssuer   = "preptrack"
	tokenAudience = "preptrack-api"
)

var (
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrSigningKeyUnavailable = errors.New("token signing key unavailable")
)

// InvalidReason tells why a token failed verification.
type InvalidReason int

const (
	ReasonMalformed InvalidReason = iota + 1
	ReasonExpired
	ReasonBadSignature
)

func (r InvalidReason) String() string {
	switch r {
	case ReasonMalformed:
		return "malformed"
	case ReasonExpired:
		return "expired"
	case ReasonBadSignature:
		return "bad signature"
	default:
		return "unknown"
	}
}

// InvalidTokenError is returned by Verify. It matches ErrInvalidToken with errors.Is.
type InvalidTokenError struct {
	Reason InvalidReason
	Err    error
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("invalid token (%s): %v", e.Reason, e.Err)
}

func (e *InvalidTokenError) Unwrap() error { return e.Err }

func (e *InvalidTokenError) Is(target error) bool { return target == ErrInvalidToken }

// Claims represents the JWT claims for preptrack sessions.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// TokenService issues and verifies stateless session tokens.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

type TokenOption func(*TokenService)

// WithClock overrides the time source used for issuing and verifying.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

func NewTokenService(secret string, opts ...TokenOption) *TokenService {
	s := &TokenService{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue creates a signed token for userID that expires TokenTTL from now.
func (s *TokenService) Issue(userID int64) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrSigningKeyUnavailable
	}

	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigningKeyUnavailable, err)
	}
	return signed, nil
}

// Verify checks the token's signature and expiry and returns the user it was issued to.
func (s *TokenService) Verify(tokenString string) (int64, error) {
	if tokenString == "" {
		return 0, &InvalidTokenError{Reason: ReasonMalformed, Err: jwt.ErrTokenMalformed}
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		if len(s.secret) == 0 {
			return nil, ErrSigningKeyUnavailable
		}
		return s.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return 0, &InvalidTokenError{Reason: classify(err), Err: err}
	}
	if !token.Valid || claims.UserID == 0 {
		return 0, &InvalidTokenError{Reason: ReasonMalformed, Err: jwt.ErrTokenInvalidClaims}
	}

	return claims.UserID, nil
}

func classify(err error) InvalidReason {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ReasonExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ReasonBadSignature
	default:
		return ReasonMalformed
	}
}
