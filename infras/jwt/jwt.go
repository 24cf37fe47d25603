package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"riverside/config"
	"riverside/shared/constant"
	"riverside/shared/timezone"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claim")
)

const (
	tokenTypeBearer = "Bearer"
	bearerPrefix    = tokenTypeBearer + " "
)

// Claims binds a session token to one booking draft.
type Claims struct {
	DraftID string `json:"draft_id"`
	jwt.RegisteredClaims
}

// SessionToken is handed to the client that started a draft. A token issued
// while drafts never expire carries no expiry either.
type SessionToken struct {
	Token     string     `json:"token"`
	TokenType string     `json:"token_type"`
	ExpiresIn int64      `json:"expires_in,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// JWT issues and checks draft session tokens.
type JWT interface {
	Issue(draftID string) (*SessionToken, error)
	Validate(tokenString string) (*Claims, error)
}

type Service struct {
	config *config.Config
	now    func() time.Time
}

func New(cfg *config.Config) JWT {
	return NewWithClock(cfg, timezone.Now)
}

func NewWithClock(cfg *config.Config, now func() time.Time) JWT {
	return &Service{
		config: cfg,
		now:    now,
	}
}

// Issue signs a token for draftID. It lives exactly as long as an untouched
// draft, so a token reissued on every draft request never expires before the
// draft does.
func (s *Service) Issue(draftID string) (*SessionToken, error) {
	issuedAt := s.now()
	lifetime := s.config.DraftTTL()
	tokenID := uuid.NewString()

	claims := Claims{
		DraftID: draftID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			Issuer:    s.config.App.Name,
			Subject:   draftID,
			ID:        tokenID,
		},
	}

	res := &SessionToken{TokenType: tokenTypeBearer}

	if lifetime > 0 {
		expiresAt := issuedAt.Add(lifetime)
		claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
		res.ExpiresIn = int64(lifetime.Seconds())
		res.ExpiresAt = &expiresAt
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString([]byte(s.config.Session.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	res.Token = signedToken

	return res, nil
}

// Validate parses a session token and checks its signature, expiry and subject.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(s.config.Session.Secret), nil
	}, jwt.WithIssuer(s.config.App.Name), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.DraftID == constant.Empty || claims.Subject != claims.DraftID {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

// ExtractTokenFromHeader extracts JWT token from Authorization header
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == constant.Empty {
		return constant.Empty, errors.New("authorization header is required")
	}

	token, found := strings.CutPrefix(authHeader, bearerPrefix)
	if !found || token == constant.Empty {
		return constant.Empty, errors.New("authorization header must start with 'Bearer '")
	}

	return token, nil
}
