package jwt_test

import (
	"testing"
	"time"

	"riverside/config"
	"riverside/infras/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(draftTTLMinutes int) *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "riverside-suites"
	cfg.Session.Secret = "test-secret"
	cfg.Booking.DraftTTLMinutes = draftTTLMinutes

	return cfg
}

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time {
	return c.now
}

func TestIssueAndValidate(t *testing.T) {
	svc := jwt.New(newConfig(60))

	token, err := svc.Issue("draft-1")
	require.NoError(t, err)

	assert.Equal(t, "Bearer", token.TokenType)
	assert.Equal(t, int64(3600), token.ExpiresIn)
	require.NotNil(t, token.ExpiresAt)

	claims, err := svc.Validate(token.Token)
	require.NoError(t, err)

	assert.Equal(t, "draft-1", claims.DraftID)
	assert.Equal(t, "draft-1", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestIssue_LifetimeFollowsDraftTTL(t *testing.T) {
	c := &clock{now: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
	svc := jwt.NewWithClock(newConfig(60), c.Now)

	token, err := svc.Issue("draft-1")
	require.NoError(t, err)
	require.NotNil(t, token.ExpiresAt)
	assert.Equal(t, c.now.Add(time.Hour), *token.ExpiresAt)

	c.now = c.now.Add(59 * time.Minute)
	_, err = svc.Validate(token.Token)
	require.NoError(t, err)

	c.now = c.now.Add(2 * time.Minute)
	_, err = svc.Validate(token.Token)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)
}

func TestIssue_NoExpiryWhenDraftsAreKept(t *testing.T) {
	c := &clock{now: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
	svc := jwt.NewWithClock(newConfig(0), c.Now)

	token, err := svc.Issue("draft-1")
	require.NoError(t, err)
	assert.Zero(t, token.ExpiresIn)
	assert.Nil(t, token.ExpiresAt)

	c.now = c.now.AddDate(1, 0, 0)
	_, err = svc.Validate(token.Token)
	assert.NoError(t, err)
}

func TestValidate_Errors(t *testing.T) {
	valid := jwt.New(newConfig(60))

	issuedAt := time.Now().Add(-2 * time.Hour)
	expiredToken, err := jwt.NewWithClock(newConfig(60), func() time.Time { return issuedAt }).Issue("draft-1")
	require.NoError(t, err)

	otherSecret := newConfig(60)
	otherSecret.Session.Secret = "another-secret"
	foreignToken, err := jwt.New(otherSecret).Issue("draft-1")
	require.NoError(t, err)

	mismatched := gojwt.NewWithClaims(gojwt.SigningMethodHS256, jwt.Claims{
		DraftID: "draft-1",
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:  "riverside-suites",
			Subject: "draft-2",
		},
	})
	mismatchedToken, err := mismatched.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name     string
		token    string
		expected error
	}{
		{name: "expired", token: expiredToken.Token, expected: jwt.ErrExpiredToken},
		{name: "wrong secret", token: foreignToken.Token, expected: jwt.ErrInvalidToken},
		{name: "garbage", token: "not-a-token", expected: jwt.ErrInvalidToken},
		{name: "subject does not match draft", token: mismatchedToken, expected: jwt.ErrInvalidClaim},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := valid.Validate(tt.token)

			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		expected    string
		expectError bool
	}{
		{name: "bearer token", header: "Bearer abc.def.ghi", expected: "abc.def.ghi"},
		{name: "empty header", header: "", expectError: true},
		{name: "wrong scheme", header: "Basic abc", expectError: true},
		{name: "bearer without token", header: "Bearer ", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := jwt.ExtractTokenFromHeader(tt.header)

			if tt.expectError {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, token)
		})
	}
}
