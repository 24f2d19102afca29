package notify

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/straye-as/cpq-api/internal/domain"
)

// ErrInvalidLink is returned for tampered, expired or malformed action links
var ErrInvalidLink = errors.New("invalid or expired link")

// LinkClaims identifies the workflow participant an action link was issued to
type LinkClaims struct {
	WorkflowID string `json:"workflow_id"`
	Role       string `json:"role"`
	Email      string `json:"email"`
	jwt.RegisteredClaims
}

// LinkSigner issues and verifies HMAC signed action link tokens
type LinkSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewLinkSigner(secret string, ttl time.Duration) (*LinkSigner, error) {
	if secret == "" {
		return nil, errors.New("link signing secret is required")
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &LinkSigner{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Sign creates a token for one participant of a workflow
func (s *LinkSigner) Sign(workflowID uuid.UUID, role domain.WorkflowRole, email string) (string, error) {
	now := s.now()
	claims := LinkClaims{
		WorkflowID: workflowID.String(),
		Role:       string(role),
		Email:      email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign link: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns its claims
func (s *LinkSigner) Verify(tokenString string) (*LinkClaims, error) {
	claims := &LinkClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidLink
	}
	if _, err := uuid.Parse(claims.WorkflowID); err != nil {
		return nil, ErrInvalidLink
	}
	return claims, nil
}
