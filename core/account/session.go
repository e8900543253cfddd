// Package account exposes the session-scoped user record the engine
// consumes but does not own: the batch and institution identifiers that
// parameterize every attendance call.
package account

import (
	"errors"

	"github.com/dgrijalva/jwt-go"

	"github.com/trezcool/darasa/core"
)

var (
	// errors
	ErrInvalidToken = errors.New("invalid access token")

	nowFunc = jwt.TimeFunc // mockable
)

// Session is the engine's read-only view of the logged-in user.
type Session struct {
	UserID        string
	Name          string
	BatchID       string
	InstitutionID string
	StaffID       string
}

type claims struct {
	jwt.StandardClaims
	Name          string `json:"name"`
	BatchID       string `json:"batch_id"`
	InstitutionID string `json:"institution_id"`
	StaffID       string `json:"staff_id,omitempty"`
}

// FromToken extracts the session record from the platform's access token.
// Signature verification is the server's job; the engine only reads claims,
// but an expired token is reported as core.ErrSessionExpired so the global
// logout collaborator can react.
func FromToken(token string) (Session, error) {
	var cl claims
	parser := jwt.Parser{}
	if _, _, err := parser.ParseUnverified(token, &cl); err != nil {
		return Session{}, ErrInvalidToken
	}
	if cl.Subject == "" || cl.BatchID == "" {
		return Session{}, ErrInvalidToken
	}
	if cl.ExpiresAt != 0 && cl.ExpiresAt <= nowFunc().Unix() {
		return Session{}, core.ErrSessionExpired
	}
	return Session{
		UserID:        cl.Subject,
		Name:          cl.Name,
		BatchID:       cl.BatchID,
		InstitutionID: cl.InstitutionID,
		StaffID:       cl.StaffID,
	}, nil
}
