package identity

import (
	"regexp"
	"strings"

	"petshub/internal/platform/apperr"
)

// Kind distingue el espacio de identidad de quien pide (y por ende el ledger de likes).
type Kind string

const (
	KindNone      Kind = ""
	KindUser      Kind = "user"
	KindAnonymous Kind = "anonymous"
)

const MaxAnonymousIDLen = 128

var ErrInvalidAnonymousID = apperr.New(apperr.CodeValidation, "invalid X-Anonymous-Id")

var anonIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// Identity es exactamente una de: usuario autenticado, visitante anónimo o nadie.
type Identity struct {
	Kind Kind
	ID   string
}

var None = Identity{}

func User(id string) Identity { return Identity{Kind: KindUser, ID: id} }

func Anonymous(id string) Identity { return Identity{Kind: KindAnonymous, ID: id} }

func (i Identity) IsNone() bool      { return i.Kind == KindNone }
func (i Identity) IsUser() bool      { return i.Kind == KindUser }
func (i Identity) IsAnonymous() bool { return i.Kind == KindAnonymous }

func (i Identity) String() string {
	if i.IsNone() {
		return "none"
	}
	return string(i.Kind) + ":" + i.ID
}

// Resolve combina el user id verificado (si hay) y el anonymous id del header.
// El usuario autenticado siempre gana; el anonymous id solo se valida cuando se usa.
func Resolve(userID, anonID string) (Identity, error) {
	if uid := strings.TrimSpace(userID); uid != "" {
		return User(uid), nil
	}

	aid := strings.TrimSpace(anonID)
	if aid == "" {
		return None, nil
	}
	if !ValidAnonymousID(aid) {
		return None, ErrInvalidAnonymousID
	}
	return Anonymous(aid), nil
}

func ValidAnonymousID(id string) bool {
	return anonIDPattern.MatchString(id)
}
