// Package flash carries one-shot user notices across a redirect. Pending messages
// travel in an HS256-signed cookie so they cannot be forged or edited client-side.
package flash

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

func Info(text string) Message    { return Message{Level: LevelInfo, Text: text} }
func Warning(text string) Message { return Message{Level: LevelWarning, Text: text} }
func Danger(text string) Message  { return Message{Level: LevelDanger, Text: text} }
func Success(text string) Message { return Message{Level: LevelSuccess, Text: text} }

// Sink accepts notices for the next page the user sees.
type Sink interface {
	Add(w http.ResponseWriter, r *http.Request, msgs ...Message) error
}

const (
	DefaultCookieName = "ledger_flash"
	defaultTTL        = 5 * time.Minute
)

var ErrEmptySecret = errors.New("flash: signing secret must not be empty")

type claims struct {
	Messages []Message `json:"msgs"`
	jwt.RegisteredClaims
}

var _ Sink = (*Store)(nil)

// Store keeps pending messages in a signed cookie.
type Store struct {
	secret     []byte
	cookieName string
	ttl        time.Duration
	secure     bool
}

func NewStore(secret []byte) (*Store, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	return &Store{
		secret:     secret,
		cookieName: DefaultCookieName,
		ttl:        defaultTTL,
	}, nil
}

// Secure marks the cookie Secure, for deployments behind HTTPS.
func (s *Store) Secure(secure bool) *Store {
	s.secure = secure
	return s
}

// Add appends msgs to whatever is already pending on the request and writes the
// result back as a cookie.
func (s *Store) Add(w http.ResponseWriter, r *http.Request, msgs ...Message) error {
	if len(msgs) == 0 {
		return nil
	}

	pending := append(s.read(r), msgs...)

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Messages: pending,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return fmt.Errorf("signing flash cookie: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Pop returns the pending messages and clears the cookie. Tampered or expired
// cookies yield no messages.
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) []Message {
	msgs := s.read(r)

	if _, err := r.Cookie(s.cookieName); err == nil {
		http.SetCookie(w, &http.Cookie{
			Name:     s.cookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   s.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}

	return msgs
}

func (s *Store) read(r *http.Request) []Message {
	c, err := r.Cookie(s.cookieName)
	if err != nil || c.Value == "" {
		return nil
	}

	var cl claims

	_, err = jwt.ParseWithClaims(c.Value, &cl, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil
	}

	return cl.Messages
}
