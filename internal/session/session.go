// Package session keeps the caller's identity and pending flash messages in
// a client-held cookie signed as an HS256 JWT.
//
// The cookie carries an absolute expiry stamped when the session is first
// written. Rewriting the cookie (to add or consume flashes) keeps that expiry;
// only SetUser starts a new lifetime.
package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieName = "session"
	DefaultTTL = 30 * time.Minute
)

// Session is the decoded cookie for one request. The zero value is an
// anonymous session with no flashes.
type Session struct {
	userID    string
	flashes   []string
	expiresAt time.Time
	dirty     bool
}

func (s *Session) UserID() string { return s.userID }

func (s *Session) IsAuthenticated() bool { return s.userID != "" }

// SetUser binds the session to a user and restarts its lifetime.
func (s *Session) SetUser(id string) {
	s.userID = id
	s.expiresAt = time.Time{}
	s.dirty = true
}

// ClearUser drops the identity. Calling it on an anonymous session is a no-op.
func (s *Session) ClearUser() {
	if s.userID == "" {
		return
	}
	s.userID = ""
	s.dirty = true
}

// AddFlash queues a one-shot message for the next rendered page.
func (s *Session) AddFlash(msg string) {
	s.flashes = append(s.flashes, msg)
	s.dirty = true
}

// PopFlashes returns and removes all queued messages.
func (s *Session) PopFlashes() []string {
	if len(s.flashes) == 0 {
		return nil
	}
	out := s.flashes
	s.flashes = nil
	s.dirty = true
	return out
}

func (s *Session) Dirty() bool { return s.dirty }

func (s *Session) empty() bool { return s.userID == "" && len(s.flashes) == 0 }

type claims struct {
	UserID  string   `json:"uid,omitempty"`
	Flashes []string `json:"flashes,omitempty"`
	jwt.RegisteredClaims
}

// Manager encodes and decodes session cookies.
type Manager struct {
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration, secure bool) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl, secure: secure, now: time.Now}
}

// Load decodes the session cookie of r. A missing, forged or expired cookie
// yields an empty session; Load never fails.
func (m *Manager) Load(r *http.Request) *Session {
	ck, err := r.Cookie(CookieName)
	if err != nil || ck.Value == "" {
		return &Session{}
	}

	c, err := m.decode(ck.Value)
	if err != nil {
		// Forget the unusable cookie on the next write.
		return &Session{dirty: true}
	}

	s := &Session{userID: c.UserID, flashes: c.Flashes}
	if c.ExpiresAt != nil {
		s.expiresAt = c.ExpiresAt.Time
	}
	return s
}

// Cookie renders s as a Set-Cookie value. An empty session produces a
// deletion cookie.
func (m *Manager) Cookie(s *Session) (*http.Cookie, error) {
	ck := &http.Cookie{
		Name:     CookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if s.empty() {
		ck.MaxAge = -1
		ck.Expires = time.Unix(0, 0)
		return ck, nil
	}

	now := m.now()
	if s.expiresAt.IsZero() {
		s.expiresAt = now.Add(m.ttl)
	}

	token, err := m.encode(s, now)
	if err != nil {
		return nil, err
	}
	ck.Value = token
	ck.Expires = s.expiresAt
	ck.MaxAge = int(s.expiresAt.Sub(now).Seconds())
	if ck.MaxAge <= 0 {
		ck.MaxAge = -1
	}
	return ck, nil
}

// Save writes s to w if it changed during the request.
func (m *Manager) Save(w http.ResponseWriter, s *Session) error {
	if !s.dirty {
		return nil
	}
	ck, err := m.Cookie(s)
	if err != nil {
		return err
	}
	http.SetCookie(w, ck)
	s.dirty = false
	return nil
}

func (m *Manager) encode(s *Session, now time.Time) (string, error) {
	c := claims{
		UserID:  s.userID,
		Flashes: s.flashes,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(s.expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
}

func (m *Manager) decode(value string) (*claims, error) {
	c := &claims{}
	tkn, err := jwt.ParseWithClaims(value, c, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("session: invalid token")
	}
	return c, nil
}
