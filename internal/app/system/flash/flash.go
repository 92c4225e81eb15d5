// internal/app/system/flash/flash.go
package flash

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Message kinds rendered by the site_flash partial.
const (
	KindSuccess = "success"
	KindError   = "error"
)

// DefaultName is the cookie name used when none is configured.
const DefaultName = "rightonrepair-flash"

var kinds = []string{KindSuccess, KindError}

// Message is one flashed notice.
type Message struct {
	Kind string
	Text string
}

// IsError reports whether the message is an error notice.
func (m Message) IsError() bool { return m.Kind == KindError }

// Store keeps one-shot notices in a signed cookie so a form handler can
// redirect (303) and the next GET can show the outcome.
type Store struct {
	cookies *sessions.CookieStore
	name    string
	logger  *zap.Logger
}

// New creates a flash Store. The key signs the cookie; it must not be empty.
func New(key, name, domain string, secure bool, logger *zap.Logger) (*Store, error) {
	if key == "" {
		return nil, errors.New("flash: signing key is empty")
	}
	if name == "" {
		name = DefaultName
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cs := sessions.NewCookieStore([]byte(key))
	cs.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Store{cookies: cs, name: name, logger: logger}, nil
}

// Add queues a message for the next request.
func (s *Store) Add(w http.ResponseWriter, r *http.Request, kind, text string) error {
	if kind != KindError {
		kind = KindSuccess
	}
	sess := s.session(r)
	sess.AddFlash(text, kind)
	return sess.Save(r, w)
}

// Success queues a success message, logging any cookie failure.
func (s *Store) Success(w http.ResponseWriter, r *http.Request, text string) {
	if err := s.Add(w, r, KindSuccess, text); err != nil {
		s.logger.Warn("flash save failed", zap.Error(err))
	}
}

// Error queues an error message, logging any cookie failure.
func (s *Store) Error(w http.ResponseWriter, r *http.Request, text string) {
	if err := s.Add(w, r, KindError, text); err != nil {
		s.logger.Warn("flash save failed", zap.Error(err))
	}
}

// Pop returns and clears every queued message, success first.
// It must run before the response body is written.
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) []Message {
	sess := s.session(r)
	var out []Message
	for _, k := range kinds {
		for _, v := range sess.Flashes(k) {
			if text, ok := v.(string); ok && text != "" {
				out = append(out, Message{Kind: k, Text: text})
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		s.logger.Warn("flash clear failed", zap.Error(err))
	}
	return out
}

// session returns the flash session, starting a fresh one when the cookie
// cannot be decoded (expired, tampered or signed with an old key).
func (s *Store) session(r *http.Request) *sessions.Session {
	sess, err := s.cookies.Get(r, s.name)
	if err != nil {
		var scErr securecookie.Error
		if errors.As(err, &scErr) && scErr.IsDecode() {
			s.logger.Debug("discarding undecodable flash cookie", zap.Error(err))
		} else {
			s.logger.Warn("flash cookie read failed", zap.Error(err))
		}
		sess, _ = s.cookies.New(r, s.name)
	}
	return sess
}
