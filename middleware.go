package main

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog/log"
	"github.com/savaki/dynastore"
)

type ContextKey string

// Logging middleware ---------------------------------------------------------

type Logger struct {
	handler http.Handler
}

func (l *Logger) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	t := time.Now()
	l.handler.ServeHTTP(w, r)
	log.Info().
		Stringer("url", r.URL).
		Str("request_id", w.Header().Get("X-Request-ID")).
		Int64("response_time", time.Since(t).Nanoseconds()).
		Msg("")
	requestDuration.WithLabelValues(r.URL.Path).Observe(time.Since(t).Seconds())
}
func withLogging(h http.Handler) *Logger {
	return &Logger{h}
}

// Header middleware -----------------------------------------------------------
// every response gets a request id, a CSP nonce, and the security headers;
// handlers pick the id and nonce back up from the response headers

type AddHeader struct {
	handler http.Handler
}

func (a *AddHeader) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	nonce := RandStringMask(32)

	w.Header().Set("X-Request-ID", requestID)
	w.Header().Set("X-Nonce", nonce)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Content-Security-Policy",
		"default-src 'self'; "+
			"script-src 'self' 'nonce-"+nonce+"' https://go-echarts.github.io; "+
			"style-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; "+
			"img-src 'self' data:; "+
			"report-uri /internal/cspviolations")

	ctx := context.WithValue(r.Context(), ContextKey("request_id"), requestID)
	ctx = context.WithValue(ctx, ContextKey("nonce"), nonce)
	a.handler.ServeHTTP(w, r.Clone(ctx))
}
func withAddHeader(h http.Handler) *AddHeader {
	return &AddHeader{h}
}

// Session management middleware ----------------------------------------------

type Session struct {
	store   *dynastore.Store
	handler http.Handler
}

func (s *Session) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	session, err := s.store.Get(r, "SID")
	if err != nil {
		log.Error().Err(err).Msg(errFailedLoadSession.Error())
		s.handler.ServeHTTP(w, r)
		return
	}
	if session.IsNew {
		// only plain strings and ints go into the session so the gob
		// codec never needs type registration
		session.Values["recent_pairs"] = ""
		session.Values["theme"] = "light"
		session.Values["correlation_window"] = defaultCorrelationWindow
		session.Values["fiscal_metric"] = ""
		err := session.Save(r, w)
		if err != nil {
			log.Error().Err(err).Msg(errFailedSaveSession.Error())
		}
	}
	r = r.Clone(context.WithValue(r.Context(), ContextKey("ddbs"), session))

	defer session.Save(r, w)

	s.handler.ServeHTTP(w, r)
}
func withSession(store *dynastore.Store, h http.Handler) *Session {
	return &Session{store, h}
}

// getSession pulls the request's session back out of the context. When the
// store was unreachable the request runs with a detached throwaway session
// instead of failing; prefs just won't stick.
func getSession(r *http.Request) *sessions.Session {
	session, ok := r.Context().Value(ContextKey("ddbs")).(*sessions.Session)
	if !ok || session == nil {
		log.Warn().Err(errFailedToGetSessionFromContext).Msg("")
		return sessions.NewSession(nil, "SID")
	}
	return session
}
