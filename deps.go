package main

import (
	"html/template"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/gomodule/redigo/redis"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/oxtoacart/bpool"
	"github.com/rs/zerolog"
	"github.com/savaki/dynastore"
)

// Dependencies carries everything handlers need. One long-lived copy is built
// in main; checkRequestState clones it per request with a fresh logger,
// request id, nonce, config, and webdata so concurrent requests never share
// mutable state.
type Dependencies struct {
	awssess      *session.Session
	cfg          *Config
	cookieStore  *dynastore.Store
	secureCookie *securecookie.SecureCookie
	redisPool    *redis.Pool
	secrets      map[string]string
	templates    *template.Template
	bufpool      *bpool.BufferPool
	providers    *providerGuard
	recentPairs  *recentPairTracker

	// request-scoped, replaced by checkRequestState
	logger     *zerolog.Logger
	session    *sessions.Session
	request_id string
	nonce      string
	config     map[string]interface{}
	webdata    map[string]interface{}
	messages   *[]Message
}

// Message is a user-visible notice rendered at the top of the page.
type Message struct {
	Text  string
	Level string
}
