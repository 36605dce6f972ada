// Package session issues and verifies the signed tokens that identify a
// registered visitor on chat routes.
package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/domain"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/config"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/httpkit"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenType  = "session"
	contextKey = "visitorSession"
)

var ErrInvalidToken = errors.New("invalid session token")

// Session is what the chat needs to know about the visitor.
type Session struct {
	LeadRef  domain.Ref
	Name     string
	Phone    string
	IssuedAt time.Time
}

type claims struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	jwt.RegisteredClaims
}

// Codec signs sessions with HS256.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCodec(cfg config.SessionConfig) *Codec {
	return &Codec{
		secret: []byte(cfg.GetSessionSecret()),
		ttl:    cfg.GetSessionTTL(),
		now:    time.Now,
	}
}

// Save returns a signed token for s. IssuedAt is taken from the codec clock.
func (c *Codec) Save(s Session) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Type:  tokenType,
		Name:  s.Name,
		Phone: s.Phone,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.LeadRef.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	})
	return token.SignedString(c.secret)
}

// Load verifies raw and returns the session it carries.
func (c *Codec) Load(raw string) (Session, error) {
	var parsed claims
	token, err := jwt.ParseWithClaims(raw, &parsed, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil || !token.Valid {
		return Session{}, ErrInvalidToken
	}
	if parsed.Type != tokenType || parsed.Subject == "" {
		return Session{}, ErrInvalidToken
	}

	s := Session{
		LeadRef: domain.Ref(parsed.Subject),
		Name:    parsed.Name,
		Phone:   parsed.Phone,
	}
	if parsed.IssuedAt != nil {
		s.IssuedAt = parsed.IssuedAt.Time
	}
	return s, nil
}

// Required rejects requests without a valid visitor session token.
func Required(codec *Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := httpkit.ExtractBearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpkit.ErrorResponse{Error: "missing session"})
			return
		}
		s, err := codec.Load(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpkit.ErrorResponse{Error: "invalid session"})
			return
		}

		c.Set(contextKey, s)
		ctx := context.WithValue(c.Request.Context(), logger.LeadRefKey, s.LeadRef.String())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// FromContext returns the session stored by Required.
func FromContext(c *gin.Context) (Session, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return Session{}, false
	}
	s, ok := v.(Session)
	return s, ok
}
