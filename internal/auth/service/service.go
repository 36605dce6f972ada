package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/ReachRyt-Services/collegeSeraBot/platform/config"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/httpkit"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// RoleAdmin is the only operator role.
const RoleAdmin = "admin"

// Token is a signed operator access token.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

type Service struct {
	cfg config.AdminConfig
	log *logger.Logger
	now func() time.Time
}

func New(cfg config.AdminConfig, log *logger.Logger) *Service {
	return &Service{cfg: cfg, log: log, now: time.Now}
}

// SignIn checks the configured admin credentials and issues an access token.
// Sign-in is disabled while no password hash is configured.
func (s *Service) SignIn(ctx context.Context, email, plainPassword string) (Token, error) {
	log := s.log.WithContext(ctx)
	email = strings.ToLower(strings.TrimSpace(email))

	adminEmail := strings.ToLower(strings.TrimSpace(s.cfg.GetAdminEmail()))
	hash := s.cfg.GetAdminPasswordHash()
	if adminEmail == "" || hash == "" {
		log.AuthEvent("admin_sign_in", email, false, "admin sign-in disabled")
		return Token{}, ErrInvalidCredentials
	}

	emailMatches := subtle.ConstantTimeCompare([]byte(email), []byte(adminEmail)) == 1
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plainPassword)); err != nil || !emailMatches {
		log.AuthEvent("admin_sign_in", email, false, "invalid credentials")
		return Token{}, ErrInvalidCredentials
	}

	token, err := s.signJWT(email)
	if err != nil {
		return Token{}, err
	}
	log.AuthEvent("admin_sign_in", email, true, "")
	return token, nil
}

// SubjectID is the stable operator id derived from the admin email.
func SubjectID(email string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+strings.ToLower(strings.TrimSpace(email))))
}

func (s *Service) signJWT(email string) (Token, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.GetAccessTokenTTL())
	claims := jwt.MapClaims{
		"sub":   SubjectID(email).String(),
		"type":  httpkit.TokenTypeAccess,
		"roles": []string{RoleAdmin},
		"email": email,
		"exp":   expiresAt.Unix(),
		"iat":   now.Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tokenObj.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
	if err != nil {
		return Token{}, err
	}
	return Token{AccessToken: signed, ExpiresAt: expiresAt}, nil
}
