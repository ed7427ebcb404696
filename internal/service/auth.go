package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/avendel/textamend/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// tokenTTL bounds how long a login token is accepted. The server-side
// session row is the real authority: logout deletes it and invalidates
// any outstanding token immediately.
const tokenTTL = 24 * time.Hour

// Registration carries the six required registration fields.
type Registration struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// AuthService handles registration, login, logout, and token validation.
type AuthService struct {
	users      domain.UserRepository
	sessions   domain.SessionRepository
	jwtSecret  []byte
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, sessions domain.SessionRepository, jwtSecret string, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcryptCost,
	}
}

// Register creates a new user account after validating inputs. Checks
// run in a fixed order and the first failure wins; no user is created
// on any failure.
//
// The existence checks and the insert are not atomic: two concurrent
// registrations with the same username can both pass validation and
// both insert. Known issue, kept as-is.
func (s *AuthService) Register(ctx context.Context, reg Registration) (*domain.User, error) {
	if reg.Username == "" || reg.Password == "" || reg.FirstName == "" ||
		reg.LastName == "" || reg.Email == "" || reg.Phone == "" {
		return nil, fmt.Errorf("%w: all fields are required", domain.ErrInvalidInput)
	}

	if !emailPattern.MatchString(reg.Email) {
		return nil, fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
	}

	if !phonePattern.MatchString(reg.Phone) {
		return nil, fmt.Errorf("%w: invalid phone number (7-15 digits, optional +)", domain.ErrInvalidInput)
	}

	if _, err := s.users.GetByUsername(ctx, reg.Username); err == nil {
		return nil, domain.ErrDuplicateUsername
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	if _, err := s.users.GetByEmail(ctx, reg.Email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     reg.Username,
		PasswordHash: string(hash),
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Email:        reg.Email,
		Phone:        reg.Phone,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	slog.Info("user registered", "username", user.Username)
	return user, nil
}

// Login verifies credentials, creates a server-side session, and
// returns a signed token. Unknown usernames and wrong passwords are
// logged distinctly but both answer with the same ErrUnauthorized so
// callers cannot enumerate users.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			slog.Warn("login failed: unknown username", "username", username)
			return "", domain.ErrUnauthorized
		}
		return "", fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		slog.Warn("login failed: wrong password", "username", username)
		return "", domain.ErrUnauthorized
	}

	session := &domain.Session{
		ID:       uuid.NewString(),
		Username: user.Username,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	token, err := s.signToken(user.Username, session.ID)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	slog.Info("user logged in", "username", user.Username)
	return token, nil
}

// Logout deletes the session and all its result slots. It is
// idempotent: logging out an already-gone session succeeds.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Authenticate validates a token and returns the user plus the live
// session. A token whose session row no longer exists (logged out) is
// rejected with ErrUnauthorized.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, *domain.Session, error) {
	username, sessionID, err := s.parseToken(token)
	if err != nil {
		return nil, nil, domain.ErrUnauthorized
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrUnauthorized
		}
		return nil, nil, fmt.Errorf("get session: %w", err)
	}
	if session.Username != username {
		return nil, nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrUnauthorized
		}
		return nil, nil, fmt.Errorf("get user: %w", err)
	}

	return user, session, nil
}

// SessionID extracts the session ID from a token without requiring the
// session to still exist. Used by logout, which must stay idempotent.
func (s *AuthService) SessionID(token string) (string, error) {
	_, sessionID, err := s.parseToken(token)
	if err != nil {
		return "", domain.ErrUnauthorized
	}
	return sessionID, nil
}

func (s *AuthService) signToken(username, sessionID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": username,
		"sid": sessionID,
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) parseToken(tokenString string) (username, sessionID string, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", fmt.Errorf("invalid claims")
	}

	username, err = claims.GetSubject()
	if err != nil || username == "" {
		return "", "", fmt.Errorf("missing sub claim")
	}

	sessionID, ok = claims["sid"].(string)
	if !ok || sessionID == "" {
		return "", "", fmt.Errorf("missing sid claim")
	}

	return username, sessionID, nil
}
