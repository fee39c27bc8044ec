package app

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"encoraja/pkg/auth"
	"encoraja/pkg/domain"
	"encoraja/pkg/storage"
	"encoraja/pkg/store"
)

// Config holds runtime configuration for the core application.
type Config struct {
	Store          store.Store
	Sessions       store.SessionStore
	Uploader       storage.Uploader
	JWTSecret      string
	SessionTTL     time.Duration
	RedisAddr      string
	RedisPassword  string
	MaxUploadBytes int64
}

// App is the core application service wiring storage, sessions and uploads.
// The backend instance is injected once at construction; nothing here keeps
// package-level state.
type App struct {
	store          store.Store
	sessions       store.SessionStore
	uploader       storage.Uploader
	maxUploadBytes int64
}

// New constructs the application. A session store is built from the JWT
// secret when none is injected; revocations go through Redis when an address
// is configured so logout holds across instances.
func New(cfg Config) (*App, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	sessions := cfg.Sessions
	if sessions == nil {
		var revoker store.TokenRevoker
		if strings.TrimSpace(cfg.RedisAddr) != "" {
			revoker = store.NewRedisTokenRevoker(cfg.RedisAddr, cfg.RedisPassword)
		}
		var err error
		sessions, err = store.NewJWTSessionStore(cfg.JWTSecret, cfg.SessionTTL, revoker)
		if err != nil {
			return nil, fmt.Errorf("init session store: %w", err)
		}
	}
	return &App{
		store:          cfg.Store,
		sessions:       sessions,
		uploader:       cfg.Uploader,
		maxUploadBytes: cfg.MaxUploadBytes,
	}, nil
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	Username    string `json:"username"`
	PhoneNumber string `json:"phoneNumber"`
}

// Register validates the input, rejects duplicates with distinct messages
// and stores the user with a bcrypt password hash.
func (a *App) Register(in RegisterInput) (domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	username := strings.TrimSpace(in.Username)
	phone := strings.TrimSpace(in.PhoneNumber)
	if email == "" || in.Password == "" {
		return domain.User{}, ErrEmailAndPasswordRequired
	}
	if err := auth.ValidatePassword(in.Password); err != nil {
		return domain.User{}, err
	}
	if _, exists, err := a.store.FindUserByEmail(email); err != nil {
		return domain.User{}, fmt.Errorf("check email: %w", err)
	} else if exists {
		return domain.User{}, ErrEmailAlreadyRegistered
	}
	if username != "" {
		if _, exists, err := a.store.FindUserByUsername(username); err != nil {
			return domain.User{}, fmt.Errorf("check username: %w", err)
		} else if exists {
			return domain.User{}, ErrUsernameTaken
		}
	}
	if phone != "" {
		if _, exists, err := a.store.FindUserByPhone(phone); err != nil {
			return domain.User{}, fmt.Errorf("check phone: %w", err)
		} else if exists {
			return domain.User{}, ErrPhoneAlreadyRegistered
		}
	}
	passwordHash, err := auth.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
		if i := strings.Index(email, "@"); i > 0 {
			name = email[:i]
		}
	}
	user, err := a.store.CreateUser(domain.User{
		Email:        email,
		Username:     username,
		PhoneNumber:  phone,
		PasswordHash: passwordHash,
		Name:         name,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

// Login accepts an email or phone number as identifier and issues a session
// token carrying the user id.
func (a *App) Login(identifier, password string) (domain.User, string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return domain.User{}, "", ErrInvalidCredentials
	}
	user, ok, err := a.store.FindUserByEmail(strings.ToLower(identifier))
	if err != nil {
		return domain.User{}, "", fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		user, ok, err = a.store.FindUserByPhone(identifier)
		if err != nil {
			return domain.User{}, "", fmt.Errorf("fetch user: %w", err)
		}
	}
	if !ok || !auth.CheckPassword(password, user.PasswordHash) {
		return domain.User{}, "", ErrInvalidCredentials
	}
	token, err := a.sessions.NewSession(user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue session: %w", err)
	}
	return user, token, nil
}

// Logout invalidates the session token.
func (a *App) Logout(token string) error {
	return a.sessions.DeleteSession(token)
}

// UserFromToken resolves a user from a session token.
func (a *App) UserFromToken(token string) (domain.User, bool) {
	uid, ok, err := a.sessions.GetUserIDByToken(token)
	if err != nil || !ok {
		return domain.User{}, false
	}
	user, found, err := a.store.FindUserByID(uid)
	if err != nil || !found {
		return domain.User{}, false
	}
	return user, true
}

// CheckUsername reports whether the username is already taken.
func (a *App) CheckUsername(username string) (bool, error) {
	_, exists, err := a.store.FindUserByUsername(strings.TrimSpace(username))
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return exists, nil
}

// SuggestUsernames derives free variants of base by appending a random
// numeric suffix, re-checking each candidate. At most 10 attempts are made,
// so fewer than 3 suggestions may come back.
func (a *App) SuggestUsernames(base string) ([]string, error) {
	base = strings.TrimSpace(base)
	suggestions := make([]string, 0, 3)
	for attempts := 0; len(suggestions) < 3 && attempts < 10; attempts++ {
		candidate := fmt.Sprintf("%s%d", base, rand.IntN(1000))
		if contains(suggestions, candidate) {
			continue
		}
		taken, err := a.CheckUsername(candidate)
		if err != nil {
			return nil, err
		}
		if !taken {
			suggestions = append(suggestions, candidate)
		}
	}
	return suggestions, nil
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
