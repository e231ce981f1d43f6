package users

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/MenteSana-Clinic/intake-service/internal/auth"
	"github.com/MenteSana-Clinic/intake-service/internal/messaging"
)

type Service struct {
	repo      RepositoryInterface
	verifier  *auth.Verifier
	publisher messaging.PublisherInterface
}

func NewService(repo RepositoryInterface, verifier *auth.Verifier, publisher messaging.PublisherInterface) *Service {
	return &Service{
		repo:      repo,
		verifier:  verifier,
		publisher: publisher,
	}
}

// Register creates a staff account. Passwords are stored as bcrypt
// hashes, never in clear text.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Username:     req.Username,
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateUser) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	log.Printf("Registered user: %s", user.Username)

	if s.publisher != nil {
		event := messaging.UserRegisteredEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventUserRegistered),
			Data: messaging.UserRegisteredData{
				UserID:    user.ID,
				Username:  user.Username,
				CreatedAt: user.CreatedAt,
			},
		}
		if err := s.publisher.Publish(ctx, messaging.EventUserRegistered, event); err != nil {
			log.Printf("Warning: failed to publish user.registered event: %v", err)
		}
	}

	return user, nil
}

// Login verifies the username/password pair and issues an access
// token. Lookup failures and bad passwords both map to
// ErrInvalidCredentials so the response does not reveal which was
// wrong.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.verifier.IssueToken(user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResponse{
		Success:   true,
		Token:     token,
		Username:  user.Username,
		ExpiresIn: int64(s.verifier.TokenTTL().Seconds()),
	}, nil
}
