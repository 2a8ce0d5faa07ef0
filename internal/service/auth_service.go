package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mharfe/storyforge-server/internal/models"
	"github.com/mharfe/storyforge-server/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// ErrBadCredentials is returned when login fails. It deliberately does
// not say whether the username or the password was wrong.
var ErrBadCredentials = errors.New("invalid username or password")

func (s *DefaultService) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	// Check both unique fields up front for a precise error; the store
	// enforces uniqueness regardless.
	if _, err := s.repo.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("username already exists: %w", repository.ErrDuplicate)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("error checking username: %w", err)
	}
	if _, err := s.repo.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already exists: %w", repository.ErrDuplicate)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		Password:     string(hashedPassword),
		TokenBalance: s.costs.StartingBalance,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return &models.RegisterResponse{
		Message: "User registered successfully",
		UserID:  user.ID,
	}, nil
}

func (s *DefaultService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrBadCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &models.LoginResponse{
		Token:     token,
		UserID:    user.ID,
		ExpiresIn: int(s.tokens.TTL().Seconds()),
	}, nil
}
