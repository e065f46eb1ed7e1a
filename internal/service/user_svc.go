package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Mouzitoto/restohub-2-sub000/internal/domain"
	"github.com/Mouzitoto/restohub-2-sub000/internal/repository"
	"github.com/Mouzitoto/restohub-2-sub000/pkg/auth"
)

var ErrBadCredentials = errors.New("bad_credentials")

type UserSvc struct {
	repo     *repository.UserRepo
	tokenTTL time.Duration
}

func NewUserSvc(r *repository.UserRepo, tokenTTL time.Duration) *UserSvc {
	return &UserSvc{repo: r, tokenTTL: tokenTTL}
}

func (s *UserSvc) Register(ctx context.Context, email, name, password string, role domain.Role) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{Email: email, Name: name, Role: role, Active: true, PasswordHash: string(hash)}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserSvc) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	u, err := s.repo.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, ErrBadCredentials
		}
		return "", nil, err
	}
	if !u.Active {
		return "", nil, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrBadCredentials
	}
	tok, err := auth.CreateAccessToken(u.ID, string(u.Role), s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}
