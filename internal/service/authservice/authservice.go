package authservice

import (
	"context"
	"errors"
	"time"

	"github.com/teachniche/marketplace/internal/domain"
	"github.com/teachniche/marketplace/pkg/auth"
	"go.uber.org/zap"
)

type Repo interface {
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

type Service struct {
	userRepo    Repo
	hashService auth.HashServiceInterface
	jwtService  auth.JWTServiceInterface
}

func New(repo Repo, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface) *Service {
	return &Service{
		userRepo:    repo,
		hashService: hashService,
		jwtService:  jwtService,
	}
}

var ErrLoginTaken = errors.New("username already taken")
var ErrInvalidCredentials = errors.New("invalid credentials")

func (s *Service) Register(ctx context.Context, login, password string) (*domain.User, error) {
	existingUser, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil {
		zap.L().Error("can't find user: ", zap.Error(err))
		return nil, err
	}
	if existingUser != nil {
		zap.L().Info("user already exists, login: ", zap.String("login", login))
		return nil, ErrLoginTaken
	}
	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		zap.L().Error("can't hash password: ", zap.Error(err))
		return nil, err
	}
	user := &domain.User{
		Login:        login,
		PasswordHash: hashedPassword,
	}
	newUser, err := s.userRepo.Create(ctx, user)
	if err != nil {
		zap.L().Error("can't create user: ", zap.Error(err))
		return nil, err
	}

	zap.L().Info("user successfully registered", zap.String("login", login))
	return newUser, nil
}

func (s *Service) Authenticate(ctx context.Context, login, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil || user == nil {
		zap.L().Error("invalid credentials", zap.Error(err))
		return nil, ErrInvalidCredentials
	}
	if ok := s.hashService.ComparePassword(user.PasswordHash, password); !ok {
		zap.L().Error("invalid credentials", zap.Error(err))
		return nil, ErrInvalidCredentials
	}
	zap.L().Info("user successfully authenticated", zap.String("login", login))
	return user, nil
}

func (s *Service) GenerateToken(userID string) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)

	token, err := s.jwtService.GenerateJWT(userID, expirationTime)
	if err != nil {
		zap.L().Error("can't generate token: ", zap.Error(err))
		return "", err
	}
	return token, nil
}
