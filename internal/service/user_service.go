package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type CreateUserRequest struct {
	Username   string `json:"username" binding:"required"`
	FullName   string `json:"full_name" binding:"required"`
	FullNameAr string `json:"full_name_ar"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone"`
	Password   string `json:"password" binding:"required,min=6"`
	Role       string `json:"role" binding:"required,oneof=admin manager staff"`
	BranchIDs  []uint `json:"branch_ids"`
}

type UpdateUserRequest struct {
	FullName   string `json:"full_name"`
	FullNameAr string `json:"full_name_ar"`
	Email      string `json:"email" binding:"omitempty,email"`
	Phone      string `json:"phone"`
	Password   string `json:"password" binding:"omitempty,min=6"`
	Role       string `json:"role" binding:"omitempty,oneof=admin manager staff"`
	Active     *bool  `json:"active"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenPair struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         *model.User `json:"user"`
}

type UserService interface {
	Create(ctx context.Context, actor string, req CreateUserRequest) (*model.User, error)
	Get(ctx context.Context, id uint) (*model.User, error)
	List(ctx context.Context, page, limit int) ([]model.User, int64, error)
	Update(ctx context.Context, actor string, id uint, req UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, actor string, id uint) error

	Login(ctx context.Context, req LoginRequest) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error

	GrantBranch(ctx context.Context, userID, branchID uint) error
	RevokeBranch(ctx context.Context, userID, branchID uint) error
	BranchIDs(ctx context.Context, userID uint) ([]uint, error)
}

type userService struct {
	repo      repository.UserRepository
	txManager repository.TransactionManager
	notifier  *Notifier
}

func NewUserService(repo repository.UserRepository, txManager repository.TransactionManager, notifier *Notifier) UserService {
	return &userService{repo: repo, txManager: txManager, notifier: notifier}
}

func (s *userService) Create(ctx context.Context, actor string, req CreateUserRequest) (*model.User, error) {
	if _, err := s.repo.FindByUsername(ctx, req.Username); err == nil {
		return nil, errors.New("username already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, errors.New("email already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		Username:   req.Username,
		FullName:   req.FullName,
		FullNameAr: req.FullNameAr,
		Email:      req.Email,
		Phone:      req.Phone,
		Password:   string(hashed),
		Role:       req.Role,
		Active:     true,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, &user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		if user.Role != model.RoleAdmin {
			for _, branchID := range req.BranchIDs {
				if err := s.repo.GrantBranch(txCtx, user.ID, branchID); err != nil {
					return fmt.Errorf("failed to grant branch %d: %w", branchID, err)
				}
			}
		}
		notif := entityChanged(model.NotifUser, "created", "تم إنشاء", user.FullName)
		notif.ActorName = actor
		return s.notifier.Append(txCtx, notif)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) Get(ctx context.Context, id uint) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *userService) List(ctx context.Context, page, limit int) ([]model.User, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.repo.List(ctx, page, limit)
}

func (s *userService) Update(ctx context.Context, actor string, id uint, req UpdateUserRequest) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.FullNameAr != "" {
		user.FullNameAr = req.FullNameAr
	}
	if req.Email != "" && req.Email != user.Email {
		if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
			return nil, errors.New("email already exists")
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		user.Email = req.Email
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Update(txCtx, user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		notif := entityChanged(model.NotifUser, "updated", "تم تعديل", user.FullName)
		notif.ActorName = actor
		return s.notifier.Append(txCtx, notif)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, actor string, id uint) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		notif := entityChanged(model.NotifUser, "deleted", "تم حذف", user.FullName)
		notif.ActorName = actor
		return s.notifier.Append(txCtx, notif)
	})
}

func (s *userService) Login(ctx context.Context, req LoginRequest) (*TokenPair, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueTokens(ctx, user)
}

func (s *userService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	stored, err := s.repo.FindRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.repo.DeleteRefreshToken(ctx, refreshToken)
		return nil, ErrInvalidCredentials
	}
	user, err := s.repo.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// Rotate: the presented token is replaced by a fresh one
	if err := s.repo.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	return s.issueTokens(ctx, user)
}

func (s *userService) Logout(ctx context.Context, refreshToken string) error {
	return s.repo.DeleteRefreshToken(ctx, refreshToken)
}

func (s *userService) issueTokens(ctx context.Context, user *model.User) (*TokenPair, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  fmt.Sprintf("%d", user.ID),
		"name": user.FullName,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(accessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := token.SignedString(middleware.GetJWTSecret())
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	refresh := model.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(refreshTokenTTL),
	}
	if err := s.repo.CreateRefreshToken(ctx, &refresh); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refresh.Token,
		User:         user,
	}, nil
}

func (s *userService) GrantBranch(ctx context.Context, userID, branchID uint) error {
	return s.repo.GrantBranch(ctx, userID, branchID)
}

func (s *userService) RevokeBranch(ctx context.Context, userID, branchID uint) error {
	return s.repo.RevokeBranch(ctx, userID, branchID)
}

func (s *userService) BranchIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.repo.ListBranchIDs(ctx, userID)
}
