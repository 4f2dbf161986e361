package service

import (
	"context"
	"fmt"

	"backend/internal/model"
	"backend/internal/repository"
)

type CreateBranchRequest struct {
	Name    string `json:"name" binding:"required"`
	NameAr  string `json:"name_ar"`
	Code    string `json:"code" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type UpdateBranchRequest struct {
	Name    string `json:"name"`
	NameAr  string `json:"name_ar"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Active  *bool  `json:"active"`
}

type BranchService interface {
	Create(ctx context.Context, req CreateBranchRequest) (*model.Branch, error)
	Get(ctx context.Context, id uint) (*model.Branch, error)
	List(ctx context.Context, activeOnly bool) ([]model.Branch, error)
	Update(ctx context.Context, id uint, req UpdateBranchRequest) (*model.Branch, error)
	Delete(ctx context.Context, id uint) error
}

type branchService struct {
	repo repository.BranchRepository
}

func NewBranchService(repo repository.BranchRepository) BranchService {
	return &branchService{repo: repo}
}

func (s *branchService) Create(ctx context.Context, req CreateBranchRequest) (*model.Branch, error) {
	branch := model.Branch{
		Name:    req.Name,
		NameAr:  req.NameAr,
		Code:    req.Code,
		Address: req.Address,
		Phone:   req.Phone,
		Active:  true,
	}
	if err := s.repo.Create(ctx, &branch); err != nil {
		return nil, fmt.Errorf("failed to create branch: %w", err)
	}
	return &branch, nil
}

func (s *branchService) Get(ctx context.Context, id uint) (*model.Branch, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *branchService) List(ctx context.Context, activeOnly bool) ([]model.Branch, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *branchService) Update(ctx context.Context, id uint, req UpdateBranchRequest) (*model.Branch, error) {
	branch, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		branch.Name = req.Name
	}
	if req.NameAr != "" {
		branch.NameAr = req.NameAr
	}
	if req.Address != "" {
		branch.Address = req.Address
	}
	if req.Phone != "" {
		branch.Phone = req.Phone
	}
	if req.Active != nil {
		branch.Active = *req.Active
	}
	if err := s.repo.Update(ctx, branch); err != nil {
		return nil, fmt.Errorf("failed to update branch: %w", err)
	}
	return branch, nil
}

func (s *branchService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
