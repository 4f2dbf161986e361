package service

import (
	"context"
	"fmt"

	"backend/internal/model"
	"backend/internal/repository"
)

type CreateServiceRequest struct {
	CategoryID *uint  `json:"category_id"`
	Name       string `json:"name" binding:"required"`
	NameAr     string `json:"name_ar"`
	Price      string `json:"price" binding:"required"`
	Duration   int    `json:"duration"`
}

type UpdateServiceRequest struct {
	CategoryID *uint  `json:"category_id"`
	Name       string `json:"name"`
	NameAr     string `json:"name_ar"`
	Price      string `json:"price"`
	Duration   int    `json:"duration"`
	Active     *bool  `json:"active"`
}

type CreateCategoryRequest struct {
	Name   string `json:"name" binding:"required"`
	NameAr string `json:"name_ar"`
}

// CatalogService manages the bookable services and their categories
type CatalogService interface {
	Create(ctx context.Context, actor string, req CreateServiceRequest) (*model.Service, error)
	Get(ctx context.Context, id uint) (*model.Service, error)
	List(ctx context.Context, activeOnly bool, page, limit int) ([]model.Service, int64, error)
	Update(ctx context.Context, actor string, id uint, req UpdateServiceRequest) (*model.Service, error)
	Delete(ctx context.Context, actor string, id uint) error

	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*model.ServiceCategory, error)
	ListCategories(ctx context.Context) ([]model.ServiceCategory, error)
}

type catalogService struct {
	serviceRepo repository.ServiceRepository
	txManager   repository.TransactionManager
	notifier    *Notifier
}

func NewCatalogService(
	serviceRepo repository.ServiceRepository,
	txManager repository.TransactionManager,
	notifier *Notifier,
) CatalogService {
	return &catalogService{
		serviceRepo: serviceRepo,
		txManager:   txManager,
		notifier:    notifier,
	}
}

func (s *catalogService) Create(ctx context.Context, actor string, req CreateServiceRequest) (*model.Service, error) {
	price, err := parseAmount(req.Price, "price")
	if err != nil {
		return nil, err
	}
	duration := req.Duration
	if duration <= 0 {
		duration = 30
	}

	svc := model.Service{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		NameAr:     req.NameAr,
		Price:      roundBase(price),
		Duration:   duration,
		Active:     true,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.serviceRepo.Create(txCtx, &svc); err != nil {
			return fmt.Errorf("failed to create service: %w", err)
		}
		notif := entityChanged(model.NotifService, "created", "تم إنشاء", svc.Name)
		notif.ActorName = actor
		return s.notifier.Append(txCtx, notif)
	})
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (s *catalogService) Get(ctx context.Context, id uint) (*model.Service, error) {
	return s.serviceRepo.FindByID(ctx, id)
}

func (s *catalogService) List(ctx context.Context, activeOnly bool, page, limit int) ([]model.Service, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	return s.serviceRepo.List(ctx, activeOnly, page, limit)
}

func (s *catalogService) Update(ctx context.Context, actor string, id uint, req UpdateServiceRequest) (*model.Service, error) {
	svc, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		svc.CategoryID = req.CategoryID
	}
	if req.Name != "" {
		svc.Name = req.Name
	}
	if req.NameAr != "" {
		svc.NameAr = req.NameAr
	}
	if req.Price != "" {
		price, err := parseAmount(req.Price, "price")
		if err != nil {
			return nil, err
		}
		svc.Price = roundBase(price)
	}
	if req.Duration > 0 {
		svc.Duration = req.Duration
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.serviceRepo.Update(txCtx, svc); err != nil {
			return fmt.Errorf("failed to update service: %w", err)
		}
		notif := entityChanged(model.NotifService, "updated", "تم تعديل", svc.Name)
		notif.ActorName = actor
		return s.notifier.Append(txCtx, notif)
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *catalogService) Delete(ctx context.Context, actor string, id uint) error {
	svc, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.serviceRepo.Delete(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete service: %w", err)
		}
		notif := entityChanged(model.NotifService, "deleted", "تم حذف", svc.Name)
		notif.ActorName = actor
		return s.notifier.Append(txCtx, notif)
	})
}

func (s *catalogService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*model.ServiceCategory, error) {
	category := model.ServiceCategory{Name: req.Name, NameAr: req.NameAr}
	if err := s.serviceRepo.CreateCategory(ctx, &category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]model.ServiceCategory, error) {
	return s.serviceRepo.ListCategories(ctx)
}
