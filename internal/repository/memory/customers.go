package memory

import (
	"context"
	"strings"

	"backend/internal/model"
	"backend/internal/repository"
)

type customerRepo struct{ s *Store }

func (s *Store) Customers() repository.CustomerRepository { return &customerRepo{s} }

func (r *customerRepo) Create(_ context.Context, customer *model.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	customer.ID = r.s.nextID("customers")
	customer.CreatedAt = now()
	customer.UpdatedAt = customer.CreatedAt
	r.s.customers = append(r.s.customers, *customer)
	return nil
}

func (r *customerRepo) FindByID(_ context.Context, id uint) (*model.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.customers {
		if r.s.customers[i].ID == id {
			c := r.s.customers[i]
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *customerRepo) List(_ context.Context, branchID *uint, search string, page, limit int) ([]model.Customer, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	needle := strings.ToLower(search)
	var matched []model.Customer
	for _, c := range r.s.customers {
		if !visibleInBranch(c.BranchID, branchID) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(c.Name), needle) &&
			!strings.Contains(strings.ToLower(c.Phone), needle) {
			continue
		}
		matched = append(matched, c)
	}
	customers, total := paginate(matched, page, limit)
	return customers, total, nil
}

func (r *customerRepo) Update(_ context.Context, customer *model.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.customers {
		if r.s.customers[i].ID == customer.ID {
			customer.UpdatedAt = now()
			r.s.customers[i] = *customer
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *customerRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.customers {
		if r.s.customers[i].ID == id {
			r.s.customers = append(r.s.customers[:i], r.s.customers[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type serviceRepo struct{ s *Store }

func (s *Store) Services() repository.ServiceRepository { return &serviceRepo{s} }

func (r *serviceRepo) Create(_ context.Context, svc *model.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc.ID = r.s.nextID("services")
	svc.CreatedAt = now()
	svc.UpdatedAt = svc.CreatedAt
	r.s.services = append(r.s.services, *svc)
	return nil
}

func (r *serviceRepo) FindByID(_ context.Context, id uint) (*model.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.services {
		if r.s.services[i].ID == id {
			svc := r.s.services[i]
			return &svc, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *serviceRepo) List(_ context.Context, activeOnly bool, page, limit int) ([]model.Service, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var matched []model.Service
	for _, svc := range r.s.services {
		if activeOnly && !svc.Active {
			continue
		}
		matched = append(matched, svc)
	}
	services, total := paginate(matched, page, limit)
	return services, total, nil
}

func (r *serviceRepo) Update(_ context.Context, svc *model.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.services {
		if r.s.services[i].ID == svc.ID {
			svc.UpdatedAt = now()
			r.s.services[i] = *svc
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *serviceRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.services {
		if r.s.services[i].ID == id {
			r.s.services = append(r.s.services[:i], r.s.services[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *serviceRepo) CreateCategory(_ context.Context, category *model.ServiceCategory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	category.ID = r.s.nextID("service_categories")
	r.s.categories = append(r.s.categories, *category)
	return nil
}

func (r *serviceRepo) ListCategories(_ context.Context) ([]model.ServiceCategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.ServiceCategory, len(r.s.categories))
	copy(out, r.s.categories)
	return out, nil
}
