package memory

import (
	"context"
	"sort"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
)

type appointmentRepo struct{ s *Store }

func (s *Store) Appointments() repository.AppointmentRepository { return &appointmentRepo{s} }

func (r *appointmentRepo) Create(_ context.Context, appt *model.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	appt.ID = r.s.nextID("appointments")
	appt.CreatedAt = now()
	appt.UpdatedAt = appt.CreatedAt
	r.s.appointments = append(r.s.appointments, *appt)
	return nil
}

func (r *appointmentRepo) FindByID(_ context.Context, id uint) (*model.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.appointments {
		if r.s.appointments[i].ID == id {
			appt := r.s.appointments[i]
			return &appt, nil
		}
	}
	return nil, repository.ErrNotFound
}

func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && t.After(to) {
		return false
	}
	return true
}

func (r *appointmentRepo) List(_ context.Context, filter repository.AppointmentFilter, page, limit int) ([]model.Appointment, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var matched []model.Appointment
	for _, appt := range r.s.appointments {
		if !visibleInBranch(appt.BranchID, filter.BranchID) {
			continue
		}
		if filter.Status != "" && appt.Status != filter.Status {
			continue
		}
		if !inRange(appt.Date, filter.From, filter.To) {
			continue
		}
		matched = append(matched, appt)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Date.Equal(matched[j].Date) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].Date.After(matched[j].Date)
	})
	appts, total := paginate(matched, page, limit)
	return appts, total, nil
}

func (r *appointmentRepo) Update(_ context.Context, appt *model.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.appointments {
		if r.s.appointments[i].ID == appt.ID {
			appt.UpdatedAt = now()
			r.s.appointments[i] = *appt
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *appointmentRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.appointments {
		if r.s.appointments[i].ID == id {
			r.s.appointments = append(r.s.appointments[:i], r.s.appointments[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *appointmentRepo) CountByStatus(_ context.Context, branchID *uint, from, to time.Time) (map[string]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := make(map[string]int64)
	for _, appt := range r.s.appointments {
		if !visibleInBranch(appt.BranchID, branchID) {
			continue
		}
		if !inRange(appt.Date, from, to) {
			continue
		}
		counts[appt.Status]++
	}
	return counts, nil
}
