package memory

import (
	"context"

	"backend/internal/model"
	"backend/internal/repository"
)

type userRepo struct{ s *Store }

func (s *Store) Users() repository.UserRepository { return &userRepo{s} }

func (r *userRepo) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user.ID = r.s.nextID("users")
	user.CreatedAt = now()
	user.UpdatedAt = user.CreatedAt
	r.s.users = append(r.s.users, *user)
	return nil
}

func (r *userRepo) FindByID(_ context.Context, id uint) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.users {
		if r.s.users[i].ID == id {
			u := r.s.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.users {
		if r.s.users[i].Username == username {
			u := r.s.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.users {
		if r.s.users[i].Email == email {
			u := r.s.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) List(_ context.Context, page, limit int) ([]model.User, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	users, total := paginate(r.s.users, page, limit)
	return users, total, nil
}

func (r *userRepo) Update(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.users {
		if r.s.users[i].ID == user.ID {
			user.UpdatedAt = now()
			r.s.users[i] = *user
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *userRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.users {
		if r.s.users[i].ID == id {
			r.s.users = append(r.s.users[:i], r.s.users[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *userRepo) GrantBranch(_ context.Context, userID, branchID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, g := range r.s.userBranches {
		if g.UserID == userID && g.BranchID == branchID {
			return nil
		}
	}
	r.s.userBranches = append(r.s.userBranches, model.UserBranch{
		ID:       r.s.nextID("user_branches"),
		UserID:   userID,
		BranchID: branchID,
	})
	return nil
}

func (r *userRepo) RevokeBranch(_ context.Context, userID, branchID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, g := range r.s.userBranches {
		if g.UserID == userID && g.BranchID == branchID {
			r.s.userBranches = append(r.s.userBranches[:i], r.s.userBranches[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *userRepo) ListBranchIDs(_ context.Context, userID uint) ([]uint, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ids []uint
	for _, g := range r.s.userBranches {
		if g.UserID == userID {
			ids = append(ids, g.BranchID)
		}
	}
	return ids, nil
}

func (r *userRepo) CreateRefreshToken(_ context.Context, token *model.RefreshToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	token.ID = r.s.nextID("refresh_tokens")
	token.CreatedAt = now()
	r.s.refreshTokens = append(r.s.refreshTokens, *token)
	return nil
}

func (r *userRepo) FindRefreshToken(_ context.Context, token string) (*model.RefreshToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.refreshTokens {
		if r.s.refreshTokens[i].Token == token {
			rt := r.s.refreshTokens[i]
			return &rt, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) DeleteRefreshToken(_ context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.refreshTokens {
		if r.s.refreshTokens[i].Token == token {
			r.s.refreshTokens = append(r.s.refreshTokens[:i], r.s.refreshTokens[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type branchRepo struct{ s *Store }

func (s *Store) Branches() repository.BranchRepository { return &branchRepo{s} }

func (r *branchRepo) Create(_ context.Context, branch *model.Branch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	branch.ID = r.s.nextID("branches")
	branch.CreatedAt = now()
	branch.UpdatedAt = branch.CreatedAt
	r.s.branches = append(r.s.branches, *branch)
	return nil
}

func (r *branchRepo) FindByID(_ context.Context, id uint) (*model.Branch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.branches {
		if r.s.branches[i].ID == id {
			b := r.s.branches[i]
			return &b, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *branchRepo) List(_ context.Context, activeOnly bool) ([]model.Branch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.Branch, 0, len(r.s.branches))
	for _, b := range r.s.branches {
		if activeOnly && !b.Active {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *branchRepo) Update(_ context.Context, branch *model.Branch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.branches {
		if r.s.branches[i].ID == branch.ID {
			branch.UpdatedAt = now()
			r.s.branches[i] = *branch
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *branchRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.branches {
		if r.s.branches[i].ID == id {
			r.s.branches = append(r.s.branches[:i], r.s.branches[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}
