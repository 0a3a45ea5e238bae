package service

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	dom "github.com/DennisRussell0/cereal-api/internal/domain"
	"github.com/DennisRussell0/cereal-api/internal/repo"
)

type fakeCerealRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   []dom.Cereal
	err    error
	lists  int

	// When listRelease is set, List signals listStarted and waits for listRelease to close.
	listStarted chan struct{}
	listRelease chan struct{}
}

func (r *fakeCerealRepo) Create(ctx context.Context, c dom.Cereal) (dom.Cereal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return dom.Cereal{}, r.err
	}
	r.nextID++
	c.ID = r.nextID
	r.rows = append(r.rows, c)
	return c, nil
}

func (r *fakeCerealRepo) GetByID(ctx context.Context, id int64) (dom.Cereal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return dom.Cereal{}, r.err
	}
	for _, c := range r.rows {
		if c.ID == id {
			return c, nil
		}
	}
	return dom.Cereal{}, sql.ErrNoRows
}

func (r *fakeCerealRepo) List(ctx context.Context, f repo.CerealFilter) ([]dom.Cereal, error) {
	if r.listRelease != nil {
		select {
		case r.listStarted <- struct{}{}:
		default:
		}
		<-r.listRelease
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists++
	if r.err != nil {
		return nil, r.err
	}
	out := []dom.Cereal{}
	for _, c := range r.rows {
		if matches(c, f) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCerealRepo) Update(ctx context.Context, c dom.Cereal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == c.ID {
			r.rows[i] = c
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *fakeCerealRepo) Delete(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCerealRepo) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.rows))
	r.rows = nil
	return n, nil
}

// matches mirrors the SQL produced by repo.CerealFilter.Where.
func matches(c dom.Cereal, f repo.CerealFilter) bool {
	for _, cond := range f.Conditions {
		v := column(c, cond.Column)
		switch cond.Op {
		case repo.OpContains:
			if !strings.Contains(strings.ToLower(v.(string)), strings.ToLower(cond.Value.(string))) {
				return false
			}
		case repo.OpEquals:
			if v != cond.Value {
				return false
			}
		}
	}
	return true
}

func column(c dom.Cereal, name string) any {
	switch name {
	case "name":
		return c.Name
	case "mfr":
		return c.Mfr
	case "type":
		return c.Type
	case "calories":
		return c.Calories
	case "protein":
		return c.Protein
	case "fat":
		return c.Fat
	case "sodium":
		return c.Sodium
	case "fiber":
		return c.Fiber
	case "carbo":
		return c.Carbo
	case "sugars":
		return c.Sugars
	case "potass":
		return c.Potass
	case "vitamins":
		return c.Vitamins
	case "shelf":
		return c.Shelf
	case "weight":
		return c.Weight
	case "cups":
		return c.Cups
	case "rating":
		return c.Rating
	}
	return nil
}

type fakeUserRepo struct {
	mu        sync.Mutex
	users     []dom.User
	createErr error
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return dom.User{}, sql.ErrNoRows
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return dom.User{}, sql.ErrNoRows
}

func (r *fakeUserRepo) Create(ctx context.Context, username, passwordHash string) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return dom.User{}, r.createErr
	}
	u := dom.User{ID: int64(len(r.users) + 1), Username: username, PasswordHash: passwordHash, CreatedAt: time.Now()}
	r.users = append(r.users, u)
	return u, nil
}
