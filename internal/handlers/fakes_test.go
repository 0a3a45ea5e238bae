package handlers

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"

	"github.com/DennisRussell0/cereal-api/internal/auth"
	dom "github.com/DennisRussell0/cereal-api/internal/domain"
	"github.com/DennisRussell0/cereal-api/internal/repo"
)

type memCereals struct {
	mu     sync.Mutex
	nextID int64
	rows   []dom.Cereal
	// writeErr fails Create and Update.
	writeErr error
}

func (r *memCereals) Create(_ context.Context, c dom.Cereal) (dom.Cereal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return dom.Cereal{}, r.writeErr
	}
	r.nextID++
	c.ID = r.nextID
	r.rows = append(r.rows, c)
	return c, nil
}

func (r *memCereals) GetByID(_ context.Context, id int64) (dom.Cereal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.rows {
		if c.ID == id {
			return c, nil
		}
	}
	return dom.Cereal{}, sql.ErrNoRows
}

// List supports the name/mfr substring and calories equality conditions used by these tests.
func (r *memCereals) List(_ context.Context, f repo.CerealFilter) ([]dom.Cereal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []dom.Cereal{}
rows:
	for _, c := range r.rows {
		for _, cond := range f.Conditions {
			switch cond.Column {
			case "name", "mfr":
				v := c.Name
				if cond.Column == "mfr" {
					v = c.Mfr
				}
				if !strings.Contains(strings.ToLower(v), strings.ToLower(cond.Value.(string))) {
					continue rows
				}
			case "calories":
				if c.Calories != cond.Value.(int) {
					continue rows
				}
			}
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *memCereals) Update(_ context.Context, c dom.Cereal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return r.writeErr
	}
	for i := range r.rows {
		if r.rows[i].ID == c.ID {
			r.rows[i] = c
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *memCereals) Delete(_ context.Context, id int64) (bool, error) {
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

func (r *memCereals) DeleteAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.rows))
	r.rows = nil
	return n, nil
}

type memUsers struct {
	users []dom.User
}

func (r *memUsers) GetByUsername(_ context.Context, username string) (dom.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return dom.User{}, sql.ErrNoRows
}

func (r *memUsers) GetByID(_ context.Context, id int64) (dom.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return dom.User{}, sql.ErrNoRows
}

func (r *memUsers) Create(_ context.Context, username, passwordHash string) (dom.User, error) {
	u := dom.User{ID: int64(len(r.users) + 1), Username: username, PasswordHash: passwordHash}
	r.users = append(r.users, u)
	return u, nil
}

// failingDelete is a session store whose Delete always fails.
type failingDelete struct {
	*auth.MemoryStore
}

func (failingDelete) Delete(context.Context, string) error {
	return errors.New("redis: connection refused")
}
