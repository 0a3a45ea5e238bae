package service

import (
	"context"
	"fmt"

	dom "github.com/DennisRussell0/cereal-api/internal/domain"
	"github.com/DennisRussell0/cereal-api/internal/repo"
	"github.com/DennisRussell0/cereal-api/internal/utils"

	"golang.org/x/sync/singleflight"
)

type CerealService struct {
	repo repo.CerealRepo
	sf   singleflight.Group
}

func NewCerealService(r repo.CerealRepo) *CerealService {
	return &CerealService{repo: r}
}

// List returns the records matching f. Concurrent identical filters share one query.
// The shared query is detached from the caller that started it; each caller still
// returns early when its own ctx is done.
func (s *CerealService) List(ctx context.Context, f repo.CerealFilter) ([]dom.Cereal, error) {
	ch := s.sf.DoChan(filterKey(f), func() (interface{}, error) {
		return s.repo.List(context.WithoutCancel(ctx), f)
	})
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("list cereals: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("list cereals: %w", res.Err)
		}
		return res.Val.([]dom.Cereal), nil
	}
}

func (s *CerealService) GetByID(ctx context.Context, id int64) (dom.Cereal, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if utils.IsNoRows(err) {
			return dom.Cereal{}, ErrNotFound
		}
		return dom.Cereal{}, fmt.Errorf("get cereal: %w", err)
	}
	return c, nil
}

func (s *CerealService) Delete(ctx context.Context, id int64) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete cereal: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Save creates a record when id is 0 and otherwise applies patch to the existing record id.
// An id that does not exist yields ErrManualID; nothing is created in that case.
// The bool result is true when a record was created.
func (s *CerealService) Save(ctx context.Context, id int64, patch dom.CerealPatch) (dom.Cereal, bool, error) {
	if id == 0 {
		c, err := s.create(ctx, patch)
		return c, err == nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if utils.IsNoRows(err) {
			return dom.Cereal{}, false, ErrManualID
		}
		return dom.Cereal{}, false, fmt.Errorf("get cereal: %w", err)
	}
	patch.ApplyTo(&existing)
	if err := s.repo.Update(ctx, existing); err != nil {
		if utils.IsNoRows(err) {
			return dom.Cereal{}, false, ErrNotFound
		}
		return dom.Cereal{}, false, fmt.Errorf("update cereal: %w", err)
	}
	return existing, false, nil
}

func (s *CerealService) create(ctx context.Context, patch dom.CerealPatch) (dom.Cereal, error) {
	if missing := patch.Missing(); len(missing) > 0 {
		return dom.Cereal{}, &ValidationError{Field: missing[0], Msg: "missing required field: " + missing[0]}
	}
	var c dom.Cereal
	patch.ApplyTo(&c)
	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return dom.Cereal{}, fmt.Errorf("create cereal: %w", err)
	}
	return created, nil
}
