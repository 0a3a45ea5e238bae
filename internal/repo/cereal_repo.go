package repo

import (
	"context"
	"database/sql"

	dom "github.com/DennisRussell0/cereal-api/internal/domain"
)

type CerealRepo interface {
	Create(ctx context.Context, c dom.Cereal) (dom.Cereal, error)
	GetByID(ctx context.Context, id int64) (dom.Cereal, error)
	List(ctx context.Context, f CerealFilter) ([]dom.Cereal, error)
	Update(ctx context.Context, c dom.Cereal) error
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteAll(ctx context.Context) (int64, error)
}

const cerealColumns = `id, name, mfr, type, calories, protein, fat, sodium, fiber, carbo,
	sugars, potass, vitamins, shelf, weight, cups, rating, image_path`

type PGCerealRepo struct {
	db DBTX
}

func NewPGCerealRepo(db DBTX) *PGCerealRepo {
	return &PGCerealRepo{db: db}
}

// Create inserts c ignoring c.ID and returns it with the assigned ID.
func (r *PGCerealRepo) Create(ctx context.Context, c dom.Cereal) (dom.Cereal, error) {
	query := `
		INSERT INTO cereals (name, mfr, type, calories, protein, fat, sodium, fiber, carbo,
			sugars, potass, vitamins, shelf, weight, cups, rating, image_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		c.Name, c.Mfr, c.Type, c.Calories, c.Protein, c.Fat, c.Sodium, c.Fiber, c.Carbo,
		c.Sugars, c.Potass, c.Vitamins, c.Shelf, c.Weight, c.Cups, c.Rating, nullString(c.ImagePath),
	).Scan(&c.ID)
	if err != nil {
		return dom.Cereal{}, err
	}
	return c, nil
}

// GetByID returns sql.ErrNoRows when the record does not exist.
func (r *PGCerealRepo) GetByID(ctx context.Context, id int64) (dom.Cereal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+cerealColumns+` FROM cereals WHERE id = $1`, id)
	return scanCereal(row)
}

// List returns the rows matching f in storage order.
func (r *PGCerealRepo) List(ctx context.Context, f CerealFilter) ([]dom.Cereal, error) {
	where, args, err := f.Where()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+cerealColumns+` FROM cereals`+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []dom.Cereal{}
	for rows.Next() {
		c, err := scanCereal(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update writes every column of c. Returns sql.ErrNoRows if the row is gone.
func (r *PGCerealRepo) Update(ctx context.Context, c dom.Cereal) error {
	query := `
		UPDATE cereals SET name = $2, mfr = $3, type = $4, calories = $5, protein = $6, fat = $7,
			sodium = $8, fiber = $9, carbo = $10, sugars = $11, potass = $12, vitamins = $13,
			shelf = $14, weight = $15, cups = $16, rating = $17, image_path = $18
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, c.ID,
		c.Name, c.Mfr, c.Type, c.Calories, c.Protein, c.Fat, c.Sodium, c.Fiber, c.Carbo,
		c.Sugars, c.Potass, c.Vitamins, c.Shelf, c.Weight, c.Cups, c.Rating, nullString(c.ImagePath),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete reports whether a row was removed.
func (r *PGCerealRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cereals WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteAll empties the catalog and returns the number of removed rows.
func (r *PGCerealRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cereals`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCereal(s scanner) (dom.Cereal, error) {
	var c dom.Cereal
	var image sql.NullString
	err := s.Scan(&c.ID, &c.Name, &c.Mfr, &c.Type, &c.Calories, &c.Protein, &c.Fat, &c.Sodium,
		&c.Fiber, &c.Carbo, &c.Sugars, &c.Potass, &c.Vitamins, &c.Shelf, &c.Weight, &c.Cups,
		&c.Rating, &image)
	if err != nil {
		return dom.Cereal{}, err
	}
	if image.Valid {
		c.ImagePath = &image.String
	}
	return c, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
