// Package hotels is the sample protected resource of the service: a plain
// CRUD surface over hotel records, guarded by role based authorization.
package hotels

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
)

// ErrHotelNotFound is the error we return for non found hotels
var ErrHotelNotFound = errors.New("hotel not found")

// Hotel is the hotel record. Pays keeps the original column name for the
// hotel's country.
type Hotel struct {
	bun.BaseModel `bun:"table:hotels,alias:htl"`
	ID            int64  `bun:"id,pk,autoincrement" json:"id"`
	Name          string `bun:"name,notnull" json:"name"`
	Address       string `bun:"address" json:"address"`
	Pays          string `bun:"pays" json:"pays"`
	City          string `bun:"city" json:"city"`
	Phone         string `bun:"phone" json:"phone"`
	Stars         int    `bun:"stars" json:"stars"`
	Points        int    `bun:"points" json:"points"`
}

// Repository is a bun backed store for hotel records
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// InitSchema creates the hotels table if it is missing
func (r *Repository) InitSchema(ctx context.Context) error {
	_, err := r.db.NewCreateTable().Model((*Hotel)(nil)).IfNotExists().Exec(ctx)
	return err
}

func (r *Repository) List(ctx context.Context) ([]*Hotel, error) {
	var hotels []*Hotel
	err := r.db.NewSelect().
		Model(&hotels).
		OrderExpr("htl.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return hotels, nil
}

func (r *Repository) Get(ctx context.Context, id int64) (*Hotel, error) {
	hotel := &Hotel{}
	err := r.db.NewSelect().
		Model(hotel).
		Where("htl.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}

	return hotel, nil
}

func (r *Repository) Create(ctx context.Context, hotel *Hotel) (*Hotel, error) {
	if _, err := r.db.NewInsert().Model(hotel).Exec(ctx); err != nil {
		return nil, err
	}
	return hotel, nil
}

// Rename updates the name of an existing hotel
func (r *Repository) Rename(ctx context.Context, id int64, name string) error {
	res, err := r.db.NewUpdate().
		Model((*Hotel)(nil)).
		Set("name = ?", name).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrHotelNotFound
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model((*Hotel)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrHotelNotFound
	}

	return nil
}
