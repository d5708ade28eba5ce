package repos

import (
	"database/sql"
	"errors"

	"smartpantry/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ItemRepo struct{ db *sqlx.DB }

func NewItemRepo(db *sqlx.DB) *ItemRepo { return &ItemRepo{db: db} }

const itemCols = `id,name_primary,name_secondary,quantity,min_quantity,COALESCE(expiry_date,'') AS expiry_date,created_at`

// ListAll returns every item, newest first.
func (r *ItemRepo) ListAll() ([]domain.Item, error) {
	var items []domain.Item
	err := r.db.Select(&items, `SELECT `+itemCols+` FROM items ORDER BY id DESC`)
	return items, err
}

func (r *ItemRepo) Get(id int64) (*domain.Item, error) {
	var it domain.Item
	err := r.db.Get(&it, `SELECT `+itemCols+` FROM items WHERE id=?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Insert stores a new item and returns it with the assigned id.
// An empty expiry is stored as NULL.
func (r *ItemRepo) Insert(namePrimary, nameSecondary string, qty, minQty int, expiry string) (*domain.Item, error) {
	var exp any
	if expiry != "" {
		exp = expiry
	}
	res, err := r.db.Exec(`
		INSERT INTO items(name_primary,name_secondary,quantity,min_quantity,expiry_date)
		VALUES(?,?,?,?,?)`,
		namePrimary, nameSecondary, qty, minQty, exp)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.Get(id)
}

func (r *ItemRepo) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM items WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustQuantity applies delta to an item's quantity, clamped at zero.
// The clamp happens in the statement so a racing decrement can never
// push the row negative.
func (r *ItemRepo) AdjustQuantity(id int64, delta int) (*domain.Item, error) {
	res, err := r.db.Exec(`UPDATE items SET quantity = MAX(0, quantity + ?) WHERE id=?`, delta, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound
	}
	return r.Get(id)
}

// ClearAll removes every item and reports how many rows went away.
func (r *ItemRepo) ClearAll() (int64, error) {
	res, err := r.db.Exec(`DELETE FROM items`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
