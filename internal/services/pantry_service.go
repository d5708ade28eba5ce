package services

import (
	"strings"

	"smartpantry/internal/domain"
	"smartpantry/internal/repos"
)

// PantryService owns every state transition on item rows. All validation
// happens here so a failed call never reaches the store.
type PantryService struct {
	Items *repos.ItemRepo
}

func NewPantryService(items *repos.ItemRepo) *PantryService {
	return &PantryService{Items: items}
}

// Add creates an item. Both names must be non-empty after trimming and the
// quantities non-negative; the expiry is optional (empty means no expiry).
func (s *PantryService) Add(namePrimary, nameSecondary string, qty, minQty int, expiry string) (*domain.Item, error) {
	namePrimary = strings.TrimSpace(namePrimary)
	nameSecondary = strings.TrimSpace(nameSecondary)
	if namePrimary == "" || nameSecondary == "" {
		return nil, domain.ErrValidation
	}
	if qty < 0 || minQty < 0 {
		return nil, domain.ErrValidation
	}
	return s.Items.Insert(namePrimary, nameSecondary, qty, minQty, strings.TrimSpace(expiry))
}

// Increment adds one to the item's quantity. No upper bound.
func (s *PantryService) Increment(id int64) (*domain.Item, error) {
	return s.Items.AdjustQuantity(id, 1)
}

// Decrement subtracts one, clamped at zero. Hitting the floor is not an
// error: decrementing an empty item leaves it empty.
func (s *PantryService) Decrement(id int64) (*domain.Item, error) {
	return s.Items.AdjustQuantity(id, -1)
}

// Delete removes the item and returns its primary name for messaging.
func (s *PantryService) Delete(id int64) (string, error) {
	it, err := s.Items.Get(id)
	if err != nil {
		return "", err
	}
	if err := s.Items.Delete(id); err != nil {
		return "", err
	}
	return it.NamePrimary, nil
}

// ClearAll wipes the pantry. An already-empty pantry is a success with
// zero removed.
func (s *PantryService) ClearAll() (int64, error) {
	return s.Items.ClearAll()
}
