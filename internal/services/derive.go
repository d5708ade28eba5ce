package services

import (
	"time"

	"smartpantry/internal/domain"
)

const warningWindowDays = 7

// Derive turns a snapshot of item rows into the dashboard view: each item
// decorated with days-left, status bucket and need-buy, plus the shopping
// list (the need-buy subsequence, same relative order). It is pure: "today"
// is an input, never the system clock, and input order is preserved.
func Derive(items []domain.Item, today time.Time) (inventory, shoppingList []domain.DecoratedItem) {
	inventory = make([]domain.DecoratedItem, 0, len(items))
	for _, it := range items {
		d := domain.DecoratedItem{
			Item:     it,
			DaysLeft: domain.NoExpiry,
			Status:   domain.StatusGood,
			NeedBuy:  it.Quantity <= it.MinQuantity,
		}
		// A missing or malformed expiry date means "does not expire";
		// bad data degrades to good, never to an error.
		if it.ExpiryDate != "" {
			if exp, err := time.Parse("2006-01-02", it.ExpiryDate); err == nil {
				d.DaysLeft = daysBetween(today, exp)
				switch {
				case d.DaysLeft < 0:
					d.Status = domain.StatusExpired
				case d.DaysLeft <= warningWindowDays:
					d.Status = domain.StatusWarning
				}
			}
		}
		inventory = append(inventory, d)
		if d.NeedBuy {
			shoppingList = append(shoppingList, d)
		}
	}
	return inventory, shoppingList
}

// daysBetween counts whole calendar days from a to b, ignoring any time
// component on either side.
func daysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
