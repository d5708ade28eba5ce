package domain

// NoExpiry is the days-left value for items without a usable expiry date.
const NoExpiry = 999

// Status buckets for an item's expiry state.
const (
	StatusGood    = "good"
	StatusWarning = "warning" // expires within 7 days
	StatusExpired = "expired"
)

type Item struct {
	ID          int64  `db:"id"`
	NamePrimary string `db:"name_primary"`
	NameSecond  string `db:"name_secondary"`
	Quantity    int    `db:"quantity"`
	MinQuantity int    `db:"min_quantity"`
	ExpiryDate  string `db:"expiry_date"` // YYYY-MM-DD, empty = does not expire
	CreatedAt   string `db:"created_at"`
}

// DecoratedItem is an Item plus the derived dashboard fields.
type DecoratedItem struct {
	Item
	DaysLeft int    `json:"days_left"`
	Status   string `json:"status"`
	NeedBuy  bool   `json:"need_buy"`
}

// ProductNames is the result of a barcode enrichment lookup.
type ProductNames struct {
	Code        string `json:"code"`
	NamePrimary string `json:"name_primary"`
	NameSecond  string `json:"name_secondary"`
}
