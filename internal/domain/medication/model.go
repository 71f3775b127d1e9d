package medication

import "time"

// Medication is an inventory row with a mutable stock counter. Stock and
// price coerce empty input to zero; they are never stored as NULL, unlike
// patient numerics.
type Medication struct {
	ID            int64      `db:"id" json:"id"`
	Name          string     `db:"name" json:"name"`
	Dosage        *string    `db:"dosage" json:"dosage,omitempty"`
	Description   *string    `db:"description" json:"description,omitempty"`
	StockQuantity int        `db:"stock_quantity" json:"stock_quantity"`
	UnitPrice     float64    `db:"unit_price" json:"unit_price"`
	ExpiryDate    *time.Time `db:"expiry_date" json:"expiry_date,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}
