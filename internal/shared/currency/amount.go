package currency

import (
	"database/sql/driver"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Scale is the number of fractional digits a stored Amount keeps.
const Scale = 10

// Amount is a monetary column. Postgres stores it as numeric(24,10).
// Every other dialect stores the decimal string as text, since SQLite's
// numeric affinity would turn it into a float.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps d for persistence.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// GormDBDataType picks the column type per dialect.
func (Amount) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "numeric(24,10)"
	}
	return "text"
}

// Value writes the amount rounded to Scale digits.
func (a Amount) Value() (driver.Value, error) {
	return a.Round(Scale).String(), nil
}

// Scan reads text, numeric and float columns.
func (a *Amount) Scan(value any) error {
	return a.Decimal.Scan(value)
}
