package model

// JSONB column mapping for the entry lists. Lists are stored as JSON arrays;
// a nil slice is persisted as [] so the column is never SQL NULL and
// json_array_length stays usable in filters.

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/armbdevelop/reportBot/internal/entries"
)

type IncomeEntryList []entries.IncomeEntry

func (l IncomeEntryList) Value() (driver.Value, error) {
	if l == nil {
		l = IncomeEntryList{}
	}
	return json.Marshal(l)
}

func (l *IncomeEntryList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

type ExpenseEntryList []entries.ExpenseEntry

func (l ExpenseEntryList) Value() (driver.Value, error) {
	if l == nil {
		l = ExpenseEntryList{}
	}
	return json.Marshal(l)
}

func (l *ExpenseEntryList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

type ItemEntryList []entries.ItemEntry

func (l ItemEntryList) Value() (driver.Value, error) {
	if l == nil {
		l = ItemEntryList{}
	}
	return json.Marshal(l)
}

func (l *ItemEntryList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

func scanJSON(src, dst interface{}) error {
	switch data := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(data, dst)
	case string:
		return json.Unmarshal([]byte(data), dst)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}
