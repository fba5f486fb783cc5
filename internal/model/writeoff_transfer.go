package model

import (
	"time"

	"github.com/google/uuid"
)

// WriteoffTransfer is an inventory writeoff/transfer act. A non-nil
// LocationTo marks a transfer destination; acts with both writeoff and
// transfer items are classified "mixed".
type WriteoffTransfer struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Location   string    `gorm:"type:varchar(255);not null;index"` // source location
	LocationTo *string   `gorm:"type:varchar(255);index"`

	Writeoffs ItemEntryList `gorm:"type:jsonb"`
	Transfers ItemEntryList `gorm:"type:jsonb"`

	ShiftType   string `gorm:"type:varchar(20);not null"` // "morning" | "night"
	CashierName string `gorm:"type:varchar(255);not null"`

	// Date is the optional report date/time stated on the act.
	Date *time.Time

	CreatedAt time.Time `gorm:"index"`
}

func (WriteoffTransfer) TableName() string { return "writeoff_transfers" }

// Report type classification values.
const (
	TypeWriteoff = "writeoff"
	TypeTransfer = "transfer"
	TypeMixed    = "mixed"
)

// Type classifies the act by which item lists are populated. Empty acts
// (allowed) have no type and return "".
func (w *WriteoffTransfer) Type() string {
	switch {
	case len(w.Writeoffs) > 0 && len(w.Transfers) > 0:
		return TypeMixed
	case len(w.Writeoffs) > 0:
		return TypeWriteoff
	case len(w.Transfers) > 0:
		return TypeTransfer
	default:
		return ""
	}
}
