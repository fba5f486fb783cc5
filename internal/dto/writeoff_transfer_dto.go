package dto

import (
	"time"

	"github.com/armbdevelop/reportBot/internal/entries"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CreateWriteoffTransferForm is bound from the multipart form of
// POST /api/writeoff-transfer/create. A present location_to marks a transfer
// destination. Acts with no items at all are accepted.
type CreateWriteoffTransferForm struct {
	LocationFrom string  `form:"location_from" validate:"required"`
	LocationTo   *string `form:"location_to"`

	WriteoffsJSON string `form:"writeoffs_json"`
	TransfersJSON string `form:"transfers_json"`

	ReportDate string `form:"report_date"` // YYYY-MM-DD, optional
	ReportTime string `form:"report_time"` // HH:MM, optional

	ShiftType   string `form:"shift_type"   validate:"required,oneof=morning night"`
	CashierName string `form:"cashier_name" validate:"required"`
	// WriteoffOrTransfer is a free-form discriminator forwarded to the
	// notification template.
	WriteoffOrTransfer string `form:"writeoff_or_transfer" validate:"required"`
}

// WriteoffTransferFilter is bound from the query string of
// GET /api/writeoff-transfer/list.
type WriteoffTransferFilter struct {
	StartDate    string `form:"start_date"`
	EndDate      string `form:"end_date"`
	Location     string `form:"location"`      // matches either side
	LocationFrom string `form:"location_from"` // source only
	LocationTo   string `form:"location_to"`   // destination only
	Type         string `form:"type" validate:"omitempty,oneof=writeoff transfer"`
	Page         int    `form:"page,default=1"     validate:"min=1"`
	PerPage      int    `form:"per_page,default=10" validate:"min=1,max=100"`
}

// WriteoffTransferQuery is the resolved filter handed to the repository.
type WriteoffTransferQuery struct {
	Start        *time.Time
	End          *time.Time
	Location     string
	LocationFrom string
	LocationTo   string
	Type         string // "writeoff" | "transfer" | ""
	Page         int
	PerPage      int
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type WriteoffTransferResponse struct {
	ID          string  `json:"id"`
	Location    string  `json:"location"`
	LocationTo  *string `json:"location_to"`
	CashierName string  `json:"cashier_name"`
	ShiftType   string  `json:"shift_type"`
	// Type is "writeoff", "transfer", "mixed", or empty for an empty act.
	Type string `json:"type"`

	Writeoffs  []entries.ItemEntry `json:"writeoffs"`
	Transfers  []entries.ItemEntry `json:"transfers"`
	ItemsCount int                 `json:"items_count"`

	Date      *string `json:"date"`
	CreatedAt string  `json:"created_at"`
}

type WriteoffTransferListResponse struct {
	Reports    []WriteoffTransferResponse `json:"reports"`
	Total      int64                      `json:"total"`
	Page       int                        `json:"page"`
	PerPage    int                        `json:"per_page"`
	TotalPages int                        `json:"total_pages"`
}
