package dto

import (
	"mime/multipart"
	"time"

	"github.com/shopspring/decimal"

	"github.com/armbdevelop/reportBot/internal/entries"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CreateShiftReportForm is bound from the multipart form of
// POST /api/shift-reports/create. Monetary fields arrive as whole units;
// fact_cash is the physically counted cash and may be negative.
type CreateShiftReportForm struct {
	Location    string `form:"location"     validate:"required"`
	ShiftType   string `form:"shift_type"   validate:"required,oneof=morning night"`
	ShiftDate   string `form:"shift_date"`  // optional, ISO-ish datetime
	CashierName string `form:"cashier_name" validate:"required"`

	TotalRevenue       int64 `form:"total_revenue"         validate:"min=0"`
	Returns            int64 `form:"returns"               validate:"min=0"`
	Acquiring          int64 `form:"acquiring"             validate:"min=0"`
	QRCode             int64 `form:"qr_code"               validate:"min=0"`
	OnlineApp          int64 `form:"online_app"            validate:"min=0"`
	YandexFood         int64 `form:"yandex_food"           validate:"min=0"`
	YandexFoodNoSystem int64 `form:"yandex_food_no_system" validate:"min=0"`
	Primehill          int64 `form:"primehill"             validate:"min=0"`
	FactCash           int64 `form:"fact_cash"`

	IncomeEntriesJSON  string  `form:"income_entries_json"`
	ExpenseEntriesJSON string  `form:"expense_entries_json"`
	Comments           *string `form:"comments"`
}

// CreateShiftReportInput bundles the form with the uploaded files.
type CreateShiftReportInput struct {
	CreateShiftReportForm
	Photo        *multipart.FileHeader // required
	ReceiptPhoto *multipart.FileHeader // optional
}

// ShiftReportFilter is bound from the query string of GET /api/shift-reports/list.
type ShiftReportFilter struct {
	StartDate string `form:"start_date"` // YYYY-MM-DD, inclusive
	EndDate   string `form:"end_date"`   // YYYY-MM-DD, inclusive
	Location  string `form:"location"`   // code, address, or "all"
	Page      int    `form:"page,default=1"     validate:"min=1"`
	PerPage   int    `form:"per_page,default=10" validate:"min=1,max=100"`
}

// ShiftReportQuery is the resolved filter handed to the repository:
// dates expanded to inclusive bounds, location normalized.
type ShiftReportQuery struct {
	Start    *time.Time
	End      *time.Time
	Location string
	Page     int
	PerPage  int
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ShiftReportResponse struct {
	ID          string `json:"id"`
	Location    string `json:"location"`
	ShiftType   string `json:"shift_type"`
	CashierName string `json:"cashier_name"`
	Date        string `json:"date"`

	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	Returns            decimal.Decimal `json:"returns"`
	Acquiring          decimal.Decimal `json:"acquiring"`
	QRCode             decimal.Decimal `json:"qr_code"`
	OnlineApp          decimal.Decimal `json:"online_app"`
	YandexFood         decimal.Decimal `json:"yandex_food"`
	YandexFoodNoSystem decimal.Decimal `json:"yandex_food_no_system"`
	Primehill          decimal.Decimal `json:"primehill"`
	TotalAcquiring     decimal.Decimal `json:"total_acquiring"`
	TotalIncome        decimal.Decimal `json:"total_income"`
	TotalExpenses      decimal.Decimal `json:"total_expenses"`
	FactCash           decimal.Decimal `json:"fact_cash"`
	CalculatedAmount   decimal.Decimal `json:"calculated_amount"`
	// Difference keeps the historical field name for surplus/shortage.
	Difference decimal.Decimal `json:"difference"`

	IncomeEntries  []entries.IncomeEntry  `json:"income_entries"`
	ExpenseEntries []entries.ExpenseEntry `json:"expense_entries"`

	Comments        *string `json:"comments"`
	PhotoURL        string  `json:"photo_url"`
	ReceiptPhotoURL *string `json:"receipt_photo_url"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at,omitempty"`
}

type ShiftReportListResponse struct {
	Reports    []ShiftReportResponse `json:"reports"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PerPage    int                   `json:"per_page"`
	TotalPages int                   `json:"total_pages"`
}

// DeleteResponse confirms a deletion.
type DeleteResponse struct {
	Message   string `json:"message"`
	DeletedID string `json:"deleted_id"`
}
