package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShiftReport is an end-of-shift cash reconciliation record. It is created
// once on submission and never modified afterwards except for Status.
//
// Derived columns satisfy:
//
//	total_acquiring   = acquiring + qr_code + online_app + yandex_food
//	                    + yandex_food_no_system + primehill
//	calculated_amount = total_revenue - returns + total_income
//	                    - total_expenses - total_acquiring
//	surplus_shortage  = fact_cash - calculated_amount
type ShiftReport struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Location    string    `gorm:"type:varchar(255);not null;index"`
	ShiftType   string    `gorm:"type:varchar(20);not null"` // "morning" | "night"
	CashierName string    `gorm:"type:varchar(255);not null"`
	// Date is the shift date/time supplied by the cashier, not the insert time.
	Date time.Time `gorm:"not null;index"`

	IncomeEntries  IncomeEntryList  `gorm:"type:jsonb"`
	TotalIncome    decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	ExpenseEntries ExpenseEntryList `gorm:"type:jsonb"`
	TotalExpenses  decimal.Decimal  `gorm:"type:decimal(12,2);not null"`

	TotalRevenue       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Returns            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Acquiring          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	QRCode             decimal.Decimal `gorm:"column:qr_code;type:decimal(12,2);not null"`
	OnlineApp          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	YandexFood         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	YandexFoodNoSystem decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Primehill          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FactCash           decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	TotalAcquiring   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CalculatedAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SurplusShortage  decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	PhotoPath        string  `gorm:"type:text;not null"`
	ReceiptPhotoPath *string `gorm:"type:text"`
	Comments         *string
	Status           string `gorm:"type:varchar(20);not null;default:'created'"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (ShiftReport) TableName() string { return "shift_reports" }
