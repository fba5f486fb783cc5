package service

import (
	"github.com/shopspring/decimal"

	"github.com/armbdevelop/reportBot/internal/entries"
)

// ReconciliationInput carries the validated monetary figures of one shift.
// All values are whole units; FactCash is the physically counted cash and
// may be negative.
type ReconciliationInput struct {
	TotalRevenue       int64
	Returns            int64
	Acquiring          int64
	QRCode             int64
	OnlineApp          int64
	YandexFood         int64
	YandexFoodNoSystem int64
	Primehill          int64
	FactCash           int64

	IncomeEntries  []entries.IncomeEntry
	ExpenseEntries []entries.ExpenseEntry
}

// ReconciliationResult holds the derived totals as exact decimals.
type ReconciliationResult struct {
	TotalIncome      decimal.Decimal
	TotalExpenses    decimal.Decimal
	TotalAcquiring   decimal.Decimal
	CalculatedAmount decimal.Decimal
	// SurplusShortage is fact_cash - calculated_amount: positive means the
	// drawer held more cash than expected.
	SurplusShortage decimal.Decimal
}

// Reconcile computes the cash reconciliation for a shift. It is a total
// function over validated input: no failure modes, no rounding.
//
//	calculated_amount = total_revenue - returns + total_income
//	                    - total_expenses - total_acquiring
func Reconcile(in ReconciliationInput) ReconciliationResult {
	var totalIncome int64
	for _, e := range in.IncomeEntries {
		totalIncome += e.Amount
	}
	var totalExpenses int64
	for _, e := range in.ExpenseEntries {
		totalExpenses += e.Amount
	}

	totalAcquiring := in.Acquiring + in.QRCode + in.OnlineApp +
		in.YandexFood + in.YandexFoodNoSystem + in.Primehill

	calculated := in.TotalRevenue - in.Returns + totalIncome - totalExpenses - totalAcquiring

	return ReconciliationResult{
		TotalIncome:      decimal.NewFromInt(totalIncome),
		TotalExpenses:    decimal.NewFromInt(totalExpenses),
		TotalAcquiring:   decimal.NewFromInt(totalAcquiring),
		CalculatedAmount: decimal.NewFromInt(calculated),
		SurplusShortage:  decimal.NewFromInt(in.FactCash - calculated),
	}
}
