package worker

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/armbdevelop/reportBot/internal/model"
)

func sampleShiftReport() *model.ShiftReport {
	return &model.ShiftReport{
		Location:    "Гагарина 48/1",
		ShiftType:   "night",
		CashierName: "Амина",
		Date:        time.Date(2026, 8, 27, 21, 30, 0, 0, time.Local),
		IncomeEntries: model.IncomeEntryList{
			{Amount: 500, Comment: "разменный фонд"},
		},
		ExpenseEntries: model.ExpenseEntryList{
			{Description: "такси", Amount: 100},
		},
		TotalIncome:      decimal.NewFromInt(500),
		TotalExpenses:    decimal.NewFromInt(100),
		TotalRevenue:     decimal.NewFromInt(15000),
		Returns:          decimal.NewFromInt(200),
		TotalAcquiring:   decimal.NewFromInt(5000),
		FactCash:         decimal.NewFromInt(10200),
		CalculatedAmount: decimal.NewFromInt(10200),
	}
}

func TestFormatShiftReport(t *testing.T) {
	msg := FormatShiftReport(sampleShiftReport())

	assert.Contains(t, msg, "Гагарина 48/1")
	assert.Contains(t, msg, "Ночная")
	assert.Contains(t, msg, "Амина")
	assert.Contains(t, msg, "27.08.2026 21:30")
	assert.Contains(t, msg, "Выручка: 15000")
	assert.Contains(t, msg, "500 — разменный фонд")
	assert.Contains(t, msg, "100 — такси")
	assert.Contains(t, msg, "Касса сошлась")
}

func TestFormatShiftReportShortage(t *testing.T) {
	r := sampleShiftReport()
	r.SurplusShortage = decimal.NewFromInt(-150)
	msg := FormatShiftReport(r)

	assert.Contains(t, msg, "Недостача: 150")
	assert.NotContains(t, msg, "Излишек")
}

func TestFormatShiftReportComments(t *testing.T) {
	r := sampleShiftReport()
	comment := "сломался терминал"
	r.Comments = &comment

	assert.Contains(t, FormatShiftReport(r), "сломался терминал")
}

func TestFormatWriteoffTransfer(t *testing.T) {
	to := "Гайдара Гаджиева 7Б"
	r := &model.WriteoffTransfer{
		Location:    "Гагарина 48/1",
		LocationTo:  &to,
		ShiftType:   "morning",
		CashierName: "Мадина",
		Transfers: model.ItemEntryList{
			{Name: "сыр", Weight: 2, Unit: "кг", Reason: "перемещение"},
		},
	}

	msg := FormatWriteoffTransfer(r, "Перемещение")
	assert.Contains(t, msg, "Акт: Перемещение")
	assert.Contains(t, msg, "Куда: Гайдара Гаджиева 7Б")
	assert.Contains(t, msg, "сыр — 2 кг (перемещение)")

	// Without a discriminator the header falls back to the classified type.
	msg = FormatWriteoffTransfer(r, "")
	assert.Contains(t, msg, "Акт перемещения")
}

func TestFormatWriteoffTransferEmptyAct(t *testing.T) {
	r := &model.WriteoffTransfer{
		Location:    "Гагарина 48/1",
		ShiftType:   "night",
		CashierName: "Амина",
	}

	msg := FormatWriteoffTransfer(r, "")
	assert.Contains(t, msg, "Акт списания")
	assert.Contains(t, msg, "пустой акт")
}
