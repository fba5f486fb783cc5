package worker

// format.go
// Telegram message templates. The operations chat reads Russian; field
// labels mirror the report forms the cashiers fill in.

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/armbdevelop/reportBot/internal/entries"
	"github.com/armbdevelop/reportBot/internal/model"
)

func shiftTypeLabel(shiftType string) string {
	switch shiftType {
	case "morning":
		return "Утренняя"
	case "night":
		return "Ночная"
	default:
		return shiftType
	}
}

// FormatShiftReport renders the end-of-shift reconciliation summary.
func FormatShiftReport(r *model.ShiftReport) string {
	var b strings.Builder

	b.WriteString("📊 Отчет о завершении смены\n\n")
	fmt.Fprintf(&b, "📍 Локация: %s\n", r.Location)
	fmt.Fprintf(&b, "🕐 Смена: %s\n", shiftTypeLabel(r.ShiftType))
	fmt.Fprintf(&b, "👤 Кассир: %s\n", r.CashierName)
	fmt.Fprintf(&b, "📅 Дата: %s\n\n", r.Date.Format("02.01.2006 15:04"))

	fmt.Fprintf(&b, "💰 Выручка: %s\n", r.TotalRevenue)
	fmt.Fprintf(&b, "↩️ Возвраты: %s\n", r.Returns)
	fmt.Fprintf(&b, "💳 Эквайринг (итого): %s\n", r.TotalAcquiring)

	if len(r.IncomeEntries) > 0 {
		fmt.Fprintf(&b, "\n➕ Приходы (итого %s):\n", r.TotalIncome)
		for _, e := range r.IncomeEntries {
			fmt.Fprintf(&b, "  • %d — %s\n", e.Amount, e.Comment)
		}
	}
	if len(r.ExpenseEntries) > 0 {
		fmt.Fprintf(&b, "\n➖ Расходы (итого %s):\n", r.TotalExpenses)
		for _, e := range r.ExpenseEntries {
			fmt.Fprintf(&b, "  • %d — %s\n", e.Amount, e.Description)
		}
	}

	fmt.Fprintf(&b, "\n🧮 Расчетная сумма: %s\n", r.CalculatedAmount)
	fmt.Fprintf(&b, "💵 Фактическая наличность: %s\n", r.FactCash)
	b.WriteString(surplusLine(r.SurplusShortage))

	if r.Comments != nil && *r.Comments != "" {
		fmt.Fprintf(&b, "\n💬 Комментарий: %s\n", *r.Comments)
	}

	return b.String()
}

func surplusLine(d decimal.Decimal) string {
	switch d.Sign() {
	case 1:
		return fmt.Sprintf("✅ Излишек: %s\n", d)
	case -1:
		return fmt.Sprintf("⚠️ Недостача: %s\n", d.Abs())
	default:
		return "✅ Касса сошлась\n"
	}
}

// FormatWriteoffTransfer renders a writeoff/transfer act summary.
// discriminator is the free-form writeoff_or_transfer value from the form and
// only affects the header.
func FormatWriteoffTransfer(r *model.WriteoffTransfer, discriminator string) string {
	var b strings.Builder

	switch {
	case discriminator != "":
		fmt.Fprintf(&b, "📦 Акт: %s\n\n", discriminator)
	case r.Type() == model.TypeTransfer:
		b.WriteString("📦 Акт перемещения\n\n")
	default:
		b.WriteString("📦 Акт списания\n\n")
	}

	fmt.Fprintf(&b, "📍 Локация: %s\n", r.Location)
	if r.LocationTo != nil && *r.LocationTo != "" {
		fmt.Fprintf(&b, "➡️ Куда: %s\n", *r.LocationTo)
	}
	fmt.Fprintf(&b, "🕐 Смена: %s\n", shiftTypeLabel(r.ShiftType))
	fmt.Fprintf(&b, "👤 Кассир: %s\n", r.CashierName)
	if r.Date != nil {
		fmt.Fprintf(&b, "📅 Дата: %s\n", r.Date.Format("02.01.2006 15:04"))
	}

	if len(r.Writeoffs) > 0 {
		b.WriteString("\n🗑 Списания:\n")
		writeItems(&b, r.Writeoffs)
	}
	if len(r.Transfers) > 0 {
		b.WriteString("\n🚚 Перемещения:\n")
		writeItems(&b, r.Transfers)
	}
	if len(r.Writeoffs) == 0 && len(r.Transfers) == 0 {
		b.WriteString("\n(пустой акт)\n")
	}

	return b.String()
}

func writeItems(b *strings.Builder, items []entries.ItemEntry) {
	for _, it := range items {
		fmt.Fprintf(b, "  • %s — %d %s (%s)\n", it.Name, it.Weight, it.Unit, it.Reason)
	}
}
