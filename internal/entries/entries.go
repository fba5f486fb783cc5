// Package entries parses the loosely-typed JSON line items submitted with
// reports (incomes, expenses, writeoffs, transfers) into strongly-typed
// records. Parsing is pure: no I/O, no side effects.
package entries

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// IncomeEntry is a single cash deposit recorded during a shift.
type IncomeEntry struct {
	Amount  int64  `json:"amount"`
	Comment string `json:"comment"`
}

// ExpenseEntry is a single cash expense recorded during a shift.
type ExpenseEntry struct {
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
}

// ItemEntry is one writeoff or transfer line: an inventory item with its
// quantized weight, measurement unit and the stated reason.
type ItemEntry struct {
	Name   string `json:"name"`
	Weight int64  `json:"weight"`
	Unit   string `json:"unit"`
	Reason string `json:"reason"`
}

// ── Error taxonomy ───────────────────────────────────────────────────────────

// Kind discriminates the validation failure classes.
type Kind string

const (
	KindMalformedInput Kind = "malformed_input" // not JSON, or not an array
	KindMissingField   Kind = "missing_field"   // required key absent from an entry
	KindInvalidValue   Kind = "invalid_value"   // non-numeric or non-positive amount/weight
)

// Error is the discriminated result of a failed parse. Detail is safe to
// surface to clients as-is.
type Error struct {
	Kind   Kind
	Field  string
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func malformed(field, detail string) *Error {
	return &Error{Kind: KindMalformedInput, Field: field, Detail: detail}
}

func missing(field, detail string) *Error {
	return &Error{Kind: KindMissingField, Field: field, Detail: detail}
}

func invalid(field, detail string) *Error {
	return &Error{Kind: KindInvalidValue, Field: field, Detail: detail}
}

// ── Parsing ──────────────────────────────────────────────────────────────────

// ParseIncome parses income_entries_json. An absent (empty) input yields an
// empty slice, not an error. Element order is preserved.
func ParseIncome(raw string) ([]IncomeEntry, error) {
	items, err := decodeArray(raw, "income_entries_json")
	if err != nil {
		return nil, err
	}

	out := make([]IncomeEntry, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, missing("income_entries", "each income entry must contain 'amount' and 'comment'")
		}
		amountRaw, hasAmount := obj["amount"]
		commentRaw, hasComment := obj["comment"]
		if !hasAmount || !hasComment {
			return nil, missing("income_entries", "each income entry must contain 'amount' and 'comment'")
		}
		amount, ok := coerceInt(amountRaw)
		if !ok || amount <= 0 {
			return nil, invalid("amount", fmt.Sprintf("invalid income amount: %v", amountRaw))
		}
		out = append(out, IncomeEntry{Amount: amount, Comment: stringify(commentRaw)})
	}
	return out, nil
}

// ParseExpense parses expense_entries_json with the same contract as ParseIncome.
func ParseExpense(raw string) ([]ExpenseEntry, error) {
	items, err := decodeArray(raw, "expense_entries_json")
	if err != nil {
		return nil, err
	}

	out := make([]ExpenseEntry, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, missing("expense_entries", "each expense entry must contain 'description' and 'amount'")
		}
		descRaw, hasDesc := obj["description"]
		amountRaw, hasAmount := obj["amount"]
		if !hasDesc || !hasAmount {
			return nil, missing("expense_entries", "each expense entry must contain 'description' and 'amount'")
		}
		amount, ok := coerceInt(amountRaw)
		if !ok || amount <= 0 {
			return nil, invalid("amount", fmt.Sprintf("invalid expense amount: %v", amountRaw))
		}
		out = append(out, ExpenseEntry{Description: stringify(descRaw), Amount: amount})
	}
	return out, nil
}

// ParseItems parses writeoffs_json / transfers_json. field names the source
// form field for error messages. Weights must be strictly positive JSON
// numbers and are quantized to whole units via QuantizeWeight.
func ParseItems(raw, field string) ([]ItemEntry, error) {
	items, err := decodeArray(raw, field)
	if err != nil {
		return nil, err
	}

	out := make([]ItemEntry, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, missing(field, "each item must contain 'name', 'weight', 'unit' and 'reason'")
		}
		nameRaw, hasName := obj["name"]
		weightRaw, hasWeight := obj["weight"]
		unitRaw, hasUnit := obj["unit"]
		reasonRaw, hasReason := obj["reason"]
		if !hasName || !hasWeight || !hasUnit || !hasReason {
			return nil, missing(field, "each item must contain 'name', 'weight', 'unit' and 'reason'")
		}
		weight, ok := coerceFloat(weightRaw)
		if !ok || weight <= 0 {
			return nil, invalid("weight", "item weight must be a positive number")
		}
		out = append(out, ItemEntry{
			Name:   stringify(nameRaw),
			Weight: QuantizeWeight(weight),
			Unit:   stringify(unitRaw),
			Reason: stringify(reasonRaw),
		})
	}
	return out, nil
}

// decodeArray unmarshals raw into a JSON array. Empty input is an empty array.
func decodeArray(raw, field string) ([]interface{}, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, malformed(field, fmt.Sprintf("invalid JSON in %s", field))
	}
	arr, ok := v.([]interface{})
	if !ok {
		return nil, malformed(field, fmt.Sprintf("%s must be a JSON array", field))
	}
	return arr, nil
}

// coerceInt accepts JSON integers and integer strings ("500"), rejecting
// fractional values ("2.5" or 2.5) and everything non-numeric.
func coerceInt(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

// coerceFloat accepts JSON numbers only; strings are rejected to match the
// upstream weight contract.
func coerceFloat(v interface{}) (float64, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	f, err := n.Float64()
	return f, err == nil
}

func stringify(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		return fmt.Sprint(s)
	}
}
