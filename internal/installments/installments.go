// Package installments computes which installment of a parceled purchase is
// due for a given reference date. It is the single source of this arithmetic:
// both the expense listing and the statistics aggregation derive installment
// numbers and values from here, never independently.
package installments

import "time"

// Installment describes the state of an installment plan at a reference date.
type Installment struct {
	// Number is the 1-based installment due at the reference date,
	// clamped to [1, Total].
	Number int `json:"number"`
	// Total is the number of installments in the plan (1 for plain purchases).
	Total int `json:"total"`
	// Value is the amount due this cycle in cents: the full original total
	// divided by the installment count, or 0 once the plan is completed.
	Value int64 `json:"value"`
	// Completed reports whether the reference date is past the final installment.
	Completed bool `json:"completed"`
}

// Resolve computes the installment state for a purchase at the given
// reference date. It is a pure function of its inputs.
//
// A count of 1 or less (including malformed stored values) means a
// single-installment purchase, which is always current and never completed.
// A purchase dated in the future clamps the number to 1 without zeroing the
// value; only passing the final installment zeroes it.
func Resolve(purchaseDate time.Time, count int, totalValue int64, now time.Time) Installment {
	if count <= 1 {
		return Installment{Number: 1, Total: 1, Value: totalValue}
	}

	elapsed := monthsElapsed(purchaseDate, now)

	number := elapsed + 1
	if number < 1 {
		number = 1
	}
	completed := elapsed+1 > count
	if number > count {
		number = count
	}

	value := totalValue / int64(count)
	if completed {
		value = 0
	}

	return Installment{
		Number:    number,
		Total:     count,
		Value:     value,
		Completed: completed,
	}
}

// DueThisMonth reports whether an installment of the plan falls in the
// calendar month of the reference date. This is true from the purchase month
// through the final installment month, inclusive.
func DueThisMonth(purchaseDate time.Time, count int, now time.Time) bool {
	if count <= 1 {
		return sameMonth(purchaseDate, now)
	}
	elapsed := monthsElapsed(purchaseDate, now)
	return elapsed >= 0 && elapsed < count
}

// monthsElapsed returns the number of whole calendar months between the
// purchase month and the reference month. Negative when the purchase is in a
// future month.
func monthsElapsed(purchaseDate, now time.Time) int {
	return (now.Year()-purchaseDate.Year())*12 + int(now.Month()) - int(purchaseDate.Month())
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
