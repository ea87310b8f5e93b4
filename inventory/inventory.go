// Package inventory holds the availability arithmetic for book stock.
//
// The invariant it protects: availableQuantity = quantity - outstanding
// borrowings, clamped to [0, quantity]. Decrements and increments that
// accompany borrowing rows are done as guarded SQL inside the borrowing
// repository so they stay atomic with the row change; this package owns
// the pure recomputation used when a book's total stock is edited.
package inventory

// RecomputeAvailable returns the available count after a book's total
// quantity changes from oldQuantity to newQuantity. Copies currently out
// stay out: borrowed = oldQuantity - oldAvailable. Shrinking the stock
// below the borrowed count does not fail, it just floors availability at
// zero until copies come back.
func RecomputeAvailable(oldQuantity, oldAvailable, newQuantity int) int {
	borrowed := oldQuantity - oldAvailable
	next := newQuantity - borrowed
	if next < 0 {
		return 0
	}
	return next
}

// Clamp bounds an available count to [0, quantity], guarding against
// drift from returns of loans created under an older, larger stock.
func Clamp(available, quantity int) int {
	if available < 0 {
		return 0
	}
	if available > quantity {
		return quantity
	}
	return available
}
