// model/borrowing.go
package model

import "time"

type BorrowingStatus string

const (
	StatusBorrowed BorrowingStatus = "borrowed"
	StatusReturned BorrowingStatus = "returned"
	StatusOverdue  BorrowingStatus = "overdue"
)

type Borrowing struct {
	ID           int64           `db:"id" json:"id"`
	BookID       int64           `db:"book_id" json:"bookId"`
	StudentID    int64           `db:"student_id" json:"studentId"`
	StudentName  string          `db:"student_name" json:"studentName"`
	StudentEmail string          `db:"student_email" json:"studentEmail"`
	BorrowDate   time.Time       `db:"borrow_date" json:"borrowDate"`
	DueDate      time.Time       `db:"due_date" json:"dueDate"`
	ReturnDate   *time.Time      `db:"return_date" json:"returnDate"`
	Status       BorrowingStatus `db:"status" json:"status"`
	Notes        *string         `db:"notes" json:"notes"`
	CreatedAt    time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updatedAt"`
}

// Outstanding reports whether the copy is still out, i.e. no return
// has been recorded.
func (b *Borrowing) Outstanding() bool { return b.ReturnDate == nil }

type BorrowedBook struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	CoverImage *string `json:"coverImage"`
}

type Borrower struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// BorrowingDetail is the listing shape: a borrowing with its book summary
// denormalized in. Student is only populated on the admin-scoped listing.
type BorrowingDetail struct {
	ID         int64           `json:"id"`
	Book       BorrowedBook    `json:"book"`
	Student    *Borrower       `json:"student,omitempty"`
	BorrowDate time.Time       `json:"borrowDate"`
	DueDate    time.Time       `json:"dueDate"`
	ReturnDate *time.Time      `json:"returnDate"`
	Status     BorrowingStatus `json:"status"`
	Notes      *string         `json:"notes"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}
