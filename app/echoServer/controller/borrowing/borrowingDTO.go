package borrowing

import "time"

type CreateBorrowingReq struct {
	BookID       int64     `json:"bookId" validate:"required,gt=0"`
	StudentID    int64     `json:"studentId" validate:"required,gt=0"`
	StudentName  string    `json:"studentName" validate:"required"`
	StudentEmail string    `json:"studentEmail" validate:"required,email"`
	DueDate      time.Time `json:"dueDate" validate:"required"`
	Notes        *string   `json:"notes"`
}
