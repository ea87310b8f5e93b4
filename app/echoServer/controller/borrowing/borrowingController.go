package borrowing

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Touati-Fadwa/Micro-books/app/echoServer/jwtx"
	borrowsvc "github.com/Touati-Fadwa/Micro-books/service/borrowing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc borrowsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /api/borrowings  (admin)
func (h *Controller) ListAll(c echo.Context) error {
	rows, err := h.Svc.ListAll(c.Request().Context())
	if err != nil {
		h.Log.Error("borrowing list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /api/borrowings/student  (caller's own records)
func (h *Controller) ListMine(c echo.Context) error {
	id, err := jwtx.FromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	rows, err := h.Svc.ListByStudent(c.Request().Context(), id.ID)
	if err != nil {
		h.Log.Error("student borrowing list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /api/borrowings  (admin)
func (h *Controller) Create(c echo.Context) error {
	var req CreateBorrowingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "bookId, studentId, studentName, studentEmail and dueDate are required"})
	}
	b, err := h.Svc.Create(c.Request().Context(), borrowsvc.CreateInput{
		BookID:       req.BookID,
		StudentID:    req.StudentID,
		StudentName:  req.StudentName,
		StudentEmail: req.StudentEmail,
		DueDate:      req.DueDate,
		Notes:        req.Notes,
	})
	if err != nil {
		switch borrowsvc.Code(err) {
		case borrowsvc.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bookId, studentId, studentName, studentEmail and dueDate are required"})
		case borrowsvc.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		case borrowsvc.ErrNotAvailable:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "this book is not available for borrowing"})
		}
		h.Log.Error("borrowing create error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, b)
}

// PUT /api/borrowings/:id/return  (admin)
func (h *Controller) Return(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	b, err := h.Svc.Return(c.Request().Context(), id)
	if err != nil {
		switch borrowsvc.Code(err) {
		case borrowsvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "borrowing not found"})
		case borrowsvc.ErrAlreadyReturned:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "this book has already been returned"})
		}
		h.Log.Error("borrowing return error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":         b.ID,
		"returnDate": b.ReturnDate,
		"status":     b.Status,
	})
}

// DELETE /api/borrowings/:id  (admin)
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if borrowsvc.Code(err) == borrowsvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "borrowing not found"})
		}
		h.Log.Error("borrowing delete error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "borrowing deleted"})
}
