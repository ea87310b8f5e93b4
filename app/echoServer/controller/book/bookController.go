package book

import (
	"log/slog"
	"net/http"
	"strconv"

	booksvc "github.com/Touati-Fadwa/Micro-books/service/book"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc booksvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /api/books?title=&author=&categoryId=
func (h *Controller) List(c echo.Context) error {
	f := booksvc.Filter{
		Title:  c.QueryParam("title"),
		Author: c.QueryParam("author"),
	}
	if raw := c.QueryParam("categoryId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid categoryId"})
		}
		f.CategoryID = id
	}
	rows, err := h.Svc.List(c.Request().Context(), f)
	if err != nil {
		h.Log.Error("book list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /api/books/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	row, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		if booksvc.Code(err) == booksvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		}
		h.Log.Error("book detail error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, row)
}

// POST /api/books  (admin)
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "title, author and categoryId are required"})
	}
	b, err := h.Svc.Create(c.Request().Context(), booksvc.CreateInput{
		Title:           req.Title,
		Author:          req.Author,
		ISBN:            req.ISBN,
		PublicationYear: req.PublicationYear,
		Publisher:       req.Publisher,
		Description:     req.Description,
		CoverImage:      req.CoverImage,
		Quantity:        req.Quantity,
		CategoryID:      req.CategoryID,
	})
	if err != nil {
		switch booksvc.Code(err) {
		case booksvc.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "title, author and categoryId are required"})
		case booksvc.ErrCategoryNotFound:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "category not found"})
		}
		h.Log.Error("book create error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, b)
}

// PUT /api/books/:id  (admin)
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}
	b, err := h.Svc.Update(c.Request().Context(), id, booksvc.Patch{
		Title:           req.Title,
		Author:          req.Author,
		ISBN:            req.ISBN,
		PublicationYear: req.PublicationYear,
		Publisher:       req.Publisher,
		Description:     req.Description,
		CoverImage:      req.CoverImage,
		Quantity:        req.Quantity,
		CategoryID:      req.CategoryID,
	})
	if err != nil {
		switch booksvc.Code(err) {
		case booksvc.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
		case booksvc.ErrCategoryNotFound:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "category not found"})
		case booksvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		}
		h.Log.Error("book update error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, b)
}

// DELETE /api/books/:id  (admin)
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		switch booksvc.Code(err) {
		case booksvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		case booksvc.ErrHasActiveLoans:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "book has active borrowings"})
		}
		h.Log.Error("book delete error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "book deleted"})
}
