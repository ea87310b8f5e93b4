package category

import (
	"log/slog"
	"net/http"
	"strconv"

	categorysvc "github.com/Touati-Fadwa/Micro-books/service/category"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc categorysvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /api/categories
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("category list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /api/categories/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	row, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		if categorysvc.Code(err) == categorysvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "category not found"})
		}
		h.Log.Error("category detail error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, row)
}

// POST /api/categories  (admin)
func (h *Controller) Create(c echo.Context) error {
	var req CategoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name is required"})
	}
	row, err := h.Svc.Create(c.Request().Context(), req.Name)
	if err != nil {
		switch categorysvc.Code(err) {
		case categorysvc.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "name is required"})
		case categorysvc.ErrNameTaken:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "a category with this name already exists"})
		}
		h.Log.Error("category create error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, row)
}

// PUT /api/categories/:id  (admin)
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req CategoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name is required"})
	}
	row, err := h.Svc.Rename(c.Request().Context(), id, req.Name)
	if err != nil {
		switch categorysvc.Code(err) {
		case categorysvc.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "name is required"})
		case categorysvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "category not found"})
		case categorysvc.ErrNameTaken:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "a category with this name already exists"})
		}
		h.Log.Error("category update error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, row)
}

// DELETE /api/categories/:id  (admin)
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		switch categorysvc.Code(err) {
		case categorysvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "category not found"})
		case categorysvc.ErrHasBooks:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "category still has books"})
		}
		h.Log.Error("category delete error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "category deleted"})
}
