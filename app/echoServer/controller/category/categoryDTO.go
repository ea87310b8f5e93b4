package category

type CategoryReq struct {
	Name string `json:"name" validate:"required"`
}
