package book

type CreateBookReq struct {
	Title           string  `json:"title" validate:"required"`
	Author          string  `json:"author" validate:"required"`
	ISBN            *string `json:"isbn"`
	PublicationYear *int    `json:"publicationYear"`
	Publisher       *string `json:"publisher"`
	Description     *string `json:"description"`
	CoverImage      *string `json:"coverImage"`
	Quantity        *int    `json:"quantity" validate:"omitempty,gte=1"`
	CategoryID      int64   `json:"categoryId" validate:"required,gt=0"`
}

// UpdateBookReq is a partial update: absent fields keep their stored
// value, present fields overwrite it (including explicit empty strings).
type UpdateBookReq struct {
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	ISBN            *string `json:"isbn"`
	PublicationYear *int    `json:"publicationYear"`
	Publisher       *string `json:"publisher"`
	Description     *string `json:"description"`
	CoverImage      *string `json:"coverImage"`
	Quantity        *int    `json:"quantity" validate:"omitempty,gte=1"`
	CategoryID      *int64  `json:"categoryId" validate:"omitempty,gt=0"`
}
