// model/book.go
package model

import "time"

type Book struct {
	ID                int64     `db:"id" json:"id"`
	Title             string    `db:"title" json:"title"`
	Author            string    `db:"author" json:"author"`
	ISBN              *string   `db:"isbn" json:"isbn"`
	PublicationYear   *int      `db:"publication_year" json:"publicationYear"`
	Publisher         *string   `db:"publisher" json:"publisher"`
	Description       *string   `db:"description" json:"description"`
	CoverImage        *string   `db:"cover_image" json:"coverImage"`
	Quantity          int       `db:"quantity" json:"quantity"`
	AvailableQuantity int       `db:"available_quantity" json:"availableQuantity"`
	CategoryID        int64     `db:"category_id" json:"categoryId"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `db:"updated_at" json:"updatedAt"`
}

// BookView is a Book enriched with its category name and a derived
// availability flag for list/detail responses.
type BookView struct {
	Book
	CategoryName string `db:"category_name" json:"categoryName"`
	Available    bool   `db:"-" json:"available"`
}
