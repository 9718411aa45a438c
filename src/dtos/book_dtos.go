package dtos

import "github.com/google/uuid"

type AddBookDTO struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Category string `json:"category"`
	Summary  string `json:"summary"`
}

type UpdateBookDTO struct {
	Uid      uuid.UUID `json:"uid"`
	Title    string    `json:"title"`
	Author   string    `json:"author"`
	Category string    `json:"category"`
	Summary  string    `json:"summary"`
}

// BookFilterDTO narrows the catalog search; zero-valued fields are ignored.
type BookFilterDTO struct {
	Title        string `json:"title"`
	Author       string `json:"author"`
	Category     string `json:"category"`
	Availability *bool  `json:"availability"`
	Pagination
}

type SearchBookDTO struct {
	Title string `json:"title"`
}

type UIDBookDTO struct {
	Uid uuid.UUID `json:"uid"`
}
