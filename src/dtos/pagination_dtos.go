package dtos

// Pagination is the shared paging contract for every listing endpoint:
// page and limit both start at 1 and the offset is (page-1)*limit.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

func (p Pagination) Valid() bool {
	return p.Page >= 1 && p.Limit >= 1
}
