package pipeline

import (
	"github.com/gartstein/directory/internal/directory/models"
)

// Page is one slice of the derived view plus its display bounds.
type Page struct {
	// Items is the contiguous slice shown on this page.
	Items []models.Company
	// Number is the effective 1-based page number after clamping.
	Number int
	// TotalPages is ceil(Total / page size); 0 when the view is empty.
	TotalPages int
	// FirstIndex and LastIndex are the 1-based display bounds.
	FirstIndex int
	LastIndex  int
	// Total is the number of records in the derived view.
	Total int
}

// Paginate slices records into pages of pageSize and returns the requested page.
// Pages below 1 are treated as 1; pages past the end of a non-empty view are
// clamped to the last page.
func Paginate(records []models.Company, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = models.PageSize
	}
	total := len(records)
	totalPages := (total + pageSize - 1) / pageSize

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := min((page-1)*pageSize, total)
	end := min(page*pageSize, total)

	items := make([]models.Company, end-start)
	copy(items, records[start:end])

	return Page{
		Items:      items,
		Number:     page,
		TotalPages: totalPages,
		FirstIndex: (page-1)*pageSize + 1,
		LastIndex:  end,
		Total:      total,
	}
}
