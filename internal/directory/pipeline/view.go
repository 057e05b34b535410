package pipeline

import (
	"github.com/gartstein/directory/internal/directory/models"
)

// View is the derived view for one combination of record set and browse state.
// It is rebuilt from scratch on every state change.
type View struct {
	// Items is the full filtered and sorted sequence.
	Items []models.Company
	// Page is the visible slice of Items.
	Page Page
}

// DeriveView runs filter, sort and paginate over records.
func DeriveView(records []models.Company, f models.Filter, s models.Sort, page int) View {
	items := Sort(Filter(records, f), s)
	return View{
		Items: items,
		Page:  Paginate(items, page, models.PageSize),
	}
}
