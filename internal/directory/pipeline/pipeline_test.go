package pipeline

import (
	"fmt"
	"testing"

	"github.com/gartstein/directory/internal/directory/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCompanies() []models.Company {
	return []models.Company{
		{ID: "1", Name: "Acme", Description: "Rockets and anvils", Industry: "Tech", Location: "Berlin", Employees: 50, Founded: 2010},
		{ID: "2", Name: "Beta", Description: "Beta testing as a service", Industry: "Tech", Location: "Paris", Employees: 10, Founded: 2015},
		{ID: "3", Name: "Zeta", Description: "Clinics", Industry: "Health", Location: "Berlin", Employees: 200, Founded: 2005},
	}
}

func names(records []models.Company) []string {
	out := make([]string, len(records))
	for i, c := range records {
		out[i] = c.Name
	}
	return out
}

func ids(records []models.Company) []models.CompanyID {
	out := make([]models.CompanyID, len(records))
	for i, c := range records {
		out[i] = c.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter models.Filter
		want   []string
	}{
		{name: "empty filter keeps everything", filter: models.Filter{}, want: []string{"Acme", "Beta", "Zeta"}},
		{name: "industry equality", filter: models.Filter{Industry: "Tech"}, want: []string{"Acme", "Beta"}},
		{name: "industry is case sensitive", filter: models.Filter{Industry: "tech"}, want: []string{}},
		{name: "location equality", filter: models.Filter{Location: "Berlin"}, want: []string{"Acme", "Zeta"}},
		{name: "search is case insensitive substring", filter: models.Filter{Search: "ETA"}, want: []string{"Beta", "Zeta"}},
		{name: "search matches description", filter: models.Filter{Search: "anvil"}, want: []string{"Acme"}},
		{name: "search ignores industry filter", filter: models.Filter{Search: "eta", Industry: ""}, want: []string{"Beta", "Zeta"}},
		{name: "filters compose with and", filter: models.Filter{Search: "eta", Location: "Berlin"}, want: []string{"Zeta"}},
		{name: "no match", filter: models.Filter{Search: "nothing like this"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(sampleCompanies(), tt.filter)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestFilter_EmptyInput(t *testing.T) {
	assert.Empty(t, Filter(nil, models.Filter{Search: "x"}))
	assert.Empty(t, Filter([]models.Company{}, models.Filter{}))
}

func TestFilter_SubsetAndOrderIndependent(t *testing.T) {
	records := sampleCompanies()
	f := models.Filter{Search: "e", Industry: "Tech", Location: "Paris"}

	combined := Filter(records, f)
	stepwise := Filter(Filter(Filter(records, models.Filter{Location: f.Location}), models.Filter{Industry: f.Industry}), models.Filter{Search: f.Search})

	assert.Equal(t, combined, stepwise)
	for _, c := range combined {
		assert.Contains(t, records, c)
		assert.Equal(t, "Tech", c.Industry)
		assert.Equal(t, "Paris", c.Location)
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	records := sampleCompanies()
	before := append([]models.Company(nil), records...)
	_ = Filter(records, models.Filter{Industry: "Health"})
	assert.Equal(t, before, records)
}

func TestSort(t *testing.T) {
	tests := []struct {
		name string
		sort models.Sort
		want []string
	}{
		{name: "name ascending", sort: models.Sort{Field: models.SortByName, Direction: models.Ascending}, want: []string{"Acme", "Beta", "Zeta"}},
		{name: "name descending", sort: models.Sort{Field: models.SortByName, Direction: models.Descending}, want: []string{"Zeta", "Beta", "Acme"}},
		{name: "employees ascending", sort: models.Sort{Field: models.SortByEmployees, Direction: models.Ascending}, want: []string{"Beta", "Acme", "Zeta"}},
		{name: "founded descending", sort: models.Sort{Field: models.SortByFounded, Direction: models.Descending}, want: []string{"Beta", "Acme", "Zeta"}},
		{name: "unknown field falls back to name", sort: models.Sort{Field: "revenue", Direction: models.Ascending}, want: []string{"Acme", "Beta", "Zeta"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(Sort(sampleCompanies(), tt.sort)))
		})
	}
}

func TestSort_TextIsCaseInsensitive(t *testing.T) {
	records := []models.Company{
		{ID: "1", Name: "banana"},
		{ID: "2", Name: "Apple"},
		{ID: "3", Name: "cherry"},
	}
	got := Sort(records, models.Sort{Field: models.SortByName, Direction: models.Ascending})
	assert.Equal(t, []string{"Apple", "banana", "cherry"}, names(got))
}

func TestSort_NumericIsNotLexicographic(t *testing.T) {
	records := []models.Company{
		{ID: "1", Name: "A", Employees: 9},
		{ID: "2", Name: "B", Employees: 100},
		{ID: "3", Name: "C", Employees: 20},
	}
	got := Sort(records, models.Sort{Field: models.SortByEmployees, Direction: models.Ascending})
	assert.Equal(t, []string{"A", "C", "B"}, names(got))
}

func TestSort_StableInBothDirections(t *testing.T) {
	records := []models.Company{
		{ID: "a", Name: "One", Industry: "Tech"},
		{ID: "b", Name: "Two", Industry: "Health"},
		{ID: "c", Name: "Three", Industry: "tech"},
		{ID: "d", Name: "Four", Industry: "Health"},
		{ID: "e", Name: "Five", Industry: "TECH"},
	}

	asc := Sort(records, models.Sort{Field: models.SortByIndustry, Direction: models.Ascending})
	assert.Equal(t, []models.CompanyID{"b", "d", "a", "c", "e"}, ids(asc))

	desc := Sort(records, models.Sort{Field: models.SortByIndustry, Direction: models.Descending})
	assert.Equal(t, []models.CompanyID{"a", "c", "e", "b", "d"}, ids(desc))
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	records := sampleCompanies()
	before := append([]models.Company(nil), records...)
	_ = Sort(records, models.Sort{Field: models.SortByEmployees, Direction: models.Descending})
	assert.Equal(t, before, records)
}

func generated(n int) []models.Company {
	out := make([]models.Company, n)
	for i := range out {
		out[i] = models.Company{
			ID:        models.CompanyID(fmt.Sprint(i + 1)),
			Name:      fmt.Sprintf("Company %02d", i+1),
			Industry:  "Tech",
			Location:  "Oslo",
			Employees: i,
			Founded:   1990 + i,
		}
	}
	return out
}

func TestPaginate(t *testing.T) {
	records := generated(23)

	t.Run("last partial page", func(t *testing.T) {
		p := Paginate(records, 3, 10)
		assert.Equal(t, 3, p.TotalPages)
		assert.Len(t, p.Items, 3)
		assert.Equal(t, 21, p.FirstIndex)
		assert.Equal(t, 23, p.LastIndex)
		assert.Equal(t, 23, p.Total)
		assert.Equal(t, models.CompanyID("21"), p.Items[0].ID)
	})

	t.Run("first page", func(t *testing.T) {
		p := Paginate(records, 1, 10)
		assert.Equal(t, 1, p.Number)
		assert.Len(t, p.Items, 10)
		assert.Equal(t, 1, p.FirstIndex)
		assert.Equal(t, 10, p.LastIndex)
	})

	t.Run("page below one", func(t *testing.T) {
		p := Paginate(records, 0, 10)
		assert.Equal(t, 1, p.Number)
		assert.Equal(t, 1, p.FirstIndex)
	})

	t.Run("page past the end is clamped", func(t *testing.T) {
		p := Paginate(records, 9, 10)
		assert.Equal(t, 3, p.Number)
		assert.Len(t, p.Items, 3)
	})

	t.Run("empty view", func(t *testing.T) {
		p := Paginate(nil, 1, 10)
		assert.Equal(t, 0, p.TotalPages)
		assert.Empty(t, p.Items)
		assert.Equal(t, 0, p.Total)
		assert.Equal(t, 0, p.LastIndex)
	})

	t.Run("non positive page size uses default", func(t *testing.T) {
		p := Paginate(records, 1, 0)
		assert.Len(t, p.Items, models.PageSize)
	})
}

func TestPaginate_CoversEverything(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 23, 40} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			records := generated(n)
			first := Paginate(records, 1, 10)

			var all []models.Company
			for page := 1; page <= first.TotalPages; page++ {
				all = append(all, Paginate(records, page, 10).Items...)
			}
			if n == 0 {
				assert.Empty(t, all)
				return
			}
			assert.Equal(t, records, all)
		})
	}
}

func TestFacets(t *testing.T) {
	records := sampleCompanies()
	records = append(records, models.Company{ID: "4", Name: "Delta", Industry: "Finance", Location: "Amsterdam"})

	assert.Equal(t, []string{"Finance", "Health", "Tech"}, Facets(records, models.FacetIndustry))
	assert.Equal(t, []string{"Amsterdam", "Berlin", "Paris"}, Facets(records, models.FacetLocation))
	assert.Empty(t, Facets(nil, models.FacetIndustry))
}

func TestDeriveView_SpecExample(t *testing.T) {
	view := DeriveView(
		sampleCompanies(),
		models.Filter{Industry: "Tech"},
		models.Sort{Field: models.SortByEmployees, Direction: models.Ascending},
		1,
	)

	require.Len(t, view.Items, 2)
	assert.Equal(t, []string{"Beta", "Acme"}, names(view.Page.Items))
	assert.Equal(t, 10, view.Page.Items[0].Employees)
	assert.Equal(t, 50, view.Page.Items[1].Employees)
	assert.Equal(t, 1, view.Page.TotalPages)
}

func TestDeriveView_Idempotent(t *testing.T) {
	records := generated(37)
	f := models.Filter{Search: "company 1"}
	s := models.Sort{Field: models.SortByFounded, Direction: models.Descending}

	first := DeriveView(records, f, s, 2)
	second := DeriveView(records, f, s, 2)
	assert.Equal(t, first, second)
}
