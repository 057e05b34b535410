package render

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/gartstein/directory/internal/directory/models"
)

// descriptionWidth is the widest description cell before truncation.
const descriptionWidth = 40

// Table renders companies as a bordered table.
func (r *Renderer) Table(companies []models.Company) string {
	rows := make([][]string, 0, len(companies))
	for _, c := range companies {
		rows = append(rows, []string{
			c.Name,
			c.Industry,
			c.Location,
			r.Number(c.Employees),
			strconv.Itoa(c.Founded),
			truncate(c.Description, descriptionWidth),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(subtleStyle).
		Headers("Company Name", "Industry", "Location", "Employees", "Founded", "Description").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row%2 == 1:
				return oddCellStyle
			default:
				return cellStyle
			}
		})
	if r.width > 0 {
		t = t.Width(r.width)
	}
	return t.String()
}
