package render

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/gartstein/directory/internal/directory/models"
)

const (
	cardWidth   = 34
	cardColumns = 3
)

var cardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorHighlight).
	Padding(0, 1).
	Width(cardWidth)

// Cards renders companies as a grid of cards, as many per row as fit.
func (r *Renderer) Cards(companies []models.Company) string {
	columns := cardColumns
	if r.width > 0 {
		columns = max(1, r.width/(cardWidth+2))
	}

	var rows []string
	for start := 0; start < len(companies); start += columns {
		end := min(start+columns, len(companies))
		cards := make([]string, 0, end-start)
		for _, c := range companies[start:end] {
			cards = append(cards, r.Card(c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Card renders a single company.
func (r *Renderer) Card(c models.Company) string {
	inner := cardWidth - 2
	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(truncate(c.Name, inner)),
		badgeStyle.Render(truncate(c.Industry, inner-2)),
		"",
		truncate(c.Description, inner*2),
		"",
		subtleStyle.Render("⌖ "+c.Location),
		subtleStyle.Render(fmt.Sprintf("⚇ %s employees", r.Number(c.Employees))),
		subtleStyle.Render(fmt.Sprintf("⌚ Founded in %d", c.Founded)),
	)
	return cardStyle.Render(body)
}
