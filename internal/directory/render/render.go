// Package render turns a page of the derived view into terminal output:
// a table, a grid of cards, the result summary and the status screens.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gartstein/directory/internal/directory/controller"
	"github.com/gartstein/directory/internal/directory/models"
	"github.com/gartstein/directory/internal/directory/pipeline"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	colorSubtle    = lipgloss.Color("240")
	colorHighlight = lipgloss.Color("63")
	colorBadge     = lipgloss.Color("27")
	colorError     = lipgloss.Color("196")
	colorHint      = lipgloss.Color("178")
	colorWhite     = lipgloss.Color("231")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorHighlight)
	subtleStyle  = lipgloss.NewStyle().Foreground(colorSubtle)
	badgeStyle   = lipgloss.NewStyle().Foreground(colorWhite).Background(colorBadge).Padding(0, 1)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	hintStyle    = lipgloss.NewStyle().Foreground(colorHint)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorHighlight).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	oddCellStyle = cellStyle.Foreground(colorSubtle)
)

// Renderer formats directory output for a terminal of a given width.
type Renderer struct {
	width   int
	printer *message.Printer
}

// New creates a Renderer. A width of 0 means unknown and uses sensible defaults.
func New(width int) *Renderer {
	return &Renderer{
		width:   width,
		printer: message.NewPrinter(language.English),
	}
}

// SetWidth updates the terminal width.
func (r *Renderer) SetWidth(width int) {
	r.width = width
}

// Number formats n with thousands separators.
func (r *Renderer) Number(n int) string {
	return r.printer.Sprintf("%d", n)
}

// Page renders a page in the requested view mode, or the empty-result notice.
func (r *Renderer) Page(p pipeline.Page, mode models.ViewMode) string {
	if p.Total == 0 {
		return r.Empty()
	}
	if mode == models.ViewCard {
		return r.Cards(p.Items)
	}
	return r.Table(p.Items)
}

// Summary renders the "Showing A-B of N companies" line.
func (r *Renderer) Summary(p pipeline.Page) string {
	if p.Total == 0 {
		return subtleStyle.Render("Showing 0 of 0 companies")
	}
	return subtleStyle.Render(fmt.Sprintf("Showing %d-%d of %s companies",
		p.FirstIndex, p.LastIndex, r.Number(p.Total)))
}

// Pagination renders the page indicator.
func (r *Renderer) Pagination(p pipeline.Page) string {
	if p.TotalPages == 0 {
		return ""
	}
	var b strings.Builder
	if p.Number > 1 {
		b.WriteString("‹ prev  ")
	}
	b.WriteString(fmt.Sprintf("Page %d of %d", p.Number, p.TotalPages))
	if p.Number < p.TotalPages {
		b.WriteString("  next ›")
	}
	return subtleStyle.Render(b.String())
}

// Empty renders the no-results notice.
func (r *Renderer) Empty() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("No companies found"),
		subtleStyle.Render("Try adjusting your filters"),
	)
}

// Loading renders the loading notice next to an optional spinner frame.
func (r *Renderer) Loading(spinner string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		strings.TrimSpace(spinner+" Loading companies..."),
		subtleStyle.Render("Please wait while we fetch the data"),
	)
}

// Error renders the terminal failure screen.
func (r *Renderer) Error(msg string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		errorStyle.Render("Error"),
		msg,
		"",
		hintStyle.Render("To start the API server:"),
		hintStyle.Render("  companies-api --generate 50"),
	)
}

// Snapshot renders a complete non-interactive screen for a controller snapshot.
func (r *Renderer) Snapshot(s controller.Snapshot) string {
	switch s.Status {
	case controller.Loading:
		return r.Loading("")
	case controller.Failed:
		return r.Error(s.Message)
	}
	parts := []string{r.Summary(s.Page), r.Page(s.Page, s.State.ViewMode)}
	if pg := r.Pagination(s.Page); pg != "" {
		parts = append(parts, pg)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if n <= 0 || len(runes) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}
