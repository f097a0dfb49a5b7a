package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/refocus-cli/internal/application"
	"github.com/charmbracelet/lipgloss"
)

const defaultBarWindow = 4 * time.Hour

type RenderOptions struct {
	Now time.Time
	// BarWindow is the remaining time that fills the bar completely.
	BarWindow time.Duration
}

func renderView(status application.BlockingStatus, blockedSites []string, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Refocus"),
		statusLine(status, s),
	}

	if status.Active {
		lines = append(lines, s.detail.Render(fmt.Sprintf("blocked until %s", formatUntil(status.Until, opts.Now))))
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			renderRemainingBar(status.Remaining, barWindow(opts), 24, s),
			" ",
			s.detail.Render(formatRemaining(status.Remaining)+" left"),
		))
	}

	lines = append(lines, s.section.Render(renderSites(sitesFor(status, blockedSites), s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func statusLine(status application.BlockingStatus, s styles) string {
	switch {
	case status.Active && status.Strict:
		return s.locked.Render("Status: Locked (strict mode)")
	case status.Active:
		return s.active.Render("Status: Active")
	default:
		return s.inactive.Render("Status: Inactive")
	}
}

func sitesFor(status application.BlockingStatus, blockedSites []string) []string {
	if status.Active && len(status.Sites) > 0 {
		return status.Sites
	}
	return blockedSites
}

func renderSites(sites []string, s styles) string {
	header := s.header.Render(fmt.Sprintf("blocked sites: %d", len(sites)))
	if len(sites) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, s.empty.Render("No sites. Add one with `rf site add`."))
	}

	parts := []string{header}
	for _, site := range sites {
		parts = append(parts, s.site.Render("- "+Sanitize(site)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func barWindow(opts RenderOptions) time.Duration {
	if opts.BarWindow <= 0 {
		return defaultBarWindow
	}
	return opts.BarWindow
}

func renderRemainingBar(remaining, window time.Duration, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	fraction := remaining.Seconds() / window.Seconds()
	filled := int(math.Round(float64(width) * fraction))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func formatUntil(until, now time.Time) string {
	if until.IsZero() {
		return "??:??"
	}
	until = until.Local()
	if now.IsZero() {
		return until.Format("15:04")
	}

	now = now.Local()
	yearA, monthA, dayA := now.Date()
	yearB, monthB, dayB := until.Date()
	if yearA == yearB && monthA == monthB && dayA == dayB {
		return until.Format("15:04")
	}

	return until.Format("15:04 on 02 Jan")
}

func formatRemaining(remaining time.Duration) string {
	if remaining <= 0 {
		return "0m"
	}

	minutes := int(math.Ceil(remaining.Minutes()))
	hours := minutes / 60
	minutes %= 60
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh%02dm", hours, minutes)
}
