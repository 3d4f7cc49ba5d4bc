package tui

import (
	"strings"

	"github.com/alexgenc/hack-or-snooze/internal/api"
	"github.com/charmbracelet/lipgloss"
)

func renderDetail(story *api.Story, user *api.User, width, height, scroll int) string {
	if story == nil {
		return lipglossCenter("Select a story", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := detailTitleStyle.Width(contentWidth).Render(story.Title)
	host := detailHostStyle.Render("(" + story.Hostname() + ")")

	var meta []string
	meta = append(meta, "by "+story.Author)
	meta = append(meta, "posted by "+story.Username)
	meta = append(meta, story.CreatedAt.Format("Jan 2, 2006"))
	metaLine := detailBodyStyle.Render(strings.Join(meta, " · "))

	var extras []string
	if !story.UpdatedAt.IsZero() && !story.UpdatedAt.Equal(story.CreatedAt) {
		extras = append(extras, "edited "+relativeTime(story.UpdatedAt))
	}
	if user.IsFavorite(story.StoryID) {
		extras = append(extras, itemFavStyle.Render("♥ favorited"))
	}
	if user != nil && user.Username == story.Username {
		extras = append(extras, "yours · e edit · d delete")
	}

	link := detailLinkStyle.Width(contentWidth).Render("Open: " + story.URL)

	parts := []string{title, host, metaLine}
	if len(extras) > 0 {
		parts = append(parts, detailBodyStyle.Render(strings.Join(extras, " · ")))
	}
	parts = append(parts, "", link)

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	// Apply scroll offset
	lines := strings.Split(content, "\n")
	if scroll > 0 && scroll < len(lines) {
		lines = lines[scroll:]
	}

	// Pad to fill height
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}
