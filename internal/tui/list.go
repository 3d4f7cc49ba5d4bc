package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexgenc/hack-or-snooze/internal/api"
)

func relativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func renderListItem(s api.Story, selected, favorited bool, width int) string {
	if width < 10 {
		width = 30
	}

	marker := "  "
	if favorited {
		marker = itemFavStyle.Render("♥ ")
	}

	var title string
	if selected {
		title = itemSelectedStyle.Render("> " + truncateStr(s.Title, width-4))
	} else {
		title = itemTitleStyle.Render("  " + truncateStr(s.Title, width-4))
	}

	meta := marker + itemHostStyle.Render("("+s.Hostname()+")") +
		itemMetaStyle.Render(" by "+s.Username+" · "+relativeTime(s.CreatedAt))

	return title + "\n" + meta
}

func renderList(stories []api.Story, user *api.User, cursor, height, width int) string {
	if len(stories) == 0 {
		return lipglossCenter("No stories here yet", width, height)
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	// Calculate scroll offset
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(stories) {
		end = len(stories)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderListItem(stories[i], i == cursor, user.IsFavorite(stories[i].StoryID), width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func lipglossCenter(s string, width, height int) string {
	pad := (width - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", pad) + s
}
