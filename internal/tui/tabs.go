package tui

import "github.com/charmbracelet/lipgloss"

type viewTab int

const (
	tabAll viewTab = iota
	tabFavorites
	tabOwn
)

var tabLabels = map[viewTab]string{
	tabAll:       "All Stories",
	tabFavorites: "Favorites",
	tabOwn:       "My Stories",
}

// tabBar switches the feed between the shared list and the logged-in user's
// favorite and own stories. The last two tabs need a session.
type tabBar struct {
	active   viewTab
	loggedIn bool
}

func (t *tabBar) set(tab viewTab) bool {
	if tab != tabAll && !t.loggedIn {
		return false
	}
	t.active = tab
	return true
}

func (t *tabBar) label() string {
	return tabLabels[t.active]
}

func (t *tabBar) render(width int) string {
	sep := tabSeparatorStyle.Render(" · ")

	var row string
	for i, tab := range []viewTab{tabAll, tabFavorites, tabOwn} {
		style := tabInactiveStyle
		if tab == t.active {
			style = tabActiveStyle
		}
		label := tabLabels[tab]
		if tab != tabAll && !t.loggedIn {
			label += " 🔒"
		}
		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += style.Render(label)
		if lipgloss.Width(candidate) > width && row != "" {
			break
		}
		row = candidate
	}

	barStyle := lipgloss.NewStyle().
		Background(colorSurface).
		Width(width).
		PaddingLeft(1)
	return barStyle.Render(row)
}
