package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(storyCount int, tabLabel, username string, width int, busy bool) string {
	left := fmt.Sprintf(" %d stories", storyCount)
	if tabLabel != "" && tabLabel != "All Stories" {
		left += " · " + tabLabel
	}
	if busy {
		left += " (working...)"
	}

	right := " s submit  f favorite  p profile  ? help  q quit "
	if username == "" {
		right = " L log in  ? help  q quit "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}

func renderBottomBar(hints string, width int) string {
	right := " " + hints + " "

	gap := width - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}
