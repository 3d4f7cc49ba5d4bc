package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var asciiLogo = []string{
	`███████╗███╗   ██╗ ██████╗  ██████╗ ███████╗███████╗`,
	`██╔════╝████╗  ██║██╔═══██╗██╔═══██╗╚══███╔╝██╔════╝`,
	`███████╗██╔██╗ ██║██║   ██║██║   ██║  ███╔╝ █████╗  `,
	`╚════██║██║╚██╗██║██║   ██║██║   ██║ ███╔╝  ██╔══╝  `,
	`███████║██║ ╚████║╚██████╔╝╚██████╔╝███████╗███████╗`,
	`╚══════╝╚═╝  ╚═══╝ ╚═════╝  ╚═════╝ ╚══════╝╚══════╝`,
}

func renderHomeScreen(width, height int, username, updateVersion string) string {
	logoStyle := lipgloss.NewStyle().Foreground(colorPrimary)
	keyStyle := lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(colorText)
	dimStyle := lipgloss.NewStyle().Foreground(colorDim)

	var lines []string

	for _, l := range asciiLogo {
		lines = append(lines, logoStyle.Render(l))
	}
	lines = append(lines, dimStyle.Render("          hack or snooze"))
	lines = append(lines, "")
	lines = append(lines, "")

	if username != "" {
		lines = append(lines, "          "+dimStyle.Render("logged in as ")+labelStyle.Render(username))
		lines = append(lines, "")
	}

	lines = append(lines, "          "+keyStyle.Render("[e]")+"  "+labelStyle.Render("Browse stories"))
	if username == "" {
		lines = append(lines, "          "+keyStyle.Render("[l]")+"  "+labelStyle.Render("Log in / sign up"))
	} else {
		lines = append(lines, "          "+keyStyle.Render("[p]")+"  "+labelStyle.Render("Profile"))
	}
	lines = append(lines, "")
	lines = append(lines, "          "+keyStyle.Render("[q]")+"  "+labelStyle.Render("Quit"))

	if updateVersion != "" {
		lines = append(lines, "")
		lines = append(lines, "          "+logoStyle.Render("Update available: v"+updateVersion))
	}

	content := strings.Join(lines, "\n")
	contentHeight := strings.Count(content, "\n") + 1

	topPad := (height - contentHeight) / 3
	if topPad < 0 {
		topPad = 0
	}

	// Center horizontally
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		strings.Repeat("\n", topPad)+content)
}
