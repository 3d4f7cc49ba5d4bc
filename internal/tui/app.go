package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexgenc/hack-or-snooze/internal/api"
	"github.com/alexgenc/hack-or-snooze/internal/browser"
	"github.com/alexgenc/hack-or-snooze/internal/session"
	"github.com/alexgenc/hack-or-snooze/internal/update"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type focusPane int

const (
	focusList focusPane = iota
	focusDetail
)

type mode int

const (
	modeHome mode = iota
	modeBrowse
	modeLogin
	modeSignup
	modeSubmit
	modeEdit
	modeRename
	modeProfile
	modeHelp
)

// App owns all client-side state: the current user, the feed snapshot, and
// the view. Remote calls run inside tea.Cmd closures; state changes only
// when their result message arrives, so one user action maps to at most one
// in-flight request.
type App struct {
	client   *api.Client
	sessions *session.Store
	timeout  time.Duration
	version  string

	user *api.User
	list *api.StoryList

	mode   mode
	tabs   tabBar
	cursor int
	focus  focusPane

	width  int
	height int

	spinner spinner.Model

	form   form
	editID string

	saved session.Session

	busy             bool
	confirmingDelete bool
	detailScroll     int
	status           string
	err              error
	updateVersion    string
}

// Opts holds all parameters for launching the TUI.
type Opts struct {
	Client     *api.Client
	Sessions   *session.Store
	Timeout    time.Duration
	Saved      session.Session
	Version    string
	BrowseMode bool
}

func NewApp(opts Opts) *App {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	startMode := modeHome
	if opts.BrowseMode {
		startMode = modeBrowse
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	a := &App{
		client:   opts.Client,
		sessions: opts.Sessions,
		timeout:  timeout,
		version:  opts.Version,
		spinner:  sp,
		mode:     startMode,
	}
	a.saved = opts.Saved
	return a
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.loadStoriesCmd()}
	if !a.saved.IsZero() {
		cmds = append(cmds, a.resumeSessionCmd(a.saved))
	}
	cmds = append(cmds, a.checkUpdateCmd())
	return tea.Batch(cmds...)
}

// --- commands -----------------------------------------------------------

func (a *App) loadStoriesCmd() tea.Cmd {
	client, timeout := a.client, a.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		list, err := client.FetchStories(ctx)
		if err != nil {
			return errMsg{err: err}
		}
		return storiesLoadedMsg{list: list}
	}
}

func (a *App) resumeSessionCmd(saved session.Session) tea.Cmd {
	client, timeout := a.client, a.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		user, err := client.LoggedInUser(ctx, saved.Token, saved.Username)
		if err != nil {
			// Stale or revoked session: stay anonymous.
			return resumedMsg{user: nil}
		}
		return resumedMsg{user: user}
	}
}

func (a *App) checkUpdateCmd() tea.Cmd {
	version := a.version
	return func() tea.Msg {
		if v := update.Check(context.Background(), version); v != "" {
			return updateAvailableMsg{version: v}
		}
		return nil
	}
}

func (a *App) loginCmd(username, password string) tea.Cmd {
	client, sessions, timeout := a.client, a.sessions, a.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		user, err := client.Login(ctx, username, password)
		if err != nil {
			return errMsg{err: err}
		}
		if err := sessions.Save(session.Session{Token: user.Token, Username: user.Username}); err != nil {
			return errMsg{err: fmt.Errorf("saving session: %w", err)}
		}
		return authDoneMsg{user: user}
	}
}

func (a *App) signupCmd(username, password, name string) tea.Cmd {
	client, sessions, timeout := a.client, a.sessions, a.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		user, err := client.Signup(ctx, username, password, name)
		if err != nil {
			return errMsg{err: err}
		}
		if err := sessions.Save(session.Session{Token: user.Token, Username: user.Username}); err != nil {
			return errMsg{err: fmt.Errorf("saving session: %w", err)}
		}
		return authDoneMsg{user: user}
	}
}

func (a *App) logoutCmd() tea.Cmd {
	sessions := a.sessions
	return func() tea.Msg {
		if err := sessions.Clear(); err != nil {
			return errMsg{err: fmt.Errorf("clearing session: %w", err)}
		}
		return loggedOutMsg{}
	}
}

func (a *App) addStoryCmd(draft api.StoryDraft) tea.Cmd {
	client, timeout := a.client, a.timeout
	list, user := a.list, a.user
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		story, err := client.AddStory(ctx, list, user, draft)
		if err != nil {
			return errMsg{err: err}
		}
		return storyAddedMsg{story: story}
	}
}

func (a *App) removeStoryCmd(storyID string) tea.Cmd {
	client, timeout := a.client, a.timeout
	list, user := a.list, a.user
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := client.RemoveStory(ctx, list, user, storyID); err != nil {
			return errMsg{err: err}
		}
		return storyRemovedMsg{storyID: storyID}
	}
}

func (a *App) updateStoryCmd(storyID string, draft api.StoryDraft) tea.Cmd {
	client, timeout := a.client, a.timeout
	list, user := a.list, a.user
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		story, err := client.UpdateStory(ctx, list, user, storyID, draft)
		if err != nil {
			return errMsg{err: err}
		}
		return storyUpdatedMsg{story: story}
	}
}

func (a *App) toggleFavoriteCmd(storyID string) tea.Cmd {
	client, timeout := a.client, a.timeout
	user := a.user
	remove := user.IsFavorite(storyID)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		var err error
		if remove {
			err = client.RemoveFavorite(ctx, user, storyID)
		} else {
			err = client.AddFavorite(ctx, user, storyID)
		}
		if err != nil {
			return errMsg{err: err}
		}
		return favoriteToggledMsg{}
	}
}

func (a *App) renameCmd(name string) tea.Cmd {
	client, timeout := a.client, a.timeout
	user := a.user
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := client.UpdateName(ctx, user, name); err != nil {
			return errMsg{err: err}
		}
		return nameUpdatedMsg{}
	}
}

func (a *App) deleteAccountCmd() tea.Cmd {
	client, sessions, timeout := a.client, a.sessions, a.timeout
	user := a.user
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := client.DeleteAccount(ctx, user); err != nil {
			return errMsg{err: err}
		}
		if err := sessions.Clear(); err != nil {
			return errMsg{err: fmt.Errorf("clearing session: %w", err)}
		}
		return accountDeletedMsg{}
	}
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

// --- update -------------------------------------------------------------

func (a *App) visibleStories() []api.Story {
	switch a.tabs.active {
	case tabFavorites:
		if a.user != nil {
			return a.user.Favorites
		}
	case tabOwn:
		if a.user != nil {
			return a.user.OwnStories
		}
	default:
		if a.list != nil {
			return a.list.Stories
		}
	}
	return nil
}

func (a *App) selectedStory() *api.Story {
	stories := a.visibleStories()
	if len(stories) == 0 || a.cursor >= len(stories) {
		return nil
	}
	return &stories[a.cursor]
}

func (a *App) clampCursor() {
	if n := len(a.visibleStories()); a.cursor >= n {
		a.cursor = max(0, n-1)
	}
}

func (a *App) startBusy(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	a.busy = true
	return a, tea.Batch(cmd, a.spinner.Tick)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky messages on any keypress
		a.err = nil
		a.status = ""
		return a.handleKey(msg)

	case storiesLoadedMsg:
		a.busy = false
		a.list = msg.list
		a.clampCursor()
		return a, nil

	case resumedMsg:
		if msg.user != nil {
			a.user = msg.user
			a.tabs.loggedIn = true
		}
		return a, nil

	case authDoneMsg:
		a.busy = false
		a.user = msg.user
		a.tabs.loggedIn = true
		a.mode = modeBrowse
		a.status = "logged in as " + msg.user.Username
		return a, nil

	case loggedOutMsg:
		a.user = nil
		a.tabs.loggedIn = false
		a.tabs.set(tabAll)
		a.mode = modeBrowse
		a.cursor = 0
		a.status = "logged out"
		return a, nil

	case storyAddedMsg:
		a.busy = false
		a.mode = modeBrowse
		a.tabs.set(tabAll)
		a.cursor = 0
		a.status = "story submitted: " + msg.story.Title
		return a, nil

	case storyRemovedMsg:
		a.busy = false
		a.clampCursor()
		a.status = "story deleted"
		return a, nil

	case storyUpdatedMsg:
		a.busy = false
		a.mode = modeBrowse
		a.status = "story updated: " + msg.story.Title
		return a, nil

	case favoriteToggledMsg:
		a.busy = false
		a.clampCursor()
		return a, nil

	case nameUpdatedMsg:
		a.busy = false
		a.mode = modeProfile
		a.status = "name updated"
		return a, nil

	case accountDeletedMsg:
		a.busy = false
		a.user = nil
		a.tabs.loggedIn = false
		a.tabs.set(tabAll)
		a.confirmingDelete = false
		a.mode = modeBrowse
		a.status = "account deleted"
		return a, nil

	case updateAvailableMsg:
		a.updateVersion = msg.version
		return a, nil

	case errMsg:
		a.busy = false
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.busy {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeHome:
		return a.handleHomeKey(msg)
	case modeLogin, modeSignup, modeSubmit, modeEdit, modeRename:
		return a.handleFormKey(msg)
	case modeProfile:
		return a.handleProfileKey(msg)
	case modeHelp:
		switch msg.String() {
		case "?", "esc", "q":
			a.mode = modeBrowse
		}
		return a, nil
	}

	return a.handleBrowseKey(msg)
}

func (a *App) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "e", "enter":
		a.mode = modeBrowse
		return a, nil
	case "l":
		if a.user == nil {
			a.mode = modeLogin
			a.form = newLoginForm()
			return a, textinput.Blink
		}
		return a, nil
	case "p":
		if a.user != nil {
			a.mode = modeProfile
		}
		return a, nil
	case "q":
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "h":
		a.mode = modeHome
		return a, nil
	case "?":
		a.mode = modeHelp
		return a, nil
	case "j", "down":
		if a.focus == focusList && a.cursor < len(a.visibleStories())-1 {
			a.cursor++
			a.detailScroll = 0
		} else if a.focus == focusDetail {
			a.detailScroll++
		}
		return a, nil
	case "k", "up":
		if a.focus == focusList && a.cursor > 0 {
			a.cursor--
			a.detailScroll = 0
		} else if a.focus == focusDetail && a.detailScroll > 0 {
			a.detailScroll--
		}
		return a, nil
	case "tab":
		if a.focus == focusList {
			a.focus = focusDetail
		} else {
			a.focus = focusList
		}
		return a, nil
	case "1":
		a.tabs.set(tabAll)
		a.cursor = 0
		return a, nil
	case "2", "3":
		tab := tabFavorites
		if msg.String() == "3" {
			tab = tabOwn
		}
		if !a.tabs.set(tab) {
			a.status = "log in to see " + tabLabels[tab]
			return a, nil
		}
		a.cursor = 0
		return a, nil
	case "o", "enter":
		if s := a.selectedStory(); s != nil {
			return a, openBrowserCmd(s.URL)
		}
		return a, nil
	case "r":
		if !a.busy {
			return a.startBusy(a.loadStoriesCmd())
		}
		return a, nil
	case "f":
		s := a.selectedStory()
		if s == nil {
			return a, nil
		}
		if a.user == nil {
			a.status = "log in to favorite stories"
			return a, nil
		}
		if !a.busy {
			return a.startBusy(a.toggleFavoriteCmd(s.StoryID))
		}
		return a, nil
	case "s":
		if a.user == nil {
			a.status = "log in to submit a story"
			return a, nil
		}
		a.mode = modeSubmit
		a.form = newSubmitForm(a.user.Name)
		return a, textinput.Blink
	case "d":
		s := a.selectedStory()
		if s == nil || a.user == nil || s.Username != a.user.Username {
			return a, nil
		}
		if !a.busy {
			return a.startBusy(a.removeStoryCmd(s.StoryID))
		}
		return a, nil
	case "e":
		s := a.selectedStory()
		if s == nil || a.user == nil || s.Username != a.user.Username {
			return a, nil
		}
		a.mode = modeEdit
		a.editID = s.StoryID
		a.form = newEditForm(*s)
		return a, textinput.Blink
	case "p":
		if a.user != nil {
			a.mode = modeProfile
			return a, nil
		}
		a.status = "not logged in"
		return a, nil
	case "L":
		if a.user == nil {
			a.mode = modeLogin
			a.form = newLoginForm()
			return a, textinput.Blink
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if a.mode == modeRename {
			a.mode = modeProfile
		} else {
			a.mode = modeBrowse
		}
		return a, nil
	case "tab", "down":
		a.form.next()
		return a, nil
	case "shift+tab", "up":
		a.form.prev()
		return a, nil
	case "ctrl+n":
		// Signup is reachable from the login form.
		if a.mode == modeLogin {
			a.mode = modeSignup
			a.form = newSignupForm()
			return a, textinput.Blink
		}
	case "enter":
		if !a.form.atLast() {
			a.form.next()
			return a, nil
		}
		return a.submitForm()
	}

	return a, a.form.update(msg)
}

func (a *App) submitForm() (tea.Model, tea.Cmd) {
	if !a.form.complete() {
		a.status = "all fields are required"
		return a, nil
	}
	if a.busy {
		return a, nil
	}

	switch a.mode {
	case modeLogin:
		return a.startBusy(a.loginCmd(a.form.value(0), a.form.value(1)))
	case modeSignup:
		return a.startBusy(a.signupCmd(a.form.value(1), a.form.value(2), a.form.value(0)))
	case modeSubmit:
		draft := api.StoryDraft{Title: a.form.value(0), URL: a.form.value(1), Author: a.form.value(2)}
		return a.startBusy(a.addStoryCmd(draft))
	case modeEdit:
		draft := api.StoryDraft{Title: a.form.value(0), URL: a.form.value(1), Author: a.form.value(2)}
		return a.startBusy(a.updateStoryCmd(a.editID, draft))
	case modeRename:
		return a.startBusy(a.renameCmd(a.form.value(0)))
	}
	return a, nil
}

func (a *App) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.confirmingDelete {
		switch msg.String() {
		case "y":
			a.confirmingDelete = false
			return a.startBusy(a.deleteAccountCmd())
		default:
			a.confirmingDelete = false
		}
		return a, nil
	}

	switch msg.String() {
	case "esc", "q":
		a.mode = modeBrowse
		return a, nil
	case "c":
		a.mode = modeRename
		a.form = newRenameForm(a.user.Name)
		return a, textinput.Blink
	case "x":
		return a.startBusy(a.logoutCmd())
	case "D":
		a.confirmingDelete = true
		return a, nil
	}
	return a, nil
}

// --- view ---------------------------------------------------------------

func (a *App) withBottomBar(content string, hints string) string {
	bar := renderBottomBar(hints, a.width)
	lines := strings.Split(content, "\n")
	for len(lines) < a.height-1 {
		lines = append(lines, "")
	}
	if len(lines) >= a.height {
		lines = lines[:a.height-1]
	}
	lines = append(lines, bar)
	return strings.Join(lines, "\n")
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  hack or snooze")
	}

	switch a.mode {
	case modeHome:
		username := ""
		if a.user != nil {
			username = a.user.Username
		}
		return a.withBottomBar(renderHomeScreen(a.width, a.height, username, a.updateVersion), "e browse  q quit")

	case modeLogin, modeSignup, modeSubmit, modeEdit, modeRename:
		card := a.form.view()
		hints := "enter submit  esc cancel"
		if a.mode == modeLogin {
			hints = "enter submit  ctrl+n sign up instead  esc cancel"
		}
		content := lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center, card)
		return a.withBottomBar(content, hints)

	case modeProfile:
		return a.withBottomBar(a.renderProfile(), "c change name  x log out  D delete account  esc back")

	case modeHelp:
		return a.withBottomBar(a.renderHelp(), "? close  q quit")
	}

	return a.renderBrowse()
}

func (a *App) renderBrowse() string {
	headerHeight := 1
	tabsHeight := 1
	statusHeight := 1
	contentHeight := a.height - headerHeight - tabsHeight - statusHeight - 4 // borders

	listWidth := int(float64(a.width) * 0.4)
	detailWidth := a.width - listWidth - 1 // gap

	if contentHeight < 3 {
		contentHeight = 3
	}

	// Header
	headerLeft := headerStyle.Render("hack or snooze")
	headerRight := headerUserStyle.Render(a.headerUser())
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	tabs := a.tabs.render(a.width)

	stories := a.visibleStories()

	// List pane
	innerListW := listWidth - 4 // border + padding
	listContent := renderList(stories, a.user, a.cursor, contentHeight, innerListW)

	var listPane string
	if a.focus == focusList {
		listPane = listPaneActiveStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	} else {
		listPane = listPaneStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	}

	// Detail pane
	innerDetailW := detailWidth - 4
	detailContent := renderDetail(a.selectedStory(), a.user, innerDetailW, contentHeight, a.detailScroll)

	var detailPane string
	if a.focus == focusDetail {
		detailPane = detailPaneActiveStyle.Width(detailWidth - 2).Height(contentHeight).Render(detailContent)
	} else {
		detailPane = detailPaneStyle.Width(detailWidth - 2).Height(contentHeight).Render(detailContent)
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)

	status := renderStatusBar(len(stories), a.tabs.label(), a.headerUser(), a.width, a.busy)
	if a.busy {
		status = a.spinner.View() + " " + status
	}
	if a.status != "" {
		status = statusNoteStyle.Render(a.status)
	}
	if a.err != nil {
		status = errorStyle.Render(a.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, content, status)
}

func (a *App) headerUser() string {
	if a.user == nil {
		return "anonymous"
	}
	return a.user.Username
}

func (a *App) renderProfile() string {
	u := a.user
	if u == nil {
		return lipglossCenter("Not logged in", a.width, a.height)
	}

	var b strings.Builder
	b.WriteString(formTitleStyle.Render("Profile"))
	b.WriteString("\n\n")
	b.WriteString(profileKeyStyle.Render("Username  ") + profileValStyle.Render(u.Username) + "\n")
	b.WriteString(profileKeyStyle.Render("Name      ") + profileValStyle.Render(u.Name) + "\n")
	b.WriteString(profileKeyStyle.Render("Joined    ") + profileValStyle.Render(u.CreatedAt.Format("Jan 2, 2006")) + "\n")
	b.WriteString(profileKeyStyle.Render("Favorites ") + profileValStyle.Render(fmt.Sprintf("%d", len(u.Favorites))) + "\n")
	b.WriteString(profileKeyStyle.Render("Stories   ") + profileValStyle.Render(fmt.Sprintf("%d", len(u.OwnStories))) + "\n")

	if a.confirmingDelete {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Really delete your account? This cannot be undone. y/n"))
	}
	if a.status != "" {
		b.WriteString("\n")
		b.WriteString(statusNoteStyle.Render(a.status))
	}
	if a.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(a.err.Error()))
	}

	card := formCardStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center, card)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("hack or snooze")
	dim := helpDimStyle

	help := title + dim.Render(" — Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  j/k, ↑/↓     Move through the story list\n" +
		"  tab           Switch focus between list and detail\n" +
		"  1/2/3         All / Favorites / My Stories\n\n" +
		dim.Render("Actions") + "\n" +
		"  o, enter      Open story in browser\n" +
		"  f             Favorite / unfavorite\n" +
		"  s             Submit a story\n" +
		"  e             Edit your story\n" +
		"  d             Delete your story\n" +
		"  r             Reload the feed\n\n" +
		dim.Render("Account") + "\n" +
		"  L             Log in / sign up\n" +
		"  p             Profile\n\n" +
		dim.Render("General") + "\n" +
		"  h             Home screen\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts Opts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
