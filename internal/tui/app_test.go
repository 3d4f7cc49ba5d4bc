package tui

import (
	"testing"
	"time"

	"github.com/alexgenc/hack-or-snooze/internal/api"
	tea "github.com/charmbracelet/bubbletea"
)

func testApp() *App {
	return NewApp(Opts{
		Client:     api.New(""),
		Timeout:    time.Second,
		BrowseMode: true,
	})
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testStories(n int) []api.Story {
	stories := make([]api.Story, n)
	for i := range stories {
		stories[i] = api.Story{
			StoryID:  "s" + string(rune('a'+i)),
			Title:    "story " + string(rune('a'+i)),
			URL:      "https://example.com",
			Username: "alice",
		}
	}
	return stories
}

func TestVisibleStoriesPerTab(t *testing.T) {
	a := testApp()
	a.list = &api.StoryList{Stories: testStories(3)}
	a.user = &api.User{
		Username:   "alice",
		Favorites:  testStories(1),
		OwnStories: testStories(2),
	}
	a.tabs.loggedIn = true

	if got := len(a.visibleStories()); got != 3 {
		t.Errorf("all tab shows %d stories, want 3", got)
	}
	a.tabs.set(tabFavorites)
	if got := len(a.visibleStories()); got != 1 {
		t.Errorf("favorites tab shows %d stories, want 1", got)
	}
	a.tabs.set(tabOwn)
	if got := len(a.visibleStories()); got != 2 {
		t.Errorf("own tab shows %d stories, want 2", got)
	}
}

func TestVisibleStoriesAnonymous(t *testing.T) {
	a := testApp()
	a.list = &api.StoryList{Stories: testStories(3)}
	if got := len(a.visibleStories()); got != 3 {
		t.Errorf("anonymous all tab shows %d stories, want 3", got)
	}
	// Locked tabs yield nothing even if forced.
	a.tabs.active = tabFavorites
	if got := a.visibleStories(); got != nil {
		t.Errorf("anonymous favorites tab shows %d stories, want none", len(got))
	}
}

func TestLockedTabKeyLeavesAllActive(t *testing.T) {
	a := testApp()
	a.list = &api.StoryList{Stories: testStories(3)}

	a.Update(keyMsg("2"))
	if a.tabs.active != tabAll {
		t.Errorf("active tab = %v after locked switch, want tabAll", a.tabs.active)
	}
	if a.status == "" {
		t.Error("expected a status hint after switching to a locked tab")
	}
}

func TestFavoriteAnonymousDoesNotDispatch(t *testing.T) {
	a := testApp()
	a.list = &api.StoryList{Stories: testStories(1)}

	_, cmd := a.Update(keyMsg("f"))
	if cmd != nil {
		t.Error("favorite as anonymous dispatched a command")
	}
	if a.status == "" {
		t.Error("expected a log-in hint in the status line")
	}
}

func TestAuthDoneSwitchesToBrowse(t *testing.T) {
	a := testApp()
	a.mode = modeLogin
	a.busy = true

	a.Update(authDoneMsg{user: &api.User{Username: "alice", Token: "tok"}})

	if a.mode != modeBrowse {
		t.Errorf("mode = %v after login, want modeBrowse", a.mode)
	}
	if a.busy {
		t.Error("busy still set after login completed")
	}
	if !a.tabs.loggedIn {
		t.Error("tab bar not unlocked after login")
	}
}

func TestLoggedOutResetsToAllTab(t *testing.T) {
	a := testApp()
	a.user = &api.User{Username: "alice"}
	a.tabs.loggedIn = true
	a.tabs.set(tabOwn)
	a.cursor = 4

	a.Update(loggedOutMsg{})

	if a.user != nil {
		t.Error("user still set after logout")
	}
	if a.tabs.active != tabAll {
		t.Errorf("active tab = %v after logout, want tabAll", a.tabs.active)
	}
	if a.cursor != 0 {
		t.Errorf("cursor = %d after logout, want 0", a.cursor)
	}
}

func TestStoryRemovedClampsCursor(t *testing.T) {
	a := testApp()
	a.list = &api.StoryList{Stories: testStories(2)}
	a.cursor = 2

	a.Update(storyRemovedMsg{storyID: "sc"})

	if a.cursor != 1 {
		t.Errorf("cursor = %d after removal, want 1", a.cursor)
	}
}

func TestErrMsgClearsOnKeypress(t *testing.T) {
	a := testApp()
	a.list = &api.StoryList{Stories: testStories(1)}
	a.busy = true

	a.Update(errMsg{err: api.ErrInvalidCredentials})
	if a.err == nil {
		t.Fatal("error not recorded")
	}
	if a.busy {
		t.Error("busy still set after error")
	}

	a.Update(keyMsg("j"))
	if a.err != nil {
		t.Error("error not cleared by keypress")
	}
}

func TestEditOfForeignStoryIgnored(t *testing.T) {
	a := testApp()
	a.list = &api.StoryList{Stories: testStories(1)} // owned by alice
	a.user = &api.User{Username: "bob"}
	a.tabs.loggedIn = true

	a.Update(keyMsg("e"))
	if a.mode != modeBrowse {
		t.Errorf("mode = %v after editing foreign story, want modeBrowse", a.mode)
	}

	a.Update(keyMsg("d"))
	if a.busy {
		t.Error("delete of foreign story dispatched a request")
	}
}
