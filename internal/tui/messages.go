package tui

import (
	"github.com/alexgenc/hack-or-snooze/internal/api"
)

type storiesLoadedMsg struct {
	list *api.StoryList
}

// resumedMsg carries the user restored from a saved session; nil means the
// resume failed and the app stays anonymous.
type resumedMsg struct {
	user *api.User
}

// authDoneMsg is a successful login or signup.
type authDoneMsg struct {
	user *api.User
}

type loggedOutMsg struct{}

type storyAddedMsg struct {
	story *api.Story
}

type storyRemovedMsg struct {
	storyID string
}

type storyUpdatedMsg struct {
	story *api.Story
}

type favoriteToggledMsg struct{}

type nameUpdatedMsg struct{}

type accountDeletedMsg struct{}

type updateAvailableMsg struct {
	version string
}

type errMsg struct {
	err error
}
