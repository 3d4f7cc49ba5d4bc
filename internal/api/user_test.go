package api

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"sync/atomic"
	"testing"
)

func TestSignup(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/signup" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		body := decodeBody(t, r)
		user, _ := body["user"].(map[string]any)
		if user["username"] != "alice" || user["password"] != "secret" || user["name"] != "Alice" {
			t.Errorf("unexpected signup body: %v", body)
		}
		writeJSON(t, w, http.StatusCreated, map[string]any{
			"user":  userRecordFixture("alice", "Alice", nil, nil),
			"token": tokenFixture,
		})
	}))

	u, err := c.Signup(context.Background(), "alice", "secret", "Alice")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if u.Username != "alice" || u.Name != "Alice" {
		t.Errorf("unexpected user: %+v", u)
	}
	if u.Token != tokenFixture {
		t.Errorf("expected token attached, got %q", u.Token)
	}
	if len(u.Favorites) != 0 || len(u.OwnStories) != 0 {
		t.Errorf("expected empty collections on a fresh account")
	}
}

func TestSignupUsernameTaken(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusConflict, map[string]any{"error": "username exists"})
	}))

	_, err := c.Signup(context.Background(), "alice", "secret", "Alice")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestSignupUnknownError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))

	_, err := c.Signup(context.Background(), "alice", "secret", "Alice")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if se.Code != http.StatusInternalServerError {
		t.Errorf("expected code 500, got %d", se.Code)
	}
}

func TestLogin(t *testing.T) {
	favs := []map[string]any{storyRecord("s2", "Fav Story", "Bob", "https://b.com/x", "bob")}
	own := []map[string]any{storyRecord("s1", "My Story", "Alice", "https://a.com/y", "alice")}

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		writeJSON(t, w, http.StatusOK, map[string]any{
			"user":  userRecordFixture("alice", "Alice", favs, own),
			"token": tokenFixture,
		})
	}))

	u, err := c.Login(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if u.Token == "" {
		t.Error("expected non-empty token after login")
	}
	if len(u.Favorites) != 1 || u.Favorites[0].StoryID != "s2" {
		t.Errorf("unexpected favorites: %+v", u.Favorites)
	}
	if len(u.OwnStories) != 1 || u.OwnStories[0].StoryID != "s1" {
		t.Errorf("unexpected own stories: %+v", u.OwnStories)
	}
	if u.OwnStories[0].Title != "My Story" || u.OwnStories[0].URL != "https://a.com/y" {
		t.Errorf("story fields not mapped: %+v", u.OwnStories[0])
	}
	if u.OwnStories[0].CreatedAt.IsZero() {
		t.Error("expected createdAt to be parsed")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]any{"error": "bad credentials"})
	}))

	_, err := c.Login(context.Background(), "alice", "wrongpass")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoggedInUserMissingSession(t *testing.T) {
	var calls atomic.Int64
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	for _, args := range [][2]string{{"", "alice"}, {tokenFixture, ""}, {"", ""}} {
		u, err := c.LoggedInUser(context.Background(), args[0], args[1])
		if err != nil {
			t.Errorf("LoggedInUser(%q, %q): unexpected error %v", args[0], args[1], err)
		}
		if u != nil {
			t.Errorf("LoggedInUser(%q, %q): expected nil user", args[0], args[1])
		}
	}
	if n := calls.Load(); n != 0 {
		t.Errorf("expected no network calls, server saw %d", n)
	}
}

func TestLoggedInUser(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/alice" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("token"); got != tokenFixture {
			t.Errorf("expected token as query param, got %q", got)
		}
		writeJSON(t, w, http.StatusOK, map[string]any{
			"user": userRecordFixture("alice", "Alice", nil, nil),
		})
	}))

	u, err := c.LoggedInUser(context.Background(), tokenFixture, "alice")
	if err != nil {
		t.Fatalf("LoggedInUser: %v", err)
	}
	if u == nil || u.Username != "alice" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.Token != tokenFixture {
		t.Errorf("expected token carried over, got %q", u.Token)
	}
}

func TestRefreshUserIdempotent(t *testing.T) {
	own := []map[string]any{storyRecord("s1", "My Story", "Alice", "https://a.com", "alice")}
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"user": userRecordFixture("alice", "Alice Cooper", nil, own),
		})
	}))

	u := &User{Username: "alice", Token: tokenFixture}
	if err := c.RefreshUser(context.Background(), u); err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	first := *u
	if err := c.RefreshUser(context.Background(), u); err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	if !reflect.DeepEqual(first, *u) {
		t.Errorf("refresh not idempotent:\n first: %+v\nsecond: %+v", first, *u)
	}
	if u.Name != "Alice Cooper" {
		t.Errorf("expected name overwritten, got %q", u.Name)
	}
}

// favoritesServer is a stateful fixture: it records favorite toggles and
// reflects them in the user-detail response.
func favoritesServer(t *testing.T, story map[string]any) http.Handler {
	favorited := false
	mux := http.NewServeMux()
	mux.HandleFunc("/users/alice/favorites/s1", func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		if body["token"] != tokenFixture {
			t.Errorf("expected token in body, got %v", body["token"])
		}
		switch r.Method {
		case http.MethodPost:
			favorited = true
		case http.MethodDelete:
			favorited = false
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"message": "ok"})
	})
	mux.HandleFunc("/users/alice", func(w http.ResponseWriter, r *http.Request) {
		var favs []map[string]any
		if favorited {
			favs = append(favs, story)
		}
		writeJSON(t, w, http.StatusOK, map[string]any{
			"user": userRecordFixture("alice", "Alice", favs, nil),
		})
	})
	return mux
}

func TestAddFavoriteRefetches(t *testing.T) {
	story := storyRecord("s1", "A Story", "Bob", "https://b.com", "bob")
	c := newTestClient(t, favoritesServer(t, story))

	u := &User{Username: "alice", Token: tokenFixture}
	if err := c.AddFavorite(context.Background(), u, "s1"); err != nil {
		t.Fatalf("add favorite: %v", err)
	}
	if !u.IsFavorite("s1") {
		t.Errorf("expected s1 in favorites after add, got %+v", u.Favorites)
	}
}

func TestFavoriteAddThenRemove(t *testing.T) {
	story := storyRecord("s1", "A Story", "Bob", "https://b.com", "bob")
	c := newTestClient(t, favoritesServer(t, story))

	u := &User{Username: "alice", Token: tokenFixture}
	before := append([]Story(nil), u.Favorites...)

	if err := c.AddFavorite(context.Background(), u, "s1"); err != nil {
		t.Fatalf("add favorite: %v", err)
	}
	if err := c.RemoveFavorite(context.Background(), u, "s1"); err != nil {
		t.Fatalf("remove favorite: %v", err)
	}
	if u.IsFavorite("s1") {
		t.Error("expected s1 gone after remove")
	}
	if len(u.Favorites) != len(before) {
		t.Errorf("expected favorites back to pre-add state, got %+v", u.Favorites)
	}
}

func TestUpdateName(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/users/alice" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		body := decodeBody(t, r)
		user, _ := body["user"].(map[string]any)
		if user["name"] != "New Name" {
			t.Errorf("unexpected patch body: %v", body)
		}
		writeJSON(t, w, http.StatusOK, map[string]any{
			"user": userRecordFixture("alice", "New Name", nil, nil),
		})
	}))

	u := &User{Username: "alice", Name: "Alice", Token: tokenFixture}
	u.OwnStories = []Story{{StoryID: "s1"}}
	if err := c.UpdateName(context.Background(), u, "New Name"); err != nil {
		t.Fatalf("update name: %v", err)
	}
	if u.Name != "New Name" {
		t.Errorf("expected name updated, got %q", u.Name)
	}
	if len(u.OwnStories) != 1 {
		t.Error("expected other fields left untouched")
	}
}

func TestDeleteAccount(t *testing.T) {
	var called bool
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if r.Method != http.MethodDelete || r.URL.Path != "/users/alice" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		body := decodeBody(t, r)
		if body["token"] != tokenFixture {
			t.Errorf("expected token in body, got %v", body["token"])
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"message": "deleted"})
	}))

	u := &User{Username: "alice", Token: tokenFixture}
	if err := c.DeleteAccount(context.Background(), u); err != nil {
		t.Fatalf("delete account: %v", err)
	}
	if !called {
		t.Error("expected delete request to be sent")
	}
	// Local state stays; clearing the session is the caller's job.
	if u.Token == "" {
		t.Error("expected token left in place")
	}
}

func TestUpdateStoryRewritesMatchingStory(t *testing.T) {
	updated := storyRecord("s1", "New Title", "Alice", "https://a.com/new", "alice")
	updated["updatedAt"] = "2024-02-01T00:00:00.000Z"

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/stories/s1" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"story": updated})
	}))

	u := &User{
		Username:   "alice",
		Name:       "Alice",
		Token:      tokenFixture,
		OwnStories: []Story{{StoryID: "s1", Title: "Old Title", URL: "https://a.com/old", Username: "alice"}},
	}
	list := &StoryList{Stories: []Story{
		{StoryID: "s2", Title: "Other"},
		{StoryID: "s1", Title: "Old Title"},
	}}

	s, err := c.UpdateStory(context.Background(), list, u, "s1", StoryDraft{Title: "New Title", Author: "Alice", URL: "https://a.com/new"})
	if err != nil {
		t.Fatalf("update story: %v", err)
	}
	if s.Title != "New Title" {
		t.Errorf("unexpected returned story: %+v", s)
	}
	if u.OwnStories[0].Title != "New Title" || u.OwnStories[0].URL != "https://a.com/new" {
		t.Errorf("expected own story rewritten, got %+v", u.OwnStories[0])
	}
	if list.Stories[1].Title != "New Title" {
		t.Errorf("expected feed entry rewritten, got %+v", list.Stories[1])
	}
	if list.Stories[0].Title != "Other" {
		t.Errorf("expected unrelated story untouched, got %+v", list.Stories[0])
	}
	// The edit lands on the story entity, never on the acting user.
	if u.Name != "Alice" {
		t.Errorf("user fields must not change on story edit, got name %q", u.Name)
	}
}
