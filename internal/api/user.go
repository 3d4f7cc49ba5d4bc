package api

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// User is an account on the service, usually the one the client is acting
// as. Favorites and OwnStories are snapshots refreshed from the server;
// Token is the opaque session credential and is empty when anonymous.
type User struct {
	Username  string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time

	Token      string
	Favorites  []Story
	OwnStories []Story
}

// IsFavorite reports whether the story id is in the user's favorites.
func (u *User) IsFavorite(storyID string) bool {
	if u == nil {
		return false
	}
	for _, s := range u.Favorites {
		if s.StoryID == storyID {
			return true
		}
	}
	return false
}

// userRecord is the user object as the API serializes it. Favorites and
// stories only appear on the login and user-detail endpoints.
type userRecord struct {
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Favorites []Story   `json:"favorites"`
	Stories   []Story   `json:"stories"`
}

type userResponse struct {
	User  userRecord `json:"user"`
	Token string     `json:"token"`
}

func (r userRecord) toUser(token string) *User {
	return &User{
		Username:   r.Username,
		Name:       r.Name,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		Token:      token,
		Favorites:  r.Favorites,
		OwnStories: r.Stories,
	}
}

func userPath(username string) string {
	return "/users/" + url.PathEscape(username)
}

// userQueryPath builds the user-detail path with the token as query
// credential, which is how this API authenticates GETs.
func userQueryPath(username, token string) string {
	return userPath(username) + "?token=" + url.QueryEscape(token)
}

// Signup creates a new account and returns it with the issued token
// attached. A 409 from the API maps to ErrUsernameTaken. The caller is
// responsible for persisting the session.
func (c *Client) Signup(ctx context.Context, username, password, name string) (*User, error) {
	body := map[string]any{"user": map[string]string{
		"username": username,
		"password": password,
		"name":     name,
	}}

	var out userResponse
	if err := c.do(ctx, http.MethodPost, "/signup", body, &out); err != nil {
		if statusCode(err) == http.StatusConflict {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return out.User.toUser(out.Token), nil
}

// Login authenticates and returns the account with its favorites and own
// stories populated. A 401 maps to ErrInvalidCredentials.
func (c *Client) Login(ctx context.Context, username, password string) (*User, error) {
	body := map[string]any{"user": map[string]string{
		"username": username,
		"password": password,
	}}

	var out userResponse
	if err := c.do(ctx, http.MethodPost, "/login", body, &out); err != nil {
		if statusCode(err) == http.StatusUnauthorized {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return out.User.toUser(out.Token), nil
}

// LoggedInUser resumes a saved session. It returns (nil, nil) without
// touching the network when either the token or the username is missing,
// so callers can pass whatever the session store handed back.
func (c *Client) LoggedInUser(ctx context.Context, token, username string) (*User, error) {
	if token == "" || username == "" {
		return nil, nil
	}

	var out userResponse
	if err := c.do(ctx, http.MethodGet, userQueryPath(username, token), nil, &out); err != nil {
		return nil, err
	}
	return out.User.toUser(token), nil
}

// RefreshUser refetches u's details and overwrites name, timestamps,
// favorites and own stories in place. Safe to call repeatedly.
func (c *Client) RefreshUser(ctx context.Context, u *User) error {
	var out userResponse
	if err := c.do(ctx, http.MethodGet, userQueryPath(u.Username, u.Token), nil, &out); err != nil {
		return err
	}
	u.Name = out.User.Name
	u.CreatedAt = out.User.CreatedAt
	u.UpdatedAt = out.User.UpdatedAt
	u.Favorites = out.User.Favorites
	u.OwnStories = out.User.Stories
	return nil
}

// AddFavorite marks the story as a favorite, then refetches u so the local
// collections match the server. The extra round trip buys consistency.
func (c *Client) AddFavorite(ctx context.Context, u *User, storyID string) error {
	path := userPath(u.Username) + "/favorites/" + url.PathEscape(storyID)
	if err := c.do(ctx, http.MethodPost, path, tokenBody{Token: u.Token}, nil); err != nil {
		return err
	}
	return c.RefreshUser(ctx, u)
}

// RemoveFavorite unmarks the story as a favorite, then refetches u.
func (c *Client) RemoveFavorite(ctx context.Context, u *User, storyID string) error {
	path := userPath(u.Username) + "/favorites/" + url.PathEscape(storyID)
	if err := c.do(ctx, http.MethodDelete, path, tokenBody{Token: u.Token}, nil); err != nil {
		return err
	}
	return c.RefreshUser(ctx, u)
}

// UpdateName changes the account's display name. Only Name is refreshed
// locally; other fields keep their last-fetched values.
func (c *Client) UpdateName(ctx context.Context, u *User, name string) error {
	body := map[string]any{
		"token": u.Token,
		"user":  map[string]string{"name": name},
	}

	var out userResponse
	if err := c.do(ctx, http.MethodPatch, userPath(u.Username), body, &out); err != nil {
		return err
	}
	u.Name = out.User.Name
	return nil
}

// DeleteAccount deletes the account server-side. It clears no local state
// itself; callers also clear the saved session.
func (c *Client) DeleteAccount(ctx context.Context, u *User) error {
	return c.do(ctx, http.MethodDelete, userPath(u.Username), tokenBody{Token: u.Token}, nil)
}

// UpdateStory edits one of u's stories and returns the server's version.
// The matching entry in u.OwnStories (and in list.Stories when a feed
// snapshot is passed) is rewritten in place; nothing else is touched.
func (c *Client) UpdateStory(ctx context.Context, list *StoryList, u *User, storyID string, draft StoryDraft) (*Story, error) {
	body := map[string]any{
		"token": u.Token,
		"story": draft,
	}

	var out storyResponse
	if err := c.do(ctx, http.MethodPatch, "/stories/"+url.PathEscape(storyID), body, &out); err != nil {
		return nil, err
	}

	replaceStory(u.OwnStories, out.Story)
	if list != nil {
		replaceStory(list.Stories, out.Story)
	}
	return &out.Story, nil
}

func replaceStory(stories []Story, s Story) {
	for i := range stories {
		if stories[i].StoryID == s.StoryID {
			stories[i] = s
		}
	}
}
