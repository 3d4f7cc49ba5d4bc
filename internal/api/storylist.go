package api

import (
	"context"
	"net/http"
	"net/url"
)

// StoryList is a snapshot of the shared feed at last fetch, mutated locally
// after confirmed writes so it stays current without a refetch.
type StoryList struct {
	Stories []Story
}

type storiesResponse struct {
	Stories []Story `json:"stories"`
}

type storyResponse struct {
	Story Story `json:"story"`
}

// FetchStories returns the shared feed in the order the server provides it
// (newest first). No authentication required.
func (c *Client) FetchStories(ctx context.Context) (*StoryList, error) {
	var out storiesResponse
	if err := c.do(ctx, http.MethodGet, "/stories", nil, &out); err != nil {
		return nil, err
	}
	return &StoryList{Stories: out.Stories}, nil
}

// AddStory posts a draft as user and, on success, prepends the created
// story to both list.Stories and user.OwnStories. A nil list skips the
// feed update.
func (c *Client) AddStory(ctx context.Context, list *StoryList, user *User, draft StoryDraft) (*Story, error) {
	body := map[string]any{
		"token": user.Token,
		"story": draft,
	}

	var out storyResponse
	if err := c.do(ctx, http.MethodPost, "/stories", body, &out); err != nil {
		return nil, err
	}

	if list != nil {
		list.Stories = append([]Story{out.Story}, list.Stories...)
	}
	user.OwnStories = append([]Story{out.Story}, user.OwnStories...)
	return &out.Story, nil
}

// RemoveStory deletes the story server-side and filters it out of
// list.Stories and user.OwnStories. An id that was already locally absent
// is not an error; the server decides whether the delete was legal.
func (c *Client) RemoveStory(ctx context.Context, list *StoryList, user *User, storyID string) error {
	path := "/stories/" + url.PathEscape(storyID)
	if err := c.do(ctx, http.MethodDelete, path, tokenBody{Token: user.Token}, nil); err != nil {
		return err
	}

	if list != nil {
		list.Stories = withoutStory(list.Stories, storyID)
	}
	user.OwnStories = withoutStory(user.OwnStories, storyID)
	return nil
}

func withoutStory(stories []Story, storyID string) []Story {
	out := stories[:0]
	for _, s := range stories {
		if s.StoryID != storyID {
			out = append(out, s)
		}
	}
	return out
}
