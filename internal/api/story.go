package api

import (
	"net/url"
	"strings"
	"time"
)

// Story is a single submitted link. Fields mirror the API's story record;
// the server assigns StoryID and both timestamps.
type Story struct {
	StoryID   string    `json:"storyId"`
	Author    string    `json:"author"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StoryDraft is the user-entered part of a story, for create and edit calls.
type StoryDraft struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
}

// Hostname returns the story URL's host with any leading "www." stripped,
// for display next to the title.
func (s Story) Hostname() string {
	if u, err := url.Parse(s.URL); err == nil && u.Host != "" {
		return strings.TrimPrefix(u.Host, "www.")
	}

	// Scheme-less URLs don't parse with a host; split by hand.
	host := s.URL
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	if i := strings.IndexByte(host, '/'); i >= 0 {
		host = host[:i]
	}
	return strings.TrimPrefix(host, "www.")
}
