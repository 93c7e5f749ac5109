package share

import (
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/DENNYYESSAR/alx-polly/internal/models"
)

func TestBuildLinks(t *testing.T) {
	p := &models.Poll{ID: uuid.New(), Question: "Tabs or spaces?"}

	links := BuildLinks("https://polls.example.com", p)

	wantURL := "https://polls.example.com/polls/" + p.ID.String()
	if links.URL != wantURL {
		t.Errorf("expected url %q, got %q", wantURL, links.URL)
	}

	if !strings.HasPrefix(links.TwitterShareURL, "https://twitter.com/intent/tweet?") {
		t.Fatalf("unexpected intent url %q", links.TwitterShareURL)
	}
	u, err := url.Parse(links.TwitterShareURL)
	if err != nil {
		t.Fatalf("parse intent url: %v", err)
	}
	q := u.Query()
	if got := q.Get("url"); got != wantURL {
		t.Errorf("intent url param: expected %q, got %q", wantURL, got)
	}
	if got := q.Get("text"); !strings.Contains(got, "Tabs or spaces?") {
		t.Errorf("intent text should mention the question, got %q", got)
	}
}
