// Package share builds outbound share targets for a poll: the canonical link
// to copy and a prefilled social web intent URL. Both are fire-and-forget from
// the server's perspective.
package share

import (
	"context"
	"errors"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/DENNYYESSAR/alx-polly/internal/models"
	"github.com/DENNYYESSAR/alx-polly/pkg/response"
)

// PollGetter loads the poll being shared.
type PollGetter interface {
	Get(ctx context.Context, pollID uuid.UUID) (*models.Poll, error)
}

// Links is the payload for GET /polls/:id/share.
type Links struct {
	URL             string `json:"url"`
	TwitterShareURL string `json:"twitter_share_url"`
}

// Handler handles share-link endpoints.
type Handler struct {
	polls   PollGetter
	siteURL string
}

// NewHandler creates a share handler.
func NewHandler(polls PollGetter, siteURL string) *Handler {
	return &Handler{polls: polls, siteURL: siteURL}
}

// Get handles GET /polls/:id/share.
func (h *Handler) Get(c *gin.Context) {
	pollID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid poll id")
		return
	}
	p, err := h.polls.Get(c.Request.Context(), pollID)
	if err != nil {
		if errors.Is(err, models.ErrPollNotFound) {
			response.NotFound(c, "poll not found")
			return
		}
		response.Internal(c, "something went wrong")
		return
	}
	response.OK(c, BuildLinks(h.siteURL, p))
}

// BuildLinks returns the canonical poll URL and a tweet intent prefilled with
// the poll question.
func BuildLinks(siteURL string, p *models.Poll) Links {
	pollURL := siteURL + "/polls/" + p.ID.String()
	intent := url.Values{}
	intent.Set("text", "Vote on this poll: "+p.Question)
	intent.Set("url", pollURL)
	return Links{
		URL:             pollURL,
		TwitterShareURL: "https://twitter.com/intent/tweet?" + intent.Encode(),
	}
}
