package votes

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/DENNYYESSAR/alx-polly/internal/identity"
	"github.com/DENNYYESSAR/alx-polly/internal/models"
	"github.com/DENNYYESSAR/alx-polly/pkg/response"
)

// SubmitRequest is the body for POST /polls/:id/vote.
type SubmitRequest struct {
	OptionID uuid.UUID `json:"option_id" binding:"required"`
}

// Handler handles vote HTTP endpoints.
type Handler struct {
	svc      *Service
	resolver *identity.Resolver
}

// NewHandler creates a votes handler.
func NewHandler(svc *Service, resolver *identity.Resolver) *Handler {
	return &Handler{svc: svc, resolver: resolver}
}

// Submit handles POST /polls/:id/vote (optional auth).
func (h *Handler) Submit(c *gin.Context) {
	pollID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid poll id")
		return
	}
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	caller := h.resolver.FromRequest(c)
	if err := h.svc.Submit(c.Request.Context(), caller, pollID, req.OptionID); err != nil {
		switch {
		case errors.Is(err, models.ErrPollNotFound):
			response.NotFound(c, "poll not found")
		case errors.Is(err, models.ErrOptionNotFound):
			response.NotFound(c, "option not found")
		case errors.Is(err, models.ErrAuthenticationRequired):
			response.Unauthorized(c, "this poll requires login to vote")
		case errors.Is(err, models.ErrDuplicateVote):
			response.Conflict(c, "you have already voted on this poll")
		default:
			response.Internal(c, "failed to submit vote")
		}
		return
	}

	response.OK(c, response.Message{Message: "Vote submitted successfully!"})
}
