package comments

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/DENNYYESSAR/alx-polly/internal/identity"
	"github.com/DENNYYESSAR/alx-polly/internal/models"
	"github.com/DENNYYESSAR/alx-polly/pkg/response"
)

// SubmitRequest is the body for POST /polls/:id/comments.
type SubmitRequest struct {
	Content string `json:"content"`
}

// Handler handles comment HTTP endpoints.
type Handler struct {
	svc      *Service
	resolver *identity.Resolver
}

// NewHandler creates a comments handler.
func NewHandler(svc *Service, resolver *identity.Resolver) *Handler {
	return &Handler{svc: svc, resolver: resolver}
}

// Submit handles POST /polls/:id/comments (JWT required).
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
	cm, err := h.svc.Submit(c.Request.Context(), caller, pollID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, cm)
}

// ListByPoll handles GET /polls/:id/comments.
func (h *Handler) ListByPoll(c *gin.Context) {
	pollID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid poll id")
		return
	}
	list, err := h.svc.ListByPoll(c.Request.Context(), pollID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, list)
}

// Delete handles DELETE /comments/:id (JWT required).
func (h *Handler) Delete(c *gin.Context) {
	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}
	caller := h.resolver.FromRequest(c)
	if err := h.svc.Delete(c.Request.Context(), caller, commentID); err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, response.Message{Message: "Comment deleted."})
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrAuthenticationRequired):
		response.Unauthorized(c, "authentication required")
	case errors.Is(err, models.ErrForbidden):
		response.Forbidden(c, "you may not delete this comment")
	case errors.Is(err, models.ErrPollNotFound):
		response.NotFound(c, "poll not found")
	case errors.Is(err, models.ErrCommentNotFound):
		response.NotFound(c, "comment not found")
	case errors.Is(err, models.ErrValidation):
		response.BadRequest(c, "comment content required")
	default:
		response.Internal(c, "something went wrong")
	}
}
