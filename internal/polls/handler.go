package polls

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/DENNYYESSAR/alx-polly/internal/identity"
	"github.com/DENNYYESSAR/alx-polly/internal/models"
	"github.com/DENNYYESSAR/alx-polly/pkg/response"
)

// PollRequest is the body for POST /polls and PUT /polls/:id.
type PollRequest struct {
	Question                  string     `json:"question"`
	Description               string     `json:"description"`
	Options                   []string   `json:"options"`
	AllowMultipleOptions      bool       `json:"allow_multiple_options"`
	IsPrivate                 bool       `json:"is_private"`
	AllowUnauthenticatedVotes bool       `json:"allow_unauthenticated_votes"`
	EndsAt                    *time.Time `json:"ends_at"`
}

// SettingsRequest is the body for PATCH /polls/:id/settings.
type SettingsRequest struct {
	AllowMultipleOptions      bool       `json:"allow_multiple_options"`
	IsPrivate                 bool       `json:"is_private"`
	AllowUnauthenticatedVotes bool       `json:"allow_unauthenticated_votes"`
	EndsAt                    *time.Time `json:"ends_at"`
}

// Handler handles poll HTTP endpoints.
type Handler struct {
	svc      *Service
	resolver *identity.Resolver
}

// NewHandler creates a polls handler.
func NewHandler(svc *Service, resolver *identity.Resolver) *Handler {
	return &Handler{svc: svc, resolver: resolver}
}

// Create handles POST /polls.
func (h *Handler) Create(c *gin.Context) {
	var req PollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	caller := h.resolver.FromRequest(c)
	p, err := h.svc.Create(c.Request.Context(), caller, CreateInput{
		Question:    req.Question,
		Description: req.Description,
		Options:     req.Options,
		Settings: models.PollSettings{
			AllowMultipleOptions:      req.AllowMultipleOptions,
			IsPrivate:                 req.IsPrivate,
			AllowUnauthenticatedVotes: req.AllowUnauthenticatedVotes,
		},
		EndsAt: req.EndsAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, p)
}

// Get handles GET /polls/:id.
func (h *Handler) Get(c *gin.Context) {
	pollID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid poll id")
		return
	}
	p, err := h.svc.Get(c.Request.Context(), pollID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, p)
}

// ListPublic handles GET /polls.
func (h *Handler) ListPublic(c *gin.Context) {
	list, err := h.svc.ListPublic(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, list)
}

// ListMine handles GET /me/polls (JWT required).
func (h *Handler) ListMine(c *gin.Context) {
	caller := h.resolver.FromRequest(c)
	list, err := h.svc.ListMine(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, list)
}

// Update handles PUT /polls/:id.
func (h *Handler) Update(c *gin.Context) {
	pollID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid poll id")
		return
	}
	var req PollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	caller := h.resolver.FromRequest(c)
	err = h.svc.Update(c.Request.Context(), caller, pollID, CreateInput{
		Question:    req.Question,
		Description: req.Description,
		Options:     req.Options,
		Settings: models.PollSettings{
			AllowMultipleOptions:      req.AllowMultipleOptions,
			IsPrivate:                 req.IsPrivate,
			AllowUnauthenticatedVotes: req.AllowUnauthenticatedVotes,
		},
		EndsAt: req.EndsAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, response.Message{Message: "Poll updated successfully!"})
}

// UpdateSettings handles PATCH /polls/:id/settings.
func (h *Handler) UpdateSettings(c *gin.Context) {
	pollID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid poll id")
		return
	}
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	caller := h.resolver.FromRequest(c)
	err = h.svc.UpdateSettings(c.Request.Context(), caller, pollID, models.PollSettings{
		AllowMultipleOptions:      req.AllowMultipleOptions,
		IsPrivate:                 req.IsPrivate,
		AllowUnauthenticatedVotes: req.AllowUnauthenticatedVotes,
		EndsAt:                    req.EndsAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, response.Message{Message: "Poll settings updated successfully!"})
}

// Delete handles DELETE /polls/:id.
func (h *Handler) Delete(c *gin.Context) {
	pollID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid poll id")
		return
	}
	caller := h.resolver.FromRequest(c)
	if err := h.svc.Delete(c.Request.Context(), caller, pollID); err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, response.Message{Message: "Poll deleted successfully!"})
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrAuthenticationRequired):
		response.Unauthorized(c, "authentication required")
	case errors.Is(err, models.ErrForbidden):
		response.Forbidden(c, "you may not modify this poll")
	case errors.Is(err, models.ErrPollNotFound):
		response.NotFound(c, "poll not found")
	case errors.Is(err, models.ErrValidation):
		response.BadRequest(c, "please provide a question and at least one non-empty option")
	case errors.Is(err, models.ErrOptionCreationFailed):
		response.Internal(c, "failed to create poll options")
	default:
		response.Internal(c, "something went wrong")
	}
}
