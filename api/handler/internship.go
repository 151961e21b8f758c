package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/islandscholars/backend/api/transport"
	"github.com/islandscholars/backend/domain"
	"github.com/islandscholars/backend/pkg/httpcontext"
	"github.com/islandscholars/backend/repository"
	internshipUC "github.com/islandscholars/backend/usecase/internship"
)

type InternshipHandler struct {
	baseHandler
	uc *internshipUC.UseCase
}

func NewInternshipHandler(uc *internshipUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *InternshipHandler {
	return &InternshipHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Browse internships
// @Tags internships
// @Router /api/v1/internships [get]
func (h *InternshipHandler) List(ctx *fasthttp.RequestCtx) {
	filter := repository.InternshipFilter{
		OrganizationID: string(ctx.QueryArgs().Peek("organization_id")),
		Status:         domain.InternshipStatus(ctx.QueryArgs().Peek("status")),
		Limit:          ctx.QueryArgs().GetUintOrZero("limit"),
		Offset:         ctx.QueryArgs().GetUintOrZero("offset"),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	internships, err := h.uc.List(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, internships)
}

// @Summary Internship details
// @Tags internships
// @Router /api/v1/internships/{id} [get]
func (h *InternshipHandler) Get(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	internship, err := h.uc.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, internship)
}

// @Summary Publish an internship
// @Tags internships
// @Router /api/v1/internships [post]
func (h *InternshipHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.InternshipCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Title == "" {
		h.respondInvalid(ctx)
		return
	}

	internship := &domain.Internship{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Duration:    req.Duration,
		Skills:      req.Skills,
	}
	if req.Deadline != "" {
		deadline, err := time.Parse(time.RFC3339, req.Deadline)
		if err != nil {
			h.respondInvalid(ctx)
			return
		}
		internship.Deadline = deadline
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, h.session(ctx), internship)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Close an internship
// @Tags internships
// @Router /api/v1/internships/{id}/close [post]
func (h *InternshipHandler) Close(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Close(stdCtx, h.session(ctx), id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}
