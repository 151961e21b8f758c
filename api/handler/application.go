package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/islandscholars/backend/api/transport"
	"github.com/islandscholars/backend/domain"
	"github.com/islandscholars/backend/pkg/httpcontext"
	"github.com/islandscholars/backend/repository"
	applicationUC "github.com/islandscholars/backend/usecase/application"
)

type ApplicationHandler struct {
	baseHandler
	uc *applicationUC.UseCase
}

func NewApplicationHandler(uc *applicationUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Apply to an internship
// @Tags applications
// @Router /api/v1/applications [post]
func (h *ApplicationHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.ApplicationCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.InternshipID == "" {
		h.respondInvalid(ctx)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	application, err := h.uc.Apply(stdCtx, h.session(ctx), req.InternshipID, req.CoverLetter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, application)
}

// @Summary Applications visible to the caller
// @Tags applications
// @Router /api/v1/applications [get]
func (h *ApplicationHandler) List(ctx *fasthttp.RequestCtx) {
	filter := repository.ApplicationFilter{
		InternshipID: string(ctx.QueryArgs().Peek("internship_id")),
		Status:       domain.ApplicationStatus(ctx.QueryArgs().Peek("status")),
		Limit:        ctx.QueryArgs().GetUintOrZero("limit"),
		Offset:       ctx.QueryArgs().GetUintOrZero("offset"),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	applications, err := h.uc.List(stdCtx, h.session(ctx), filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, applications)
}

// @Summary Decide an application
// @Tags applications
// @Router /api/v1/applications/{id}/status [put]
func (h *ApplicationHandler) UpdateStatus(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)

	var req transport.StatusUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || id == "" {
		h.respondInvalid(ctx)
		return
	}
	status, err := domain.ParseApplicationStatus(req.Status)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	application, err := h.uc.UpdateStatus(stdCtx, h.session(ctx), id, status)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, application)
}
