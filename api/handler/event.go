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
	eventUC "github.com/islandscholars/backend/usecase/event"
)

type EventHandler struct {
	baseHandler
	uc *eventUC.UseCase
}

func NewEventHandler(uc *eventUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Browse events
// @Tags events
// @Router /api/v1/events [get]
func (h *EventHandler) List(ctx *fasthttp.RequestCtx) {
	filter := repository.EventFilter{
		OrganizerID: string(ctx.QueryArgs().Peek("organizer_id")),
		Status:      domain.EventStatus(ctx.QueryArgs().Peek("status")),
		Limit:       ctx.QueryArgs().GetUintOrZero("limit"),
		Offset:      ctx.QueryArgs().GetUintOrZero("offset"),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	events, err := h.uc.List(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, events)
}

// @Summary Schedule an event
// @Tags events
// @Router /api/v1/events [post]
func (h *EventHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.EventCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Title == "" {
		h.respondInvalid(ctx)
		return
	}
	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		h.respondInvalid(ctx)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, h.session(ctx), &domain.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Location:    req.Location,
		EventType:   req.EventType,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Transition an event
// @Tags events
// @Router /api/v1/events/{id}/status [put]
func (h *EventHandler) UpdateStatus(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)

	var req transport.StatusUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || id == "" || req.Status == "" {
		h.respondInvalid(ctx)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.UpdateStatus(stdCtx, h.session(ctx), id, domain.EventStatus(req.Status)); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}
