package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/islandscholars/backend/api/transport"
	"github.com/islandscholars/backend/domain"
	"github.com/islandscholars/backend/pkg/httpcontext"
	notificationUC "github.com/islandscholars/backend/usecase/notification"
)

type NotificationHandler struct {
	baseHandler
	uc *notificationUC.UseCase
}

func NewNotificationHandler(uc *notificationUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Notifications visible to the current identity
// @Tags notifications
// @Router /api/v1/notifications [get]
func (h *NotificationHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.VisibleFor(stdCtx, h.session(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(view.Notifications, map[string]int{
		"unread_count": view.UnreadCount,
	}))
}

// @Summary Mark one notification read
// @Tags notifications
// @Router /api/v1/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.MarkRead(stdCtx, h.session(ctx), id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// @Summary Mark every visible notification read
// @Tags notifications
// @Router /api/v1/notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.MarkAllRead(stdCtx, h.session(ctx)); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// @Summary Publish a notification (admin)
// @Tags notifications
// @Router /api/v1/notifications [post]
func (h *NotificationHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.NotificationCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Title == "" {
		h.respondInvalid(ctx)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Add(stdCtx, domain.Notification{
		UserRole: domain.Role(req.UserRole),
		UserID:   req.UserID,
		Type:     domain.NotificationType(req.Type),
		Title:    req.Title,
		Message:  req.Message,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}
