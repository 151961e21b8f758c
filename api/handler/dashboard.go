package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/islandscholars/backend/domain"
	"github.com/islandscholars/backend/pkg/httpcontext"
	notificationUC "github.com/islandscholars/backend/usecase/notification"
)

// DashboardHandler backs the guarded landing routes. Each role's dashboard
// returns the identity plus its notification snapshot; the SPA renders the
// rest.
type DashboardHandler struct {
	baseHandler
	notifications *notificationUC.UseCase
}

func NewDashboardHandler(notifications *notificationUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		baseHandler:   newBaseHandler(adapter, logger),
		notifications: notifications,
	}
}

// @Summary Role dashboard snapshot
// @Tags dashboard
func (h *DashboardHandler) Show(ctx *fasthttp.RequestCtx) {
	session := h.session(ctx)
	if session == nil {
		h.respondError(ctx, domain.ErrUnauthorized)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.notifications.VisibleFor(stdCtx, session)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"identity":      session,
		"notifications": view.Notifications,
		"unread_count":  view.UnreadCount,
	})
}
