package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/islandscholars/backend/pkg/httpcontext"
	universityUC "github.com/islandscholars/backend/usecase/university"
)

type UniversityHandler struct {
	baseHandler
	uc *universityUC.UseCase
}

func NewUniversityHandler(uc *universityUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *UniversityHandler {
	return &UniversityHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary University catalogue
// @Tags universities
// @Router /api/v1/universities [get]
func (h *UniversityHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	universities, err := h.uc.List(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, universities)
}

// @Summary University details
// @Tags universities
// @Router /api/v1/universities/{id} [get]
func (h *UniversityHandler) Get(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	university, err := h.uc.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, university)
}
