package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/islandscholars/backend/api/transport"
	"github.com/islandscholars/backend/domain"
	"github.com/islandscholars/backend/pkg/httpcontext"
	authUC "github.com/islandscholars/backend/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc *authUC.UseCase
}

func NewAuthHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Authenticate and open a session
// @Tags auth
// @Router /api/v1/auth/signin [post]
func (h *AuthHandler) Signin(ctx *fasthttp.RequestCtx) {
	var req transport.SigninRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Identifier == "" || req.Password == "" {
		h.respondInvalid(ctx)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.Login(stdCtx, req.Identifier, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}

// @Summary Register an account
// @Tags auth
// @Router /api/v1/auth/signup [post]
func (h *AuthHandler) Signup(ctx *fasthttp.RequestCtx) {
	var req transport.SignupRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.Register(stdCtx, authUC.RegisterData{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
		Phone:    req.Phone,
		Location: req.Location,
		Bio:      req.Bio,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, result)
}

// @Summary Current session identity
// @Tags auth
// @Router /api/v1/auth/session [get]
func (h *AuthHandler) Session(ctx *fasthttp.RequestCtx) {
	session := h.session(ctx)
	if session == nil {
		h.respondError(ctx, domain.ErrUnauthorized)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, session)
}

// @Summary Close the current session
// @Tags auth
// @Router /api/v1/auth/signout [post]
func (h *AuthHandler) Signout(ctx *fasthttp.RequestCtx) {
	session := h.session(ctx)
	if session == nil {
		h.respondError(ctx, domain.ErrUnauthorized)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Logout(stdCtx, session.ID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}
