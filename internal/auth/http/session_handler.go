package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/posadmin/internal/auth/domain"
	"github.com/allisson/posadmin/internal/auth/http/dto"
	authUseCase "github.com/allisson/posadmin/internal/auth/usecase"
	"github.com/allisson/posadmin/internal/httputil"
	customValidation "github.com/allisson/posadmin/internal/validation"
)

// SessionHandler handles HTTP requests for sign-in and identity introspection.
type SessionHandler struct {
	sessionUseCase authUseCase.SessionUseCase
	authorizer     authUseCase.AuthorizerUseCase
	logger         *slog.Logger
}

// NewSessionHandler creates a new session handler with required dependencies.
func NewSessionHandler(
	sessionUseCase authUseCase.SessionUseCase,
	authorizer authUseCase.AuthorizerUseCase,
	logger *slog.Logger,
) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: sessionUseCase,
		authorizer:     authorizer,
		logger:         logger,
	}
}

// SignInHandler validates credentials and issues a bearer token.
// POST /v1/auth/sign-in - Public endpoint (rate limited per IP).
// Returns 200 OK with the token and also sets it as a cookie for browser
// clients; 401 on any credential mismatch.
func (h *SessionHandler) SignInHandler(c *gin.Context) {
	var req dto.SignInRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.sessionUseCase.SignIn(c.Request.Context(), authDomain.SignInInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	maxAge := int(time.Until(output.ExpiresAt).Seconds())
	c.SetCookie(TokenCookieName, output.Token, maxAge, "/", "", false, true)

	c.JSON(http.StatusOK, dto.SignInResponse{
		Token:     output.Token,
		ExpiresAt: output.ExpiresAt,
	})
}

// MeHandler returns the authenticated identity and its effective capabilities.
// GET /v1/auth/me - Open to any authenticated live account.
func (h *SessionHandler) MeHandler(c *gin.Context) {
	identity, ok := GetIdentity(c.Request.Context())
	if !ok || identity == nil {
		httputil.HandleErrorGin(c, authDomain.ErrInvalidToken, h.logger)
		return
	}

	set, err := h.authorizer.Resolve(c.Request.Context(), identity.AccountID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MeResponse{
		AccountID:    identity.AccountID.String(),
		Username:     identity.Username,
		Capabilities: set.Names(),
	})
}
