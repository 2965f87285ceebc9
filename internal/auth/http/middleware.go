package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/posadmin/internal/auth/domain"
	authUseCase "github.com/allisson/posadmin/internal/auth/usecase"
	"github.com/allisson/posadmin/internal/httputil"
)

const (
	// bearerScheme is the exact Authorization header scheme. Matching is
	// case-sensitive: "bearer foo" is rejected, not silently accepted.
	bearerScheme = "Bearer "

	// TokenCookieName is the cookie consulted when no Authorization header is
	// present, so browser-based admin UIs can authenticate without scripting
	// the header.
	TokenCookieName = "posadmin_token"
)

// extractToken returns the bearer token from the request. The Authorization
// header takes precedence: when it is present its value must be well formed,
// and the cookie is never consulted as a fallback. There is no anonymous
// passthrough; every failure yields domain.ErrInvalidToken.
func extractToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header != "" {
		if !strings.HasPrefix(header, bearerScheme) {
			return "", authDomain.ErrInvalidToken
		}
		token := header[len(bearerScheme):]
		if token == "" {
			return "", authDomain.ErrInvalidToken
		}
		return token, nil
	}

	cookie, err := c.Cookie(TokenCookieName)
	if err != nil || cookie == "" {
		return "", authDomain.ErrInvalidToken
	}
	return cookie, nil
}

// AuthenticationMiddleware verifies the bearer token and stores the identity
// it carries in the request context.
//
// Token sources, in precedence order:
//  1. "Authorization: Bearer <token>" header (exact scheme)
//  2. the posadmin_token cookie
//
// Every failure (missing token, malformed header, bad signature, expiry)
// yields the same 401 response; the cause appears only in debug logs.
func AuthenticationMiddleware(sessionUseCase authUseCase.SessionUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractToken(c)
		if err != nil {
			logger.Debug("authentication failed: no usable token in request")
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		identity, err := sessionUseCase.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug("authentication failed: token verification rejected",
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithIdentity(c.Request.Context(), identity)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("account_id", identity.AccountID.String()),
			slog.String("username", identity.Username))

		c.Next()
	}
}

// LivenessMiddleware re-validates that the authenticated account still exists
// and is not soft-deleted. A token outlives its account: deleting the account
// must invalidate every token already issued for it, which this check makes
// effective on the next request.
//
// MUST be used after AuthenticationMiddleware.
func LivenessMiddleware(authorizer authUseCase.AuthorizerUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c.Request.Context())
		if !ok || identity == nil {
			logger.Error("liveness middleware: no authenticated identity in context")
			httputil.HandleErrorGin(c, authDomain.ErrInvalidToken, logger)
			c.Abort()
			return
		}

		if err := authorizer.CheckLive(c.Request.Context(), identity.AccountID); err != nil {
			logger.Debug("liveness check rejected",
				slog.String("account_id", identity.AccountID.String()),
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

// CapabilityMiddleware enforces the endpoint's capability requirement against
// the account's effective set. The requirement is a disjunction: holding any
// one of the listed capabilities is enough. Endpoints marked with the "any"
// sentinel skip resolution entirely.
//
// A live, authenticated account that lacks every required capability gets a
// 403; resolution failures surface as 500, never as a denial.
//
// MUST be used after AuthenticationMiddleware.
func CapabilityMiddleware(
	authorizer authUseCase.AuthorizerUseCase,
	requirement Requirement,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		if requirement.Any {
			c.Next()
			return
		}

		identity, ok := GetIdentity(c.Request.Context())
		if !ok || identity == nil {
			logger.Error("capability middleware: no authenticated identity in context")
			httputil.HandleErrorGin(c, authDomain.ErrInvalidToken, logger)
			c.Abort()
			return
		}

		set, err := authorizer.Resolve(c.Request.Context(), identity.AccountID)
		if err != nil {
			logger.Debug("capability resolution failed",
				slog.String("account_id", identity.AccountID.String()),
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		if !set.ContainsAny(requirement.Capabilities) {
			logger.Debug("capability check rejected",
				slog.String("account_id", identity.AccountID.String()),
				slog.Any("required", requirement.Capabilities),
				slog.Any("held", set.Names()))
			httputil.HandleErrorGin(c, authDomain.ErrCapabilityRequired, logger)
			c.Abort()
			return
		}

		ctx := WithCapabilities(c.Request.Context(), set)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
