package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/posadmin/internal/auth/domain"
	usecaseMocks "github.com/allisson/posadmin/internal/auth/usecase/mocks"

	apperrors "github.com/allisson/posadmin/internal/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", handlers...)
	return router
}

func okHandler(c *gin.Context) {
	identity, _ := GetIdentity(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"username": identity.Username})
}

func TestAuthenticationMiddleware(t *testing.T) {
	identity := &authDomain.Identity{
		AccountID: uuid.Must(uuid.NewV7()),
		Username:  "manager",
	}

	t.Run("valid header token reaches the handler", func(t *testing.T) {
		sessionUseCase := &usecaseMocks.MockSessionUseCase{}
		sessionUseCase.On("Authenticate", mock.Anything, "valid-token").Return(identity, nil)

		router := testRouter(AuthenticationMiddleware(sessionUseCase, testLogger()), okHandler)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "manager")
	})

	t.Run("cookie token works when no header is present", func(t *testing.T) {
		sessionUseCase := &usecaseMocks.MockSessionUseCase{}
		sessionUseCase.On("Authenticate", mock.Anything, "cookie-token").Return(identity, nil)

		router := testRouter(AuthenticationMiddleware(sessionUseCase, testLogger()), okHandler)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "cookie-token"})
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("header takes precedence over cookie", func(t *testing.T) {
		sessionUseCase := &usecaseMocks.MockSessionUseCase{}
		sessionUseCase.On("Authenticate", mock.Anything, "header-token").Return(identity, nil)

		router := testRouter(AuthenticationMiddleware(sessionUseCase, testLogger()), okHandler)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer header-token")
		req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "cookie-token"})
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		sessionUseCase.AssertNotCalled(t, "Authenticate", mock.Anything, "cookie-token")
	})

	t.Run("malformed header is rejected even with a valid cookie", func(t *testing.T) {
		sessionUseCase := &usecaseMocks.MockSessionUseCase{}

		router := testRouter(AuthenticationMiddleware(sessionUseCase, testLogger()), okHandler)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "cookie-token"})
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		sessionUseCase.AssertNotCalled(t, "Authenticate")
	})

	t.Run("lowercase scheme is rejected", func(t *testing.T) {
		sessionUseCase := &usecaseMocks.MockSessionUseCase{}

		router := testRouter(AuthenticationMiddleware(sessionUseCase, testLogger()), okHandler)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "bearer valid-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing token is rejected, never anonymous", func(t *testing.T) {
		sessionUseCase := &usecaseMocks.MockSessionUseCase{}

		router := testRouter(AuthenticationMiddleware(sessionUseCase, testLogger()), okHandler)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token yields the same 401 as a missing one", func(t *testing.T) {
		sessionUseCase := &usecaseMocks.MockSessionUseCase{}
		sessionUseCase.On("Authenticate", mock.Anything, "expired-token").
			Return(nil, authDomain.ErrInvalidToken)

		router := testRouter(AuthenticationMiddleware(sessionUseCase, testLogger()), okHandler)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer expired-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "unauthorized")
	})
}

func TestLivenessMiddleware(t *testing.T) {
	identity := &authDomain.Identity{
		AccountID: uuid.Must(uuid.NewV7()),
		Username:  "manager",
	}

	authed := func(sessionUseCase *usecaseMocks.MockSessionUseCase) gin.HandlerFunc {
		sessionUseCase.On("Authenticate", mock.Anything, "valid-token").Return(identity, nil)
		return AuthenticationMiddleware(sessionUseCase, testLogger())
	}

	request := func(router *gin.Engine) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("live account passes", func(t *testing.T) {
		sessionUseCase := &usecaseMocks.MockSessionUseCase{}
		authorizer := &usecaseMocks.MockAuthorizerUseCase{}
		authorizer.On("CheckLive", mock.Anything, identity.AccountID).Return(nil)

		router := testRouter(authed(sessionUseCase), LivenessMiddleware(authorizer, testLogger()), okHandler)

		assert.Equal(t, http.StatusOK, request(router).Code)
	})

	t.Run("account deleted after token issuance is rejected", func(t *testing.T) {
		sessionUseCase := &usecaseMocks.MockSessionUseCase{}
		authorizer := &usecaseMocks.MockAuthorizerUseCase{}
		authorizer.On("CheckLive", mock.Anything, identity.AccountID).
			Return(authDomain.ErrAccountNotLive)

		router := testRouter(authed(sessionUseCase), LivenessMiddleware(authorizer, testLogger()), okHandler)

		assert.Equal(t, http.StatusUnauthorized, request(router).Code)
	})

	t.Run("infrastructure failure surfaces as 500, not 401", func(t *testing.T) {
		sessionUseCase := &usecaseMocks.MockSessionUseCase{}
		authorizer := &usecaseMocks.MockAuthorizerUseCase{}
		authorizer.On("CheckLive", mock.Anything, identity.AccountID).
			Return(apperrors.New("connection refused"))

		router := testRouter(authed(sessionUseCase), LivenessMiddleware(authorizer, testLogger()), okHandler)

		assert.Equal(t, http.StatusInternalServerError, request(router).Code)
	})
}

func TestCapabilityMiddleware(t *testing.T) {
	identity := &authDomain.Identity{
		AccountID: uuid.Must(uuid.NewV7()),
		Username:  "manager",
	}

	setIdentity := func(c *gin.Context) {
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), identity))
		c.Next()
	}

	request := func(router *gin.Engine) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)
		return w
	}

	capabilitySet := func(names ...string) authDomain.CapabilitySet {
		capabilities := make([]*authDomain.Capability, 0, len(names))
		for _, name := range names {
			capabilities = append(capabilities, &authDomain.Capability{
				ID:   uuid.Must(uuid.NewV7()),
				Name: name,
			})
		}
		return authDomain.NewCapabilitySet(capabilities...)
	}

	t.Run("any sentinel skips resolution", func(t *testing.T) {
		authorizer := &usecaseMocks.MockAuthorizerUseCase{}

		router := testRouter(setIdentity,
			CapabilityMiddleware(authorizer, RequireAny(), testLogger()), okHandler)

		assert.Equal(t, http.StatusOK, request(router).Code)
		authorizer.AssertNotCalled(t, "Resolve")
	})

	t.Run("one matching capability in a disjunction allows", func(t *testing.T) {
		authorizer := &usecaseMocks.MockAuthorizerUseCase{}
		authorizer.On("Resolve", mock.Anything, identity.AccountID).
			Return(capabilitySet("view-reports"), nil)

		router := testRouter(setIdentity,
			CapabilityMiddleware(authorizer, RequireCapabilities("manage-accounts", "view-reports"), testLogger()),
			okHandler)

		assert.Equal(t, http.StatusOK, request(router).Code)
	})

	t.Run("no matching capability forbids", func(t *testing.T) {
		authorizer := &usecaseMocks.MockAuthorizerUseCase{}
		authorizer.On("Resolve", mock.Anything, identity.AccountID).
			Return(capabilitySet("view-reports"), nil)

		router := testRouter(setIdentity,
			CapabilityMiddleware(authorizer, RequireCapabilities("manage-accounts", "manage-sales"), testLogger()),
			okHandler)

		w := request(router)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "forbidden")
	})

	t.Run("empty effective set forbids", func(t *testing.T) {
		authorizer := &usecaseMocks.MockAuthorizerUseCase{}
		authorizer.On("Resolve", mock.Anything, identity.AccountID).
			Return(capabilitySet(), nil)

		router := testRouter(setIdentity,
			CapabilityMiddleware(authorizer, RequireCapabilities("manage-accounts"), testLogger()),
			okHandler)

		assert.Equal(t, http.StatusForbidden, request(router).Code)
	})

	t.Run("resolution failure surfaces as 500, not 403", func(t *testing.T) {
		authorizer := &usecaseMocks.MockAuthorizerUseCase{}
		authorizer.On("Resolve", mock.Anything, identity.AccountID).
			Return(nil, apperrors.New("connection refused"))

		router := testRouter(setIdentity,
			CapabilityMiddleware(authorizer, RequireCapabilities("manage-accounts"), testLogger()),
			okHandler)

		assert.Equal(t, http.StatusInternalServerError, request(router).Code)
	})
}

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	identity := &authDomain.Identity{AccountID: uuid.Must(uuid.NewV7()), Username: "manager"}

	sessionUseCase := &usecaseMocks.MockSessionUseCase{}
	sessionUseCase.On("Authenticate", mock.Anything, "valid-token").Return(identity, nil)

	authorizer := &usecaseMocks.MockAuthorizerUseCase{}
	authorizer.On("CheckLive", mock.Anything, identity.AccountID).Return(nil)
	authorizer.On("Resolve", mock.Anything, identity.AccountID).
		Return(authDomain.NewCapabilitySet(&authDomain.Capability{
			ID:   uuid.Must(uuid.NewV7()),
			Name: "view-reports",
		}), nil)

	router := gin.New()
	routes := []Route{
		{
			Method:      http.MethodGet,
			Path:        "/reports",
			Requirement: RequireCapabilities("view-reports"),
			Handler:     func(c *gin.Context) { c.Status(http.StatusOK) },
		},
		{
			Method:      http.MethodGet,
			Path:        "/admin",
			Requirement: RequireCapabilities("manage-accounts"),
			Handler:     func(c *gin.Context) { c.Status(http.StatusOK) },
		},
	}
	RegisterRoutes(router.Group("/v1"), routes, sessionUseCase, authorizer, testLogger())

	t.Run("allowed route", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/reports", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("forbidden route with the same token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/admin", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unauthenticated request never reaches enforcement", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/reports", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
