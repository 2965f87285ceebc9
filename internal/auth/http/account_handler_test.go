package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/posadmin/internal/auth/domain"
	usecaseMocks "github.com/allisson/posadmin/internal/auth/usecase/mocks"
)

func accountTestRouter(handler *AccountHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/v1/accounts", handler.CreateAccountHandler)
	router.GET("/v1/accounts", handler.ListAccountsHandler)
	router.GET("/v1/accounts/:id", handler.GetAccountHandler)
	router.DELETE("/v1/accounts/:id", handler.DeleteAccountHandler)
	router.POST("/v1/accounts/:id/capabilities", handler.GrantCapabilityHandler)
	router.DELETE("/v1/accounts/:id/capabilities/:capability", handler.RevokeCapabilityHandler)
	router.GET("/v1/roles", handler.ListRolesHandler)
	router.GET("/v1/capabilities", handler.ListCapabilitiesHandler)
	return router
}

func TestAccountHandler_ListAccountsHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		accountUseCase := &usecaseMocks.MockAccountUseCase{}
		router := accountTestRouter(NewAccountHandler(accountUseCase, testLogger()))

		now := time.Now().UTC()
		accountUseCase.On("ListAccounts", mock.Anything, 0, 50).
			Return([]*authDomain.Account{
				{ID: uuid.Must(uuid.NewV7()), Username: "manager", RoleID: uuid.Must(uuid.NewV7()), CreatedAt: now, UpdatedAt: now},
			}, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/accounts", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "manager")
		// The password hash must never leak into responses
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("invalid pagination yields 400", func(t *testing.T) {
		accountUseCase := &usecaseMocks.MockAccountUseCase{}
		router := accountTestRouter(NewAccountHandler(accountUseCase, testLogger()))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/accounts?limit=0", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		accountUseCase.AssertNotCalled(t, "ListAccounts")
	})
}

func TestAccountHandler_CreateAccountHandler(t *testing.T) {
	roleID := uuid.Must(uuid.NewV7())

	createRequest := func(t *testing.T, body any) *http.Request {
		t.Helper()
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/v1/accounts", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		return req
	}

	t.Run("success", func(t *testing.T) {
		accountUseCase := &usecaseMocks.MockAccountUseCase{}
		router := accountTestRouter(NewAccountHandler(accountUseCase, testLogger()))

		now := time.Now().UTC()
		accountID := uuid.Must(uuid.NewV7())
		accountUseCase.On("CreateAccount", mock.Anything, authDomain.CreateAccountInput{
			Username: "manager",
			Password: "my-password",
			RoleID:   roleID,
		}).Return(&authDomain.Account{
			ID: accountID, Username: "manager", RoleID: roleID, CreatedAt: now, UpdatedAt: now,
		}, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createRequest(t, map[string]string{
			"username": "manager",
			"password": "my-password",
			"role_id":  roleID.String(),
		}))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), accountID.String())
		assert.NotContains(t, w.Body.String(), "my-password")
	})

	t.Run("duplicate username yields 409", func(t *testing.T) {
		accountUseCase := &usecaseMocks.MockAccountUseCase{}
		router := accountTestRouter(NewAccountHandler(accountUseCase, testLogger()))

		accountUseCase.On("CreateAccount", mock.Anything, mock.Anything).
			Return(nil, authDomain.ErrAccountAlreadyExists)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createRequest(t, map[string]string{
			"username": "manager",
			"password": "my-password",
			"role_id":  roleID.String(),
		}))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("invalid role id yields 422", func(t *testing.T) {
		accountUseCase := &usecaseMocks.MockAccountUseCase{}
		router := accountTestRouter(NewAccountHandler(accountUseCase, testLogger()))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createRequest(t, map[string]string{
			"username": "manager",
			"password": "my-password",
			"role_id":  "not-a-uuid",
		}))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		accountUseCase.AssertNotCalled(t, "CreateAccount")
	})
}

func TestAccountHandler_GetAccountHandler(t *testing.T) {
	accountID := uuid.Must(uuid.NewV7())

	t.Run("success", func(t *testing.T) {
		accountUseCase := &usecaseMocks.MockAccountUseCase{}
		router := accountTestRouter(NewAccountHandler(accountUseCase, testLogger()))

		accountUseCase.On("GetAccount", mock.Anything, accountID).
			Return(&authDomain.Account{ID: accountID, Username: "manager", RoleID: uuid.Must(uuid.NewV7())}, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/accounts/"+accountID.String(), nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), accountID.String())
	})

	t.Run("missing account yields 404", func(t *testing.T) {
		accountUseCase := &usecaseMocks.MockAccountUseCase{}
		router := accountTestRouter(NewAccountHandler(accountUseCase, testLogger()))

		accountUseCase.On("GetAccount", mock.Anything, accountID).
			Return(nil, authDomain.ErrAccountNotFound)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/accounts/"+accountID.String(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAccountHandler_DeleteAccountHandler(t *testing.T) {
	accountID := uuid.Must(uuid.NewV7())

	t.Run("success", func(t *testing.T) {
		accountUseCase := &usecaseMocks.MockAccountUseCase{}
		router := accountTestRouter(NewAccountHandler(accountUseCase, testLogger()))

		accountUseCase.On("DeleteAccount", mock.Anything, accountID).Return(nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/v1/accounts/"+accountID.String(), nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("missing account yields 404", func(t *testing.T) {
		accountUseCase := &usecaseMocks.MockAccountUseCase{}
		router := accountTestRouter(NewAccountHandler(accountUseCase, testLogger()))

		accountUseCase.On("DeleteAccount", mock.Anything, accountID).
			Return(authDomain.ErrAccountNotFound)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/v1/accounts/"+accountID.String(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid id yields 422", func(t *testing.T) {
		accountUseCase := &usecaseMocks.MockAccountUseCase{}
		router := accountTestRouter(NewAccountHandler(accountUseCase, testLogger()))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/v1/accounts/not-a-uuid", nil))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		accountUseCase.AssertNotCalled(t, "DeleteAccount")
	})
}

func TestAccountHandler_GrantCapabilityHandler(t *testing.T) {
	accountID := uuid.Must(uuid.NewV7())

	grantRequest := func(t *testing.T, id, capability string) *http.Request {
		t.Helper()
		payload, err := json.Marshal(map[string]string{"capability": capability})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/v1/accounts/"+id+"/capabilities", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		return req
	}

	t.Run("success", func(t *testing.T) {
		accountUseCase := &usecaseMocks.MockAccountUseCase{}
		router := accountTestRouter(NewAccountHandler(accountUseCase, testLogger()))

		accountUseCase.On("GrantAccountCapability", mock.Anything, accountID, "manage-accounts").Return(nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, grantRequest(t, accountID.String(), "manage-accounts"))

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("duplicate grant yields 409", func(t *testing.T) {
		accountUseCase := &usecaseMocks.MockAccountUseCase{}
		router := accountTestRouter(NewAccountHandler(accountUseCase, testLogger()))

		accountUseCase.On("GrantAccountCapability", mock.Anything, accountID, "manage-accounts").
			Return(authDomain.ErrGrantAlreadyExists)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, grantRequest(t, accountID.String(), "manage-accounts"))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("invalid account id yields 422", func(t *testing.T) {
		accountUseCase := &usecaseMocks.MockAccountUseCase{}
		router := accountTestRouter(NewAccountHandler(accountUseCase, testLogger()))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, grantRequest(t, "not-a-uuid", "manage-accounts"))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		accountUseCase.AssertNotCalled(t, "GrantAccountCapability")
	})

	t.Run("malformed capability name yields 422", func(t *testing.T) {
		accountUseCase := &usecaseMocks.MockAccountUseCase{}
		router := accountTestRouter(NewAccountHandler(accountUseCase, testLogger()))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, grantRequest(t, accountID.String(), "Manage Accounts"))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestAccountHandler_RevokeCapabilityHandler(t *testing.T) {
	accountID := uuid.Must(uuid.NewV7())

	t.Run("success", func(t *testing.T) {
		accountUseCase := &usecaseMocks.MockAccountUseCase{}
		router := accountTestRouter(NewAccountHandler(accountUseCase, testLogger()))

		accountUseCase.On("RevokeAccountCapability", mock.Anything, accountID, "manage-accounts").Return(nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete,
			"/v1/accounts/"+accountID.String()+"/capabilities/manage-accounts", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("missing grant yields 404", func(t *testing.T) {
		accountUseCase := &usecaseMocks.MockAccountUseCase{}
		router := accountTestRouter(NewAccountHandler(accountUseCase, testLogger()))

		accountUseCase.On("RevokeAccountCapability", mock.Anything, accountID, "manage-accounts").
			Return(authDomain.ErrGrantNotFound)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete,
			"/v1/accounts/"+accountID.String()+"/capabilities/manage-accounts", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAccountHandler_ListRolesHandler(t *testing.T) {
	accountUseCase := &usecaseMocks.MockAccountUseCase{}
	router := accountTestRouter(NewAccountHandler(accountUseCase, testLogger()))

	accountUseCase.On("ListRoles", mock.Anything, 0, 50).
		Return([]*authDomain.Role{
			{ID: uuid.Must(uuid.NewV7()), Name: "store-manager", CreatedAt: time.Now().UTC()},
		}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/roles", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "store-manager")
}

func TestAccountHandler_ListCapabilitiesHandler(t *testing.T) {
	accountUseCase := &usecaseMocks.MockAccountUseCase{}
	router := accountTestRouter(NewAccountHandler(accountUseCase, testLogger()))

	accountUseCase.On("ListCapabilities", mock.Anything, 0, 50).
		Return([]*authDomain.Capability{
			{ID: uuid.Must(uuid.NewV7()), Name: "view-reports", CreatedAt: time.Now().UTC()},
		}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/capabilities", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "view-reports")
}
