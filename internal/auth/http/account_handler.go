package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/posadmin/internal/auth/domain"
	"github.com/allisson/posadmin/internal/auth/http/dto"
	authUseCase "github.com/allisson/posadmin/internal/auth/usecase"
	"github.com/allisson/posadmin/internal/httputil"
	customValidation "github.com/allisson/posadmin/internal/validation"
)

// AccountHandler handles HTTP requests for account and capability management.
type AccountHandler struct {
	accountUseCase authUseCase.AccountUseCase
	logger         *slog.Logger
}

// NewAccountHandler creates a new account handler with required dependencies.
func NewAccountHandler(accountUseCase authUseCase.AccountUseCase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accountUseCase: accountUseCase,
		logger:         logger,
	}
}

// CreateAccountHandler provisions a new staff account bound to a role.
// POST /v1/accounts - Requires the manage-accounts capability.
// Returns 201 Created with the account, 409 if the username is taken.
func (h *AccountHandler) CreateAccountHandler(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Validate() guarantees a well-formed UUID
	roleID := uuid.MustParse(req.RoleID)

	account, err := h.accountUseCase.CreateAccount(c.Request.Context(), authDomain.CreateAccountInput{
		Username: req.Username,
		Password: req.Password,
		RoleID:   roleID,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapAccountToResponse(account))
}

// GetAccountHandler retrieves a single account by ID.
// GET /v1/accounts/:id - Requires the manage-accounts capability.
func (h *AccountHandler) GetAccountHandler(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid account ID format: must be a valid UUID"),
			h.logger)
		return
	}

	account, err := h.accountUseCase.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAccountToResponse(account))
}

// DeleteAccountHandler soft-deletes an account. Already issued tokens for the
// account keep verifying until expiry, but the liveness stage rejects them
// from the moment the deletion commits.
// DELETE /v1/accounts/:id - Requires the manage-accounts capability.
// Returns 204 No Content on success, 404 if the account does not exist.
func (h *AccountHandler) DeleteAccountHandler(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid account ID format: must be a valid UUID"),
			h.logger)
		return
	}

	if err := h.accountUseCase.DeleteAccount(c.Request.Context(), accountID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListAccountsHandler retrieves live accounts with pagination.
// GET /v1/accounts - Requires the manage-accounts capability.
func (h *AccountHandler) ListAccountsHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	accounts, err := h.accountUseCase.ListAccounts(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAccountsToListResponse(accounts))
}

// GrantCapabilityHandler adds a per-account capability override.
// POST /v1/accounts/:id/capabilities - Requires the manage-accounts capability.
// Returns 204 No Content on success, 409 if the grant already exists.
func (h *AccountHandler) GrantCapabilityHandler(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid account ID format: must be a valid UUID"),
			h.logger)
		return
	}

	var req dto.GrantCapabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.accountUseCase.GrantAccountCapability(c.Request.Context(), accountID, req.Capability); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// RevokeCapabilityHandler removes a per-account capability override.
// DELETE /v1/accounts/:id/capabilities/:capability - Requires the
// manage-accounts capability. Returns 204 No Content on success, 404 if the
// grant does not exist.
func (h *AccountHandler) RevokeCapabilityHandler(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid account ID format: must be a valid UUID"),
			h.logger)
		return
	}

	capabilityName := c.Param("capability")

	if err := h.accountUseCase.RevokeAccountCapability(c.Request.Context(), accountID, capabilityName); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListRolesHandler retrieves live roles with pagination.
// GET /v1/roles - Requires the manage-roles capability.
func (h *AccountHandler) ListRolesHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	roles, err := h.accountUseCase.ListRoles(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRolesToListResponse(roles))
}

// ListCapabilitiesHandler retrieves live capabilities with pagination.
// GET /v1/capabilities - Requires the manage-roles capability.
func (h *AccountHandler) ListCapabilitiesHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	capabilities, err := h.accountUseCase.ListCapabilities(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCapabilitiesToListResponse(capabilities))
}
