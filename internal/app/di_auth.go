package app

import (
	"context"
	"fmt"

	authHTTP "github.com/allisson/posadmin/internal/auth/http"
	authRepository "github.com/allisson/posadmin/internal/auth/repository"
	authService "github.com/allisson/posadmin/internal/auth/service"
	authUseCase "github.com/allisson/posadmin/internal/auth/usecase"
)

// AccountRepository returns the account repository based on database driver.
func (c *Container) AccountRepository() (authUseCase.AccountRepository, error) {
	var err error
	c.accountRepositoryInit.Do(func() {
		c.accountRepository, err = c.initAccountRepository()
		if err != nil {
			c.initErrors["accountRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accountRepository"]; exists {
		return nil, storedErr
	}
	return c.accountRepository, nil
}

// RoleRepository returns the role repository based on database driver.
func (c *Container) RoleRepository() (authUseCase.RoleRepository, error) {
	var err error
	c.roleRepositoryInit.Do(func() {
		c.roleRepository, err = c.initRoleRepository()
		if err != nil {
			c.initErrors["roleRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["roleRepository"]; exists {
		return nil, storedErr
	}
	return c.roleRepository, nil
}

// CapabilityRepository returns the capability repository based on database driver.
func (c *Container) CapabilityRepository() (authUseCase.CapabilityRepository, error) {
	var err error
	c.capabilityRepositoryInit.Do(func() {
		c.capabilityRepository, err = c.initCapabilityRepository()
		if err != nil {
			c.initErrors["capabilityRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["capabilityRepository"]; exists {
		return nil, storedErr
	}
	return c.capabilityRepository, nil
}

// GrantRepository returns the grant repository based on database driver.
func (c *Container) GrantRepository() (authUseCase.GrantRepository, error) {
	var err error
	c.grantRepositoryInit.Do(func() {
		c.grantRepository, err = c.initGrantRepository()
		if err != nil {
			c.initErrors["grantRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["grantRepository"]; exists {
		return nil, storedErr
	}
	return c.grantRepository, nil
}

// PasswordService returns the password hashing service.
func (c *Container) PasswordService() (authService.PasswordService, error) {
	var err error
	c.passwordServiceInit.Do(func() {
		c.passwordService, err = authService.NewPasswordService()
		if err != nil {
			c.initErrors["passwordService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["passwordService"]; exists {
		return nil, storedErr
	}
	return c.passwordService, nil
}

// TokenCodec returns the access token codec.
func (c *Container) TokenCodec() (authService.TokenCodec, error) {
	var err error
	c.tokenCodecInit.Do(func() {
		c.tokenCodec, err = c.initTokenCodec()
		if err != nil {
			c.initErrors["tokenCodec"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenCodec"]; exists {
		return nil, storedErr
	}
	return c.tokenCodec, nil
}

// SessionUseCase returns the session use case.
func (c *Container) SessionUseCase() (authUseCase.SessionUseCase, error) {
	var err error
	c.sessionUseCaseInit.Do(func() {
		c.sessionUseCase, err = c.initSessionUseCase()
		if err != nil {
			c.initErrors["sessionUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionUseCase"]; exists {
		return nil, storedErr
	}
	return c.sessionUseCase, nil
}

// AuthorizerUseCase returns the authorizer use case.
func (c *Container) AuthorizerUseCase() (authUseCase.AuthorizerUseCase, error) {
	var err error
	c.authorizerUseCaseInit.Do(func() {
		c.authorizerUseCase, err = c.initAuthorizerUseCase()
		if err != nil {
			c.initErrors["authorizerUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authorizerUseCase"]; exists {
		return nil, storedErr
	}
	return c.authorizerUseCase, nil
}

// AccountUseCase returns the account management use case.
func (c *Container) AccountUseCase() (authUseCase.AccountUseCase, error) {
	var err error
	c.accountUseCaseInit.Do(func() {
		c.accountUseCase, err = c.initAccountUseCase()
		if err != nil {
			c.initErrors["accountUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accountUseCase"]; exists {
		return nil, storedErr
	}
	return c.accountUseCase, nil
}

// SessionHandler returns the session HTTP handler.
func (c *Container) SessionHandler() (*authHTTP.SessionHandler, error) {
	sessionUseCase, err := c.SessionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get session use case for session handler: %w", err)
	}

	authorizerUseCase, err := c.AuthorizerUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get authorizer use case for session handler: %w", err)
	}

	return authHTTP.NewSessionHandler(sessionUseCase, authorizerUseCase, c.Logger()), nil
}

// AccountHandler returns the account HTTP handler.
func (c *Container) AccountHandler() (*authHTTP.AccountHandler, error) {
	accountUseCase, err := c.AccountUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get account use case for account handler: %w", err)
	}

	return authHTTP.NewAccountHandler(accountUseCase, c.Logger()), nil
}

// initAccountRepository creates the account repository instance.
func (c *Container) initAccountRepository() (authUseCase.AccountRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for account repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return authRepository.NewMySQLAccountRepository(db), nil
	case "postgres":
		return authRepository.NewPostgreSQLAccountRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initRoleRepository creates the role repository instance.
func (c *Container) initRoleRepository() (authUseCase.RoleRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for role repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return authRepository.NewMySQLRoleRepository(db), nil
	case "postgres":
		return authRepository.NewPostgreSQLRoleRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initCapabilityRepository creates the capability repository instance.
func (c *Container) initCapabilityRepository() (authUseCase.CapabilityRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for capability repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return authRepository.NewMySQLCapabilityRepository(db), nil
	case "postgres":
		return authRepository.NewPostgreSQLCapabilityRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initGrantRepository creates the grant repository instance.
func (c *Container) initGrantRepository() (authUseCase.GrantRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for grant repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return authRepository.NewMySQLGrantRepository(db), nil
	case "postgres":
		return authRepository.NewPostgreSQLGrantRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initTokenCodec loads the signing secret, decrypting it through the KMS
// keeper when a ciphertext is configured, and builds the JWT codec.
func (c *Container) initTokenCodec() (authService.TokenCodec, error) {
	loader := authService.NewSigningKeyLoader(
		c.config.AuthTokenSecret,
		c.config.AuthTokenSecretCiphertext,
		c.config.KMSKeyURI,
	)

	secret, err := loader.Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to load token signing secret: %w", err)
	}

	codec, err := authService.NewTokenCodec(secret, c.config.AuthTokenExpiration, c.config.AuthTokenIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create token codec: %w", err)
	}

	return codec, nil
}

// initSessionUseCase creates the session use case with all its dependencies.
func (c *Container) initSessionUseCase() (authUseCase.SessionUseCase, error) {
	accountRepository, err := c.AccountRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get account repository for session use case: %w", err)
	}

	passwordService, err := c.PasswordService()
	if err != nil {
		return nil, fmt.Errorf("failed to get password service for session use case: %w", err)
	}

	tokenCodec, err := c.TokenCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get token codec for session use case: %w", err)
	}

	baseUseCase := authUseCase.NewSessionUseCase(accountRepository, passwordService, tokenCodec)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for session use case: %w", err)
		}
		return authUseCase.NewSessionUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initAuthorizerUseCase creates the authorizer use case with all its dependencies.
func (c *Container) initAuthorizerUseCase() (authUseCase.AuthorizerUseCase, error) {
	accountRepository, err := c.AccountRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get account repository for authorizer use case: %w", err)
	}

	grantRepository, err := c.GrantRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get grant repository for authorizer use case: %w", err)
	}

	baseUseCase := authUseCase.NewAuthorizerUseCase(accountRepository, grantRepository)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for authorizer use case: %w", err)
		}
		return authUseCase.NewAuthorizerUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initAccountUseCase creates the account management use case with all its
// dependencies.
func (c *Container) initAccountUseCase() (authUseCase.AccountUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for account use case: %w", err)
	}

	accountRepository, err := c.AccountRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get account repository for account use case: %w", err)
	}

	roleRepository, err := c.RoleRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get role repository for account use case: %w", err)
	}

	capabilityRepository, err := c.CapabilityRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get capability repository for account use case: %w", err)
	}

	grantRepository, err := c.GrantRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get grant repository for account use case: %w", err)
	}

	passwordService, err := c.PasswordService()
	if err != nil {
		return nil, fmt.Errorf("failed to get password service for account use case: %w", err)
	}

	return authUseCase.NewAccountUseCase(
		txManager,
		accountRepository,
		roleRepository,
		capabilityRepository,
		grantRepository,
		passwordService,
	), nil
}
