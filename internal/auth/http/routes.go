package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	authUseCase "github.com/allisson/posadmin/internal/auth/usecase"
)

// Requirement declares which capabilities an endpoint accepts. Either Any is
// set, meaning every authenticated live account may call the endpoint, or
// Capabilities holds a non-empty disjunction of acceptable capability names.
// There is no anonymous requirement: authentication always runs first.
type Requirement struct {
	Any          bool
	Capabilities []string
}

// RequireAny marks an endpoint as open to any authenticated live account.
func RequireAny() Requirement {
	return Requirement{Any: true}
}

// RequireCapabilities marks an endpoint as requiring at least one of the
// given capability names.
func RequireCapabilities(names ...string) Requirement {
	return Requirement{Capabilities: names}
}

// Route binds one endpoint to its handler and capability requirement. The
// binding happens in a declarative table at registration time, so the full
// protection surface of the API can be read in one place.
type Route struct {
	Method      string
	Path        string
	Requirement Requirement
	Handler     gin.HandlerFunc
}

// RegisterRoutes mounts a route table onto the router group, wiring the
// authentication, liveness, and capability enforcement stages in front of
// every handler. The stage order is fixed: a request must carry a valid
// token, belong to a live account, and satisfy the capability requirement,
// in that order, before the handler runs.
//
// postAuth middleware runs between authentication and liveness, so it can
// rely on the identity being present. Per-account rate limiting hooks in
// here.
func RegisterRoutes(
	group *gin.RouterGroup,
	routes []Route,
	sessionUseCase authUseCase.SessionUseCase,
	authorizer authUseCase.AuthorizerUseCase,
	logger *slog.Logger,
	postAuth ...gin.HandlerFunc,
) {
	for _, route := range routes {
		chain := make([]gin.HandlerFunc, 0, len(postAuth)+4)
		chain = append(chain, AuthenticationMiddleware(sessionUseCase, logger))
		chain = append(chain, postAuth...)
		chain = append(chain,
			LivenessMiddleware(authorizer, logger),
			CapabilityMiddleware(authorizer, route.Requirement, logger),
			route.Handler,
		)
		group.Handle(route.Method, route.Path, chain...)
	}
}
