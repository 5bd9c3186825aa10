package models

// HeaderUserID carries the acting user's id on authenticated routes.
// The gateway requires it and forwards it verbatim; the server trusts it.
const HeaderUserID = "X-Sharer-User-Id"

const (
	// DefaultServerPort is the business tier listen port.
	DefaultServerPort = 9090

	// DefaultGatewayPort is the forwarding tier listen port.
	DefaultGatewayPort = 8080

	// RateLimitRequests is the default per-client request budget.
	RateLimitRequests = 60

	// RateLimitWindow is the default budget window in seconds.
	RateLimitWindow = 60
)
