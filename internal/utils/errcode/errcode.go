package errcode

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var (
	// Authentication Errors
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenIsExpired       = errors.New("token is expired")
	ErrAuthorizationHeader  = errors.New("authorization header is required")
	ErrBearerHeader         = errors.New("authorization header must use bearer scheme")
	ErrAccessTokenMissing   = errors.New("access token is missing")
	ErrUnexpectedSignMethod = errors.New("unexpected signing method")

	// CRM Backend Errors
	ErrBackendNetwork       = errors.New("crm backend is unreachable")
	ErrBackendAuthorization = errors.New("crm backend rejected the credentials")
	ErrNotImplemented       = errors.New("crm backend does not implement permission overrides")
	ErrMalformedResponse    = errors.New("crm backend returned an unexpected response")

	// Permission Session Errors
	ErrSessionNotFound = errors.New("permission session not found")
	ErrSessionNotReady = errors.New("permission session has not loaded role and overrides yet")
	ErrRoleNotFound    = errors.New("role not found")
	ErrUnknownGroup    = errors.New("permission group not found")

	// Storage Errors
	ErrRedisGet       = errors.New("failed to read from redis")
	ErrRedisSet       = errors.New("failed to write to redis")
	ErrDatabaseError  = errors.New("database error")
	ErrAuditNotLoaded = errors.New("failed to retrieve permission audit log")
	ErrAuditNotFound  = errors.New("permission audit not found")

	// Common Errors
	ErrBadRequest          = errors.New("bad request")
	ErrInternalServerError = errors.New("internal server error")
)

// errorStatusMap maps application errors to their respective HTTP status codes
var errorStatusMap = map[error]int{
	// 401 Unauthorized Errors
	ErrUnauthorized:         fiber.StatusUnauthorized,
	ErrInvalidToken:         fiber.StatusUnauthorized,
	ErrTokenIsExpired:       fiber.StatusUnauthorized,
	ErrAuthorizationHeader:  fiber.StatusUnauthorized,
	ErrBearerHeader:         fiber.StatusUnauthorized,
	ErrAccessTokenMissing:   fiber.StatusUnauthorized,
	ErrUnexpectedSignMethod: fiber.StatusUnauthorized,

	// 403 Forbidden Errors
	ErrBackendAuthorization: fiber.StatusForbidden,

	// 404 Not Found Errors
	ErrSessionNotFound: fiber.StatusNotFound,
	ErrRoleNotFound:    fiber.StatusNotFound,
	ErrUnknownGroup:    fiber.StatusNotFound,
	ErrAuditNotFound:   fiber.StatusNotFound,
	ErrNotImplemented:  fiber.StatusNotFound,

	// 409 Conflict Errors
	ErrSessionNotReady: fiber.StatusConflict,

	// 400 Bad Request Errors
	ErrBadRequest: fiber.StatusBadRequest,

	// 502 Bad Gateway Errors
	ErrBackendNetwork:    fiber.StatusBadGateway,
	ErrMalformedResponse: fiber.StatusBadGateway,

	// 500 Internal Server Errors
	ErrRedisGet:            fiber.StatusInternalServerError,
	ErrRedisSet:            fiber.StatusInternalServerError,
	ErrDatabaseError:       fiber.StatusInternalServerError,
	ErrAuditNotLoaded:      fiber.StatusInternalServerError,
	ErrInternalServerError: fiber.StatusInternalServerError,
}

// GetHTTPStatus retrieves the HTTP status code for a given error. Wrapped
// errors resolve to the status of the sentinel they wrap.
func GetHTTPStatus(err error) (int, bool) {
	if statusCode, exists := errorStatusMap[err]; exists {
		return statusCode, true
	}
	for target, statusCode := range errorStatusMap {
		if errors.Is(err, target) {
			return statusCode, true
		}
	}
	return 0, false
}
