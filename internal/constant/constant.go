package constant

type TokenType string

const (
	TokenTypeAccess TokenType = "access"
)

// Redis key prefixes.
const (
	BlacklistKeyPrefix         = "blacklist"
	PermissionSessionKeyPrefix = "permission-session"
)
