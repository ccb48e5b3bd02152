package constants

const (
	// Session
	SessionCookieName = "admin_session"
	SessionTTLHours   = 24 * 7

	// Database pool defaults
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"

	// Redis key prefixes
	RedisKeyInviteDetails = "invite:details:"

	// Background task types
	TaskTypeBulkSend = "email:bulk_send"

	// Event theme defaults
	DefaultPrimaryColor   = "#1a2f4a"
	DefaultSecondaryColor = "#22d3ee"

	// Invite access tokens: 32 random bytes, hex encoded
	InviteTokenBytes = 32
)
