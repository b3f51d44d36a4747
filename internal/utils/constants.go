package utils

import "time"

// Application Constants
const (
	AppName    = "RentRide"
	AppVersion = "1.0.0"

	// Default values
	DefaultLanguage = "en"
	DefaultCurrency = "LKR"
	DefaultTimeZone = "UTC"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour
	PasswordMinLength  = 8
	PasswordMaxLength  = 128

	// Rental Constants
	MaxRentalDays       = 90
	DefaultSearchRadius = 25.0 // kilometers
	MaxSearchRadius     = 100.0

	// File Upload
	MaxImageSize = 5 * 1024 * 1024  // 5MB
	MaxAudioSize = 20 * 1024 * 1024 // 20MB

	// Chat
	MaxMessageLength = 1000
	ChatIDSeparator  = "_"

	// Calls
	CallRingTimeout = 60 * time.Second
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInvalidCredentials = "invalid credentials"
	ErrUserNotFound       = "user not found"
	ErrUserExists         = "user already exists"
	ErrInvalidToken       = "invalid token"
	ErrTokenExpired       = "token expired"
	ErrInvalidInput       = "invalid input"
	ErrInternalServer     = "internal server error"
	ErrUnauthorized       = "unauthorized"
	ErrForbidden          = "forbidden"
	ErrNotFound           = "not found"
	ErrConflict           = "conflict"
	ErrValidationFailed   = "validation failed"
	ErrFileUploadFailed   = "file upload failed"
	ErrVehicleNotFound    = "vehicle not found"
	ErrBookingNotFound    = "booking not found"
	ErrChatNotFound       = "chat not found"
)

// Cache Keys
const (
	CacheUserPrefix      = "user:"
	CacheVehiclePrefix   = "vehicle:"
	CacheBookingPrefix   = "booking:"
	CacheChatPrefix      = "chat:"
	CacheRevokedPrefix   = "revoked:"
	CacheRateLimitPrefix = "rate_limit:"
)

// Event Types (websocket push)
const (
	EventChatMessage    = "chat_message"
	EventChatUpdated    = "chat_updated"
	EventBookingUpdated = "booking_updated"
	EventIncomingCall   = "incoming_call"
	EventCallEnded      = "call_ended"
	EventPresence       = "presence"
)

// File Types
var (
	AllowedImageTypes = []string{"jpg", "jpeg", "png", "gif", "webp"}
	AllowedAudioTypes = []string{"mp3", "wav", "aac", "m4a"}
)

// Geographic Constants
const (
	EarthRadiusKM    = 6371.0
	EarthRadiusMiles = 3959.0
)
