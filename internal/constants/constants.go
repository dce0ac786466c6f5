package constants

// Pagination bounds applied at the transport layer.
const (
	DefaultLimit = 100
	MaxLimit     = 100
)

// Field length limits enforced on request bodies.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 100
	MaxTitleLength    = 255
)
