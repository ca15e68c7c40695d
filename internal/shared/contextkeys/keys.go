package contextkeys

// contextKey is an unexported type to prevent collisions with context keys defined in
// other packages.
type contextKey string

// String makes contextKey satisfy the Stringer interface to assist with debugging.
func (c contextKey) String() string {
	return "restaurant-management context key " + string(c)
}

const (
	// IdentityKey holds the decoded session identity (map of claims).
	IdentityKey = contextKey("identity")
	// UserEmailKey holds the email claim of the session identity, when present.
	UserEmailKey = contextKey("userEmail")
	// RequestIDKey holds the per-request id set by the requestid middleware.
	RequestIDKey = contextKey("requestID")
	// OperationKey names the handler operation; it enriches log entries.
	OperationKey = contextKey("operation")
)
