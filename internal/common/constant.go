package common

// Storage keys. Each key belongs to exactly one component.
const (
	SessionKey = "session"
	DraftKey   = "draft"
)

// RequestIDHeaderName tags every outbound API request.
const RequestIDHeaderName = "X-Request-ID"

// SessionCookieName is the credential cookie issued by the backend.
const SessionCookieName = "jwt"

// CodePlaceholder is what an untouched editor contains.
const CodePlaceholder = "// Write your code here..."
