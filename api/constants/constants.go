package constants

// Common error messages
const (
	ErrInvalidSession   = "User session not found"
	ErrInvalidJSON      = "Invalid JSON"
	ErrMissingUserID    = "Missing or invalid user_id in request"
	ErrMissingFields    = "Missing required fields"
	ErrMethodNotAllowed = "Method Not Allowed"
)

// Content Types
const (
	ContentTypeHeader = "Content-Type"
	ContentTypeJSON   = "application/json"
	ContentTypeCSV    = "text/csv; charset=utf-8"
	ContentTypeXLSX   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Date formats
const (
	DateFormat = "2006-01-02"
)
