package errors

// ErrorCode identifies an application error category
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS    ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED ErrorCode = 1004
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1005
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1006

	// Authentication
	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED ErrorCode = 2001

	// Registry / state machine
	ErrorCode_TASK_NOT_FOUND       ErrorCode = 3000
	ErrorCode_MEETING_NOT_FOUND    ErrorCode = 3001
	ErrorCode_IDENTIFIER_COLLISION ErrorCode = 3002
	ErrorCode_INVALID_TRANSITION   ErrorCode = 3003

	// Parsing / resolution
	ErrorCode_OWNER_UNRESOLVED ErrorCode = 4000
	ErrorCode_PARSE_AMBIGUITY  ErrorCode = 4001

	// Integrations
	ErrorCode_MAIL_SEND_FAILED       ErrorCode = 5000
	ErrorCode_INTEGRATION_STORAGE    ErrorCode = 5001
	ErrorCode_INTEGRATION_CACHE      ErrorCode = 5002
	ErrorCode_DB_QUERY_FAILED        ErrorCode = 5003
	ErrorCode_DB_CONNECTION_FAILED   ErrorCode = 5004
	ErrorCode_DB_TRANSACTION_FAILED  ErrorCode = 5005
	ErrorCode_DB_CONSTRAINT_VIOLATED ErrorCode = 5006
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                "OK",
	ErrorCode_INTERNAL:               "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:       "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:              "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:         "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:      "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:        "UNAUTHENTICATED",
	ErrorCode_INVALID_PAYLOAD:        "INVALID_PAYLOAD",
	ErrorCode_AUTH_INVALID_TOKEN:     "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:     "AUTH_TOKEN_EXPIRED",
	ErrorCode_TASK_NOT_FOUND:         "TASK_NOT_FOUND",
	ErrorCode_MEETING_NOT_FOUND:      "MEETING_NOT_FOUND",
	ErrorCode_IDENTIFIER_COLLISION:   "IDENTIFIER_COLLISION",
	ErrorCode_INVALID_TRANSITION:     "INVALID_TRANSITION",
	ErrorCode_OWNER_UNRESOLVED:       "OWNER_UNRESOLVED",
	ErrorCode_PARSE_AMBIGUITY:        "PARSE_AMBIGUITY",
	ErrorCode_MAIL_SEND_FAILED:       "MAIL_SEND_FAILED",
	ErrorCode_INTEGRATION_STORAGE:    "INTEGRATION_STORAGE",
	ErrorCode_INTEGRATION_CACHE:      "INTEGRATION_CACHE",
	ErrorCode_DB_QUERY_FAILED:        "DB_QUERY_FAILED",
	ErrorCode_DB_CONNECTION_FAILED:   "DB_CONNECTION_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED:  "DB_TRANSACTION_FAILED",
	ErrorCode_DB_CONSTRAINT_VIOLATED: "DB_CONSTRAINT_VIOLATED",
}

// String returns the symbolic name of the error code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
