package errors

// ErrorCode identifies an application failure independently of its HTTP status
type ErrorCode int32

const (
	ErrorCode_UNKNOWN          ErrorCode = 0
	ErrorCode_HTTP_OK          ErrorCode = 1
	ErrorCode_INTERNAL         ErrorCode = 2
	ErrorCode_INVALID_ARGUMENT ErrorCode = 3
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 4
	ErrorCode_NOT_FOUND        ErrorCode = 5

	// Pipeline
	ErrorCode_AUDIO_DOWNLOAD_FAILED   ErrorCode = 100
	ErrorCode_AI_SERVICE_UNAVAILABLE  ErrorCode = 200
	ErrorCode_AI_TRANSCRIPTION_FAILED ErrorCode = 201
	ErrorCode_DB_UPDATE_FAILED        ErrorCode = 300
	ErrorCode_DB_QUERY_FAILED         ErrorCode = 301
	ErrorCode_MEETING_BUSY            ErrorCode = 400
	ErrorCode_NOTIFICATION_FAILED     ErrorCode = 500
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:                 "UNKNOWN",
	ErrorCode_HTTP_OK:                 "HTTP_OK",
	ErrorCode_INTERNAL:                "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:        "INVALID_ARGUMENT",
	ErrorCode_INVALID_PAYLOAD:         "INVALID_PAYLOAD",
	ErrorCode_NOT_FOUND:               "NOT_FOUND",
	ErrorCode_AUDIO_DOWNLOAD_FAILED:   "AUDIO_DOWNLOAD_FAILED",
	ErrorCode_AI_SERVICE_UNAVAILABLE:  "AI_SERVICE_UNAVAILABLE",
	ErrorCode_AI_TRANSCRIPTION_FAILED: "AI_TRANSCRIPTION_FAILED",
	ErrorCode_DB_UPDATE_FAILED:        "DB_UPDATE_FAILED",
	ErrorCode_DB_QUERY_FAILED:         "DB_QUERY_FAILED",
	ErrorCode_MEETING_BUSY:            "MEETING_BUSY",
	ErrorCode_NOTIFICATION_FAILED:     "NOTIFICATION_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return errorCodeNames[ErrorCode_UNKNOWN]
}

// MarshalText renders the code by name in JSON bodies
func (c ErrorCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
