package response

// Response is the standard JSON envelope for all API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorData  `json:"error,omitempty"`
}

// ErrorData carries a machine-readable code and a human-readable message
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Success wraps data in a successful envelope
func Success(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// Error builds an error envelope with the given code and message
func Error(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorData{
			Code:    code,
			Message: message,
		},
	}
}

// BadRequest builds a BAD_REQUEST error envelope
func BadRequest(message string) Response {
	return Error("BAD_REQUEST", message)
}

// NotFound builds a NOT_FOUND error envelope
func NotFound(message string) Response {
	return Error("NOT_FOUND", message)
}

// Unauthorized builds an UNAUTHORIZED error envelope
func Unauthorized(message string) Response {
	return Error("UNAUTHORIZED", message)
}

// Forbidden builds a FORBIDDEN error envelope
func Forbidden(message string) Response {
	return Error("FORBIDDEN", message)
}

// InternalError builds an INTERNAL_ERROR envelope with details
func InternalError(details string) Response {
	return Response{
		Success: false,
		Error: &ErrorData{
			Code:    "INTERNAL_ERROR",
			Message: "Internal Server Error",
			Details: details,
		},
	}
}
