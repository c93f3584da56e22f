package util

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func SuccessResponse(message string, data interface{}) Response {
	return Response{Success: true, Message: message, Data: data}
}

func FailedResponse(err error) Response {
	return Response{Success: false, Message: MessageOf(err)}
}

func FailedResponseWithDetails(err error, details interface{}) Response {
	return Response{Success: false, Message: MessageOf(err), Details: details}
}
