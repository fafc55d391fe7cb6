package serverutils

// ApiResponse is the standard success envelope returned by all endpoints.
type ApiResponse[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type ApiError struct {
	Message string `json:"message"`
}

func SuccessResponse[T any](message string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(message string) ApiError {
	return ApiError{Message: message}
}
