package httpapi

// Result response envelope shared with the front-end axios layer:
// - code: 2000 on success
// - type: 'success' | 'error'
// - message: string
// - result: any
type Result[T any] struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Result  T      `json:"result"`
}

const (
	ResultSuccess = 2000
	ResultError   = -1
	// ResultTokenExpired uses code=60401 + HTTP 401 so the front-end
	// interceptor can redirect to login.
	ResultTokenExpired = 60401
)

func Ok[T any](result T) Result[T] {
	return Result[T]{Code: ResultSuccess, Type: "success", Message: "ok", Result: result}
}

func Fail(message string) Result[any] {
	return Result[any]{Code: ResultError, Type: "error", Message: message, Result: nil}
}

func FailTokenExpired() Result[any] {
	return Result[any]{Code: ResultTokenExpired, Type: "error", Message: "token expired", Result: nil}
}
