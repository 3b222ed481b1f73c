package model

// Every endpoint returns either a success envelope ({status, message, data})
// or an error envelope ({status, message, errors}), never a bare payload.

// SuccessEnvelope wraps a successful outcome. Data may be nil, which
// serializes as an explicit null.
func SuccessEnvelope(message string, data any) map[string]any {
	return map[string]any{
		"status":  "success",
		"message": message,
		"data":    data,
	}
}

// ErrorEnvelope wraps a failed outcome. The errors list is always present,
// empty when no details are supplied.
func ErrorEnvelope(message string, errs ...any) map[string]any {
	if errs == nil {
		errs = []any{}
	}
	return map[string]any{
		"status":  "error",
		"message": message,
		"errors":  errs,
	}
}
