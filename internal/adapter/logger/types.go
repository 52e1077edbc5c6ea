package logger

import "fmt"

const (
	FieldTimestamp = "timestamp"
	FieldMessage   = "message"
	FieldService   = "service"
	FieldHostname  = "hostname"
	FieldRequestID = "request_id"
	FieldAction    = "action"
	FieldDetails   = "details"
	FieldError     = "error"
)

type ErrorInfo struct {
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

func errorType(err error) string {
	return fmt.Sprintf("%T", err)
}
