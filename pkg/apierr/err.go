package apierr

import (
	"net/http"

	"video_sharing_service/pkg/logger"
)

// FieldError 描述單一欄位的錯誤
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError 統一的領域錯誤，會由 ErrorHandler 轉成失敗封套
type APIError struct {
	StatusCode int
	Message    string
	Errors     []FieldError
}

// Error implement error interface
func (e *APIError) Error() string {
	return e.Message
}

// FailureBody 統一的失敗封套
type FailureBody struct {
	StatusCode int          `json:"statusCode"`
	Success    bool         `json:"success"`
	Message    string       `json:"message"`
	Errors     []FieldError `json:"errors"`
}

// Envelope 轉成失敗封套
func (e *APIError) Envelope() FailureBody {
	errs := e.Errors
	if errs == nil {
		errs = []FieldError{}
	}
	return FailureBody{
		StatusCode: e.StatusCode,
		Success:    false,
		Message:    e.Message,
		Errors:     errs,
	}
}

// New set err info
// 建立時記錄日誌
func New(statusCode int, msg string, fields ...FieldError) *APIError {
	if logger.Log != nil {
		logger.Log.Error(msg)
	}
	return &APIError{
		StatusCode: statusCode,
		Message:    msg,
		Errors:     fields,
	}
}

// Validation 400 malformed or missing input
func Validation(msg string, fields ...FieldError) *APIError {
	return New(http.StatusBadRequest, msg, fields...)
}

// Auth 401 missing/invalid/expired credentials or tokens
func Auth(msg string, fields ...FieldError) *APIError {
	return New(http.StatusUnauthorized, msg, fields...)
}

// Forbidden 403 authenticated but not authorized for the resource
func Forbidden(msg string, fields ...FieldError) *APIError {
	return New(http.StatusForbidden, msg, fields...)
}

// NotFound 404 resource does not exist
func NotFound(msg string, fields ...FieldError) *APIError {
	return New(http.StatusNotFound, msg, fields...)
}

// Conflict 409 duplicate unique field
func Conflict(msg string, fields ...FieldError) *APIError {
	return New(http.StatusConflict, msg, fields...)
}

// Internal 500 collaborator or persistence failure
func Internal(msg string, fields ...FieldError) *APIError {
	return New(http.StatusInternalServerError, msg, fields...)
}

// RequireOwner 集中所有權檢查，video/comment 共用
// ownerID 與 requesterID 以字串比較（ObjectID hex）
func RequireOwner(ownerID, requesterID, entity string) *APIError {
	if ownerID == requesterID {
		return nil
	}
	return Forbidden("you are not authorized to modify this "+entity, FieldError{
		Field:   "authorization",
		Message: "you can only modify " + entity + "s that you own",
	})
}
