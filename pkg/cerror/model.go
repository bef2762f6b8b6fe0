package cerror

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type CustomError struct {
	HttpStatusCode int               `json:"-"`
	LogMessage     string            `json:"error"`
	Details        map[string]string `json:"details,omitempty"`
	LogSeverity    zapcore.Level     `json:"-"`
	LogFields      []zapcore.Field   `json:"-"`
}

func (cerr *CustomError) Error() string {
	return cerr.LogMessage
}

func NewError(httpStatusCode int, logMessage string, logFields ...zap.Field) *CustomError {
	return &CustomError{
		HttpStatusCode: httpStatusCode,
		LogMessage:     logMessage,
		LogSeverity:    zapcore.ErrorLevel,
		LogFields:      logFields,
	}
}

func (cerr *CustomError) SetSeverity(logSeverity zapcore.Level) *CustomError {
	cerr.LogSeverity = logSeverity
	return cerr
}

func (cerr *CustomError) SetDetails(details map[string]string) *CustomError {
	cerr.Details = details
	return cerr
}

// NewValidationError flattens validator.ValidationErrors into the
// field-keyed details map the clients render under form fields.
func NewValidationError(err error) *CustomError {
	cerr := NewError(
		400,
		"malformed request body or query parameter",
		zap.Error(err),
	).SetSeverity(zapcore.WarnLevel)

	validationErrors, isOk := err.(validator.ValidationErrors)
	if !isOk {
		return cerr
	}

	details := make(map[string]string, len(validationErrors))
	for _, fieldError := range validationErrors {
		details[fieldError.Field()] = fieldError.Tag()
	}

	return cerr.SetDetails(details)
}
