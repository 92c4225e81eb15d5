// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/rightonrepair/internal/app/system/sitectx"
	"github.com/dalemusser/rightonrepair/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// NotFoundTitle is the document title of every 404 page.
const NotFoundTitle = "Page Not Found | Right On Repair"

// ErrorLogger wraps the zap logger for error logging.
type ErrorLogger struct {
	logger *zap.Logger
}

// NewErrorLogger creates a new ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{logger: logger}
}

// Log logs an error with the given message and error.
func (e *ErrorLogger) Log(r *http.Request, msg string, err error) {
	e.logger.Error(msg,
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
		zap.String("request_id", sitectx.From(r.Context()).RequestID),
	)
}

// LogWithFields logs an error with additional fields.
func (e *ErrorLogger) LogWithFields(r *http.Request, msg string, err error, fields ...zap.Field) {
	allFields := append([]zap.Field{
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
		zap.String("request_id", sitectx.From(r.Context()).RequestID),
	}, fields...)
	e.logger.Error(msg, allFields...)
}

// notFoundVM is the view model for 404 pages.
type notFoundVM struct {
	viewdata.BaseVM
	RequestedPath string
}

// NotFound renders errors/not_found with status 404. Feature handlers call
// it when the primary entity of a page does not resolve.
func NotFound(w http.ResponseWriter, r *http.Request) {
	vm := notFoundVM{
		BaseVM:        viewdata.New(r, NotFoundTitle),
		RequestedPath: r.URL.Path,
	}
	vm.NoIndex()

	w.WriteHeader(http.StatusNotFound)
	templates.Render(w, r, "errors/not_found", vm)
}

// InternalError renders errors/internal with status 500.
func InternalError(w http.ResponseWriter, r *http.Request) {
	vm := viewdata.New(r, "Server Error | Right On Repair")
	vm.NoIndex()

	w.WriteHeader(http.StatusInternalServerError)
	templates.Render(w, r, "errors/internal", vm)
}

// MethodNotAllowed answers with a plain 405.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
