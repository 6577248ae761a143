package httperr

import (
	"log/slog"
	"net/http"

	"shareit/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const (
	CodeNotFound         = "NOT_FOUND"
	CodeForbidden        = "FORBIDDEN"
	CodeBadRequest       = "BAD_REQUEST"
	CodeConflict         = "CONFLICT"
	CodeUnsupportedState = "UNSUPPORTED_STATE"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeInternal         = "INTERNAL"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

func NewResponse(status int, code, msg string) Response {
	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Error.Code = code
	return resp
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := NewResponse(status, codeForStatus(status), msg)
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort maps err to a status by its errs kind. Unclassified errors are
// logged with a short stack and reported as a generic 500.
func Abort(c *gin.Context, err error) {
	if err == nil {
		panic("Abort: err cannot be nil")
	}

	kind := errs.KindOf(err)
	status, code := statusFor(kind)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("unhandled error",
			"path", c.Request.URL.Path,
			"error", err.Error(),
			"stack", errs.ExtractStackLines(err, 5))
		msg = "Internal server error"
	}

	resp := NewResponse(status, code, msg)
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

func statusFor(kind error) (int, string) {
	switch kind {
	case errs.ErrUnsupportedState:
		return http.StatusBadRequest, CodeUnsupportedState
	case errs.ErrNotFound:
		return http.StatusNotFound, CodeNotFound
	case errs.ErrPermission:
		return http.StatusForbidden, CodeForbidden
	case errs.ErrEmailBusy:
		return http.StatusConflict, CodeConflict
	case errs.ErrBadRequest:
		return http.StatusBadRequest, CodeBadRequest
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeBadRequest
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	default:
		return CodeInternal
	}
}
