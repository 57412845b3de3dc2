package serializer

import (
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/apperr"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response
type Response struct {
	Code    int                 `json:"code"`
	Data    interface{}         `json:"data,omitempty"`
	Msg     string              `json:"msg"`
	Error   string              `json:"error,omitempty"`
	Details []apperr.FieldError `json:"details,omitempty"`
	// Source is "real" or "mock" for data answered through the resolution layer.
	Source string `json:"source,omitempty"`
}

// TrackedErrorResponse
type TrackedErrorResponse struct {
	Response
	TraceID string `json:"trace_id"`
}

var logger atomic.Pointer[zap.Logger]

// SetLogger sets the logger internal errors are reported to.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}

func log() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

// CheckLogin
func CheckLogin() Response {
	return Response{
		Code: http.StatusUnauthorized,
		Msg:  "please login first",
	}
}

// Err
func Err(errCode int, msg string, err error) Response {
	res := Response{
		Code: errCode,
		Msg:  msg,
	}
	// development mode, show error detail
	if err != nil && errCode < http.StatusInternalServerError && gin.Mode() != gin.ReleaseMode {
		res.Error = fmt.Sprintf("%+v", err)
	}
	return res
}

// InternalErr never exposes err to the client; it is logged instead.
func InternalErr(err error) Response {
	log().Error("internal error", zap.Error(err))
	return Response{
		Code: http.StatusInternalServerError,
		Msg:  "internal server error",
	}
}

// ParamErr
func ParamErr(msg string, err error, details ...apperr.FieldError) Response {
	if msg == "" {
		msg = "parameter error"
	}
	res := Err(http.StatusBadRequest, msg, err)
	res.Details = details
	return res
}

// AuthErr
func AuthErr(msg string) Response {
	if msg == "" {
		msg = "authentication error"
	}
	return Err(http.StatusUnauthorized, msg, nil)
}

// FromError maps err onto its HTTP status and response body.
func FromError(err error) (int, Response) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError, InternalErr(err)
	}
	switch ae.Kind {
	case apperr.KindInternal, apperr.KindConnectivity:
		// connectivity only escapes the resolver when the fallback is missing
		status := ae.Kind.Status()
		res := InternalErr(err)
		res.Code = status
		if status == http.StatusServiceUnavailable {
			res.Msg = "service unavailable"
		}
		return status, res
	case apperr.KindValidation:
		return http.StatusBadRequest, ParamErr(ae.Msg, ae.Err, ae.Fields...)
	case apperr.KindUnavailable:
		log().Warn("dependency unavailable", zap.Error(err))
		return http.StatusServiceUnavailable, Response{Code: http.StatusServiceUnavailable, Msg: ae.Msg}
	default:
		status := ae.Kind.Status()
		return status, Err(status, ae.Msg, ae.Err)
	}
}
