package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/serializer"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/service"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/apperr"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SourceHeader carries the provenance of the answered data.
const SourceHeader = "X-Data-Source"

func init() {
	// report json names instead of Go field names in validation details
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
	}
}

func ok(c *gin.Context, status int, data any, src service.Source) {
	c.Header(SourceHeader, string(src))
	c.JSON(status, serializer.Response{Code: status, Data: data, Source: string(src)})
}

func fail(c *gin.Context, err error) {
	status, body := serializer.FromError(err)
	c.JSON(status, body)
}

// bindFail answers 400 with one detail per failed field.
func bindFail(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid request", err, fieldErrors(err)...))
}

func fieldErrors(err error) []apperr.FieldError {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		out := make([]apperr.FieldError, 0, len(ve))
		for _, fe := range ve {
			out = append(out, apperr.FieldError{
				Field: fe.Field(),
				Rule:  fe.Tag(),
				Msg:   fieldMsg(fe),
			})
		}
		return out
	}

	// gin binds bodies with encoding/json
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		return []apperr.FieldError{{Field: ute.Field, Rule: "type", Msg: fmt.Sprintf("%s must be a %s", ute.Field, ute.Type)}}
	}
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return []apperr.FieldError{{Rule: "type", Msg: fmt.Sprintf("%q is not a number", ne.Num)}}
	}
	return []apperr.FieldError{{Rule: "body", Msg: err.Error()}}
}

func fieldMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "email":
		return fe.Field() + " must be a valid email address"
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}

// pathID parses the :name path parameter as a positive identifier.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid "+name, err, apperr.FieldError{
			Field: name, Rule: "id", Msg: name + " must be a positive integer",
		}))
		return 0, false
	}
	return uint(id), true
}

// FlexID accepts an identifier sent either as a JSON number or as a numeric
// string.
type FlexID uint

func (f *FlexID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %s: %w", b, err)
	}
	*f = FlexID(v)
	return nil
}

func (f FlexID) Ptr() *uint {
	if f == 0 {
		return nil
	}
	v := uint(f)
	return &v
}

type DeletedResp struct {
	ID uint `json:"id"`
}

func deleted(c *gin.Context, msg string, id uint, src service.Source) {
	c.Header(SourceHeader, string(src))
	c.JSON(http.StatusOK, serializer.Response{
		Code:   http.StatusOK,
		Data:   DeletedResp{ID: id},
		Msg:    msg,
		Source: string(src),
	})
}
