package controllers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"GuardTrack/util"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	// report json (or form) names so Errors matches the request body
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

/*
* Turn a binding error into a 400. Validation failures list the offending
* fields in Errors and take their message from the first failed rule
 */
func validationError(err error) *util.ApiError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return util.NewApiError(http.StatusBadRequest, invalidBody, err.Error())
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return util.NewApiError(http.StatusBadRequest, messageFor(verrs[0]), fields...)
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required_without":
		return util.USERNAME_OR_EMAIL_REQUIRED
	case "email":
		return util.INVALID_EMAIL
	case "min":
		if strings.HasSuffix(strings.ToLower(fe.Field()), "password") {
			return util.PASSWORD_TOO_SHORT
		}
	case "required":
		if fe.StructNamespace() == "LoginRequest.Password" {
			return util.PASSWORD_NOT_PROVIDED
		}
	}
	return util.ALL_FIELDS_REQUIRED
}
