package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"

	authorization "GuardTrack/config/authorization"
	"GuardTrack/util"

	"github.com/gin-gonic/gin"
)

const invalidBody = "invalid request body"

/*
* Bind and validate the JSON body into obj. On failure the 400 is pushed
* to the error handler and false is returned
 */
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		_ = c.Error(validationError(err))
		return false
	}
	return true
}

/*
* Read an optional upload. A request without the file, or without a
* multipart body at all, yields nil. Any other read failure is a 400
 */
func optionalFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	switch {
	case err == nil:
		return fh, nil
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return nil, nil
	}
	return nil, util.NewApiError(http.StatusBadRequest, invalidBody, err.Error())
}

func fail(c *gin.Context, err error) {
	_ = c.Error(err)
}

func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, util.SuccessResponse(status, data, message))
}

// callerID is the _id claim VerifyJWT put on the context.
func callerID(c *gin.Context) string {
	return c.GetString(authorization.CtxID)
}
