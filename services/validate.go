package services

import (
	"net/http"
	"strings"

	"GuardTrack/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func badRequest(message string, details ...string) *util.ApiError {
	return util.NewApiError(http.StatusBadRequest, message, details...)
}

func normalizeIdentity(username, email string) (string, string) {
	return strings.ToLower(strings.TrimSpace(username)), strings.ToLower(strings.TrimSpace(email))
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, badRequest(util.INVALID_OBJECT_ID)
	}
	return oid, nil
}

func validateWorkPercent(p int) error {
	if p < 0 || p > 100 {
		return badRequest(util.INVALID_WORK_PERCENT)
	}
	return nil
}
