package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	db "GuardTrack/config/db"
	"GuardTrack/models"
	"GuardTrack/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxFeedbackLength = 2000

func validateFeedback(guardID, userID, text string) (primitive.ObjectID, primitive.ObjectID, string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return primitive.NilObjectID, primitive.NilObjectID, "", badRequest(util.ALL_FIELDS_REQUIRED)
	}
	if utf8.RuneCountInString(text) > maxFeedbackLength {
		return primitive.NilObjectID, primitive.NilObjectID, "", badRequest(fmt.Sprintf("text must be at most %d characters", maxFeedbackLength))
	}
	gid, err := parseObjectID(guardID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, "", err
	}
	uid, err := parseObjectID(userID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, "", err
	}
	return gid, uid, text, nil
}

/*
* Store a complain against an existing guard
 */
func CreateComplain(ctx context.Context, userID string, req models.ComplainRequest) (*models.Complain, error) {
	gid, uid, text, err := validateFeedback(req.GuardID, userID, req.Complain)
	if err != nil {
		return nil, err
	}
	if _, err := findGuard(ctx, gid); err != nil {
		return nil, err
	}
	complain := models.Complain{
		ID:        primitive.NewObjectID(),
		Guard:     gid,
		User:      uid,
		Complain:  text,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := db.CreateOne(ctx, db.OpenCollections(util.ComplainCollection), complain); err != nil {
		return nil, fmt.Errorf("insert complain: %w", err)
	}
	invalidateGuard(ctx, gid)
	return &complain, nil
}

/*
* Store an appreciation for an existing guard
 */
func CreateAppreciation(ctx context.Context, userID string, req models.AppreciationRequest) (*models.Appreciation, error) {
	gid, uid, text, err := validateFeedback(req.GuardID, userID, req.Message)
	if err != nil {
		return nil, err
	}
	if _, err := findGuard(ctx, gid); err != nil {
		return nil, err
	}
	appreciation := models.Appreciation{
		ID:        primitive.NewObjectID(),
		Guard:     gid,
		User:      uid,
		Message:   text,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := db.CreateOne(ctx, db.OpenCollections(util.AppreciationCollection), appreciation); err != nil {
		return nil, fmt.Errorf("insert appreciation: %w", err)
	}
	invalidateGuard(ctx, gid)
	return &appreciation, nil
}

// ListComplaints returns every complain, or only the ones about guardID
// when it is not empty.
func ListComplaints(ctx context.Context, guardID string) ([]models.Feedback, error) {
	return listFeedback(ctx, util.ComplainCollection, "complain", guardID)
}

func ListAppreciations(ctx context.Context, guardID string) ([]models.Feedback, error) {
	return listFeedback(ctx, util.AppreciationCollection, "message", guardID)
}

func listFeedback(ctx context.Context, collection, textField, guardID string) ([]models.Feedback, error) {
	match := bson.M{}
	if guardID != "" {
		gid, err := parseObjectID(guardID)
		if err != nil {
			return nil, err
		}
		match["guard"] = gid
	}
	items := []models.Feedback{}
	if err := db.Aggregate(ctx, db.OpenCollections(collection), feedbackPipeline(textField, match), &items); err != nil {
		return nil, fmt.Errorf("list %s: %w", strings.ToLower(collection), err)
	}
	return items, nil
}
