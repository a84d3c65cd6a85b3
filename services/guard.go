package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	db "GuardTrack/config/db"
	redis "GuardTrack/config/redis"
	"GuardTrack/models"
	"GuardTrack/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

/*
* Reject a taken username/email and insert the guard unapproved with an
* empty work record
 */
func RegisterGuard(ctx context.Context, req models.RegisterGuardRequest) (*models.Guard, error) {
	req.Username, req.Email = normalizeIdentity(req.Username, req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Residence = strings.TrimSpace(req.Residence)

	coll := db.OpenCollections(util.GuardCollection)
	if err := ensureIdentityFree(ctx, coll, req.Username, req.Email, util.GUARD_ALREADY_EXISTS); err != nil {
		return nil, err
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	guard := models.Guard{
		ID:          primitive.NewObjectID(),
		Username:    req.Username,
		Email:       req.Email,
		FullName:    req.FullName,
		Phone:       req.Phone,
		Password:    hashed,
		Residence:   req.Residence,
		IsApproved:  false,
		WorkPercent: 0,
		WorkHistory: []models.WorkEntry{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := db.CreateOne(ctx, coll, guard); err != nil {
		if db.IsDuplicate(err) {
			return nil, util.NewApiError(http.StatusConflict, util.GUARD_ALREADY_EXISTS)
		}
		return nil, fmt.Errorf("insert guard: %w", err)
	}
	zap.L().Info("guard registered", zap.String("id", guard.ID.Hex()), zap.String("username", guard.Username))
	return &guard, nil
}

func LoginGuard(ctx context.Context, req models.LoginRequest) (*models.Guard, models.TokenPair, error) {
	acc, tokens, err := login(ctx, util.KindGuard, req)
	if err != nil {
		return nil, models.TokenPair{}, err
	}
	guard, err := GetGuardByID(ctx, acc.ID.Hex())
	if err != nil {
		return nil, models.TokenPair{}, err
	}
	return guard, tokens, nil
}

func GetGuardByID(ctx context.Context, id string) (*models.Guard, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	return findGuard(ctx, oid)
}

func findGuard(ctx context.Context, oid primitive.ObjectID) (*models.Guard, error) {
	guard := &models.Guard{}
	err := db.FindOne(ctx, db.OpenCollections(util.GuardCollection), bson.M{"_id": oid}, guard)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, util.NewApiError(http.StatusNotFound, util.GUARD_DOES_NOT_EXIST)
		}
		return nil, fmt.Errorf("find guard: %w", err)
	}
	return guard, nil
}

func GetWorkHistory(ctx context.Context, id string) ([]models.WorkEntry, error) {
	guard, err := GetGuardByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if guard.WorkHistory == nil {
		return []models.WorkEntry{}, nil
	}
	return guard.WorkHistory, nil
}

// ListApprovedGuards is what residents see: approved guards and where
// they are posted.
// ListApprovedGuards returns the guards users can rate: approved and
// posted at a location.
func ListApprovedGuards(ctx context.Context) ([]models.GuardSummary, error) {
	return listGuards(ctx, bson.M{"isApproved": true}, true)
}

/*
* List guards for admins, optionally narrowed by the approval flag given
* as "true"/"false"
 */
func ListGuards(ctx context.Context, approved string) ([]models.GuardSummary, error) {
	match := bson.M{}
	if approved != "" {
		v, err := strconv.ParseBool(approved)
		if err != nil {
			return nil, badRequest("approved must be true or false")
		}
		match["isApproved"] = v
	}
	return listGuards(ctx, match, false)
}

func listGuards(ctx context.Context, match bson.M, assignedOnly bool) ([]models.GuardSummary, error) {
	guards := []models.GuardSummary{}
	err := db.Aggregate(ctx, db.OpenCollections(util.GuardCollection), guardsWithLocationPipeline(match, assignedOnly), &guards)
	if err != nil {
		return nil, fmt.Errorf("list guards: %w", err)
	}
	return guards, nil
}

/*
* Get the detail from cache if present. Otherwise load the guard, then
* its location and feedback counts concurrently, and cache the result
 */
func GetGuardDetail(ctx context.Context, id string) (*models.GuardDetail, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	key := util.GuardKey + oid.Hex()

	cached := &models.GuardDetail{}
	if exists, err := redis.GetCache(ctx, key, cached); exists && err == nil {
		return cached, nil
	}

	guard, err := findGuard(ctx, oid)
	if err != nil {
		return nil, err
	}
	detail := &models.GuardDetail{Guard: *guard}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loc, err := findLocation(gctx, oid)
		if err != nil && !isStatus(err, http.StatusNotFound) {
			return err
		}
		detail.Location = loc
		return nil
	})
	g.Go(func() error {
		n, err := db.Count(gctx, db.OpenCollections(util.ComplainCollection), bson.M{"guard": oid})
		detail.Complaints = n
		return err
	})
	g.Go(func() error {
		n, err := db.Count(gctx, db.OpenCollections(util.AppreciationCollection), bson.M{"guard": oid})
		detail.Appreciations = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load guard detail: %w", err)
	}

	if err := redis.SetCache(ctx, key, detail); err != nil {
		zap.L().Debug("guard detail not cached", zap.String("key", key), zap.Error(err))
	}
	return detail, nil
}

func invalidateGuard(ctx context.Context, oid primitive.ObjectID) {
	if err := redis.DeleteCache(ctx, util.GuardKey+oid.Hex()); err != nil {
		zap.L().Debug("guard cache not invalidated", zap.String("id", oid.Hex()), zap.Error(err))
	}
}

/*
* Flip isApproved with an update pipeline so the read and the write are a
* single atomic operation
 */
func ToggleApproval(ctx context.Context, id string) (*models.Guard, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	update := bson.A{
		bson.M{"$set": bson.M{
			"isApproved": bson.M{"$not": bson.A{"$isApproved"}},
			"updatedAt":  time.Now().UTC(),
		}},
	}
	guard := &models.Guard{}
	err = db.FindOneAndUpdate(ctx, db.OpenCollections(util.GuardCollection), bson.M{"_id": oid}, update, guard, false)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, util.NewApiError(http.StatusNotFound, util.GUARD_DOES_NOT_EXIST)
		}
		return nil, fmt.Errorf("toggle approval: %w", err)
	}
	invalidateGuard(ctx, oid)
	zap.L().Info("guard approval toggled", zap.String("id", oid.Hex()), zap.Bool("isApproved", guard.IsApproved))
	return guard, nil
}

func SetWorkPercent(ctx context.Context, id string, req models.WorkPercentRequest) (*models.Guard, error) {
	if req.WorkPercent == nil {
		return nil, badRequest(util.INVALID_WORK_PERCENT)
	}
	if err := validateWorkPercent(*req.WorkPercent); err != nil {
		return nil, err
	}
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	guard := &models.Guard{}
	err = db.FindOneAndUpdate(ctx, db.OpenCollections(util.GuardCollection),
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"workPercent": *req.WorkPercent, "updatedAt": time.Now().UTC()}},
		guard, false)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, util.NewApiError(http.StatusNotFound, util.GUARD_DOES_NOT_EXIST)
		}
		return nil, fmt.Errorf("set work percent: %w", err)
	}
	invalidateGuard(ctx, oid)
	return guard, nil
}

func isStatus(err error, status int) bool {
	var apiErr *util.ApiError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
