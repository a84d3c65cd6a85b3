package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	db "GuardTrack/config/db"
	jwt "GuardTrack/config/jwt"
	"GuardTrack/models"
	"GuardTrack/role"
	"GuardTrack/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// guardRole is put in the role claim of guard access tokens.
const guardRole = "guard"

// account is the part of a user or guard document auth cares about.
type account struct {
	ID           primitive.ObjectID `bson:"_id"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	Password     string             `bson:"password"`
	Role         string             `bson:"role"`
	IsApproved   bool               `bson:"isApproved"`
	RefreshToken string             `bson:"refreshToken"`
}

func collectionFor(kind string) (*mongo.Collection, error) {
	switch kind {
	case util.KindUser:
		return db.OpenCollections(util.UserCollection), nil
	case util.KindGuard:
		return db.OpenCollections(util.GuardCollection), nil
	}
	return nil, fmt.Errorf("unknown account kind %q", kind)
}

func notFoundMessage(kind string) string {
	if kind == util.KindGuard {
		return util.GUARD_DOES_NOT_EXIST
	}
	return util.USER_DOES_NOT_EXIST
}

/*
* Generate a bcrypt hash based on the password given
 */
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func verifyPassword(hashed, password string) error {
	if strings.TrimSpace(hashed) == "" {
		return util.NewApiError(http.StatusUnauthorized, util.INVALID_USER_CREDENTIALS)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)); err != nil {
		return util.NewApiError(http.StatusUnauthorized, util.INVALID_USER_CREDENTIALS)
	}
	return nil
}

func loadAccount(ctx context.Context, kind string, filter bson.M) (*account, error) {
	coll, err := collectionFor(kind)
	if err != nil {
		return nil, err
	}
	acc := &account{}
	if err := db.FindOne(ctx, coll, filter, acc); err != nil {
		if db.IsNotFound(err) {
			return nil, util.NewApiError(http.StatusNotFound, notFoundMessage(kind))
		}
		return nil, fmt.Errorf("find %s: %w", kind, err)
	}
	return acc, nil
}

/*
* Sign a fresh access/refresh pair for the account and persist the
* refresh token. When previous is set the swap only happens while the
* stored token is still previous, so a refresh token works exactly once
 */
func generateAccessAndRefreshTokens(ctx context.Context, kind string, acc *account, previous string) (models.TokenPair, error) {
	claimRole := role.Normalize(acc.Role)
	if kind == util.KindGuard {
		claimRole = guardRole
	}
	id := acc.ID.Hex()

	access, err := jwt.GenerateAccessToken(id, acc.Username, acc.Email, claimRole, kind)
	if err != nil {
		return models.TokenPair{}, err
	}
	refresh, err := jwt.GenerateRefreshToken(id, kind)
	if err != nil {
		return models.TokenPair{}, err
	}

	coll, err := collectionFor(kind)
	if err != nil {
		return models.TokenPair{}, err
	}
	filter := bson.M{"_id": acc.ID}
	if previous != "" {
		filter["refreshToken"] = previous
	}
	res, err := db.UpdateOne(ctx, coll,
		filter,
		bson.M{"$set": bson.M{"refreshToken": refresh, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("store refresh token: %w", err)
	}
	if previous != "" && res.MatchedCount == 0 {
		return models.TokenPair{}, util.NewApiError(http.StatusUnauthorized, util.REFRESH_TOKEN_EXPIRED_OR_USED)
	}
	return models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

/*
* Find the account by username or email, compare the password and issue
* a token pair
 */
func login(ctx context.Context, kind string, req models.LoginRequest) (*account, models.TokenPair, error) {
	username, email := normalizeIdentity(req.Username, req.Email)
	// $or needs at least one clause
	if username == "" && email == "" {
		return nil, models.TokenPair{}, badRequest(util.USERNAME_OR_EMAIL_REQUIRED)
	}

	var or bson.A
	if username != "" {
		or = append(or, bson.M{"username": username})
	}
	if email != "" {
		or = append(or, bson.M{"email": email})
	}
	acc, err := loadAccount(ctx, kind, bson.M{"$or": or})
	if err != nil {
		return nil, models.TokenPair{}, err
	}
	if err := verifyPassword(acc.Password, req.Password); err != nil {
		zap.L().Info("login rejected", zap.String("kind", kind), zap.String("id", acc.ID.Hex()))
		return nil, models.TokenPair{}, err
	}
	if kind == util.KindGuard && !acc.IsApproved {
		return nil, models.TokenPair{}, util.NewApiError(http.StatusForbidden, util.GUARD_NOT_APPROVED)
	}

	tokens, err := generateAccessAndRefreshTokens(ctx, kind, acc, "")
	if err != nil {
		return nil, models.TokenPair{}, err
	}
	return acc, tokens, nil
}

/*
* Verify the incoming refresh token, make sure it is the one stored on
* the account and rotate it. A token that was already rotated is refused
 */
func RefreshAccessToken(ctx context.Context, kind, incoming string) (models.TokenPair, error) {
	incoming = strings.TrimSpace(incoming)
	if incoming == "" {
		return models.TokenPair{}, util.NewApiError(http.StatusUnauthorized, util.UNAUTHORIZED_REQUEST)
	}
	claims, err := jwt.ParseRefreshToken(incoming)
	if err != nil || claims.Kind != kind {
		return models.TokenPair{}, util.NewApiError(http.StatusUnauthorized, util.INVALID_REFRESH_TOKEN)
	}
	id, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return models.TokenPair{}, util.NewApiError(http.StatusUnauthorized, util.INVALID_REFRESH_TOKEN)
	}

	acc, err := loadAccount(ctx, kind, bson.M{"_id": id})
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return models.TokenPair{}, util.NewApiError(http.StatusUnauthorized, util.INVALID_REFRESH_TOKEN)
		}
		return models.TokenPair{}, err
	}
	if acc.RefreshToken != incoming {
		return models.TokenPair{}, util.NewApiError(http.StatusUnauthorized, util.REFRESH_TOKEN_EXPIRED_OR_USED)
	}
	if kind == util.KindGuard && !acc.IsApproved {
		return models.TokenPair{}, util.NewApiError(http.StatusForbidden, util.GUARD_NOT_APPROVED)
	}
	return generateAccessAndRefreshTokens(ctx, kind, acc, incoming)
}

/*
* Drop the stored refresh token so it can no longer be rotated
 */
func Logout(ctx context.Context, kind, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	coll, err := collectionFor(kind)
	if err != nil {
		return err
	}
	_, err = db.UpdateOne(ctx, coll,
		bson.M{"_id": oid},
		bson.M{"$unset": bson.M{"refreshToken": 1}})
	if err != nil {
		return fmt.Errorf("logout %s: %w", kind, err)
	}
	return nil
}

/*
* Check that neither the username nor the email is taken in the given
* collection
 */
func ensureIdentityFree(ctx context.Context, coll *mongo.Collection, username, email, conflictMessage string) error {
	n, err := db.Count(ctx, coll, bson.M{"$or": bson.A{
		bson.M{"username": username},
		bson.M{"email": email},
	}})
	if err != nil {
		return fmt.Errorf("check identity: %w", err)
	}
	if n > 0 {
		return util.NewApiError(http.StatusConflict, conflictMessage)
	}
	return nil
}
