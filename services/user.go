package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	db "GuardTrack/config/db"
	"GuardTrack/media"
	"GuardTrack/models"
	"GuardTrack/role"
	"GuardTrack/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
* Reject a taken username/email, hash the password and insert. The avatar
* is pushed afterwards and the user is removed again if that fails, so a
* failed registration leaves neither a user nor an orphan object behind
 */
func RegisterUser(ctx context.Context, req models.RegisterUserRequest, avatar *multipart.FileHeader) (*models.User, error) {
	req.Username, req.Email = normalizeIdentity(req.Username, req.Email)
	req.FullName = strings.TrimSpace(req.FullName)

	coll := db.OpenCollections(util.UserCollection)
	if err := ensureIdentityFree(ctx, coll, req.Username, req.Email, util.USER_ALREADY_EXISTS); err != nil {
		return nil, err
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Username:  req.Username,
		Email:     req.Email,
		FullName:  req.FullName,
		Password:  hashed,
		Role:      role.User,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := db.CreateOne(ctx, coll, user); err != nil {
		if db.IsDuplicate(err) {
			return nil, util.NewApiError(http.StatusConflict, util.USER_ALREADY_EXISTS)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	if avatar != nil {
		url, err := uploadAvatar(ctx, avatar)
		if err == nil {
			_, err = db.UpdateOne(ctx, coll,
				bson.M{"_id": user.ID},
				bson.M{"$set": bson.M{"avatar": url}})
			user.Avatar = url
		}
		if err != nil {
			if _, derr := db.DeleteOne(context.WithoutCancel(ctx), coll, bson.M{"_id": user.ID}); derr != nil {
				zap.L().Error("rollback registration", zap.String("id", user.ID.Hex()), zap.Error(derr))
			}
			return nil, err
		}
	}
	zap.L().Info("user registered", zap.String("id", user.ID.Hex()), zap.String("username", user.Username))
	return &user, nil
}

func LoginUser(ctx context.Context, req models.LoginRequest) (*models.User, models.TokenPair, error) {
	acc, tokens, err := login(ctx, util.KindUser, req)
	if err != nil {
		return nil, models.TokenPair{}, err
	}
	user, err := GetUserByID(ctx, acc.ID.Hex())
	if err != nil {
		return nil, models.TokenPair{}, err
	}
	return user, tokens, nil
}

func GetUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	user := &models.User{}
	err = db.FindOne(ctx, db.OpenCollections(util.UserCollection), bson.M{"_id": oid}, user)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, util.NewApiError(http.StatusNotFound, util.USER_DOES_NOT_EXIST)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

/*
* Verify the old password before storing the hash of the new one
 */
func ChangePassword(ctx context.Context, id string, req models.ChangePasswordRequest) error {
	user, err := GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	if err := verifyPassword(user.Password, req.OldPassword); err != nil {
		return badRequest(util.INVALID_OLD_PASSWORD)
	}
	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = db.UpdateOne(ctx, db.OpenCollections(util.UserCollection),
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"password": hashed, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func UpdateAccount(ctx context.Context, id string, req models.UpdateAccountRequest) (*models.User, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	set := bson.M{}
	if name := strings.TrimSpace(req.FullName); name != "" {
		set["fullName"] = name
	}
	if email := strings.ToLower(strings.TrimSpace(req.Email)); email != "" {
		set["email"] = email
	}
	if len(set) == 0 {
		return nil, badRequest(util.NOTHING_TO_UPDATE)
	}
	set["updatedAt"] = time.Now().UTC()

	user := &models.User{}
	err = db.FindOneAndUpdate(ctx, db.OpenCollections(util.UserCollection),
		bson.M{"_id": oid}, bson.M{"$set": set}, user, false)
	if err != nil {
		switch {
		case db.IsNotFound(err):
			return nil, util.NewApiError(http.StatusNotFound, util.USER_DOES_NOT_EXIST)
		case db.IsDuplicate(err):
			return nil, util.NewApiError(http.StatusConflict, util.USER_ALREADY_EXISTS)
		}
		return nil, fmt.Errorf("update account: %w", err)
	}
	return user, nil
}

func UpdateAvatar(ctx context.Context, id string, avatar *multipart.FileHeader) (*models.User, error) {
	if avatar == nil {
		return nil, badRequest(util.AVATAR_FILE_MISSING)
	}
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	url, err := uploadAvatar(ctx, avatar)
	if err != nil {
		return nil, err
	}
	user := &models.User{}
	err = db.FindOneAndUpdate(ctx, db.OpenCollections(util.UserCollection),
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"avatar": url, "updatedAt": time.Now().UTC()}},
		user, false)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, util.NewApiError(http.StatusNotFound, util.USER_DOES_NOT_EXIST)
		}
		return nil, fmt.Errorf("update avatar: %w", err)
	}
	return user, nil
}

func ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if err := db.FindAll(ctx, db.OpenCollections(util.UserCollection), nil, &users, opts); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func uploadAvatar(ctx context.Context, avatar *multipart.FileHeader) (string, error) {
	url, err := media.UploadAvatar(ctx, avatar)
	switch {
	case err == nil:
		return url, nil
	case errors.Is(err, media.ErrNotAnImage), errors.Is(err, media.ErrFileTooLarge):
		return "", badRequest(err.Error())
	case errors.Is(err, media.ErrDisabled):
		return "", util.NewApiError(http.StatusServiceUnavailable, util.MEDIA_NOT_CONFIGURED)
	}
	zap.L().Error("avatar upload failed", zap.Error(err))
	return "", util.NewApiError(http.StatusInternalServerError, util.AVATAR_UPLOAD_FAILED)
}
