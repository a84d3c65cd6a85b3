package util

// Collections
const (
	UserCollection         = "USERS"
	GuardCollection        = "GUARDS"
	LocationCollection     = "LOCATIONS"
	ComplainCollection     = "COMPLAINS"
	AppreciationCollection = "APPRECIATIONS"
	LivePingCollection     = "LIVE_PINGS"
)

// Cache keys, suffixed with the document id
const (
	GuardKey   = "GUARD_"
	LiveLocKey = "LIVELOC_"
)

// Token kinds carried in the access token
const (
	KindUser  = "user"
	KindGuard = "guard"
)

// Cookie names
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

const (
	ALL_FIELDS_REQUIRED             = "all fields are required"
	USERNAME_OR_EMAIL_REQUIRED      = "username or email is required"
	PASSWORD_NOT_PROVIDED           = "password is required"
	INVALID_EMAIL                   = "invalid email address"
	PASSWORD_TOO_SHORT              = "password must be at least 6 characters long"
	USER_ALREADY_EXISTS             = "user with email or username already exists"
	GUARD_ALREADY_EXISTS            = "guard with email or username already exists"
	USER_DOES_NOT_EXIST             = "user does not exist"
	GUARD_DOES_NOT_EXIST            = "guard does not exist"
	INVALID_USER_CREDENTIALS        = "invalid user credentials"
	INVALID_OLD_PASSWORD            = "invalid old password"
	GUARD_NOT_APPROVED              = "guard is not approved yet"
	GUARD_NOT_APPROVED_FOR_LOCATION = "only approved guards can be assigned a location"
	UNAUTHORIZED_REQUEST            = "unauthorized request"
	INVALID_ACCESS_TOKEN            = "invalid access token"
	INVALID_REFRESH_TOKEN           = "invalid refresh token"
	REFRESH_TOKEN_EXPIRED_OR_USED   = "refresh token is expired or used"
	FORBIDDEN_ROLE                  = "you are not allowed to access this resource"
	INVALID_OBJECT_ID               = "invalid id"
	INVALID_COORDINATES             = "latitude must be within -90..90 and longitude within -180..180"
	INVALID_RADIUS                  = "radius must be greater than zero"
	INVALID_WORK_PERCENT            = "work percent must be within 0..100"
	LOCATION_NOT_ASSIGNED           = "no location assigned to this guard"
	LIVE_LOCATION_NOT_FOUND         = "no live location recorded for this guard"
	AVATAR_FILE_MISSING             = "avatar file is missing"
	AVATAR_UPLOAD_FAILED            = "error while uploading avatar"
	MEDIA_NOT_CONFIGURED            = "media host is not configured"
	TOO_MANY_REQUESTS               = "too many requests, try again later"
	INTERNAL_SERVER_ERROR           = "Internal Server Error"
	NOTHING_TO_UPDATE               = "nothing to update"
)
