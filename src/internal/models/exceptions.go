package models

import "errors"

var (
	ErrCredentialsRequired = errors.New("username and password are required")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrTokenInvalid        = errors.New("invalid or expired token")
	ErrAdminNotConfigured  = errors.New("no admin credential configured")
)

var (
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrInvalidRecipeID = errors.New("invalid recipe id")
	ErrFieldsRequired  = errors.New("all fields are required")
)

var (
	ErrDatabaseConnection = errors.New("database connection error")
	ErrDatabaseQuery      = errors.New("database query error")
	ErrDatabaseInsert     = errors.New("database insert error")
	ErrDatabaseUpdate     = errors.New("database update error")
	ErrDatabaseDelete     = errors.New("database delete error")
)

var (
	ErrRedisGet = errors.New("redis get error")
	ErrRedisSet = errors.New("redis set error")
	ErrRedisDel = errors.New("redis delete error")
)
