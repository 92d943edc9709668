// Description: This file contains the context package which is used to set and retrieve data from the context.
package common

import (
	"context"
)

// ctxUserKeyType represents the key type for the requesting user in the context.
type ctxUserKeyType string

const ctxUserKey ctxUserKeyType = "ProCatUser"

// ctxRequestIdKeyType represents the key type for the request ID in the context.
type ctxRequestIdKeyType string

const ctxRequestIdKey ctxRequestIdKeyType = "ProCatRequestId"

// SetUserInContext sets the requesting username in the provided context.
func SetUserInContext(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, ctxUserKey, username)
}

// UserFromContext retrieves the requesting username from the provided context.
func UserFromContext(ctx context.Context) string {
	if username, ok := ctx.Value(ctxUserKey).(string); ok {
		return username
	}
	return ""
}

// SetRequestIdInContext sets the request ID in the provided context.
func SetRequestIdInContext(ctx context.Context, requestId string) context.Context {
	return context.WithValue(ctx, ctxRequestIdKey, requestId)
}

// RequestIdFromContext retrieves the request ID from the provided context.
func RequestIdFromContext(ctx context.Context) string {
	if requestId, ok := ctx.Value(ctxRequestIdKey).(string); ok {
		return requestId
	}
	return ""
}
