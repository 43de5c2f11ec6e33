// Package auth resolves Bearer tokens to acting users. Handlers extract the
// token and call Authorize inline; there is no middleware layer.
package auth

import (
	"context"
)

// ActorInfo describes an authenticated actor.
type ActorInfo struct {
	UserID  string `json:"user_id"`
	KeyName string `json:"key_name"`
}

// Authorizer validates an API key and resolves the acting user in one call.
type Authorizer interface {
	Authorize(ctx context.Context, apiKey string) (*ActorInfo, error)
}
