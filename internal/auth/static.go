package auth

import (
	"context"
)

// StaticAuthorizer resolves API keys from a fixed key→user map supplied by
// configuration. Suitable until a real identity provider is wired in.
type StaticAuthorizer struct {
	keys map[string]string
}

// NewStaticAuthorizer builds an authorizer over a key→userID map.
func NewStaticAuthorizer(keys map[string]string) *StaticAuthorizer {
	cp := make(map[string]string, len(keys))
	for k, v := range keys {
		cp[k] = v
	}
	return &StaticAuthorizer{keys: cp}
}

func (a *StaticAuthorizer) Authorize(ctx context.Context, apiKey string) (*ActorInfo, error) {
	userID, ok := a.keys[apiKey]
	if !ok || userID == "" {
		return nil, ErrInvalidAPIKey
	}
	return &ActorInfo{UserID: userID, KeyName: "static"}, nil
}
