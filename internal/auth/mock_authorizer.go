package auth

import (
	"context"
)

// LocalDevAPIKey is the hardcoded API key for local development only.
const LocalDevAPIKey = "sk_local_notes_dev_key"

// LocalDevUserID is the user the dev key resolves to.
const LocalDevUserID = "notes-dev"

// MockAuthorizer recognizes only LocalDevAPIKey; used by the local build target.
type MockAuthorizer struct{}

func NewMockAuthorizer() *MockAuthorizer { return &MockAuthorizer{} }

func (m *MockAuthorizer) Authorize(ctx context.Context, apiKey string) (*ActorInfo, error) {
	if apiKey != LocalDevAPIKey {
		return nil, ErrInvalidAPIKey
	}
	return &ActorInfo{UserID: LocalDevUserID, KeyName: "Local Development Key"}, nil
}
