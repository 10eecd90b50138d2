package domain

import (
	"context"
	"io"
)

// PusherPort is the public port exposed by the push module
type PusherPort interface {
	// Push normalizes r and writes each member to the target audience
	Push(ctx context.Context, r io.Reader, in PushInput) (Summary, error)
}

// DirectoryPort reads account-level state from the marketing API
type DirectoryPort interface {
	// Ping verifies the API is reachable and the key authenticates
	Ping(ctx context.Context) error

	// Audiences lists every audience on the account
	Audiences(ctx context.Context) ([]Audience, error)
}

// MemberWriter is the outbound port push runs write members through
type MemberWriter interface {
	// UpsertMember creates or updates one member without flipping the
	// subscription state of existing members
	UpsertMember(ctx context.Context, listID string, m MemberInput) error

	// TagMember activates tags on a member
	TagMember(ctx context.Context, listID, email string, tags []string) error
}
