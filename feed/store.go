package feed

import (
	"context"
	"errors"
)

// ErrNotFound is returned for unknown posts or votes.
var ErrNotFound = errors.New("not found")

// Store is the persistence backend of the feed.
type Store interface {
	CreatePost(ctx context.Context, post NewPost) (string, error)
	ListPosts(ctx context.Context) ([]Post, error)
	Votes(ctx context.Context, postID string) ([]Vote, error)
	AddVote(ctx context.Context, vote Vote) (string, error)
	DeleteVote(ctx context.Context, voteID string) error
}
