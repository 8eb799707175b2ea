package feed

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
)

func newID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

// MemoryStore is a Store that keeps everything in memory. Posts are listed in insertion order.
type MemoryStore struct {
	mu    sync.Mutex
	posts []Post
	votes []Vote
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) CreatePost(ctx context.Context, post NewPost) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := newID()
	post.Image = append([]byte{}, post.Image...)
	post.Layers = append([]LayerSnapshot{}, post.Layers...)
	s.posts = append(s.posts, Post{id, post})
	return id, nil
}

func (s *MemoryStore) ListPosts(ctx context.Context) ([]Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Post{}, s.posts...), nil
}

func (s *MemoryStore) hasPost(id string) bool {
	for _, post := range s.posts {
		if post.ID == id {
			return true
		}
	}
	return false
}

func (s *MemoryStore) Votes(ctx context.Context, postID string) ([]Vote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasPost(postID) {
		return nil, fmt.Errorf("post %s: %w", postID, ErrNotFound)
	}
	votes := []Vote{}
	for _, vote := range s.votes {
		if vote.PostID == postID {
			votes = append(votes, vote)
		}
	}
	return votes, nil
}

func (s *MemoryStore) AddVote(ctx context.Context, vote Vote) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasPost(vote.PostID) {
		return "", fmt.Errorf("post %s: %w", vote.PostID, ErrNotFound)
	}
	vote.ID = newID()
	s.votes = append(s.votes, vote)
	return vote.ID, nil
}

func (s *MemoryStore) DeleteVote(ctx context.Context, voteID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, vote := range s.votes {
		if vote.ID == voteID {
			s.votes = append(s.votes[:i], s.votes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("vote %s: %w", voteID, ErrNotFound)
}
