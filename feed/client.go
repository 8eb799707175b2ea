package feed

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	meme "github.com/AngadSinghLamba/meme-generator"
)

// Client publishes compositions and toggles votes on behalf of the signed-in user.
type Client struct {
	store Store
	auth  Auth
	log   *zap.Logger
	now   func() time.Time

	posting Guard
	mu      sync.Mutex
	voting  map[string]*Guard
}

// NewClient returns a client on top of a store and an authenticator.
func NewClient(store Store, auth Auth, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		store:  store,
		auth:   auth,
		log:    log,
		now:    time.Now,
		voting: map[string]*Guard{},
	}
}

// Posting returns true while a publish is in progress.
func (c *Client) Posting() bool {
	return c.posting.Busy()
}

// Voting returns true while a vote on the post is in progress.
func (c *Client) Voting(postID string) bool {
	return c.voteGuard(postID).Busy()
}

func (c *Client) voteGuard(postID string) *Guard {
	c.mu.Lock()
	defer c.mu.Unlock()
	g, ok := c.voting[postID]
	if !ok {
		g = &Guard{}
		c.voting[postID] = g
	}
	return g
}

// Publish composes base and layers into a PNG and stores it as a post of the signed-in user. It requires a signed-in
// user, an image and at least one layer. Only one publish runs at a time.
func (c *Client) Publish(ctx context.Context, fonts *meme.FontStack, base image.Image, layers []meme.TextLayer, caption string) (string, error) {
	user, ok := c.auth.CurrentUser()
	if !ok {
		return "", ErrSignedOut
	}

	var id string
	err := c.posting.Do(func() error {
		img, err := meme.Export(fonts, base, layers)
		if err != nil {
			return err
		}

		size := base.Bounds().Size()
		id, err = c.store.CreatePost(ctx, NewPost{
			Image:       img,
			Layers:      Snapshot(layers),
			Width:       size.X,
			Height:      size.Y,
			CreatedAt:   c.now(),
			AuthorID:    user.ID,
			AuthorEmail: user.Email,
			Caption:     strings.TrimSpace(caption),
		})
		return err
	})
	if err != nil {
		c.log.Error("publish", zap.Error(err))
		return "", err
	}
	c.log.Info("published", zap.String("post", id), zap.Int("layers", len(layers)))
	return id, nil
}

// Feed returns all posts, newest first.
func (c *Client) Feed(ctx context.Context) ([]Post, error) {
	posts, err := c.store.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[j].CreatedAt.Before(posts[i].CreatedAt)
	})
	return posts, nil
}

// VoteState returns the number of votes on a post and whether the signed-in user is one of the voters.
func (c *Client) VoteState(ctx context.Context, postID string) (int, bool, error) {
	votes, err := c.store.Votes(ctx, postID)
	if err != nil {
		return 0, false, err
	}
	user, signedIn := c.auth.CurrentUser()
	return len(votes), signedIn && findVote(votes, user.ID) != nil, nil
}

func findVote(votes []Vote, userID string) *Vote {
	for i := range votes {
		if votes[i].UserID == userID {
			return &votes[i]
		}
	}
	return nil
}

// ToggleVote removes the vote of the signed-in user on a post if there is one, and adds one otherwise. It returns
// the vote state afterwards. Only one toggle per post runs at a time.
func (c *Client) ToggleVote(ctx context.Context, postID string) (int, bool, error) {
	user, ok := c.auth.CurrentUser()
	if !ok {
		return 0, false, ErrSignedOut
	}

	err := c.voteGuard(postID).Do(func() error {
		votes, err := c.store.Votes(ctx, postID)
		if err != nil {
			return err
		}
		if vote := findVote(votes, user.ID); vote != nil {
			return c.store.DeleteVote(ctx, vote.ID)
		}
		_, err = c.store.AddVote(ctx, Vote{
			PostID:    postID,
			UserID:    user.ID,
			CreatedAt: c.now(),
		})
		return err
	})
	if err != nil {
		c.log.Error("toggle vote", zap.String("post", postID), zap.Error(err))
		return 0, false, fmt.Errorf("vote on %s: %w", postID, err)
	}
	return c.VoteState(ctx, postID)
}

// PublishNotice returns the message shown to the user after a publish.
func PublishNotice(err error) string {
	switch {
	case err == nil:
		return "Meme posted successfully!"
	case errors.Is(err, ErrSignedOut):
		return `Please sign in to post memes! Click "Sign In" in the header.`
	case errors.Is(err, meme.ErrNothingToExport):
		return meme.Notice(err)
	case errors.Is(err, ErrInFlight):
		return ""
	}
	return "Failed to post meme. Please try again."
}

// VoteNotice returns the message shown to the user after a failed vote.
func VoteNotice(err error) string {
	switch {
	case err == nil, errors.Is(err, ErrInFlight):
		return ""
	case errors.Is(err, ErrSignedOut):
		return "Please sign in to vote on memes!"
	}
	return "Failed to update vote. Please try again."
}
