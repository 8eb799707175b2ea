// Package feed publishes compositions to a shared feed and keeps track of votes. The backend is reached through the
// Store and Auth interfaces, MemoryStore and MemoryAuth implement them in memory.
package feed

import (
	"encoding/json"
	"fmt"
	"time"

	meme "github.com/AngadSinghLamba/meme-generator"
)

// LayerSnapshot is a text layer as stored alongside a post.
type LayerSnapshot struct {
	ID           int     `json:"id"`
	Text         string  `json:"text"`
	OriginalText string  `json:"originalText"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	FontSize     float64 `json:"fontSize"`
	Color        string  `json:"color"`
}

// Snapshot converts layers for storage.
func Snapshot(layers []meme.TextLayer) []LayerSnapshot {
	snaps := make([]LayerSnapshot, 0, len(layers))
	for _, layer := range layers {
		snaps = append(snaps, LayerSnapshot{
			ID:           layer.ID,
			Text:         layer.Text,
			OriginalText: layer.OriginalText,
			X:            layer.X,
			Y:            layer.Y,
			FontSize:     layer.FontSize,
			Color:        meme.FormatColor(layer.Fill()),
		})
	}
	return snaps
}

// Layer converts a snapshot back into a text layer.
func (s LayerSnapshot) Layer() (meme.TextLayer, error) {
	col, err := meme.ParseColor(s.Color)
	if err != nil {
		return meme.TextLayer{}, fmt.Errorf("layer %d: %w", s.ID, err)
	}
	orig := s.OriginalText
	if orig == "" {
		orig = s.Text
	}
	return meme.TextLayer{
		ID:           s.ID,
		Text:         s.Text,
		OriginalText: orig,
		X:            s.X,
		Y:            s.Y,
		FontSize:     s.FontSize,
		Color:        col,
	}, nil
}

// MarshalLayers encodes layers as the JSON text stored with a post.
func MarshalLayers(layers []LayerSnapshot) (string, error) {
	b, err := json.Marshal(layers)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// UnmarshalLayers decodes the JSON text stored with a post.
func UnmarshalLayers(s string) ([]LayerSnapshot, error) {
	if s == "" {
		return nil, nil
	}
	var layers []LayerSnapshot
	if err := json.Unmarshal([]byte(s), &layers); err != nil {
		return nil, fmt.Errorf("layers: %w", err)
	}
	return layers, nil
}

// NewPost is a composition to be published.
type NewPost struct {
	Image         []byte // PNG
	Layers        []LayerSnapshot
	Width, Height int
	CreatedAt     time.Time
	AuthorID      string
	AuthorEmail   string
	Caption       string
}

// Post is a published composition.
type Post struct {
	ID string
	NewPost
}

// Vote is an upvote of a user on a post.
type Vote struct {
	ID        string
	PostID    string
	UserID    string
	CreatedAt time.Time
}
