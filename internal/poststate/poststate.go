package poststate

import (
	"context"
	"unicode/utf8"

	"github.com/orgball2608/insta-feed/internal/domain"
	"github.com/orgball2608/insta-feed/pkg/formatter"
)

//go:generate mockgen -source=poststate.go -destination=mocks/mock.go

// PlaceholderImage replaces a cover image that failed to load.
const PlaceholderImage = "https://via.placeholder.com/800/f5f5f5/cccccc?text=Image+Not+Found"

// DefaultCaptionLimit is how many characters of a caption show before "more".
const DefaultCaptionLimit = 100

// Intents receives the post's like and save changes.
type Intents interface {
	Like(ctx context.Context, postID string, liked bool) error
	Save(ctx context.Context, postID string, saved bool) error
}

// Post is the local state of one rendered post. It is seeded once from the
// enriched post and is the source of truth from then on; later override
// changes do not reach it. Dropping a Post discards caption expansion and
// image state, a new Post reseeds from the overrides.
type Post struct {
	post         domain.Post
	intents      Intents
	captionLimit int

	liked           bool
	saved           bool
	likeCount       int
	captionExpanded bool
	imageLoaded     bool
	imageURL        string
}

type Option func(*Post)

// WithCaptionLimit sets the collapsed caption length. Non-positive values
// keep the default.
func WithCaptionLimit(n int) Option {
	return func(p *Post) {
		if n > 0 {
			p.captionLimit = n
		}
	}
}

func New(post domain.Post, intents Intents, opts ...Option) *Post {
	p := &Post{
		post:         post,
		intents:      intents,
		captionLimit: DefaultCaptionLimit,
		liked:        post.Liked,
		saved:        post.Saved,
		likeCount:    post.Likes,
		imageURL:     post.CoverImage(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Post) ID() string            { return p.post.ID }
func (p *Post) Source() domain.Post   { return p.post }
func (p *Post) Liked() bool           { return p.liked }
func (p *Post) Saved() bool           { return p.saved }
func (p *Post) LikeCount() int        { return p.likeCount }
func (p *Post) CaptionExpanded() bool { return p.captionExpanded }
func (p *Post) ImageLoaded() bool     { return p.imageLoaded }
func (p *Post) ImageURL() string      { return p.imageURL }
func (p *Post) ShowSpinner() bool     { return !p.imageLoaded }
func (p *Post) ImageFailed() bool     { return p.imageURL == PlaceholderImage }

// ToggleLike flips liked and moves the count by one in the same step. Local
// state is kept even if the intent fails.
func (p *Post) ToggleLike(ctx context.Context) error {
	p.liked = !p.liked
	if p.liked {
		p.likeCount++
	} else {
		p.likeCount--
	}
	return p.intents.Like(ctx, p.post.ID, p.liked)
}

// DoubleActivate likes the post unless it is already liked. It never unlikes.
func (p *Post) DoubleActivate(ctx context.Context) (bool, error) {
	if p.liked {
		return false, nil
	}
	return true, p.ToggleLike(ctx)
}

func (p *Post) ToggleSave(ctx context.Context) error {
	p.saved = !p.saved
	return p.intents.Save(ctx, p.post.ID, p.saved)
}

// ExpandCaption shows the full caption. There is no way back.
func (p *Post) ExpandCaption() {
	p.captionExpanded = true
}

// HasMore reports whether the caption is cut and can be expanded.
func (p *Post) HasMore() bool {
	return !p.captionExpanded && utf8.RuneCountInString(p.post.Caption) > p.captionLimit
}

// DisplayedCaption is the part of the caption currently visible.
func (p *Post) DisplayedCaption() string {
	if p.HasMore() {
		return formatter.Head(p.post.Caption, p.captionLimit)
	}
	return p.post.Caption
}

// CaptionSegments parses the displayed caption, so a hashtag or mention at
// the cut point shows only its visible part.
func (p *Post) CaptionSegments() []formatter.Segment {
	return formatter.ParseTextWithLinks(p.DisplayedCaption())
}

func (p *Post) MarkImageLoaded() {
	p.imageLoaded = true
}

// MarkImageFailed swaps in the placeholder and stops the spinner. The failure
// is not reported any further.
func (p *Post) MarkImageFailed() {
	p.imageURL = PlaceholderImage
	p.imageLoaded = true
}
