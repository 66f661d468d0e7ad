package tui

import "github.com/orgball2608/insta-feed/internal/overlay"

type target int

const (
	targetNone target = iota
	targetSearchField
	targetSearchResult
	targetNewPost
	targetNotifications
	targetAvatar
	targetMenuItem
	targetStory
	targetPostImage
	targetLike
	targetComment
	targetShare
	targetSave
	targetMore
	targetAuthor
	targetCaptionLink
	targetViewComments
	targetFollow
	targetSwitch
	targetComposePath
	targetComposeCaption
	targetComposeCancel
	targetComposeSubmit
	targetComposeChange
	targetComposeClose
	targetBottomNew
	targetRefresh
	targetConfirmYes
	targetConfirmNo
)

// hit is a clickable screen region recorded while rendering.
type hit struct {
	rect   overlay.Rect
	target target
	id     string
	index  int
}

type hitList []hit

func (h *hitList) add(x, y, width int, t target, id string, index int) {
	if width <= 0 {
		return
	}
	*h = append(*h, hit{rect: overlay.Rect{X: x, Y: y, Width: width, Height: 1}, target: t, id: id, index: index})
}

// at returns the topmost hit at (x, y). Later entries are drawn on top.
func (h hitList) at(x, y int) (hit, bool) {
	for i := len(h) - 1; i >= 0; i-- {
		if h[i].rect.Contains(x, y) {
			return h[i], true
		}
	}
	return hit{}, false
}

func (h hitList) rect(t target) overlay.Rect {
	for _, x := range h {
		if x.target == t {
			return x.rect
		}
	}
	return overlay.Rect{}
}
