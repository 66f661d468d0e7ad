package formatter

import "regexp"

type SegmentType string

const (
	SegmentText    SegmentType = "text"
	SegmentHashtag SegmentType = "hashtag"
	SegmentMention SegmentType = "mention"
)

// Segment is one run of caption text.
type Segment struct {
	Type    SegmentType
	Content string
}

var linkRe = regexp.MustCompile(`#\w+|@\w+`)

// ParseTextWithLinks splits text into ordered text, hashtag and mention
// segments. A token is '#' or '@' followed by one or more word characters.
func ParseTextWithLinks(text string) []Segment {
	var segments []Segment
	last := 0

	for _, loc := range linkRe.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			segments = append(segments, Segment{Type: SegmentText, Content: text[last:loc[0]]})
		}

		match := text[loc[0]:loc[1]]
		kind := SegmentMention
		if match[0] == '#' {
			kind = SegmentHashtag
		}
		segments = append(segments, Segment{Type: kind, Content: match})

		last = loc[1]
	}

	if last < len(text) {
		segments = append(segments, Segment{Type: SegmentText, Content: text[last:]})
	}

	return segments
}

// Link returns the in-app path a hashtag or mention segment points to.
func (s Segment) Link() string {
	switch s.Type {
	case SegmentHashtag:
		return "/explore/tags/" + s.Content[1:]
	case SegmentMention:
		return "/" + s.Content[1:]
	default:
		return ""
	}
}
