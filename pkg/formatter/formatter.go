package formatter

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// FormatNumber abbreviates counts the way the feed shows them.
// Example: 999 -> "999", 1234 -> "1.2K", 1000000 -> "1M"
func FormatNumber(n int) string {
	if n < 1000 {
		return strconv.Itoa(n)
	}
	if n < 1000000 {
		return compact(float64(n)/1000, "K")
	}
	return compact(float64(n)/1000000, "M")
}

// compact rounds half up to one decimal and drops a trailing ".0".
func compact(v float64, suffix string) string {
	s := strconv.FormatFloat(math.Floor(v*10+0.5)/10, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0") + suffix
}

// FormatTimeAgo renders the distance between ts and now in the short form
// used under posts: 45s, 3m, 2h, 4d, 2w, 5mo, 1y.
func FormatTimeAgo(ts, now time.Time) string {
	seconds := int(now.Sub(ts) / time.Second)
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}

	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh", hours)
	}

	days := hours / 24
	if days < 7 {
		return fmt.Sprintf("%dd", days)
	}

	if weeks := days / 7; weeks < 4 {
		return fmt.Sprintf("%dw", weeks)
	}

	if months := days / 30; months < 12 {
		return fmt.Sprintf("%dmo", months)
	}

	return fmt.Sprintf("%dy", days/365)
}

// TruncateText cuts text to maxLength characters, trims surrounding space and
// appends an ellipsis. Shorter text is returned unchanged.
func TruncateText(text string, maxLength int) string {
	if utf8.RuneCountInString(text) <= maxLength {
		return text
	}
	return strings.TrimSpace(Head(text, maxLength)) + "..."
}

// Head returns the first n characters of text.
func Head(text string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range text {
		if count == n {
			return text[:i]
		}
		count++
	}
	return text
}

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9._]{1,30}$`)

// IsValidUsername reports whether username is a URL-safe handle.
func IsValidUsername(username string) bool {
	return usernameRe.MatchString(username)
}
