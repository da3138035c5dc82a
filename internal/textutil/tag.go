package textutil

import (
	"regexp"
	"time"

	"github.com/masmgr/changelog-go/internal/release"
)

// FormatReleaseTag converts a tag name into a display label. The head
// sentinel becomes "version <currentVersion>"; any other tag has the
// pattern's capture group substituted into "version <captured>". A tag the
// pattern does not match passes through unchanged.
func FormatReleaseTag(tag string, pattern *regexp.Regexp, currentVersion string) string {
	if tag == release.HeadVersion {
		return "version " + currentVersion
	}
	return pattern.ReplaceAllString(tag, "version ${1}")
}

// FormatDate renders a timestamp in the document's date format.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
