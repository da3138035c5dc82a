package release

import "time"

// HeadVersion is the sentinel tag label for the synthetic release holding
// commits newer than the most recent matched tag.
const HeadVersion = "HEAD"

// Change represents one commit included in a release.
type Change struct {
	ID          string
	AuthorName  string
	AuthorEmail string
	When        time.Time
	Message     string
}

// Release groups the changes recorded between two consecutive matched tags.
type Release struct {
	Tag     string // tag name, or HeadVersion for the unreleased head
	Version string // version label captured from the tag name; empty for the head
	Date    time.Time
	Changes []Change
}

// IsHead reports whether this is the synthetic unreleased-head release.
func (r Release) IsHead() bool {
	return r.Tag == HeadVersion
}

// Collection is the result of one collection run.
type Collection struct {
	Releases        []Release // most recent first; the head release, if any, leads
	EarliestDate    time.Time
	SkippedReleases int // matched tags excluded by the age cutoff
}
