package release

import (
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/masmgr/changelog-go/internal/git"
)

// Collector buckets commit history into releases bounded by matched tags and
// an age cutoff, filtering commit messages on the way.
type Collector struct {
	TagPattern     *regexp.Regexp // must contain one capture group
	MaxAge         int            // days; releases older than this are skipped
	ExcludeMessage *regexp.Regexp // optional; evaluated before IncludeMessage
	IncludeMessage *regexp.Regexp // optional
	Now            func() time.Time
}

// matchedTag pairs a tag with the version label its name captured.
type matchedTag struct {
	tag     git.TagInfo
	version string
}

// Collect partitions commits into releases. Tags and commits may arrive in
// any order; commits are bucketed by time window between consecutive matched
// tags. Commits newer than the most recent matched tag form the synthetic
// head release.
func (c *Collector) Collect(tags []git.TagInfo, commits []git.CommitInfo) (*Collection, error) {
	if c.TagPattern == nil {
		return nil, fmt.Errorf("tag pattern is not configured")
	}
	if c.TagPattern.NumSubexp() < 1 {
		return nil, fmt.Errorf("tag pattern %q has no capture group for the version label", c.TagPattern)
	}

	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}
	earliest := startOfDay(now.AddDate(0, 0, -c.MaxAge))

	matched := c.matchTags(tags)

	ordered := orderCommits(commits)

	col := &Collection{EarliestDate: earliest}

	// Synthetic head release for commits newer than the newest matched tag.
	// With no matched tags at all, every commit belongs to the head.
	headBoundary := time.Time{}
	if len(matched) > 0 {
		headBoundary = matched[0].tag.When
	}
	head := ordered.between(headBoundary, time.Time{})
	if len(head) > 0 {
		col.Releases = append(col.Releases, Release{
			Tag:     HeadVersion,
			Date:    now,
			Changes: c.buildChanges(head),
		})
	}

	// Walk matched tags newest-first. The first release older than the
	// cutoff ends the walk; it and everything older is only counted.
	for i, m := range matched {
		if m.tag.When.Before(earliest) {
			col.SkippedReleases = len(matched) - i
			break
		}

		lower := time.Time{}
		if i+1 < len(matched) {
			lower = matched[i+1].tag.When
		}
		window := ordered.between(lower, m.tag.When)

		col.Releases = append(col.Releases, Release{
			Tag:     m.tag.Name,
			Version: m.version,
			Date:    m.tag.When,
			Changes: c.buildChanges(window),
		})
	}

	return col, nil
}

// matchTags filters tags to those matching the tag pattern, orders them most
// recent first, and deduplicates by name and by tagged commit.
func (c *Collector) matchTags(tags []git.TagInfo) []matchedTag {
	var matched []matchedTag
	for _, tag := range tags {
		m := c.TagPattern.FindStringSubmatch(tag.Name)
		if m == nil {
			continue
		}
		matched = append(matched, matchedTag{tag: tag, version: m[1]})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].tag.When.After(matched[j].tag.When)
	})

	seenName := make(map[string]bool, len(matched))
	seenCommit := make(map[string]bool, len(matched))
	deduped := matched[:0]
	for _, m := range matched {
		if seenName[m.tag.Name] || (m.tag.CommitID != "" && seenCommit[m.tag.CommitID]) {
			continue
		}
		seenName[m.tag.Name] = true
		seenCommit[m.tag.CommitID] = true
		deduped = append(deduped, m)
	}

	return deduped
}

// buildChanges converts a newest-first commit window into Change records in
// chronological order, applying the message filters. Exclusion is evaluated
// before inclusion, so an excluded message is never reconsidered.
func (c *Collector) buildChanges(window []git.CommitInfo) []Change {
	changes := make([]Change, 0, len(window))
	for i := len(window) - 1; i >= 0; i-- {
		commit := window[i]
		if c.ExcludeMessage != nil && c.ExcludeMessage.MatchString(commit.Message) {
			continue
		}
		if c.IncludeMessage != nil && !c.IncludeMessage.MatchString(commit.Message) {
			continue
		}
		changes = append(changes, Change{
			ID:          commit.ID,
			AuthorName:  commit.Author.Name,
			AuthorEmail: commit.Author.Email,
			When:        commit.When,
			Message:     commit.Message,
		})
	}
	return changes
}

// commitSequence is a newest-first commit list supporting window extraction.
type commitSequence []git.CommitInfo

// orderCommits returns the commits sorted most recent first, preserving the
// input order of equal timestamps.
func orderCommits(commits []git.CommitInfo) commitSequence {
	ordered := make(commitSequence, len(commits))
	copy(ordered, commits)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].When.After(ordered[j].When)
	})
	return ordered
}

// between returns commits with lower < When <= upper, newest first. A zero
// lower bound extends to the repository start; a zero upper bound to the
// newest commit.
func (s commitSequence) between(lower, upper time.Time) []git.CommitInfo {
	var window []git.CommitInfo
	for _, commit := range s {
		if !upper.IsZero() && commit.When.After(upper) {
			continue
		}
		if !lower.IsZero() && !commit.When.After(lower) {
			break
		}
		window = append(window, commit)
	}
	return window
}

// startOfDay truncates a timestamp to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
