// Package render produces the change log document from a release collection
// through a layered pipeline of render steps. Every step is an exported
// function field with a documented default, so callers can replace any subset
// without touching the orchestration.
package render

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/masmgr/changelog-go/internal/release"
	"github.com/masmgr/changelog-go/internal/textutil"
)

// Config is the immutable formatting configuration shared by all steps.
type Config struct {
	WrapColumn     int
	TagPattern     *regexp.Regexp // same pattern used during collection
	CurrentVersion string         // replaces the head sentinel in headers
}

// Renderer renders a release collection as a document. The step fields form
// a strict hierarchy:
//
//	Render         = ChangelogHeader + releases + ChangelogFooter
//	releases       = each non-empty release, oldest first
//	release        = ReleaseHeader + changes + ReleaseFooter
//	change         = ChangeHeader + ChangeMessage + ChangeFooter
//
// Each step is a pure function returning its contribution; an empty string
// contributes nothing.
type Renderer struct {
	cfg Config

	ChangelogHeader func(col *release.Collection) string
	ChangelogFooter func(col *release.Collection) string
	ReleaseHeader   func(rel release.Release) string
	ReleaseFooter   func(rel release.Release) string
	ChangeHeader    func(rel release.Release, ch release.Change) string
	ChangeMessage   func(rel release.Release, ch release.Change) string
	ChangeFooter    func(rel release.Release, ch release.Change) string
}

// New creates a renderer with the default step implementations.
func New(cfg Config) *Renderer {
	r := &Renderer{cfg: cfg}
	r.ChangelogHeader = r.defaultChangelogHeader
	r.ChangelogFooter = r.defaultChangelogFooter
	r.ReleaseHeader = r.defaultReleaseHeader
	r.ReleaseFooter = r.defaultReleaseFooter
	r.ChangeHeader = r.defaultChangeHeader
	r.ChangeMessage = r.defaultChangeMessage
	r.ChangeFooter = r.defaultChangeFooter
	return r
}

// Render produces the full document. An empty collection still renders the
// changelog header and footer.
func (r *Renderer) Render(col *release.Collection) string {
	var b strings.Builder
	b.WriteString(r.ChangelogHeader(col))
	b.WriteString(r.renderReleases(col))
	b.WriteString(r.ChangelogFooter(col))
	return b.String()
}

// renderReleases renders releases oldest first, skipping releases left with
// no changes after filtering.
func (r *Renderer) renderReleases(col *release.Collection) string {
	var b strings.Builder
	for i := len(col.Releases) - 1; i >= 0; i-- {
		rel := col.Releases[i]
		if len(rel.Changes) == 0 {
			continue
		}
		b.WriteString(r.renderRelease(rel))
	}
	return b.String()
}

func (r *Renderer) renderRelease(rel release.Release) string {
	var b strings.Builder
	b.WriteString(r.ReleaseHeader(rel))
	for _, ch := range rel.Changes {
		b.WriteString(r.renderChange(rel, ch))
	}
	b.WriteString(r.ReleaseFooter(rel))
	return b.String()
}

func (r *Renderer) renderChange(rel release.Release, ch release.Change) string {
	return r.ChangeHeader(rel, ch) + r.ChangeMessage(rel, ch) + r.ChangeFooter(rel, ch)
}

// defaultChangelogHeader emits a banner naming the age cutoff.
func (r *Renderer) defaultChangelogHeader(col *release.Collection) string {
	line := fmt.Sprintf("Changes from %s to present.", textutil.FormatDate(col.EarliestDate))
	return textutil.SurroundLine("=", line)
}

// defaultChangelogFooter emits a closing banner, reporting how many further
// releases exist beyond the cutoff when any were skipped.
func (r *Renderer) defaultChangelogFooter(col *release.Collection) string {
	line := "End of releases."
	if n := col.SkippedReleases; n > 0 {
		noun := "releases"
		if n == 1 {
			noun = "release"
		}
		line = fmt.Sprintf("Plus %d %s after %s.", n, noun, textutil.FormatDate(col.EarliestDate))
	}
	return textutil.SurroundLine("=", line)
}

// defaultReleaseHeader emits a banner with the formatted version label and
// release date. The head sentinel renders as the configured current version.
func (r *Renderer) defaultReleaseHeader(rel release.Release) string {
	label := textutil.FormatReleaseTag(rel.Tag, r.cfg.TagPattern, r.cfg.CurrentVersion)
	return textutil.SurroundLine("-", fmt.Sprintf("%s (%s)", label, textutil.FormatDate(rel.Date)))
}

// defaultReleaseFooter is an extension point only.
func (r *Renderer) defaultReleaseFooter(release.Release) string {
	return ""
}

// defaultChangeHeader emits the commit id, author, and date, each wrapped
// with a two-space indent, followed by a blank line.
func (r *Renderer) defaultChangeHeader(_ release.Release, ch release.Change) string {
	const indent = "  "
	var b strings.Builder
	b.WriteString(textutil.Wrap(ch.ID, r.cfg.WrapColumn, indent, indent))
	b.WriteString(textutil.Wrap(fmt.Sprintf("%s <%s>", ch.AuthorName, ch.AuthorEmail), r.cfg.WrapColumn, indent, indent))
	b.WriteString(textutil.Wrap(textutil.FormatDate(ch.When), r.cfg.WrapColumn, indent, indent))
	b.WriteByte('\n')
	return b.String()
}

// defaultChangeMessage reflows the commit message with a four-space indent.
// A message starting with whitespace is treated as manually formatted and
// contributes nothing.
func (r *Renderer) defaultChangeMessage(_ release.Release, ch release.Change) string {
	if startsWithSpace(ch.Message) {
		return ""
	}
	const indent = "    "
	return textutil.Wrap(ch.Message, r.cfg.WrapColumn, indent, indent)
}

// defaultChangeFooter separates changes with a blank line.
func (r *Renderer) defaultChangeFooter(release.Release, release.Change) string {
	return "\n"
}

func startsWithSpace(s string) bool {
	if s == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(s)
	return unicode.IsSpace(first)
}
