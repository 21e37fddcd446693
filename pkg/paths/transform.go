package paths

import (
	"github.com/pkg/errors"
)

type (
	// RuleSet controls how raw path templates become display paths. The zero
	// value means "auto-detect and strip the shared prefix", which is the
	// behavior most APIs want out of the box.
	RuleSet struct {
		// StripPrefix toggles auto-detection of a shared literal prefix.
		// Unset means enabled. Ignored when Prefix is set.
		StripPrefix *bool `yaml:"strip_prefix,omitempty"`

		// Prefix, when set, is stripped from the front of every path instead
		// of auto-detection. Paths that don't start with the whole prefix are
		// left alone. Must consist of literal segments.
		Prefix string `yaml:"prefix,omitempty"`

		// Keep lists prefix segments to re-insert (in their original order)
		// after the prefix is removed.
		Keep []string `yaml:"keep,omitempty"`

		// Skip lists segments removed wherever they occur in the adjusted
		// path, duplicates included. Placeholder segments are never skipped.
		Skip []string `yaml:"skip,omitempty"`

		// Collapse maps a raw path to its display path verbatim. An entry
		// here wins over every other rule for the path it names, though the
		// raw form still anchors prefix detection for the other paths.
		Collapse map[string]string `yaml:"collapse,omitempty"`
	}
)

// autoStrip reports whether shared-prefix detection is enabled.
func (r RuleSet) autoStrip() bool {
	return r.StripPrefix == nil || *r.StripPrefix
}

// Transform maps every raw path template to its display path under the rule
// set. It is a pure function: the same inputs always produce the same map.
//
// Rule order per path:
//  1. A collapse override wins outright (leading slash normalized).
//  2. Otherwise the effective prefix is removed from the path's front: the
//     explicit prefix when configured, else (with auto-strip on) the longest
//     run of whole literal segments shared by every input path. A lone input
//     has nothing to compare against and keeps its prefix, "/" contributes
//     nothing, and a prefix that would swallow a path whole is trimmed by
//     its last segment so every path keeps at least one segment.
//  3. Kept prefix segments are re-inserted in their original relative order.
//  4. Skip-listed segments are removed wherever they occur.
//  5. The result always has a leading slash; stripping everything yields "/".
//
// Duplicate raw paths collapse to a single map entry. Empty input produces an
// empty map.
func Transform(rawPaths []string, rules RuleSet) (map[string]string, error) {
	out := make(map[string]string, len(rawPaths))
	if len(rawPaths) == 0 {
		return out, nil
	}

	// Dedupe while preserving first-seen order.
	uniq := make([]string, 0, len(rawPaths))
	seen := make(map[string]struct{}, len(rawPaths))
	for _, p := range rawPaths {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		uniq = append(uniq, p)
	}

	parsed := make(map[string]*Template, len(uniq))
	for _, p := range uniq {
		tmpl, err := ParseTemplate(p)
		if err != nil {
			return nil, err
		}
		parsed[p] = tmpl
	}

	// Collapse overrides resolve immediately; everything else gets stripped.
	free := make([]string, 0, len(uniq))
	for _, p := range uniq {
		if override, ok := rules.Collapse[p]; ok {
			tmpl, err := ParseTemplate(override)
			if err != nil {
				return nil, errors.Wrapf(err, "collapse override for %q", p)
			}
			out[p] = tmpl.String()
			continue
		}
		free = append(free, p)
	}

	prefix, err := effectivePrefix(rules, parsed, uniq, free)
	if err != nil {
		return nil, err
	}

	keep := stringSet(rules.Keep)
	skip := stringSet(rules.Skip)

	for _, p := range free {
		tmpl := parsed[p]

		n := matchedPrefixLen(tmpl.Segments, prefix)
		removed, rest := tmpl.Segments[:n], tmpl.Segments[n:]

		rebuilt := make([]*Segment, 0, len(tmpl.Segments))
		for _, seg := range removed {
			if _, ok := keep[seg.Text()]; ok && !seg.ContainsParam() {
				rebuilt = append(rebuilt, seg)
			}
		}
		rebuilt = append(rebuilt, rest...)

		final := make([]*Segment, 0, len(rebuilt))
		for _, seg := range rebuilt {
			if _, ok := skip[seg.Text()]; ok && !seg.ContainsParam() {
				continue
			}
			final = append(final, seg)
		}

		out[p] = (&Template{Segments: final}).String()
	}

	return out, nil
}

// effectivePrefix resolves the prefix to strip: the explicit rule when set,
// else the auto-detected shared literal prefix.
func effectivePrefix(rules RuleSet, parsed map[string]*Template, uniq, free []string) ([]string, error) {
	if rules.Prefix != "" {
		tmpl, err := ParseTemplate(rules.Prefix)
		if err != nil {
			return nil, errors.Wrap(err, "prefix rule")
		}

		prefix := make([]string, 0, len(tmpl.Segments))
		for _, seg := range tmpl.Segments {
			if seg.ContainsParam() {
				return nil, errors.Errorf("prefix rule %q must contain only literal segments", rules.Prefix)
			}
			prefix = append(prefix, seg.Text())
		}
		return prefix, nil
	}

	if !rules.autoStrip() {
		return nil, nil
	}
	return sharedPrefix(parsed, uniq, free), nil
}

// sharedPrefix computes the longest run of whole literal segments common to
// every input path. Collapsed paths anchor the run like any other; bare "/"
// contributes nothing. Fewer than two paths means no prefix, and a prefix
// that would fully consume a strippable path is trimmed by one segment.
func sharedPrefix(parsed map[string]*Template, uniq, free []string) []string {
	contributors := make([]*Template, 0, len(uniq))
	for _, p := range uniq {
		if len(parsed[p].Segments) == 0 {
			continue
		}
		contributors = append(contributors, parsed[p])
	}

	if len(contributors) < 2 {
		return nil
	}

	prefix := literalRun(contributors[0])
	for _, tmpl := range contributors[1:] {
		prefix = commonRun(prefix, tmpl)
		if len(prefix) == 0 {
			return nil
		}
	}

	// Only paths without a collapse override actually get stripped, so only
	// they can be swallowed whole. The prefix can't be longer than the
	// shortest path, so trimming one segment is always enough.
	for _, p := range free {
		if len(prefix) == len(parsed[p].Segments) {
			prefix = prefix[:len(prefix)-1]
			break
		}
	}

	return prefix
}

// literalRun returns the template's leading literal segments, stopping at the
// first segment containing a placeholder.
func literalRun(tmpl *Template) []string {
	var run []string
	for _, seg := range tmpl.Segments {
		if seg.ContainsParam() {
			break
		}
		run = append(run, seg.Text())
	}
	return run
}

// commonRun shortens prefix to the longest run it shares with the template's
// leading literal segments. Whole segments only; partial overlap never counts.
func commonRun(prefix []string, tmpl *Template) []string {
	i := 0
	for i < len(prefix) && i < len(tmpl.Segments) {
		seg := tmpl.Segments[i]
		if seg.ContainsParam() || seg.Text() != prefix[i] {
			break
		}
		i++
	}
	return prefix[:i]
}

// matchedPrefixLen reports how many leading segments to strip: the full
// prefix length when the path starts with the whole prefix, zero otherwise.
func matchedPrefixLen(segs []*Segment, prefix []string) int {
	if len(prefix) == 0 || len(segs) < len(prefix) {
		return 0
	}
	for i, want := range prefix {
		if segs[i].ContainsParam() || segs[i].Text() != want {
			return 0
		}
	}
	return len(prefix)
}

func stringSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
