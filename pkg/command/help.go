package command

import (
	"strings"

	"github.com/pseudomuto/concierge/pkg/api"
	"github.com/pseudomuto/concierge/pkg/utils"
)

// groupHelp synthesizes a group's help text, first match wins:
//
//  1. a declared tag description matching the group's segment, or one on a
//     tag every grouped operation shares
//  2. "Manage <noun>." when a common noun covers at least half of the grouped
//     "verb noun ..." summaries
//  3. a single-operation group's own summary
//  4. the humanized segment name
func groupHelp(doc *api.Document, g *Group) string {
	if desc, ok := tagDescription(doc, g.Name); ok {
		return desc
	}
	if desc, ok := sharedTagDescription(doc, g.Leaves); ok {
		return desc
	}
	if noun, ok := commonNoun(g.Leaves); ok {
		return "Manage " + noun + "."
	}
	if len(g.Leaves) == 1 && g.Leaves[0].Operation.Summary != "" {
		return g.Leaves[0].Operation.Summary
	}
	return utils.Humanize(g.Name) + "."
}

// tagDescription finds a declared tag matching the segment name. Tags are
// commonly cased differently from path segments ("Users" vs "users"), so the
// match folds case.
func tagDescription(doc *api.Document, segment string) (string, bool) {
	for _, t := range doc.Tags {
		if t.Description != "" && strings.EqualFold(t.Name, segment) {
			return t.Description, true
		}
	}
	return "", false
}

// sharedTagDescription finds a described tag carried by every grouped
// operation. Declaration order in the document breaks ties.
func sharedTagDescription(doc *api.Document, leaves []*Leaf) (string, bool) {
	if len(leaves) == 0 {
		return "", false
	}

	carried := make(map[string]int)
	for _, leaf := range leaves {
		seen := make(map[string]struct{}, len(leaf.Operation.Tags))
		for _, tag := range leaf.Operation.Tags {
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			carried[tag]++
		}
	}

	for _, t := range doc.Tags {
		if t.Description != "" && carried[t.Name] == len(leaves) {
			return t.Description, true
		}
	}
	return "", false
}

// commonNoun reads each "verb noun ..." summary's second word and reports the
// noun covering at least half of the grouped operations. Counting folds
// singular and plural spellings together; the first spelling seen is the one
// displayed. A lone operation keeps its own summary instead, so this needs at
// least two.
func commonNoun(leaves []*Leaf) (string, bool) {
	if len(leaves) < 2 {
		return "", false
	}

	counts := make(map[string]int)
	surface := make(map[string]string)

	for _, leaf := range leaves {
		words := strings.Fields(leaf.Operation.Summary)
		if len(words) < 2 {
			continue
		}

		word := strings.Trim(words[1], ".,:;")
		noun := utils.SingularKey(word)
		if noun == "" {
			continue
		}

		counts[noun]++
		if _, ok := surface[noun]; !ok {
			surface[noun] = word
		}
	}

	var best string
	var bestCount int
	for noun, count := range counts {
		switch {
		case count > bestCount:
			best, bestCount = noun, count
		case count == bestCount && noun < best:
			best = noun
		}
	}

	if bestCount >= (len(leaves)+1)/2 {
		return surface[best], true
	}
	return "", false
}
