// Package compare reports how an LLM-extracted character list lines up with
// one produced by traditional NLP extraction.
package compare

import (
	"slices"
	"strings"

	"github.com/aryann/difflib"
)

// Report is the set comparison between the two extraction approaches.
// Overlap is |intersection| / |union| as a percentage, 0 when both inputs are
// empty. Name lists are sorted for stable output.
type Report struct {
	TraditionalOnly   []string `json:"traditional_only"`
	LLMOnly           []string `json:"llm_only"`
	Common            []string `json:"common"`
	TraditionalCount  int      `json:"traditional_count"`
	LLMCount          int      `json:"llm_count"`
	OverlapPercentage float64  `json:"overlap_percentage"`
}

// Names compares the two name lists as sets; duplicates within a list count once.
func Names(traditional, llm []string) Report {
	tset := toSet(traditional)
	lset := toSet(llm)

	r := Report{
		TraditionalOnly:  []string{},
		LLMOnly:          []string{},
		Common:           []string{},
		TraditionalCount: len(tset),
		LLMCount:         len(lset),
	}
	union := len(lset)
	for name := range tset {
		if _, ok := lset[name]; ok {
			r.Common = append(r.Common, name)
		} else {
			r.TraditionalOnly = append(r.TraditionalOnly, name)
			union++
		}
	}
	for name := range lset {
		if _, ok := tset[name]; !ok {
			r.LLMOnly = append(r.LLMOnly, name)
		}
	}
	slices.Sort(r.TraditionalOnly)
	slices.Sort(r.LLMOnly)
	slices.Sort(r.Common)

	if union > 0 {
		r.OverlapPercentage = float64(len(r.Common)) / float64(union) * 100
	}
	return r
}

// Diff renders a line diff between the two sorted name lists, one name per
// record, for human inspection of where the approaches disagree.
func Diff(traditional, llm []string) []difflib.DiffRecord {
	t := sortedUnique(traditional)
	l := sortedUnique(llm)
	return difflib.Diff(t, l)
}

// DiffString is Diff joined into a printable block.
func DiffString(traditional, llm []string) string {
	recs := Diff(traditional, llm)
	lines := make([]string, len(recs))
	for i, r := range recs {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n")
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func sortedUnique(names []string) []string {
	set := toSet(names)
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}
