// Package query turns normalized filter criteria into predicate groups and
// builds the degradation ladder the browse flow walks when the store
// misbehaves.
package query

import (
	"fmt"
	"strings"

	"github.com/dhyabi2/luxury-module-creator-sub000/internal/domain"
	"github.com/dhyabi2/luxury-module-creator-sub000/internal/repository"
)

// Compile translates criteria into predicate groups. Each populated criterion
// becomes one group; values within a group are alternatives, groups all must
// hold. Category and brand use substring matching so "watch" finds
// "Watches" and "luxury watches" alike.
func Compile(c domain.FilterCriteria) []repository.PredicateGroup {
	var groups []repository.PredicateGroup

	if c.Search != "" {
		groups = append(groups, repository.PredicateGroup{
			Name:   "search",
			Op:     repository.OpContains,
			Fields: []string{"name", "brand", "category"},
			Values: []string{c.Search},
		})
	}
	if len(c.Categories) > 0 {
		groups = append(groups, repository.PredicateGroup{
			Name:   "category",
			Op:     repository.OpContains,
			Fields: []string{"category"},
			Values: c.Categories,
		})
	}
	if len(c.Brands) > 0 {
		groups = append(groups, repository.PredicateGroup{
			Name:   "brand",
			Op:     repository.OpContains,
			Fields: []string{"brand"},
			Values: c.Brands,
		})
	}
	if len(c.Genders) > 0 {
		groups = append(groups, repository.PredicateGroup{
			Name:   "gender",
			Op:     repository.OpMemberOf,
			Fields: []string{"gender"},
			Values: c.Genders,
		})
	}
	if len(c.Bands) > 0 {
		groups = append(groups, repository.PredicateGroup{
			Name:   "band",
			Op:     repository.OpContains,
			Fields: []string{"band"},
			Values: c.Bands,
		})
	}
	if len(c.CaseColors) > 0 {
		groups = append(groups, repository.PredicateGroup{
			Name:   "caseColor",
			Op:     repository.OpContains,
			Fields: []string{"caseColor"},
			Values: c.CaseColors,
		})
	}
	if len(c.Colors) > 0 {
		groups = append(groups, repository.PredicateGroup{
			Name:   "color",
			Op:     repository.OpContains,
			Fields: []string{"color"},
			Values: c.Colors,
		})
	}
	if c.Price.Set {
		groups = append(groups, repository.PredicateGroup{
			Name:   "price",
			Op:     repository.OpRange,
			Fields: []string{"price"},
			Min:    c.Price.Min,
			Max:    c.Price.Max,
		})
	}
	if c.CaseSize.Set {
		groups = append(groups, repository.PredicateGroup{
			Name:   "caseSize",
			Op:     repository.OpRange,
			Fields: []string{"caseSize"},
			Min:    c.CaseSize.Min,
			Max:    c.CaseSize.Max,
		})
	}
	if c.InStockOnly {
		groups = append(groups, repository.PredicateGroup{
			Name:   "inStock",
			Op:     repository.OpGreaterThan,
			Fields: []string{"stock"},
		})
	}
	if c.Clearance {
		groups = append(groups, repository.PredicateGroup{
			Name:   "clearance",
			Op:     repository.OpGreaterThan,
			Fields: []string{"discount"},
		})
	}

	return groups
}

// watchAttrGroups are the group names dropped at the first relaxation step.
var watchAttrGroups = map[string]bool{
	"gender":    true,
	"band":      true,
	"caseColor": true,
	"color":     true,
	"caseSize":  true,
}

// coreGroups are the group names kept at the second relaxation step.
var coreGroups = map[string]bool{
	"category":  true,
	"inStock":   true,
	"clearance": true,
}

// Rung is one step of the degradation ladder. Unfiltered marks the terminal
// rung, which runs without predicates, sorted newest, capped in size.
type Rung struct {
	Level      int
	Groups     []repository.PredicateGroup
	Unfiltered bool
}

// Ladder builds the relaxation sequence for criteria. Each rung's predicate
// set is a subset of the previous one, so relaxing can only widen results.
// Rungs whose predicates match the preceding rung are skipped; the ladder
// always ends in the unfiltered rung.
func Ladder(c domain.FilterCriteria) []Rung {
	full := Compile(c)

	noWatch := exclude(full, watchAttrGroups)
	core := keep(noWatch, coreGroups)

	rungs := []Rung{{Level: 1, Groups: full}}
	for _, cand := range []Rung{
		{Level: 2, Groups: noWatch},
		{Level: 3, Groups: core},
		{Level: 4, Groups: nil, Unfiltered: true},
	} {
		prev := rungs[len(rungs)-1]
		// An intermediate rung that relaxed to nothing is covered by the
		// terminal unfiltered rung.
		if !cand.Unfiltered && len(cand.Groups) == 0 {
			continue
		}
		if !cand.Unfiltered && signature(cand.Groups) == signature(prev.Groups) {
			continue
		}
		if cand.Unfiltered && len(prev.Groups) == 0 {
			// The query is already unfiltered; there is nothing left to relax.
			continue
		}
		rungs = append(rungs, cand)
	}

	return rungs
}

func exclude(groups []repository.PredicateGroup, names map[string]bool) []repository.PredicateGroup {
	out := make([]repository.PredicateGroup, 0, len(groups))
	for _, g := range groups {
		if !names[g.Name] {
			out = append(out, g)
		}
	}
	return out
}

func keep(groups []repository.PredicateGroup, names map[string]bool) []repository.PredicateGroup {
	out := make([]repository.PredicateGroup, 0, len(groups))
	for _, g := range groups {
		if names[g.Name] {
			out = append(out, g)
		}
	}
	return out
}

func signature(groups []repository.PredicateGroup) string {
	var b strings.Builder
	for _, g := range groups {
		fmt.Fprintf(&b, "%s|%s|%v|%v|%g|%g;", g.Name, g.Op, g.Fields, g.Values, g.Min, g.Max)
	}
	return b.String()
}
