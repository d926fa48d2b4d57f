// Package bias computes simple demographic representation statistics for a
// policy document: mention shares, sentiment-adjacent term ratios and a
// parity gap. Plain ratios only; this is an audit signal, not a fairness
// metric.
package bias

import (
	"fmt"
	"strings"

	"github.com/opengovlab/docucert/internal/core/domain"
)

type group struct {
	name  string
	terms []string
}

// auditGroups is the fixed group lexicon, iterated in declared order.
var auditGroups = []group{
	{"women", []string{"women", "woman", "female", "mothers", "girls"}},
	{"men", []string{"men", "man", "male", "fathers", "boys"}},
	{"older_adults", []string{"elderly", "older adults", "seniors", "retirees", "pensioners"}},
	{"youth", []string{"youth", "young people", "children", "students", "minors"}},
	{"disabled_people", []string{"disabled", "disability", "disabilities", "accessibility needs"}},
	{"migrants", []string{"migrant", "immigrant", "refugee", "asylum"}},
	{"low_income", []string{"low-income", "low income", "poverty", "welfare recipients", "unemployed"}},
	{"rural_communities", []string{"rural", "remote communities", "farmers", "regional towns"}},
}

var positiveContext = []string{
	"support", "benefit", "empower", "protect", "invest", "opportunity",
	"improve", "strengthen",
}

var negativeContext = []string{
	"burden", "problem", "risk", "cost", "dependent", "failure",
	"crime", "fraud",
}

// underrepresentedShare flags a group mentioned but holding under 5% of all
// group mentions.
const underrepresentedShare = 0.05

type Auditor struct{}

func NewAuditor() *Auditor {
	return &Auditor{}
}

func (a *Auditor) Audit(text string) *domain.BiasAudit {
	lower := strings.ToLower(text)
	sentences := strings.FieldsFunc(lower, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	audit := &domain.BiasAudit{}
	total := 0
	counts := make([]int, len(auditGroups))
	for i, g := range auditGroups {
		for _, term := range g.terms {
			counts[i] += strings.Count(lower, term)
		}
		total += counts[i]
	}

	maxShare, minShare := 0.0, 1.0
	for i, g := range auditGroups {
		stat := domain.GroupStat{Group: g.name, Mentions: counts[i]}
		if total > 0 {
			stat.Share = float64(counts[i]) / float64(total)
		}

		for _, sentence := range sentences {
			mentioned := false
			for _, term := range g.terms {
				if strings.Contains(sentence, term) {
					mentioned = true
					break
				}
			}
			if !mentioned {
				continue
			}
			for _, p := range positiveContext {
				if strings.Contains(sentence, p) {
					stat.PositiveTerms++
				}
			}
			for _, n := range negativeContext {
				if strings.Contains(sentence, n) {
					stat.NegativeTerms++
				}
			}
		}
		if stat.PositiveTerms+stat.NegativeTerms > 0 {
			stat.SentimentRatio = float64(stat.PositiveTerms) / float64(stat.PositiveTerms+stat.NegativeTerms)
		}

		if stat.Mentions > 0 {
			if stat.Share > maxShare {
				maxShare = stat.Share
			}
			if stat.Share < minShare {
				minShare = stat.Share
			}
			if stat.Share < underrepresentedShare {
				stat.Underrepresented = true
				audit.Warnings = append(audit.Warnings, fmt.Sprintf(
					"group %q holds only %.1f%% of demographic mentions", g.name, stat.Share*100,
				))
			}
		}
		audit.Groups = append(audit.Groups, stat)
	}

	if total > 0 && maxShare >= minShare {
		audit.ParityGap = maxShare - minShare
	}
	return audit
}
