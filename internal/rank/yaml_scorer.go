package rank

import (
	"strings"

	"gamecraft-engine/internal/config"
	"gamecraft-engine/internal/domain"
)

// YAMLScorer grades a posting against the user's configured skill and title
// preferences. Scores only annotate lists; they never filter them.
type YAMLScorer struct {
	Cfg config.Config
}

func (s YAMLScorer) Score(pos domain.JobPosition) (int, []string) {
	title := strings.ToLower(pos.Title)
	skills := strings.ToLower(strings.Join(pos.RequiredSkills, " ") + " " + strings.Join(pos.PreferredSkills, " "))
	text := title + " " + skills

	score := 0
	var tags []string

	applyRules := func(rules []config.Rule, haystack string) {
		for _, r := range rules {
			for _, needle := range r.Any {
				n := strings.ToLower(needle)
				if strings.Contains(haystack, n) {
					score += r.Weight
					tags = append(tags, r.Tag)
					break
				}
			}
		}
	}

	applyRules(s.Cfg.Matching.TitleRules, title)
	applyRules(s.Cfg.Matching.SkillRules, skills)

	for _, p := range s.Cfg.Matching.Penalties {
		for _, needle := range p.Any {
			n := strings.ToLower(needle)
			if strings.Contains(text, n) {
				score += p.Weight
				break
			}
		}
	}

	return score, uniq(tags)
}

func uniq(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, t := range in {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
