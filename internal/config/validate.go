package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything wrong or
// suspicious about it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	// ---- Validation rules ----

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	out.Backend.BaseURL = strings.TrimRight(strings.TrimSpace(out.Backend.BaseURL), "/")
	if out.Backend.BaseURL == "" {
		res.addErr("backend.base_url is required")
	} else if u, err := url.Parse(out.Backend.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		res.addErr("backend.base_url must be an absolute URL, got %q", out.Backend.BaseURL)
	}

	checkSeconds := func(name string, v int) {
		if v < 0 {
			res.addErr("cache.%s must be >= 0", name)
		} else if v > 0 && v < 5 {
			res.addWarn("cache.%s is very low (%d); the cache will barely help.", name, v)
		}
	}
	checkSeconds("form_info_seconds", out.Cache.FormInfoSeconds)
	checkSeconds("filter_options_seconds", out.Cache.FilterOptionsSeconds)
	checkSeconds("dashboard_seconds", out.Cache.DashboardSeconds)
	checkSeconds("curated_seconds", out.Cache.CuratedSeconds)
	checkSeconds("deadline_soon_seconds", out.Cache.DeadlineSoonSeconds)

	checkRules := func(name string, rules []Rule) {
		for i := range rules {
			rules[i].Any = trimList(rules[i].Any)
			if rules[i].Tag == "" {
				res.addErr("%s[%d].tag is required", name, i)
			}
			if len(rules[i].Any) == 0 {
				res.addErr("%s[%d].any must have at least 1 term", name, i)
			}
		}
	}
	checkRules("matching.skill_rules", out.Matching.SkillRules)
	checkRules("matching.title_rules", out.Matching.TitleRules)

	for i := range out.Matching.Penalties {
		out.Matching.Penalties[i].Any = trimList(out.Matching.Penalties[i].Any)
		if out.Matching.Penalties[i].Reason == "" {
			res.addErr("matching.penalties[%d].reason is required", i)
		}
		if len(out.Matching.Penalties[i].Any) == 0 {
			res.addErr("matching.penalties[%d].any must have at least 1 term", i)
		}
	}

	if out.Matching.Enabled && len(out.Matching.SkillRules) == 0 && len(out.Matching.TitleRules) == 0 {
		res.addWarn("matching.enabled is true but no rules are defined; every position scores 0.")
	}

	return out, res
}
