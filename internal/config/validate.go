package config

import (
	"errors"
	"fmt"
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

// NormalizeAndValidate returns a normalized copy plus anything a user
// editing the config over the API should be told about.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	out.Providers.SerpAPI.BaseURL = strings.TrimSpace(out.Providers.SerpAPI.BaseURL)
	out.Providers.LinkedIn.Host = strings.TrimSpace(out.Providers.LinkedIn.Host)
	out.Providers.ActiveJobs.Host = strings.TrimSpace(out.Providers.ActiveJobs.Host)

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	if out.Search.DefaultLimit <= 0 {
		res.addErr("search.default_limit must be > 0")
	}
	if out.Search.MaxPages <= 0 {
		res.addErr("search.max_pages must be > 0")
	} else if out.Search.MaxPages > 10 {
		res.addWarn("search.max_pages is high (%d); SerpAPI quota burns fast.", out.Search.MaxPages)
	}
	if out.Search.PageDelaySeconds < 0 {
		res.addErr("search.page_delay_seconds must be >= 0")
	} else if out.Search.PageDelaySeconds == 0 {
		res.addWarn("search.page_delay_seconds is 0; continuation calls will not be paced.")
	}

	if !out.Providers.SerpAPI.Enabled && !out.Providers.LinkedIn.Enabled && !out.Providers.ActiveJobs.Enabled {
		res.addErr("no providers enabled: enable serpapi, linkedin, or active_jobs")
	}
	if out.Providers.LinkedIn.Enabled && out.Providers.LinkedIn.Host == "" {
		res.addErr("providers.linkedin.host is required when providers.linkedin.enabled=true")
	}
	if out.Providers.ActiveJobs.Enabled && out.Providers.ActiveJobs.Host == "" {
		res.addErr("providers.active_jobs.host is required when providers.active_jobs.enabled=true")
	}

	return out, res
}

// Validate is the startup-time check; SaveAtomic also runs it.
func Validate(cfg Config) error {
	_, vr := NormalizeAndValidate(cfg)
	if vr.OK() {
		return nil
	}
	return errors.New("config validation failed:\n- " + strings.Join(vr.Errors, "\n- "))
}
