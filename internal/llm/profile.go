package llm

import "github.com/CodexForgeBR/casegen/internal/config"

// ResolveSettings returns the effective settings for module.
//
// The module's own llm_modules entry is used, falling back to the "default"
// entry. An inline mapping is merged over base. A string names a profile in
// profiles that is merged over base; if no such profile exists the string is
// taken as a model name. Without any entry base is returned unchanged.
//
// An override that switches provider without its own api_key or base_url
// does not inherit base's: the key falls back to the new provider's
// environment variable and the endpoint to the provider default.
func ResolveSettings(base config.LLMSettings, profiles map[string]config.LLMSettings, modules map[string]config.ModuleBinding, module string) config.LLMSettings {
	if len(modules) == 0 {
		return base
	}

	binding, ok := modules[module]
	if !ok || module == "" {
		binding, ok = modules["default"]
	}
	if !ok {
		return base
	}

	if binding.Inline != nil {
		return mergeOverride(base, *binding.Inline)
	}
	if binding.Profile == "" {
		return base
	}
	if profile, ok := profiles[binding.Profile]; ok {
		return mergeOverride(base, profile)
	}
	resolved := base
	resolved.Model = binding.Profile
	return resolved
}

func mergeOverride(base, o config.LLMSettings) config.LLMSettings {
	merged := base.Merge(o)
	if merged.Provider == base.Provider {
		return merged
	}
	if o.APIKey == "" {
		merged.APIKey = config.DefaultAPIKey(merged.Provider)
	}
	if o.BaseURL == "" {
		merged.BaseURL = ""
	}
	return merged
}
