package i18n

import "strings"

// ResolveLocale picks a locale from a raw Accept-Language header.
//
// Entries are scanned in header order and the first one starting with a
// configured prefix wins. Quality values are stripped, not sorted:
//
//	ResolveLocale("", cfg)                          // kr
//	ResolveLocale("en-US,en;q=0.9", cfg)            // en
//	ResolveLocale("ko-KR,ko;q=0.9,en;q=0.8", cfg)   // en
//	ResolveLocale("ja,fr", cfg)                     // kr
func ResolveLocale(header string, cfg Config) Locale {
	if strings.TrimSpace(header) == "" || len(cfg.Prefixes) == 0 {
		return cfg.Default
	}

	for entry := range strings.SplitSeq(header, ",") {
		tag, _, _ := strings.Cut(entry, ";")
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}

		// Locales order keeps the scan deterministic when prefixes overlap.
		for _, l := range cfg.Locales {
			prefix, ok := cfg.Prefixes[l]
			if !ok || prefix == "" {
				continue
			}
			if strings.HasPrefix(tag, strings.ToLower(prefix)) {
				return l
			}
		}
	}

	return cfg.Default
}
