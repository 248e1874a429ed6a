package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// bibliographic maps ISO 639-2/T codes to the /B variants that Matroska and most
// muxers write into stream tags
var bibliographic = map[string]string{
	"sqi": "alb", "hye": "arm", "eus": "baq", "mya": "bur", "zho": "chi",
	"ces": "cze", "nld": "dut", "fra": "fre", "kat": "geo", "deu": "ger",
	"ell": "gre", "isl": "ice", "mkd": "mac", "mri": "mao", "msa": "may",
	"fas": "per", "ron": "rum", "slk": "slo", "bod": "tib", "cym": "wel",
}

// NormalizeLanguage turns "en", "EN" or "eng" into the three-letter code used in
// stream language tags. Two-letter codes are expanded, three-letter codes are validated.
func NormalizeLanguage(s string) (string, error) {
	code := strings.ToLower(strings.TrimSpace(s))
	if code == "" {
		return "", fmt.Errorf("empty language code")
	}
	if isBibliographic(code) {
		return code, nil
	}

	base, err := language.ParseBase(code)
	if err != nil {
		return "", fmt.Errorf("unknown language %q: %w", s, err)
	}

	if len(code) == 3 {
		// keep what the user wrote; "fre" and "fra" are both valid tags
		return code, nil
	}

	iso3 := base.ISO3()
	if b, ok := bibliographic[iso3]; ok {
		return b, nil
	}
	return iso3, nil
}

func isBibliographic(code string) bool {
	for _, b := range bibliographic {
		if b == code {
			return true
		}
	}
	return false
}
