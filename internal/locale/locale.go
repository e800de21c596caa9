// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

// Package locale defines the supported site locales and the locale-aware
// content picker used for bilingual database fields.
package locale

// Supported lists the site locales in display order.
var Supported = []string{"en", "de"}

// Default is the locale used when none is given in the URL.
const Default = "de"

// German is the locale code that triggers German content selection.
const German = "de"

// Names maps locale codes to their native display names.
var Names = map[string]string{
	"en": "English",
	"de": "Deutsch",
}

// IsSupported reports whether code is one of the supported locales.
// Matching is exact: "EN", "en-US" and "" are all rejected, the caller
// is expected to answer with a 404 rather than coerce the value.
func IsSupported(code string) bool {
	for _, l := range Supported {
		if l == code {
			return true
		}
	}
	return false
}

// Pick returns the German value when the active locale is German and a
// German value exists; in every other case it returns the English value.
// English is the unconditional fallback for content fields.
func Pick(valueEn, valueDe, loc string) string {
	if loc == German && valueDe != "" {
		return valueDe
	}
	return valueEn
}
