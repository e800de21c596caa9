// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n provides the static translation dictionaries for the site UI.
// Each supported locale has one embedded JSON file with nested message trees
// addressed by dotted key paths.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/avenra/website/internal/locale"
)

//go:embed locales
var localesFS embed.FS

// Params holds named substitution values for message placeholders.
type Params map[string]any

// Catalog holds the fully-loaded dictionaries for all supported locales.
// It is built once at process start and never mutated afterwards.
type Catalog struct {
	dictionaries map[string]map[string]any // locale -> nested message tree
}

// catalog is the global catalog instance.
var catalog *Catalog

// Init loads the embedded dictionaries for all supported locales.
func Init(logger *slog.Logger) error {
	c := &Catalog{dictionaries: make(map[string]map[string]any)}

	for _, loc := range locale.Supported {
		path := fmt.Sprintf("locales/%s.json", loc)
		data, err := localesFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		var dict map[string]any
		if err := json.Unmarshal(data, &dict); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		c.dictionaries[loc] = dict
	}

	catalog = c

	if logger != nil {
		logger.Info("i18n dictionaries loaded", "locales", locale.Supported)
	}
	return nil
}

// T resolves a dotted key path against the dictionary for the given locale.
// A missing locale or missing path segment returns the key itself unchanged.
// Non-string leaves are serialized to JSON so structured consumers can
// re-parse them. Placeholders of the form {name} are replaced from params;
// unmatched placeholders stay in place. There is no cross-locale fallback:
// a key absent from the German dictionary does not fall back to English.
func T(loc, key string, params ...Params) string {
	if catalog == nil {
		return key
	}

	dict, ok := catalog.dictionaries[loc]
	if !ok {
		return key
	}

	value, ok := resolve(dict, key)
	if !ok {
		return key
	}

	for _, p := range params {
		value = substitute(value, p)
	}
	return value
}

// resolve walks a dotted path through the nested message tree. Numeric
// segments index into arrays, so "services.items.1.title" addresses the
// second entry of the items list.
func resolve(dict map[string]any, key string) (string, bool) {
	var current any = dict
	for _, segment := range strings.Split(key, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return "", false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return "", false
			}
			current = node[idx]
		default:
			return "", false
		}
	}

	if s, ok := current.(string); ok {
		return s, true
	}

	// Arrays and objects are handed back as JSON for callers that expect
	// structured data (e.g. feature lists rendered by templates).
	data, err := json.Marshal(current)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// substitute replaces each {name} placeholder with its value from params.
func substitute(value string, params Params) string {
	for name, v := range params {
		value = strings.ReplaceAll(value, "{"+name+"}", fmt.Sprint(v))
	}
	return value
}
