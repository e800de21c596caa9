// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
	"time"
)

// SecurityTxtConfig holds configuration for security.txt (RFC 9116).
type SecurityTxtConfig struct {
	// Contact is where vulnerabilities should be reported, as a mailto:
	// or https: URI.
	Contact string

	// Expires marks the file stale after this date. Zero means one year
	// from now.
	Expires time.Time

	// PreferredLanguages lists the languages the security contact speaks.
	PreferredLanguages string

	// Canonical is the canonical URL for this security.txt file.
	Canonical string
}

// GenerateSecurityTxt builds the security.txt content.
func GenerateSecurityTxt(cfg SecurityTxtConfig) string {
	var sb strings.Builder

	if cfg.Contact != "" {
		sb.WriteString("Contact: ")
		sb.WriteString(cfg.Contact)
		sb.WriteString("\n")
	}

	expires := cfg.Expires
	if expires.IsZero() {
		expires = time.Now().AddDate(1, 0, 0)
	}
	sb.WriteString("Expires: ")
	sb.WriteString(expires.Format(time.RFC3339))
	sb.WriteString("\n")

	if cfg.PreferredLanguages != "" {
		sb.WriteString("Preferred-Languages: ")
		sb.WriteString(cfg.PreferredLanguages)
		sb.WriteString("\n")
	}

	if cfg.Canonical != "" {
		sb.WriteString("Canonical: ")
		sb.WriteString(cfg.Canonical)
		sb.WriteString("\n")
	}

	return sb.String()
}
