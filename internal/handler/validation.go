// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/mail"
	"strings"

	"github.com/avenra/website/internal/util"
)

// SlugExistsFunc is a function type for checking if a slug exists.
// Returns count of matching slugs and any error.
type SlugExistsFunc func() (int64, error)

// ValidateSlugWithChecker validates a slug using a custom existence checker.
// Returns an error message string if validation fails, or empty string if valid.
func ValidateSlugWithChecker(slug string, checkExists SlugExistsFunc) string {
	if slug == "" {
		return "Slug is required"
	}
	if !util.IsValidSlug(slug) {
		return "Invalid slug format (use lowercase letters, numbers, and hyphens)"
	}
	exists, err := checkExists()
	if err != nil {
		slog.Error("database error checking slug", "error", err)
		return "Error checking slug"
	}
	if exists != 0 {
		return "Slug already exists"
	}
	return ""
}

// ValidateSlugForUpdate validates a slug for update operations.
// Skips validation if the slug hasn't changed from the current value.
func ValidateSlugForUpdate(slug, currentSlug string, checkExists SlugExistsFunc) string {
	if slug == currentSlug {
		return ""
	}
	return ValidateSlugWithChecker(slug, checkExists)
}

// Maximum field lengths for contact form submissions.
const (
	maxContactFieldLen   = 200
	maxContactMessageLen = 10000
)

// ContactInput holds the raw fields of a contact form submission before
// validation. Both the HTML form and the JSON API fill this in.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Trim strips surrounding whitespace from all fields.
func (in *ContactInput) Trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Company = strings.TrimSpace(in.Company)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
}

// ValidateContactInput checks required fields, email format and field
// lengths. Returns a map of field name to error message; an empty map
// means the input is valid.
func ValidateContactInput(in ContactInput) map[string]string {
	errs := make(map[string]string)

	if in.Name == "" {
		errs["name"] = "Name is required"
	} else if len(in.Name) > maxContactFieldLen {
		errs["name"] = "Name is too long"
	}

	if in.Email == "" {
		errs["email"] = "Email is required"
	} else if len(in.Email) > maxContactFieldLen {
		errs["email"] = "Email is too long"
	} else if _, err := mail.ParseAddress(in.Email); err != nil {
		errs["email"] = "Invalid email address"
	}

	if in.Subject == "" {
		errs["subject"] = "Subject is required"
	} else if len(in.Subject) > maxContactFieldLen {
		errs["subject"] = "Subject is too long"
	}

	if in.Message == "" {
		errs["message"] = "Message is required"
	} else if len(in.Message) > maxContactMessageLen {
		errs["message"] = "Message is too long"
	}

	if len(in.Phone) > maxContactFieldLen {
		errs["phone"] = "Phone is too long"
	}
	if len(in.Company) > maxContactFieldLen {
		errs["company"] = "Company is too long"
	}

	return errs
}
