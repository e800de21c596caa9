// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateContactInput(t *testing.T) {
	valid := ContactInput{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Subject: "Question",
		Message: "Hello there",
	}

	tests := []struct {
		name    string
		mutate  func(*ContactInput)
		wantErr string
	}{
		{"valid", func(in *ContactInput) {}, ""},
		{"missing name", func(in *ContactInput) { in.Name = "" }, "name"},
		{"missing email", func(in *ContactInput) { in.Email = "" }, "email"},
		{"bad email", func(in *ContactInput) { in.Email = "not-an-email" }, "email"},
		{"missing subject", func(in *ContactInput) { in.Subject = "" }, "subject"},
		{"missing message", func(in *ContactInput) { in.Message = "" }, "message"},
		{"name too long", func(in *ContactInput) { in.Name = strings.Repeat("x", 201) }, "name"},
		{"message too long", func(in *ContactInput) { in.Message = strings.Repeat("x", 10001) }, "message"},
		{"phone too long", func(in *ContactInput) { in.Phone = strings.Repeat("1", 201) }, "phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			errs := ValidateContactInput(in)
			if tt.wantErr == "" {
				if len(errs) != 0 {
					t.Errorf("expected no errors, got %v", errs)
				}
				return
			}
			if _, ok := errs[tt.wantErr]; !ok {
				t.Errorf("expected error for field %q, got %v", tt.wantErr, errs)
			}
		})
	}
}

func TestValidateContactInput_OptionalFields(t *testing.T) {
	in := ContactInput{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Subject: "Question",
		Message: "Hello",
		Phone:   "+41 44 123 45 67",
		Company: "Avenra GmbH",
	}
	if errs := ValidateContactInput(in); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestContactInput_Trim(t *testing.T) {
	in := ContactInput{Name: "  Visitor  ", Email: " a@b.ch ", Subject: "\tHi", Message: "msg\n"}
	in.Trim()
	if in.Name != "Visitor" || in.Email != "a@b.ch" || in.Subject != "Hi" || in.Message != "msg" {
		t.Errorf("Trim left whitespace: %+v", in)
	}
}

func TestValidateSlugWithChecker(t *testing.T) {
	none := func() (int64, error) { return 0, nil }
	taken := func() (int64, error) { return 1, nil }
	failing := func() (int64, error) { return 0, errors.New("boom") }

	if msg := ValidateSlugWithChecker("hello-world", none); msg != "" {
		t.Errorf("valid slug rejected: %q", msg)
	}
	if msg := ValidateSlugWithChecker("", none); msg == "" {
		t.Error("empty slug accepted")
	}
	if msg := ValidateSlugWithChecker("Bad Slug!", none); msg == "" {
		t.Error("invalid format accepted")
	}
	if msg := ValidateSlugWithChecker("hello-world", taken); msg != "Slug already exists" {
		t.Errorf("duplicate slug: got %q", msg)
	}
	if msg := ValidateSlugWithChecker("hello-world", failing); msg != "Error checking slug" {
		t.Errorf("checker error: got %q", msg)
	}
}

func TestValidateSlugForUpdate_UnchangedSkipsCheck(t *testing.T) {
	called := false
	check := func() (int64, error) {
		called = true
		return 1, nil
	}
	if msg := ValidateSlugForUpdate("same", "same", check); msg != "" {
		t.Errorf("unchanged slug rejected: %q", msg)
	}
	if called {
		t.Error("existence check ran for unchanged slug")
	}
}
