// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// TeamMember is a person shown on the about page. SortOrder is the display
// sort key (ascending); hidden members never appear on public pages.
type TeamMember struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Position  string    `json:"position"`
	ImageURL  string    `json:"image_url"`
	SortOrder int64     `json:"sort_order"`
	Visible   bool      `json:"visible"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
