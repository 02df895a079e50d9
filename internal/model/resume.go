// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// WorkHistory represents one entry of the public résumé timeline.
// Skills and Achievements are ordered lists; DisplayOrder controls manual
// sort order independent of creation time.
type WorkHistory struct {
	ID           int64     `json:"id"`
	Period       string    `json:"period"`
	Company      string    `json:"company"`
	Role         string    `json:"role"`
	Skills       []string  `json:"skills"`
	Description  string    `json:"description"`
	Achievements []string  `json:"achievements"`
	DisplayOrder int64     `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ContactLink represents a labeled external link shown on the public site.
type ContactLink struct {
	ID           int64     `json:"id"`
	Label        string    `json:"label"`
	Href         string    `json:"href"`
	DisplayOrder int64     `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
