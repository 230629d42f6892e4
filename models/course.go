// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Course is a catalog entry managed by administrators.
type Course struct {
	// ID is assigned by the store on first persist.
	ID int64 `json:"id"`

	// Title is unique across all courses.
	Title string `json:"title"`

	Description string `json:"description"`

	// DurationInHours and Fees are optional; nil means "not specified".
	DurationInHours *int     `json:"durationInHours,omitempty"`
	Instructor      string   `json:"instructor,omitempty"`
	Fees            *float64 `json:"fees,omitempty"`

	// Version is the optimistic version, incremented by the store on every update.
	Version int64 `json:"version"`

	// CreatedBy and UpdatedBy hold the username of the acting principal.
	CreatedBy   string     `json:"createdBy"`
	CreatedDate time.Time  `json:"createdDate"`
	UpdatedBy   string     `json:"updatedBy,omitempty"`
	UpdatedDate *time.Time `json:"updatedDate,omitempty"`
}

// TableName returns the name of the database table
// associated with the Course model.
func (c Course) TableName() string {
	return "courses"
}
