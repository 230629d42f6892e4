// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-visible message strings shared by the course
// catalog services and HTML handlers.
//
// Keeping them in one place ensures consistent wording across forms, flash
// messages and error views.
package app

// Field errors added after structural validation.
const (
	MsgEmailAlreadyExists       = "Email already exists"
	MsgUsernameAlreadyExists    = "Username already exists"
	MsgCourseTitleAlreadyExists = "Course title already exists"
	MsgPasswordTooShort         = "Password must be at least 6 characters"
)

// Authentication.
const (
	// MsgInvalidCredentials is shown for every failed login, whatever the
	// reason, so that unknown users cannot be told apart from bad passwords.
	MsgInvalidCredentials = "Invalid username or password."

	MsgLoggedOut = "You have been logged out successfully."
)

// Flash message formats. The %s verb receives a course title or a full name.
const (
	MsgUserRegistered = "User has been registered successfully with username: %s"
	MsgUserUpdated    = "User updated successfully"
	MsgUserDeleted    = "User deleted successfully"

	MsgCourseCreated = "Course '%s' created successfully!"
	MsgCourseUpdated = "Course '%s' updated successfully!"
	MsgCourseDeleted = "Course '%s' deleted successfully!"
	MsgEnrolled      = "Enrollment request for '%s' received."

	MsgCourseNotFoundForUpdate = "Course not found. Update failed."
	MsgCourseNotFoundForDelete = "Course not found for deletion."
)

// Error views.
const (
	MsgNotFound            = "The page you are looking for does not exist."
	MsgCourseNotFound      = "Course not found."
	MsgUserNotFound        = "User not found."
	MsgForbidden           = "You do not have permission to access this page."
	MsgStaleWrite          = "This record was changed by someone else. Please reload it and try again."
	MsgBadRequest          = "The request could not be understood."
	MsgInternalServerError = "Something went wrong."
)
