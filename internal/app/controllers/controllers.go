// Package controllers handles HTTP request handling
package controllers

import (
	"strconv"

	"github.com/yigit/schooladmin/internal/pkg/apperrors"
)

// Notification texts shared by the HTML and JSON controllers.
const (
	msgStudentCreated   = "Student created successfully"
	msgStudentUpdated   = "Student updated successfully"
	msgLoggedIn         = "Logged in successfully"
	msgAccountCreated   = "Account created successfully"
	msgNoStudents       = "No students to export"
	msgFiltersSoon      = "Filters coming soon"
	msgLoadFailed       = "Failed to load students"
	msgLoadOneFailed    = "Failed to load student"
	msgCreateFailed     = "Creation failed"
	msgUpdateFailed     = "Update failed"
	msgLoginFailed      = "Login failed. Please try again."
	msgSignupFailed     = "Signup failed"
	msgStudentsExported = "Students exported"
)

// parseStudentID reads a positive numeric student identifier.
func parseStudentID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrInvalidStudentID
	}
	return id, nil
}
