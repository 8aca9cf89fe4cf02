package dto

import (
	"github.com/yigit/schooladmin/internal/app/forms"
	"github.com/yigit/schooladmin/internal/app/models"
)

// StudentRequest is the body of create and update calls.
type StudentRequest struct {
	forms.StudentValues
}

// StudentResponse is one student as returned by the JSON API
type StudentResponse struct {
	models.Student
	FullName   string `json:"fullName" example:"Ana Lopez"`
	Initials   string `json:"initials" example:"AL"`
	ClassLabel string `json:"classLabel" example:"10 - Sec A"`
	Active     bool   `json:"active" example:"true"`
}

// NewStudentResponse adds the derived presentation fields
func NewStudentResponse(s *models.Student) StudentResponse {
	return StudentResponse{
		Student:    *s,
		FullName:   s.DisplayName(),
		Initials:   s.Initials(),
		ClassLabel: s.ClassLabel(),
		Active:     s.IsActive(),
	}
}

// NewStudentResponses converts a page of students
func NewStudentResponses(students []models.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(students))
	for i := range students {
		out = append(out, NewStudentResponse(&students[i]))
	}
	return out
}

// ValidateStudentRequest carries a partially filled form and the fields the
// user has already left.
type ValidateStudentRequest struct {
	Values  forms.StudentValues `json:"values"`
	Touched []string            `json:"touched" example:"firstName,lastName"`
}

// ValidateStudentResponse lists the messages of the touched fields only
type ValidateStudentResponse struct {
	Valid  bool              `json:"valid" example:"false"`
	Errors map[string]string `json:"errors"`
}
