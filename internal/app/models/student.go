package models

import (
	"strconv"
	"strings"
)

// Student is a student record as the backend returns it. StudentID is
// assigned by the backend on creation and never changes afterwards.
type Student struct {
	StudentID     int64  `json:"studentId" example:"42"`
	FirstName     string `json:"firstName" example:"Ana"`
	LastName      string `json:"lastName" example:"Silva"`
	Gender        string `json:"gender" example:"Female"`
	DateOfBirth   string `json:"dateOfBirth" example:"2008-04-11"`
	MobileNumber  string `json:"mobileNumber" example:"9876543210"`
	Address       string `json:"address" example:"12 Park Street"`
	Class         string `json:"class" example:"1st year"`
	Section       string `json:"section" example:"A"`
	RollNumber    string `json:"rollNumber" example:"bca101"`
	AdmissionDate string `json:"admissionDate" example:"2024-06-01"`
	Status        string `json:"status" example:"Active"`
}

// IDString is the identifier as users type it into the search box.
func (s *Student) IDString() string {
	return strconv.FormatInt(s.StudentID, 10)
}

// FullName joins first and last name with a space.
func (s *Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// DisplayName is FullName with a placeholder for nameless records.
func (s *Student) DisplayName() string {
	if name := s.FullName(); name != "" {
		return name
	}
	return "Unnamed Student"
}

// Initials returns the upper-cased first letter of each name part, or "ST".
func (s *Student) Initials() string {
	var b strings.Builder
	for _, part := range strings.Fields(s.FullName()) {
		r := []rune(part)
		b.WriteRune(r[0])
	}
	if b.Len() == 0 {
		return "ST"
	}
	return strings.ToUpper(b.String())
}

// ClassLabel renders class and section, e.g. "1st year - Sec A".
func (s *Student) ClassLabel() string {
	if s.Class == "" {
		return "N/A"
	}
	if s.Section == "" {
		return s.Class
	}
	return s.Class + " - Sec " + s.Section
}

// IsActive reports whether the status reads "active" in any case.
func (s *Student) IsActive() bool {
	return strings.EqualFold(s.Status, string(StatusActive))
}
