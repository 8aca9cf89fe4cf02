package models

// Gender is one of the values offered by the student form.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Genders lists the selectable genders in display order.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// StudentStatus is the enrollment status of a student.
type StudentStatus string

const (
	StatusActive   StudentStatus = "Active"
	StatusInactive StudentStatus = "Inactive"
)

// Statuses lists the selectable statuses in display order.
var Statuses = []StudentStatus{StatusActive, StatusInactive}

// RoleType defines the user role type as the backend names it
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleAdmin   RoleType = "admin"
)

// DateLayout is the calendar date format exchanged with the backend and the date inputs.
const DateLayout = "2006-01-02"
