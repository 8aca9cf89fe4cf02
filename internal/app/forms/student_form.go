// Package forms holds the server-side state of the console's forms: values,
// which fields the user has touched, validation results and the submission
// state machine.
package forms

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/pkg/validation"
)

// State is a step of the submission state machine:
// idle -> validating -> submitting -> succeeded, with failures returning to idle.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
)

// ErrInvalidTransition is returned when a form is driven out of order.
var ErrInvalidTransition = errors.New("invalid form state transition")

var transitions = map[State][]State{
	StateIdle:       {StateValidating},
	StateValidating: {StateIdle, StateSubmitting},
	StateSubmitting: {StateIdle, StateSucceeded},
}

// StudentValues are the editable student fields.
type StudentValues struct {
	FirstName     string `form:"firstName" json:"firstName" validate:"notblank" label:"First name"`
	LastName      string `form:"lastName" json:"lastName" validate:"notblank" label:"Last name"`
	Gender        string `form:"gender" json:"gender" validate:"required,oneof=Male Female Other" label:"Gender"`
	DateOfBirth   string `form:"dateOfBirth" json:"dateOfBirth" validate:"required,datetime=2006-01-02" label:"DOB"`
	MobileNumber  string `form:"mobileNumber" json:"mobileNumber" validate:"notblank" label:"Mobile"`
	Address       string `form:"address" json:"address" validate:"notblank" label:"Address"`
	Class         string `form:"class" json:"class" validate:"notblank" label:"Class"`
	Section       string `form:"section" json:"section" validate:"notblank" label:"Section"`
	RollNumber    string `form:"rollNumber" json:"rollNumber" validate:"notblank" label:"Roll number"`
	AdmissionDate string `form:"admissionDate" json:"admissionDate" validate:"required,datetime=2006-01-02" label:"Admission date"`
	Status        string `form:"status" json:"status" validate:"required,oneof=Active Inactive" label:"Status"`
}

// StudentFields lists the form fields in display order.
var StudentFields = []string{
	"firstName", "lastName", "gender", "dateOfBirth", "mobileNumber", "address",
	"class", "section", "rollNumber", "admissionDate", "status",
}

// DefaultStudentValues are the values of an empty create form.
func DefaultStudentValues() StudentValues {
	return StudentValues{Status: string(models.StatusActive)}
}

// ValuesFromStudent copies a record into form values.
func ValuesFromStudent(s *models.Student) StudentValues {
	return StudentValues{
		FirstName:     s.FirstName,
		LastName:      s.LastName,
		Gender:        s.Gender,
		DateOfBirth:   dateOnly(s.DateOfBirth),
		MobileNumber:  s.MobileNumber,
		Address:       s.Address,
		Class:         s.Class,
		Section:       s.Section,
		RollNumber:    s.RollNumber,
		AdmissionDate: dateOnly(s.AdmissionDate),
		Status:        s.Status,
	}
}

// dateOnly reduces a backend timestamp such as "2008-04-11T00:00:00.000Z" to
// the calendar date the date inputs expect. Other values pass through.
func dateOnly(v string) string {
	v = strings.TrimSpace(v)
	if len(v) <= len(models.DateLayout) {
		return v
	}
	if _, err := time.Parse(models.DateLayout, v[:len(models.DateLayout)]); err != nil {
		return v
	}
	return v[:len(models.DateLayout)]
}

// Student converts the values into a record for the given identifier.
func (v StudentValues) Student(studentID int64) *models.Student {
	return &models.Student{
		StudentID:     studentID,
		FirstName:     v.FirstName,
		LastName:      v.LastName,
		Gender:        v.Gender,
		DateOfBirth:   v.DateOfBirth,
		MobileNumber:  v.MobileNumber,
		Address:       v.Address,
		Class:         v.Class,
		Section:       v.Section,
		RollNumber:    v.RollNumber,
		AdmissionDate: v.AdmissionDate,
		Status:        v.Status,
	}
}

// StudentForm is the create or edit form of one student.
type StudentForm struct {
	StudentID   int64
	Values      StudentValues
	SubmitError string

	state   State
	touched map[string]bool
	errors  validation.FieldErrors
}

// NewStudentForm returns an idle create form with default values.
func NewStudentForm() *StudentForm {
	return &StudentForm{
		Values:  DefaultStudentValues(),
		state:   StateIdle,
		touched: map[string]bool{},
	}
}

// EditStudentForm returns an idle form seeded from a loaded record.
func EditStudentForm(s *models.Student) *StudentForm {
	f := &StudentForm{state: StateIdle}
	f.Seed(s)
	return f
}

// Seed replaces the form's values with the record's and forgets any
// interaction, as happens whenever the loaded record changes.
func (f *StudentForm) Seed(s *models.Student) {
	f.StudentID = s.StudentID
	f.Values = ValuesFromStudent(s)
	f.SubmitError = ""
	f.touched = map[string]bool{}
	f.errors = nil
	f.state = StateIdle
}

// IsEdit reports whether the form edits an existing record.
func (f *StudentForm) IsEdit() bool {
	return f.StudentID != 0
}

// State returns the current submission state.
func (f *StudentForm) State() State {
	return f.state
}

// Saving reports whether a submission is in flight.
func (f *StudentForm) Saving() bool {
	return f.state == StateSubmitting
}

func (f *StudentForm) transition(to State) error {
	for _, allowed := range transitions[f.state] {
		if allowed == to {
			f.state = to
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, f.state, to)
}

// Touch marks fields as interacted with.
func (f *StudentForm) Touch(fields ...string) {
	if f.touched == nil {
		f.touched = map[string]bool{}
	}
	for _, name := range fields {
		f.touched[name] = true
	}
}

// TouchAll marks every field, as a submit attempt does.
func (f *StudentForm) TouchAll() {
	f.Touch(StudentFields...)
}

// Touched reports whether the user interacted with field.
func (f *StudentForm) Touched(field string) bool {
	return f.touched[field]
}

// Validate recomputes the field errors and reports whether there are none.
func (f *StudentForm) Validate() bool {
	f.errors = validation.Struct(f.Values)
	return len(f.errors) == 0
}

// Errors returns every current field error, touched or not.
func (f *StudentForm) Errors() validation.FieldErrors {
	return f.errors
}

// VisibleErrors returns the errors of touched fields only.
func (f *StudentForm) VisibleErrors() validation.FieldErrors {
	visible := validation.FieldErrors{}
	for field, msg := range f.errors {
		if f.touched[field] {
			visible[field] = msg
		}
	}
	return visible
}

// Error returns the visible error of field, or "".
func (f *StudentForm) Error(field string) string {
	if !f.touched[field] {
		return ""
	}
	return f.errors[field]
}

// BeginSubmit touches every field and validates. A valid form moves to
// submitting and true is returned; an invalid one returns to idle.
func (f *StudentForm) BeginSubmit() (bool, error) {
	if err := f.transition(StateValidating); err != nil {
		return false, err
	}
	f.SubmitError = ""
	f.TouchAll()

	if !f.Validate() {
		return false, f.transition(StateIdle)
	}
	return true, f.transition(StateSubmitting)
}

// Succeed completes a submission.
func (f *StudentForm) Succeed() error {
	return f.transition(StateSucceeded)
}

// Fail returns a submission to idle with a message for the user; the values
// stay in place for a retry.
func (f *StudentForm) Fail(message string) error {
	f.SubmitError = message
	return f.transition(StateIdle)
}
