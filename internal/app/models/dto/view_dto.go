package dto

import (
	"net/url"
	"strconv"

	"github.com/yigit/schooladmin/internal/app/forms"
	"github.com/yigit/schooladmin/internal/app/models"
)

// StudentListView is the data of the student directory page
type StudentListView struct {
	Term       string
	Rows       []StudentResponse
	Pagination PaginationInfo
	Loaded     int
}

// PageURL links to page p of the current search.
func (v StudentListView) PageURL(p int) string {
	q := url.Values{}
	if v.Term != "" {
		q.Set("q", v.Term)
	}
	q.Set("page", strconv.Itoa(p))
	return "/students?" + q.Encode()
}

// StudentFormView is the data of the create and edit pages
type StudentFormView struct {
	Form     *forms.StudentForm
	Action   string
	Loading  bool
	Genders  []models.Gender
	Statuses []models.StudentStatus
}

// NewStudentFormView prepares a form for rendering
func NewStudentFormView(form *forms.StudentForm, action string) StudentFormView {
	return StudentFormView{
		Form:     form,
		Action:   action,
		Genders:  models.Genders,
		Statuses: models.Statuses,
	}
}

// SubmitLabel is the caption of the submit button for the form's state.
func (v StudentFormView) SubmitLabel() string {
	if v.Form != nil && v.Form.Saving() {
		return "Saving..."
	}
	if v.Form != nil && v.Form.IsEdit() {
		return "Update Student"
	}
	return "Create Student"
}

// AuthFormView is the data of the login and signup pages
type AuthFormView struct {
	Email     string
	FirstName string
	LastName  string
	Errors    map[string]string
	Error     string
}
