package services

import (
	"strings"

	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/pkg/helpers"
)

// StudentPageSize is the fixed number of rows per list page.
const StudentPageSize = 10

// FilterStudents returns the students matching term. A student matches when
// the lowercased, trimmed term is a substring of its full name, identifier,
// roll number, "class section" or mobile number. A blank term returns
// students itself; the input is never modified.
func FilterStudents(students []models.Student, term string) []models.Student {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return students
	}

	matched := make([]models.Student, 0, len(students))
	for i := range students {
		if studentMatches(&students[i], term) {
			matched = append(matched, students[i])
		}
	}
	return matched
}

func studentMatches(s *models.Student, term string) bool {
	fullName := strings.ToLower(s.FullName())
	classSection := strings.ToLower(s.Class) + " " + strings.ToLower(s.Section)

	return strings.Contains(fullName, term) ||
		strings.Contains(strings.ToLower(s.IDString()), term) ||
		strings.Contains(strings.ToLower(s.RollNumber), term) ||
		strings.Contains(classSection, term) ||
		strings.Contains(strings.ToLower(s.MobileNumber), term)
}

// PageOf returns the rows of the requested page and its window. The page is
// clamped into range first.
func PageOf(students []models.Student, page int) ([]models.Student, helpers.PageWindow) {
	w := helpers.Paginate(len(students), page, StudentPageSize)
	return students[w.Start:w.End], w
}
