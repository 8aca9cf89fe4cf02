// Package csvexport writes student exports. Every data field is quoted, which
// encoding/csv cannot be told to do, so records are encoded here directly.
package csvexport

import (
	"bytes"
	"io"
	"strings"

	"github.com/yigit/schooladmin/internal/app/models"
)

const (
	// FileName is the download name of an export.
	FileName = "students.csv"
	// ContentType is the media type of an export.
	ContentType = "text/csv; charset=utf-8"
)

// Header is the fixed column order of an export.
var Header = []string{
	"studentId",
	"firstName",
	"lastName",
	"class",
	"section",
	"rollNumber",
	"mobileNumber",
	"status",
}

// Row returns the export columns of s in Header order.
func Row(s *models.Student) []string {
	return []string{
		s.IDString(),
		s.FirstName,
		s.LastName,
		s.Class,
		s.Section,
		s.RollNumber,
		s.MobileNumber,
		s.Status,
	}
}

// Quote wraps v in double quotes and doubles any quote inside it.
func Quote(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// Write encodes the header and one line per student, separated by "\n"
// without a trailing newline.
func Write(w io.Writer, students []models.Student) error {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(Header, ","))

	for i := range students {
		buf.WriteByte('\n')
		for j, field := range Row(&students[i]) {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(Quote(field))
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// Encode returns the export as bytes.
func Encode(students []models.Student) []byte {
	var buf bytes.Buffer
	_ = Write(&buf, students)
	return buf.Bytes()
}
