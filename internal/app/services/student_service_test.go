package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yigit/schooladmin/internal/app/forms"
	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
	"github.com/yigit/schooladmin/internal/pkg/validation"
)

type fakeStudentRepo struct {
	students []models.Student
	err      error
	created  []*models.Student
	updated  []*models.Student
}

func (f *fakeStudentRepo) List(context.Context) ([]models.Student, error) {
	return f.students, f.err
}

func (f *fakeStudentRepo) GetByID(_ context.Context, id int64) (*models.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.students {
		if f.students[i].StudentID == id {
			s := f.students[i]
			return &s, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentRepo) Create(_ context.Context, s *models.Student) (*models.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, s)
	out := *s
	out.StudentID = 500
	return &out, nil
}

func (f *fakeStudentRepo) Update(_ context.Context, s *models.Student) (*models.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updated = append(f.updated, s)
	return s, nil
}

func validStudentValues() forms.StudentValues {
	return forms.StudentValues{
		FirstName:     "Ana",
		LastName:      "Silva",
		Gender:        "Female",
		DateOfBirth:   "2008-04-11",
		MobileNumber:  "9876543210",
		Address:       "12 Park Street",
		Class:         "1st year",
		Section:       "A",
		RollNumber:    "bca101",
		AdmissionDate: "2024-06-01",
		Status:        "Active",
	}
}

func TestBrowseFiltersThenPages(t *testing.T) {
	repo := &fakeStudentRepo{}
	for i := 0; i < 15; i++ {
		repo.students = append(repo.students, models.Student{StudentID: int64(i + 1), FirstName: "Ana"})
	}
	repo.students = append(repo.students, models.Student{StudentID: 99, FirstName: "Ben"})

	svc := NewStudentService(repo, zerolog.Nop())
	page, err := svc.Browse(context.Background(), "ana", 2)
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if page.Loaded != 16 {
		t.Fatalf("expected 16 loaded, got %d", page.Loaded)
	}
	if page.Window.Total != 15 || len(page.Students) != 5 || page.Window.Page != 2 {
		t.Fatalf("unexpected page: total=%d rows=%d page=%d", page.Window.Total, len(page.Students), page.Window.Page)
	}
}

func TestCreateRejectsInvalidValuesWithoutBackendCall(t *testing.T) {
	repo := &fakeStudentRepo{}
	svc := NewStudentService(repo, zerolog.Nop())

	values := validStudentValues()
	values.FirstName = ""
	_, err := svc.CreateStudent(context.Background(), values)

	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Fields["firstName"] != "First name is required" {
		t.Fatalf("unexpected field errors %v", verr.Fields)
	}
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected error to match ErrValidationFailed")
	}
	if len(repo.created) != 0 {
		t.Fatalf("expected no backend call, got %d", len(repo.created))
	}
}

func TestUpdateSendsIdentifier(t *testing.T) {
	repo := &fakeStudentRepo{}
	svc := NewStudentService(repo, zerolog.Nop())

	if _, err := svc.UpdateStudent(context.Background(), 42, validStudentValues()); err != nil {
		t.Fatalf("UpdateStudent: %v", err)
	}
	if len(repo.updated) != 1 || repo.updated[0].StudentID != 42 {
		t.Fatalf("expected update of 42, got %+v", repo.updated)
	}

	if _, err := svc.UpdateStudent(context.Background(), 0, validStudentValues()); !errors.Is(err, apperrors.ErrInvalidStudentID) {
		t.Fatalf("expected ErrInvalidStudentID, got %v", err)
	}
}

func TestExportEmptyCollection(t *testing.T) {
	svc := NewStudentService(&fakeStudentRepo{students: []models.Student{}}, zerolog.Nop())

	data, n, err := svc.ExportCSV(context.Background())
	if !errors.Is(err, apperrors.ErrNoStudents) {
		t.Fatalf("expected ErrNoStudents, got %v", err)
	}
	if data != nil || n != 0 {
		t.Fatalf("expected no data, got %d bytes", len(data))
	}
}

func TestExportUsesWholeCollection(t *testing.T) {
	repo := &fakeStudentRepo{students: sampleStudents()}
	svc := NewStudentService(repo, zerolog.Nop())

	data, n, err := svc.ExportCSV(context.Background())
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 exported, got %d", n)
	}
	if lines := strings.Split(string(data), "\n"); len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
}

func TestLoadFailurePropagates(t *testing.T) {
	boom := &apperrors.GraphQLError{Errors: []apperrors.GraphQLMessage{{Message: "Database offline"}}}
	svc := NewStudentService(&fakeStudentRepo{err: boom}, zerolog.Nop())

	if _, err := svc.Browse(context.Background(), "", 1); !errors.Is(err, apperrors.ErrGraphQL) {
		t.Fatalf("expected graphql error, got %v", err)
	}
}
