package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/schooladmin/internal/app/forms"
	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/app/repositories"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
	"github.com/yigit/schooladmin/internal/pkg/csvexport"
	"github.com/yigit/schooladmin/internal/pkg/helpers"
	"github.com/yigit/schooladmin/internal/pkg/validation"
)

// StudentPage is one rendered page of the student directory.
type StudentPage struct {
	Term     string
	Loaded   int
	Students []models.Student
	Window   helpers.PageWindow
}

// StudentService defines the interface for student-related operations
type StudentService interface {
	ListStudents(ctx context.Context) ([]models.Student, error)
	Browse(ctx context.Context, term string, page int) (*StudentPage, error)
	GetStudent(ctx context.Context, studentID int64) (*models.Student, error)
	CreateStudent(ctx context.Context, values forms.StudentValues) (*models.Student, error)
	UpdateStudent(ctx context.Context, studentID int64, values forms.StudentValues) (*models.Student, error)
	ExportCSV(ctx context.Context) ([]byte, int, error)
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	studentRepo repositories.IStudentRepository
	logger      zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo repositories.IStudentRepository, logger zerolog.Logger) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// ListStudents fetches the whole collection once.
func (s *studentServiceImpl) ListStudents(ctx context.Context) ([]models.Student, error) {
	students, err := s.studentRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load students")
		return nil, err
	}
	return students, nil
}

// Browse loads the collection, filters it by term and returns the requested page.
func (s *studentServiceImpl) Browse(ctx context.Context, term string, page int) (*StudentPage, error) {
	students, err := s.ListStudents(ctx)
	if err != nil {
		return nil, err
	}

	filtered := FilterStudents(students, term)
	rows, window := PageOf(filtered, page)

	return &StudentPage{
		Term:     term,
		Loaded:   len(students),
		Students: rows,
		Window:   window,
	}, nil
}

// GetStudent fetches one record by identifier.
func (s *studentServiceImpl) GetStudent(ctx context.Context, studentID int64) (*models.Student, error) {
	if studentID <= 0 {
		return nil, apperrors.ErrInvalidStudentID
	}
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("studentId", studentID).Msg("Failed to load student")
		return nil, err
	}
	return student, nil
}

// CreateStudent validates the values and creates the record.
func (s *studentServiceImpl) CreateStudent(ctx context.Context, values forms.StudentValues) (*models.Student, error) {
	if err := validation.NewError(validation.Struct(values)); err != nil {
		return nil, err
	}

	created, err := s.studentRepo.Create(ctx, values.Student(0))
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to create student")
		return nil, err
	}

	s.logger.Info().Int64("studentId", created.StudentID).Msg("Student created")
	return created, nil
}

// UpdateStudent validates the values and replaces the record.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, studentID int64, values forms.StudentValues) (*models.Student, error) {
	if studentID <= 0 {
		return nil, apperrors.ErrInvalidStudentID
	}
	if err := validation.NewError(validation.Struct(values)); err != nil {
		return nil, err
	}

	updated, err := s.studentRepo.Update(ctx, values.Student(studentID))
	if err != nil {
		s.logger.Error().Err(err).Int64("studentId", studentID).Msg("Failed to update student")
		return nil, err
	}

	s.logger.Info().Int64("studentId", studentID).Msg("Student updated")
	return updated, nil
}

// ExportCSV loads the unfiltered collection and encodes it. An empty
// collection yields apperrors.ErrNoStudents and no data.
func (s *studentServiceImpl) ExportCSV(ctx context.Context) ([]byte, int, error) {
	students, err := s.ListStudents(ctx)
	if err != nil {
		return nil, 0, err
	}
	if len(students) == 0 {
		return nil, 0, apperrors.ErrNoStudents
	}

	var buf bytes.Buffer
	if err := csvexport.Write(&buf, students); err != nil {
		return nil, 0, fmt.Errorf("encode export: %w", err)
	}
	return buf.Bytes(), len(students), nil
}
