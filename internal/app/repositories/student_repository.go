package repositories

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
	"github.com/yigit/schooladmin/internal/pkg/graphql"
)

// IStudentRepository defines the student operations offered by the backend.
// There is no delete.
type IStudentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	GetByID(ctx context.Context, studentID int64) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) (*models.Student, error)
	Update(ctx context.Context, student *models.Student) (*models.Student, error)
}

// StudentRepository handles student operations against the GraphQL API
type StudentRepository struct {
	client Executor
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(client Executor) *StudentRepository {
	return &StudentRepository{client: client}
}

// studentEnvelope is the {status, message, data} wrapper the backend puts
// around every student payload.
type studentEnvelope[T any] struct {
	Status  json.RawMessage `json:"status"`
	Message string          `json:"message"`
	Data    T               `json:"data"`
}

// List returns every student; the backend neither filters nor pages.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	var out struct {
		Students *studentEnvelope[[]models.Student] `json:"students"`
	}
	if _, err := do(ctx, r.client, graphql.Request{Query: studentsQuery}, &out); err != nil {
		return nil, err
	}
	if out.Students == nil || out.Students.Data == nil {
		return []models.Student{}, nil
	}
	return out.Students.Data, nil
}

// GetByID fetches one student. A null record maps to ErrStudentNotFound.
func (r *StudentRepository) GetByID(ctx context.Context, studentID int64) (*models.Student, error) {
	var out struct {
		Student *studentEnvelope[*models.Student] `json:"student"`
	}
	req := graphql.Request{
		Query:     getStudentQuery,
		Variables: map[string]interface{}{"studentId": studentID},
	}
	if _, err := do(ctx, r.client, req, &out); err != nil {
		return nil, err
	}
	if out.Student == nil || out.Student.Data == nil {
		return nil, notFound(out.Student)
	}
	return out.Student.Data, nil
}

// Create persists a new student and returns it with its assigned identifier.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (*models.Student, error) {
	var out struct {
		CreateStudent *studentEnvelope[*models.Student] `json:"createStudent"`
	}
	req := graphql.Request{
		Query:     createStudentMutation,
		Variables: studentVariables(student, false),
	}
	if _, err := do(ctx, r.client, req, &out); err != nil {
		return nil, err
	}
	if out.CreateStudent == nil || out.CreateStudent.Data == nil {
		return nil, emptyResult(out.CreateStudent, "Failed to create student")
	}
	return out.CreateStudent.Data, nil
}

// Update replaces every field of the student identified by student.StudentID.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) (*models.Student, error) {
	var out struct {
		UpdateStudent *studentEnvelope[*models.Student] `json:"updateStudent"`
	}
	req := graphql.Request{
		Query:     updateStudentMutation,
		Variables: studentVariables(student, true),
	}
	if _, err := do(ctx, r.client, req, &out); err != nil {
		return nil, err
	}
	if out.UpdateStudent == nil || out.UpdateStudent.Data == nil {
		return nil, emptyResult(out.UpdateStudent, "Failed to update student")
	}
	return out.UpdateStudent.Data, nil
}

func studentVariables(s *models.Student, withID bool) map[string]interface{} {
	vars := map[string]interface{}{
		"firstName":     s.FirstName,
		"lastName":      s.LastName,
		"gender":        s.Gender,
		"dateOfBirth":   s.DateOfBirth,
		"mobileNumber":  s.MobileNumber,
		"address":       s.Address,
		"class":         s.Class,
		"section":       s.Section,
		"rollNumber":    s.RollNumber,
		"admissionDate": s.AdmissionDate,
		"status":        s.Status,
	}
	if withID {
		vars["studentId"] = s.StudentID
	}
	return vars
}

func notFound[T any](env *studentEnvelope[T]) error {
	if env != nil && strings.TrimSpace(env.Message) != "" {
		return apperrors.NewCustomError(apperrors.ErrStudentNotFound, env.Message)
	}
	return apperrors.ErrStudentNotFound
}

func emptyResult[T any](env *studentEnvelope[T], fallback string) error {
	msg := fallback
	if env != nil && strings.TrimSpace(env.Message) != "" {
		msg = env.Message
	}
	return apperrors.NewCustomError(apperrors.ErrGraphQL, msg)
}
