package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/schooladmin/internal/app/forms"
	"github.com/yigit/schooladmin/internal/app/models/dto"
	"github.com/yigit/schooladmin/internal/app/services"
	"github.com/yigit/schooladmin/internal/middleware"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
	"github.com/yigit/schooladmin/internal/pkg/csvexport"
	"github.com/yigit/schooladmin/internal/pkg/helpers"
	"github.com/yigit/schooladmin/internal/pkg/logger"
)

// StudentAPIController exposes the student operations as JSON
type StudentAPIController struct {
	studentService services.StudentService
}

// NewStudentAPIController creates a new StudentAPIController
func NewStudentAPIController(studentService services.StudentService) *StudentAPIController {
	return &StudentAPIController{studentService: studentService}
}

// ListStudents returns one page of the filtered collection
// @Summary List students
// @Description Loads every student, filters by the search term and returns the requested page of 10
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search term matched against name, ID, roll number, class and section, mobile"
// @Param page query int false "Page number, clamped into range" minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]dto.StudentResponse}} "Students retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 422 {object} dto.ErrorResponse "Backend rejected the request"
// @Failure 502 {object} dto.ErrorResponse "Backend unavailable"
// @Router /students [get]
func (c *StudentAPIController) ListStudents(ctx *gin.Context) {
	result, err := c.studentService.Browse(ctx.Request.Context(), ctx.Query("q"), helpers.ParsePageParam(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      dto.NewStudentResponses(result.Students),
		Pagination: dto.NewPaginationInfo(result.Window),
	}, ""))
}

// GetStudent returns one student
// @Summary Get student details
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Student retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentAPIController) GetStudent(ctx *gin.Context) {
	id, err := parseStudentID(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	student, err := c.studentService.GetStudent(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewStudentResponse(student), ""))
}

// CreateStudent creates a student
// @Summary Create a new student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=dto.StudentResponse} "Student created successfully"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 422 {object} dto.ErrorResponse "Backend rejected the request"
// @Router /students [post]
func (c *StudentAPIController) CreateStudent(ctx *gin.Context) {
	var req dto.StudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		logger.FromContext(ctx.Request.Context()).Debug().Err(err).Msg("Malformed request body")
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid student data"))
		return
	}

	student, err := c.studentService.CreateStudent(ctx.Request.Context(), req.StudentValues)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.NewStudentResponse(student), msgStudentCreated))
}

// UpdateStudent replaces a student's fields
// @Summary Update a student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param request body dto.StudentRequest true "Updated student information"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Student updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 422 {object} dto.ErrorResponse "Backend rejected the request"
// @Router /students/{id} [put]
func (c *StudentAPIController) UpdateStudent(ctx *gin.Context) {
	id, err := parseStudentID(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.StudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		logger.FromContext(ctx.Request.Context()).Debug().Err(err).Msg("Malformed request body")
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid student data"))
		return
	}

	student, err := c.studentService.UpdateStudent(ctx.Request.Context(), id, req.StudentValues)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewStudentResponse(student), msgStudentUpdated))
}

// ExportStudents downloads the whole collection as CSV
// @Summary Export students as CSV
// @Tags students
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file "students.csv"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "No students to export"
// @Router /students/export [get]
func (c *StudentAPIController) ExportStudents(ctx *gin.Context) {
	data, _, err := c.studentService.ExportCSV(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", csvexport.FileName))
	ctx.Data(http.StatusOK, csvexport.ContentType, data)
}

// ValidateStudent checks a partially filled form
// @Summary Validate a student form
// @Description Validates the values and reports the errors of the touched fields only
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.ValidateStudentRequest true "Form values and touched fields"
// @Success 200 {object} dto.APIResponse{data=dto.ValidateStudentResponse} "Validation result"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Router /students/validate [post]
func (c *StudentAPIController) ValidateStudent(ctx *gin.Context) {
	var req dto.ValidateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		logger.FromContext(ctx.Request.Context()).Debug().Err(err).Msg("Malformed request body")
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request format"))
		return
	}

	form := forms.NewStudentForm()
	form.Values = req.Values
	form.Touch(req.Touched...)
	valid := form.Validate()

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ValidateStudentResponse{
		Valid:  valid,
		Errors: form.VisibleErrors(),
	}, ""))
}
