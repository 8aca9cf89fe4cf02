package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/schooladmin/internal/app/forms"
	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/app/models/dto"
	"github.com/yigit/schooladmin/internal/app/services"
	"github.com/yigit/schooladmin/internal/app/session"
	"github.com/yigit/schooladmin/internal/app/views"
	"github.com/yigit/schooladmin/internal/middleware"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
	"github.com/yigit/schooladmin/internal/pkg/csvexport"
	"github.com/yigit/schooladmin/internal/pkg/helpers"
	"github.com/yigit/schooladmin/internal/pkg/logger"
)

// StudentController serves the student directory and forms
type StudentController struct {
	studentService services.StudentService
	sessions       *session.Manager
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, sessions *session.Manager) *StudentController {
	return &StudentController{
		studentService: studentService,
		sessions:       sessions,
	}
}

// List renders one page of the filtered directory.
func (c *StudentController) List(ctx *gin.Context) {
	term := ctx.Query("q")
	page := helpers.ParsePageParam(ctx)

	view := dto.StudentListView{
		Term:       term,
		Rows:       []dto.StudentResponse{},
		Pagination: dto.NewPaginationInfo(helpers.Paginate(0, 1, services.StudentPageSize)),
	}

	result, err := c.studentService.Browse(ctx.Request.Context(), term, page)
	if err != nil {
		if middleware.HandleWebError(ctx, c.sessions, err, msgLoadFailed) {
			return
		}
	} else {
		view.Rows = dto.NewStudentResponses(result.Students)
		view.Pagination = dto.NewPaginationInfo(result.Window)
		view.Loaded = result.Loaded
	}

	ctx.HTML(http.StatusOK, views.PageStudents, views.NewPage(ctx, c.sessions, "Students", view))
}

// Filters answers the not yet available filter panel.
func (c *StudentController) Filters(ctx *gin.Context) {
	c.sessions.AddFlash(ctx.Request.Context(), session.FlashInfo, msgFiltersSoon)
	ctx.Redirect(http.StatusSeeOther, "/students")
}

// Export downloads the whole collection as CSV.
func (c *StudentController) Export(ctx *gin.Context) {
	data, count, err := c.studentService.ExportCSV(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNoStudents) {
			c.sessions.AddFlash(ctx.Request.Context(), session.FlashWarning, msgNoStudents)
			ctx.Redirect(http.StatusSeeOther, "/students")
			return
		}
		if middleware.HandleWebError(ctx, c.sessions, err, msgLoadFailed) {
			return
		}
		ctx.Redirect(http.StatusSeeOther, "/students")
		return
	}

	logger.FromContext(ctx.Request.Context()).Info().Int("count", count).Msg(msgStudentsExported)
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", csvexport.FileName))
	ctx.Data(http.StatusOK, csvexport.ContentType, data)
}

// New renders an empty create form.
func (c *StudentController) New(ctx *gin.Context) {
	c.renderForm(ctx, http.StatusOK, forms.NewStudentForm(), "Add Student")
}

// Create validates the submitted form and creates the student. An invalid
// form is rendered again without contacting the backend.
func (c *StudentController) Create(ctx *gin.Context) {
	form := forms.NewStudentForm()
	if err := ctx.ShouldBind(&form.Values); err != nil {
		c.renderForm(ctx, http.StatusBadRequest, form, "Add Student")
		return
	}

	ok, err := form.BeginSubmit()
	if err != nil || !ok {
		c.renderForm(ctx, http.StatusUnprocessableEntity, form, "Add Student")
		return
	}

	if _, err := c.studentService.CreateStudent(ctx.Request.Context(), form.Values); err != nil {
		if errors.Is(err, apperrors.ErrUnauthenticated) {
			middleware.HandleWebError(ctx, c.sessions, err, msgCreateFailed)
			return
		}
		_ = form.Fail(middleware.WebMessage(err, msgCreateFailed))
		c.renderForm(ctx, http.StatusUnprocessableEntity, form, "Add Student")
		return
	}

	_ = form.Succeed()
	c.sessions.AddFlash(ctx.Request.Context(), session.FlashSuccess, msgStudentCreated)
	ctx.Redirect(http.StatusSeeOther, "/students")
}

// Edit loads a student and renders the edit form seeded with it. When the
// record cannot be loaded the page stays in its loading state.
func (c *StudentController) Edit(ctx *gin.Context) {
	id, err := parseStudentID(ctx.Param("id"))
	if err != nil {
		c.renderLoading(ctx, apperrors.ErrStudentNotFound)
		return
	}

	student, err := c.studentService.GetStudent(ctx.Request.Context(), id)
	if err != nil {
		c.renderLoading(ctx, err)
		return
	}

	c.renderForm(ctx, http.StatusOK, forms.EditStudentForm(student), "Edit Student")
}

// Update validates the submitted form and replaces the record.
func (c *StudentController) Update(ctx *gin.Context) {
	id, err := parseStudentID(ctx.Param("id"))
	if err != nil {
		c.renderLoading(ctx, apperrors.ErrStudentNotFound)
		return
	}

	form := forms.EditStudentForm(&models.Student{StudentID: id})
	if err := ctx.ShouldBind(&form.Values); err != nil {
		c.renderForm(ctx, http.StatusBadRequest, form, "Edit Student")
		return
	}

	ok, err := form.BeginSubmit()
	if err != nil || !ok {
		c.renderForm(ctx, http.StatusUnprocessableEntity, form, "Edit Student")
		return
	}

	if _, err := c.studentService.UpdateStudent(ctx.Request.Context(), id, form.Values); err != nil {
		if errors.Is(err, apperrors.ErrUnauthenticated) {
			middleware.HandleWebError(ctx, c.sessions, err, msgUpdateFailed)
			return
		}
		_ = form.Fail(middleware.WebMessage(err, msgUpdateFailed))
		c.renderForm(ctx, http.StatusUnprocessableEntity, form, "Edit Student")
		return
	}

	_ = form.Succeed()
	c.sessions.AddFlash(ctx.Request.Context(), session.FlashSuccess, msgStudentUpdated)
	ctx.Redirect(http.StatusSeeOther, "/students")
}

func (c *StudentController) renderForm(ctx *gin.Context, status int, form *forms.StudentForm, title string) {
	action := "/students"
	if form.IsEdit() {
		action = "/students/" + strconv.FormatInt(form.StudentID, 10)
	}
	view := dto.NewStudentFormView(form, action)
	ctx.HTML(status, views.PageStudentForm, views.NewPage(ctx, c.sessions, title, view))
}

func (c *StudentController) renderLoading(ctx *gin.Context, err error) {
	if middleware.HandleWebError(ctx, c.sessions, err, msgLoadOneFailed) {
		return
	}
	status := http.StatusOK
	if errors.Is(err, apperrors.ErrStudentNotFound) {
		status = http.StatusNotFound
	}
	ctx.HTML(status, views.PageStudentStale, views.NewPage(ctx, c.sessions, "Edit Student", nil))
}
