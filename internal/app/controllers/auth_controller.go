package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/schooladmin/internal/app/forms"
	"github.com/yigit/schooladmin/internal/app/models/dto"
	"github.com/yigit/schooladmin/internal/app/services"
	"github.com/yigit/schooladmin/internal/app/session"
	"github.com/yigit/schooladmin/internal/app/views"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
	"github.com/yigit/schooladmin/internal/pkg/validation"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService services.AuthService
	sessions    *session.Manager
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, sessions *session.Manager, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		sessions:    sessions,
		logger:      logger,
	}
}

// LoginPage renders the login form.
func (c *AuthController) LoginPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, views.PageLogin, views.NewPage(ctx, c.sessions, "Login", dto.AuthFormView{}))
}

// Login signs the user in and sends them to the dashboard.
func (c *AuthController) Login(ctx *gin.Context) {
	var values forms.LoginValues
	_ = ctx.ShouldBind(&values)

	if _, err := c.authService.Login(ctx.Request.Context(), values); err != nil {
		view := dto.AuthFormView{Email: values.Email}
		fillAuthErrors(&view, err, msgLoginFailed)
		ctx.HTML(http.StatusUnprocessableEntity, views.PageLogin, views.NewPage(ctx, c.sessions, "Login", view))
		return
	}

	c.sessions.AddFlash(ctx.Request.Context(), session.FlashSuccess, msgLoggedIn)
	ctx.Redirect(http.StatusSeeOther, "/dashboard")
}

// SignupPage renders the signup form.
func (c *AuthController) SignupPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, views.PageSignup, views.NewPage(ctx, c.sessions, "Sign up", dto.AuthFormView{}))
}

// Signup creates an account as a student and signs it in.
func (c *AuthController) Signup(ctx *gin.Context) {
	var values forms.SignupValues
	_ = ctx.ShouldBind(&values)

	if _, err := c.authService.Signup(ctx.Request.Context(), values); err != nil {
		view := dto.AuthFormView{
			Email:     values.Email,
			FirstName: values.FirstName,
			LastName:  values.LastName,
		}
		fillAuthErrors(&view, err, msgSignupFailed)
		ctx.HTML(http.StatusUnprocessableEntity, views.PageSignup, views.NewPage(ctx, c.sessions, "Sign up", view))
		return
	}

	c.sessions.AddFlash(ctx.Request.Context(), session.FlashSuccess, msgAccountCreated)
	ctx.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout ends the session and returns to the login page.
func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.authService.Logout(ctx.Request.Context()); err != nil {
		c.logger.Error().Err(err).Msg("Failed to clear session on logout")
	}
	ctx.Redirect(http.StatusSeeOther, "/login")
}

// Root sends visitors to the dashboard or the login page.
func (c *AuthController) Root(ctx *gin.Context) {
	if s := c.sessions.Get(ctx.Request.Context()); s != nil && s.Authenticated() {
		ctx.Redirect(http.StatusFound, "/dashboard")
		return
	}
	ctx.Redirect(http.StatusFound, "/login")
}

func fillAuthErrors(view *dto.AuthFormView, err error, fallback string) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		view.Errors = verr.Fields
		return
	}
	view.Error = apperrors.UserMessage(err, fallback)
}
