package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/schooladmin/internal/app/controllers"
	"github.com/yigit/schooladmin/internal/middleware"
)

// Controllers groups the handlers the router dispatches to.
type Controllers struct {
	Auth       *controllers.AuthController
	Dashboard  *controllers.DashboardController
	Student    *controllers.StudentController
	StudentAPI *controllers.StudentAPIController
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl Controllers,
	authMiddleware *middleware.AuthMiddleware,
	allowedOrigins []string,
) {
	// Registered on the engine so that preflight requests reach it
	router.Use(middleware.CORS(allowedOrigins))

	// --- Public pages ---
	router.GET("/", ctrl.Auth.Root)

	guest := router.Group("")
	guest.Use(authMiddleware.RedirectIfAuthenticated("/dashboard"))
	{
		guest.GET("/login", ctrl.Auth.LoginPage)
		guest.POST("/login", ctrl.Auth.Login)
		guest.GET("/signup", ctrl.Auth.SignupPage)
		guest.POST("/signup", ctrl.Auth.Signup)
	}
	router.POST("/logout", ctrl.Auth.Logout)

	// --- Signed-in pages ---
	protected := router.Group("")
	protected.Use(authMiddleware.RequireSession())
	{
		protected.GET("/dashboard", ctrl.Dashboard.Show)

		students := protected.Group("/students")
		{
			students.GET("", ctrl.Student.List)
			students.GET("/filters", ctrl.Student.Filters)
			students.GET("/export", ctrl.Student.Export)
			students.GET("/new", ctrl.Student.New)
			students.POST("", ctrl.Student.Create)
			students.GET("/:id", ctrl.Student.Edit)
			students.POST("/:id", ctrl.Student.Update)
		}
	}

	// --- JSON API ---
	v1 := router.Group("/api/v1")
	{
		// Validation needs no backend call and therefore no credentials
		v1.POST("/students/validate", ctrl.StudentAPI.ValidateStudent)

		apiStudents := v1.Group("/students")
		apiStudents.Use(authMiddleware.APIAuth())
		{
			apiStudents.GET("", ctrl.StudentAPI.ListStudents)
			apiStudents.GET("/export", ctrl.StudentAPI.ExportStudents)
			apiStudents.GET("/:id", ctrl.StudentAPI.GetStudent)
			apiStudents.POST("", ctrl.StudentAPI.CreateStudent)
			apiStudents.PUT("/:id", ctrl.StudentAPI.UpdateStudent)
		}
	}
}
