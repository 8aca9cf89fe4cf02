package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/schooladmin/internal/app/services"
	"github.com/yigit/schooladmin/internal/app/session"
	"github.com/yigit/schooladmin/internal/app/views"
)

// DashboardController renders the landing page of signed-in users
type DashboardController struct {
	dashboardService services.DashboardService
	sessions         *session.Manager
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService, sessions *session.Manager) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		sessions:         sessions,
	}
}

// Show renders the dashboard.
func (c *DashboardController) Show(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, views.PageDashboard, views.NewPage(ctx, c.sessions, "Dashboard", c.dashboardService.Overview()))
}
