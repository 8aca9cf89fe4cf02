package services

import (
	"github.com/yigit/schooladmin/internal/app/models"
)

// Dashboard is everything the dashboard page shows.
type Dashboard struct {
	Stats        []models.StatCard
	Attendance   []models.AttendancePoint
	Progress     []models.SubjectProgress
	Schedule     []models.ScheduleEntry
	ScheduleDate string
}

// PeakAttendance returns the highest point of the weekly series.
func (d *Dashboard) PeakAttendance() models.AttendancePoint {
	var peak models.AttendancePoint
	for _, p := range d.Attendance {
		if p.Active > peak.Active {
			peak = p
		}
	}
	return peak
}

// DashboardService defines the interface for the dashboard figures
type DashboardService interface {
	Overview() *Dashboard
}

type dashboardServiceImpl struct{}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService() DashboardService {
	return &dashboardServiceImpl{}
}

// Overview returns the dashboard figures. They are fixed until the backend
// exposes analytics.
func (s *dashboardServiceImpl) Overview() *Dashboard {
	return &Dashboard{
		Stats: []models.StatCard{
			{Title: "Total Students", Value: "892", Trend: "+12.5% vs last month", Accent: "primary"},
			{Title: "Fees Collected", Value: "$45,231", Trend: "70% of goal reached", Accent: "success"},
		},
		Attendance: []models.AttendancePoint{
			{Day: "Mon", Active: 2000},
			{Day: "Tue", Active: 3800},
			{Day: "Wed", Active: 5500},
			{Day: "Thu", Active: 4000},
			{Day: "Fri", Active: 3000},
			{Day: "Sat", Active: 2500},
			{Day: "Sun", Active: 2200},
		},
		Progress: []models.SubjectProgress{
			{Subject: "Mathematics", Percent: 80},
			{Subject: "Science", Percent: 70},
			{Subject: "History", Percent: 60},
			{Subject: "Art", Percent: 50},
		},
		Schedule: []models.ScheduleEntry{
			{Time: "09:00 AM", Title: "Advanced Algebra", Teacher: "Mr. Anderson"},
			{Time: "11:00 AM", Title: "Physics Lab", Teacher: "Ms. Carter"},
			{Time: "02:00 PM", Title: "World History", Teacher: "Dr. Lee"},
		},
		ScheduleDate: "Oct 24, 2025",
	}
}
