package services

// Services defined in this package:
// - StudentService: loads, filters, pages, exports and saves student records
// - AuthService: login, signup and logout against the backend, bound to the session
// - DashboardService: the figures shown on the dashboard
