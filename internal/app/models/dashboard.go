package models

// StatCard is a single headline figure on the dashboard.
type StatCard struct {
	Title  string
	Value  string
	Trend  string
	Accent string
}

// ScheduleEntry is one lesson in today's schedule widget.
type ScheduleEntry struct {
	Time    string
	Title   string
	Teacher string
}

// AttendancePoint is one day of the weekly attendance series.
type AttendancePoint struct {
	Day    string
	Active int
}

// SubjectProgress is the completion of a subject's syllabus in percent.
type SubjectProgress struct {
	Subject string
	Percent int
}
