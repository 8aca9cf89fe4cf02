package views

import "strings"

// NavItem is one entry of the sidebar.
type NavItem struct {
	Label  string
	Path   string
	Icon   string
	Badge  string
	Active bool
}

// NavSection groups sidebar entries under an optional heading.
type NavSection struct {
	Title string
	Items []NavItem
}

var menu = []NavSection{
	{
		Items: []NavItem{
			{Label: "Dashboard", Path: "/dashboard", Icon: "grid"},
			{Label: "Teachers", Path: "/teachers", Icon: "user-tie"},
			{Label: "Students", Path: "/students", Icon: "users"},
			{Label: "Courses", Path: "/courses", Icon: "book"},
			{Label: "Messages", Path: "/messages", Icon: "mail", Badge: "3"},
		},
	},
	{
		Title: "System",
		Items: []NavItem{
			{Label: "Settings", Path: "/settings", Icon: "settings"},
		},
	},
}

// IsActive reports whether a menu entry for itemPath is highlighted while
// currentPath is shown.
func IsActive(currentPath, itemPath string) bool {
	return strings.HasPrefix(currentPath, itemPath)
}

// Menu returns the sidebar with the entries matching currentPath marked active.
func Menu(currentPath string) []NavSection {
	sections := make([]NavSection, len(menu))
	for i, sec := range menu {
		items := make([]NavItem, len(sec.Items))
		for j, item := range sec.Items {
			item.Active = IsActive(currentPath, item.Path)
			items[j] = item
		}
		sections[i] = NavSection{Title: sec.Title, Items: items}
	}
	return sections
}
