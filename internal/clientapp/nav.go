package clientapp

import "github.com/phillip-england/dayflow/internal/models"

type navLink struct {
	Href   string
	Label  string
	Active bool
}

// sidebarLinks returns the navigation for role, marking the link for active.
func sidebarLinks(role models.Role, active string) []navLink {
	var links []navLink
	switch role {
	case models.RoleEmployee:
		links = []navLink{
			{Href: "/dashboard", Label: "Dashboard"},
			{Href: "/employee-attendance", Label: "Attendance"},
			{Href: "/leave", Label: "Leave"},
			{Href: "/profile", Label: "Profile"},
		}
	case models.RoleHR:
		links = []navLink{
			{Href: "/hr-dashboard", Label: "HR Dashboard"},
			{Href: "/hr-attendance", Label: "Attendance Control"},
			{Href: "/profile", Label: "Profile"},
		}
	case models.RoleAdmin:
		links = []navLink{
			{Href: "/admin-dashboard", Label: "Admin Dashboard"},
			{Href: "/profile", Label: "Profile"},
		}
	case models.RoleUnknown:
		return nil
	}
	for i := range links {
		links[i].Active = links[i].Href == active
	}
	return links
}
