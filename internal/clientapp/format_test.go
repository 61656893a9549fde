package clientapp

import (
	"testing"

	"github.com/phillip-england/dayflow/internal/models"
)

func TestDisplayName(t *testing.T) {
	if got := displayName("jane", "doe"); got != "Jane Doe" {
		t.Fatalf("expected Jane Doe, got %q", got)
	}
	if got := displayName("  ", ""); got != "User" {
		t.Fatalf("expected fallback User, got %q", got)
	}
}

func TestFormatPunchClockDisplay(t *testing.T) {
	if got := formatPunchClockDisplay(strp("17:30:00")); got != "5:30 PM" {
		t.Fatalf("expected 5:30 PM, got %q", got)
	}
	if got := formatPunchClockDisplay(nil); got != "--" {
		t.Fatalf("expected placeholder, got %q", got)
	}
}

func TestFormatDateDisplay(t *testing.T) {
	cases := map[string]string{
		"2024-06-01":                    "Jun 1, 2024",
		"45444":                         "Jun 1, 2024",
		"Sat, 01 Jun 2024 00:00:00 GMT": "Jun 1, 2024",
		"someday":                       "someday",
	}
	for in, want := range cases {
		if got := formatDateDisplay(in); got != want {
			t.Fatalf("formatDateDisplay(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSidebarLinksPerRole(t *testing.T) {
	for _, role := range models.Roles {
		links := sidebarLinks(role, role.HomePath())
		if len(links) == 0 {
			t.Fatalf("%s: expected links", role)
		}
		if links[0].Href != role.HomePath() || !links[0].Active {
			t.Fatalf("%s: first link should be the active home page, got %+v", role, links[0])
		}
	}
	if links := sidebarLinks(models.RoleUnknown, "/"); links != nil {
		t.Fatalf("unknown role should get no links")
	}
}
