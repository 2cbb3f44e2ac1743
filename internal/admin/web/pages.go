package web

import (
	"net/http"

	"github.com/hallgate/adminbase/internal/admin/domain"
	"github.com/hallgate/adminbase/pkg/slogx"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if StateFrom(r.Context()).SignedIn() {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

const recentActivityLimit = 5

type dashboardView struct {
	TotalUsers  int
	ActiveUsers int
	AdminUsers  int
	Activities  []domain.ActivityRecord
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	total, active, admins, err := s.Users.Stats(r.Context())
	if err != nil {
		slogx.FromContext(r.Context()).Error("dashboard stats failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	activities, err := s.Activity.Recent(r.Context(), recentActivityLimit)
	if err != nil {
		slogx.FromContext(r.Context()).Error("recent activity lookup failed", "error", err)
		activities = nil
	}

	s.render(w, r, http.StatusOK, "dashboard.html", "Dashboard", dashboardView{
		TotalUsers:  total,
		ActiveUsers: active,
		AdminUsers:  admins,
		Activities:  activities,
	})
}

type demoPage struct {
	path  string
	title string
	blurb string
}

var demoPages = []demoPage{
	{"/buttons", "Buttons", "Button styles, sizes, and states for forms and toolbars."},
	{"/cards", "Cards", "Card layouts for grouping related content."},
	{"/colors", "Colors", "The color palette used across the interface."},
	{"/borders", "Borders", "Border utilities for spacing and emphasis."},
	{"/animations", "Animations", "Transition and animation utilities."},
	{"/other", "Other Utilities", "Miscellaneous helpers: shadows, overflow, positioning."},
	{"/tables", "Tables", "Table layouts for dense, sortable data."},
	{"/charts", "Charts", "Chart placements for dashboard summaries."},
}

type demoView struct {
	Blurb string
}

func (s *Server) demoHandler(page demoPage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusOK, "demo.html", page.title, demoView{Blurb: page.blurb})
	}
}
