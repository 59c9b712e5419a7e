package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	dto "github.com/prometheus/client_model/go"

	"github.com/hcmut-tutoring/tutorhub/internal/models"
	"github.com/hcmut-tutoring/tutorhub/internal/view"
)

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func personName(u *models.User) string {
	if u == nil {
		return "-"
	}
	return u.FullName
}

func tutorName(t *models.Tutor) string {
	if t == nil {
		return "-"
	}
	return t.FullName
}

func studentName(s *models.Student) string {
	if s == nil {
		return "-"
	}
	return s.FullName
}

func sessionRows(w *tabwriter.Writer, sessions []models.Session) {
	fmt.Fprintln(w, "ID\tTOPIC\tTUTOR\tSTUDENT\tSTART\tMODE\tSTATUS")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.SessionID, s.Topic, tutorName(s.Tutor), studentName(s.Student), s.StartTime, s.Mode, s.Status)
	}
}

func renderStudentDashboard(v *view.StudentDashboard) error {
	phase, data, err := v.State()
	if err != nil {
		return err
	}
	if phase != view.PhaseReady {
		fmt.Println("dashboard not loaded")
		return nil
	}

	buckets := v.Buckets()
	fmt.Printf("Sessions: %d upcoming, %d past\n", len(buckets.Upcoming), len(buckets.Past))
	if next := v.NextSession(); next != nil {
		fmt.Printf("Next: %s with %s at %s\n", next.Topic, tutorName(next.Tutor), next.StartTime)
	}

	w := newTable()
	sessionRows(w, buckets.Upcoming)
	if err := w.Flush(); err != nil {
		return err
	}

	if len(data.Matches) > 0 {
		fmt.Println("\nMatching requests:")
		w = newTable()
		fmt.Fprintln(w, "ID\tSUBJECT\tTUTOR\tSTATUS")
		for _, m := range data.Matches {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.RequestID, m.Subject, tutorName(m.Tutor), m.Status)
		}
		return w.Flush()
	}
	return nil
}

func renderTutorBoard(v *view.TutorBoard) error {
	phase, _, err := v.State()
	if err != nil {
		return err
	}
	if phase != view.PhaseReady {
		fmt.Println("dashboard not loaded")
		return nil
	}

	buckets := v.Buckets()
	fmt.Printf("Sessions: %d upcoming, %d past\n", len(buckets.Upcoming), len(buckets.Past))
	w := newTable()
	sessionRows(w, buckets.Upcoming)
	if err := w.Flush(); err != nil {
		return err
	}

	pending := v.PendingRequests()
	if len(pending) > 0 {
		fmt.Println("\nPending matching requests:")
		w = newTable()
		fmt.Fprintln(w, "ID\tSUBJECT\tSTUDENT\tREQUESTED")
		for _, m := range pending {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.RequestID, m.Subject, studentName(m.Student), m.CreatedDate)
		}
		return w.Flush()
	}
	return nil
}

func renderCoordinatorOverview(v *view.CoordinatorSessions) error {
	phase, sessions, err := v.State()
	if err != nil {
		return err
	}
	if phase != view.PhaseReady {
		fmt.Println("overview not loaded")
		return nil
	}

	stats := v.Stats()
	fmt.Printf("Sessions: %d total, %d scheduled, %d completed, %d canceled\n",
		stats.Total, stats.Scheduled, stats.Completed, stats.Canceled)

	if topics := v.TopTopics(5); len(topics) > 0 {
		var parts []string
		for _, t := range topics {
			parts = append(parts, fmt.Sprintf("%s (%.0f%%)", t.Topic, t.Percent))
		}
		fmt.Printf("Top topics: %s\n", strings.Join(parts, ", "))
	}

	w := newTable()
	sessionRows(w, sessions)
	return w.Flush()
}

func renderSessionDetail(v *view.SessionDetail) error {
	phase, data, err := v.State()
	if err != nil {
		return err
	}
	if phase != view.PhaseReady {
		fmt.Println("session not loaded")
		return nil
	}

	s := data.Session
	fmt.Printf("Session %s\n", s.SessionID)
	fmt.Printf("  Topic:    %s\n", s.Topic)
	fmt.Printf("  Tutor:    %s\n", tutorName(s.Tutor))
	fmt.Printf("  Student:  %s\n", studentName(s.Student))
	fmt.Printf("  When:     %s - %s\n", s.StartTime, s.EndTime)
	fmt.Printf("  Mode:     %s\n", s.Mode)
	fmt.Printf("  Status:   %s\n", s.Status)
	if s.Mode == models.ModeOnline && s.MeetingLink != "" {
		fmt.Printf("  Link:     %s\n", s.MeetingLink)
	}
	if s.Location != "" {
		fmt.Printf("  Location: %s\n", s.Location)
	}
	if s.EvaluationSubmitted {
		fmt.Printf("  Evaluation: submitted (%s)\n", s.EvaluationID)
	}

	if len(data.Resources) > 0 {
		fmt.Println("\nResources:")
		for _, r := range data.Resources {
			fmt.Printf("  - %s %s\n", r.Title, r.LinkURL)
		}
	}
	if len(data.Notes) > 0 {
		fmt.Println("\nProgress notes:")
		for _, n := range data.Notes {
			fmt.Printf("  - %s\n", n.Content)
		}
	}
	return nil
}

func renderAvailability(v *view.AvailabilityPlanner) error {
	phase, slots, err := v.State()
	if err != nil {
		return err
	}
	if phase != view.PhaseReady {
		fmt.Println("availability not loaded")
		return nil
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tSTART\tEND\tRECURRING\tSTATUS")
	for _, s := range slots {
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%s\n", s.SlotID, s.StartTime, s.EndTime, s.IsRecurring, s.Status)
	}
	return w.Flush()
}

func renderUsers(v *view.UserDirectory, role models.Role) error {
	phase, users, err := v.State()
	if err != nil {
		return err
	}
	if phase != view.PhaseReady {
		fmt.Println("directory not loaded")
		return nil
	}

	if role != "" {
		users = v.ByRole(role)
	}
	fmt.Printf("Users: %d listed, %d active overall\n", len(users), v.ActiveCount())

	w := newTable()
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tACTIVE")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\n", u.UserID, u.FullName, u.Email, u.Role, u.Active())
	}
	return w.Flush()
}

func renderReports(v *view.ReportCenter) error {
	phase, reports, err := v.State()
	if err != nil {
		return err
	}
	if phase != view.PhaseReady {
		fmt.Println("reports not loaded")
		return nil
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tTYPE\tGENERATED\tCRITERIA")
	for _, r := range reports {
		criteria := r.Criteria
		if fields := r.CriteriaFields(); fields != nil {
			var parts []string
			for k, val := range fields {
				parts = append(parts, k+"="+val)
			}
			criteria = strings.Join(parts, " ")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ReportID, r.ReportType, r.GeneratedDate, criteria)
	}
	return w.Flush()
}

func renderResources(v *view.ResourceLibrary, query string) error {
	phase, resources, err := v.State()
	if err != nil {
		return err
	}
	if phase != view.PhaseReady {
		fmt.Println("resources not loaded")
		return nil
	}

	if query != "" {
		resources = v.Search(query)
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tTITLE\tLINK\tADDED BY")
	for _, r := range resources {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ResourceID, r.Title, r.LinkURL, tutorName(r.AddedByTutor))
	}
	return w.Flush()
}

func renderForum(v *view.Forum) error {
	phase, _, err := v.State()
	if err != nil {
		return err
	}
	if phase != view.PhaseReady {
		fmt.Println("forum not loaded")
		return nil
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tPOSTED")
	for _, p := range v.Published() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.PostID, p.Title, personName(p.Author), p.CreatedDate)
	}
	return w.Flush()
}

func renderMetrics(families []*dto.MetricFamily) error {
	w := newTable()
	fmt.Fprintln(w, "METRIC\tLABELS\tVALUE")
	for _, family := range families {
		for _, m := range family.GetMetric() {
			var labels []string
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			var value float64
			switch {
			case m.GetCounter() != nil:
				value = m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				value = float64(m.GetHistogram().GetSampleCount())
			case m.GetGauge() != nil:
				value = m.GetGauge().GetValue()
			}
			fmt.Fprintf(w, "%s\t%s\t%g\n", family.GetName(), strings.Join(labels, ","), value)
		}
	}
	return w.Flush()
}
