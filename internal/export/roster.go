package export

import (
	"encoding/csv"
	"io"
	"sort"
	"strings"

	"enrollment-console/internal/domain"
)

// Keep header order EXACT.
var rosterHeader = []string{
	"STUDENT_ID",
	"FIRST_NAME",
	"LAST_NAME",
	"EMAIL",
	"PHONE_NUMBER",
	"ENROLLED_COURSES",
}

// RosterEntry is one student and the codes of the courses they are enrolled in.
type RosterEntry struct {
	Student     domain.Student
	CourseCodes []string
}

// BuildRoster joins students with their ENROLLED enrollments.
// Students without enrollments are kept with an empty course list.
func BuildRoster(students []domain.Student, enrollments []domain.Enrollment) []RosterEntry {
	byStudent := make(map[string][]string, len(students))
	for _, e := range enrollments {
		if e.Status != domain.StatusEnrolled {
			continue
		}
		byStudent[e.StudentID] = append(byStudent[e.StudentID], e.CourseCode)
	}

	out := make([]RosterEntry, 0, len(students))
	for _, s := range students {
		codes := compactStrings(byStudent[s.StudentID])
		sort.Strings(codes)
		out = append(out, RosterEntry{Student: s, CourseCodes: codes})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Student.StudentID < out[j].Student.StudentID
	})
	return out
}

// WriteRosterCSV writes one row per student.
func WriteRosterCSV(w io.Writer, roster []RosterEntry) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(rosterHeader); err != nil {
		return err
	}
	for _, r := range roster {
		if err := cw.Write(toRosterRow(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func toRosterRow(r RosterEntry) []string {
	s := r.Student
	return []string{
		s.StudentID,
		clean(s.FirstName),
		clean(s.LastName),
		s.Email,
		s.PhoneNumber,
		strings.Join(cleanStrings(r.CourseCodes), " | "),
	}
}

func clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}

func cleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = clean(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func compactStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]bool{}
	for _, s := range in {
		v := strings.TrimSpace(s)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
