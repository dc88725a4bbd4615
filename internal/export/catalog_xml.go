package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"enrollment-console/internal/domain"
)

/*
Course catalog:

<Course_Catalog semester="Fall 2023">
  <Course code="CS201">
    <name>Data Structures</name>
    <description>...</description>
    <credit_hours>3</credit_hours>
    <max_capacity>30</max_capacity>
    <current_enrollment>12</current_enrollment>
    <prerequisites>
      <course_code>CS101</course_code>
    </prerequisites>
    <schedule>
      <meeting day="MONDAY" start="09:00" end="10:30" room="B-12"/>
    </schedule>
  </Course>
</Course_Catalog>
*/

type catalogXML struct {
	XMLName  xml.Name    `xml:"Course_Catalog"`
	Semester string      `xml:"semester,attr,omitempty"`
	Courses  []courseXML `xml:"Course"`
}

type courseXML struct {
	Code              string `xml:"code,attr"`
	Name              string `xml:"name"`
	Description       string `xml:"description,omitempty"`
	CreditHours       string `xml:"credit_hours"`
	MaxCapacity       string `xml:"max_capacity"`
	CurrentEnrollment string `xml:"current_enrollment"`

	Prerequisites *prereqListXML   `xml:"prerequisites,omitempty"`
	Schedule      *scheduleListXML `xml:"schedule,omitempty"`
}

type prereqListXML struct {
	Codes []string `xml:"course_code"`
}

type scheduleListXML struct {
	Meetings []meetingXML `xml:"meeting"`
}

type meetingXML struct {
	Day   string `xml:"day,attr"`
	Start string `xml:"start,attr"`
	End   string `xml:"end,attr"`
	Room  string `xml:"room,attr,omitempty"`
}

// WriteCatalogXML writes courses ordered by code, each with its prerequisites
// and the meetings from schedules that belong to it.
// semester only labels the document; schedules are not filtered by it.
func WriteCatalogXML(w io.Writer, semester string, courses []domain.Course, schedules []domain.Schedule) error {
	meetings := map[string][]domain.Schedule{}
	for _, s := range sorted(schedules) {
		meetings[s.CourseCode] = append(meetings[s.CourseCode], s)
	}

	ordered := append([]domain.Course(nil), courses...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CourseCode < ordered[j].CourseCode
	})

	out := catalogXML{
		Semester: strings.TrimSpace(semester),
		Courses:  make([]courseXML, 0, len(ordered)),
	}
	for _, c := range ordered {
		row := courseXML{
			Code:              c.CourseCode,
			Name:              strings.TrimSpace(c.Name),
			Description:       strings.TrimSpace(c.Description),
			CreditHours:       strconv.Itoa(c.CreditHours),
			MaxCapacity:       strconv.Itoa(c.MaxCapacity),
			CurrentEnrollment: strconv.Itoa(c.CurrentEnrollment),
		}
		if codes := compactStrings(c.PrerequisiteCodes); len(codes) > 0 {
			row.Prerequisites = &prereqListXML{Codes: codes}
		}
		if ms := meetings[c.CourseCode]; len(ms) > 0 {
			list := &scheduleListXML{}
			for _, m := range ms {
				start, end := m.Times()
				list.Meetings = append(list.Meetings, meetingXML{
					Day:   strings.ToUpper(m.DayOfWeek),
					Start: start,
					End:   end,
					Room:  strings.TrimSpace(m.Room),
				})
			}
			row.Schedule = list
		}
		out.Courses = append(out.Courses, row)
	}

	b, err := xml.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("export: marshal xml: %w", err)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("export: write xml: %w", err)
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("export: write xml: %w", err)
	}
	return nil
}
