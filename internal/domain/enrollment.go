package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// EnrollmentStatus is an open set; the server may send values not listed here.
type EnrollmentStatus string

const (
	StatusEnrolled   EnrollmentStatus = "ENROLLED"
	StatusDropped    EnrollmentStatus = "DROPPED"
	StatusCompleted  EnrollmentStatus = "COMPLETED"
	StatusWaitlisted EnrollmentStatus = "WAITLISTED"
)

// Tone maps a status to its display colour. Unknown statuses get ToneDefault.
func (s EnrollmentStatus) Tone() Tone {
	switch s {
	case StatusEnrolled:
		return ToneSuccess
	case StatusDropped:
		return ToneError
	default:
		return ToneDefault
	}
}

type Enrollment struct {
	ID             int64            `json:"id,omitempty"`
	StudentID      string           `json:"studentId"`
	CourseCode     string           `json:"courseCode"`
	Semester       string           `json:"semester,omitempty"`
	EnrollmentDate Timestamp        `json:"enrollmentDate"`
	Status         EnrollmentStatus `json:"status"`
	Notes          string           `json:"notes,omitempty"`
}

// Timestamp accepts RFC 3339 and zone-less local date-times ("2023-09-01T10:00:00").
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("timestamp: unrecognised format %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format("2006-01-02T15:04:05"))
}

// Date renders the day part for lists, or "" when unset.
func (t Timestamp) Date() string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// EnrollRequest is the body of enroll and drop calls.
type EnrollRequest struct {
	StudentID  string `json:"studentId"`
	CourseCode string `json:"courseCode"`
}
