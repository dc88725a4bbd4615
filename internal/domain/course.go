package domain

import (
	"fmt"
	"strings"
)

// Course is a course as returned by the API.
type Course struct {
	ID                int64    `json:"id,omitempty"`
	CourseCode        string   `json:"courseCode"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	CreditHours       int      `json:"creditHours"`
	MaxCapacity       int      `json:"maxCapacity"`
	PrerequisiteCodes []string `json:"prerequisiteCodes"`

	// CurrentEnrollment is maintained by the server and is display-only.
	// Never base a decision on it; ask the server (capacity check) instead.
	CurrentEnrollment int `json:"currentEnrollment"`
}

// CourseInput is the writable part of a course, sent on create/update.
type CourseInput struct {
	CourseCode        string   `json:"courseCode" validate:"required"`
	Name              string   `json:"name" validate:"required"`
	Description       string   `json:"description" validate:"required"`
	CreditHours       int      `json:"creditHours" validate:"min=1"`
	MaxCapacity       int      `json:"maxCapacity" validate:"min=1"`
	PrerequisiteCodes []string `json:"prerequisiteCodes,omitempty"`
}

func (c Course) Input() CourseInput {
	return CourseInput{
		CourseCode:        c.CourseCode,
		Name:              c.Name,
		Description:       c.Description,
		CreditHours:       c.CreditHours,
		MaxCapacity:       c.MaxCapacity,
		PrerequisiteCodes: append([]string(nil), c.PrerequisiteCodes...),
	}
}

// Label renders "Name (CODE)".
func (c Course) Label() string {
	return c.Name + " (" + c.CourseCode + ")"
}

func (c Course) CapacityLabel() string {
	return fmt.Sprintf("%d/%d Students", c.CurrentEnrollment, c.MaxCapacity)
}

// CapacityTone colours the capacity chip. Display only.
func (c Course) CapacityTone() Tone {
	if c.CurrentEnrollment >= c.MaxCapacity {
		return ToneError
	}
	return ToneSuccess
}

func (c Course) HasPrerequisite(code string) bool {
	for _, p := range c.PrerequisiteCodes {
		if strings.EqualFold(p, code) {
			return true
		}
	}
	return false
}
