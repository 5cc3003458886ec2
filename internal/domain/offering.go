package domain

import (
	"fmt"
	"time"
)

// Term is the academic period of a course offering.
type Term string

// Known terms.
const (
	TermFirst  Term = "FIRST"
	TermSecond Term = "SECOND"
	TermSummer Term = "SUMMER"
)

// CourseOffering is a course offered in a given year and term.
type CourseOffering struct {
	ID       int64 `json:"id" gorm:"primaryKey"`
	CourseID int64 `json:"courseId"`
	Year     int   `json:"year"`
	Term     Term  `json:"term"`
}

// TableName implements gorm's tabler.
func (CourseOffering) TableName() string { return "course_offerings" }

// Class is a section of a course offering taught by one or more professors.
// ProfessorIDs are stored as ClassProfessor rows.
type Class struct {
	ID               int64   `json:"id" gorm:"primaryKey"`
	Code             string  `json:"code"`
	CourseOfferingID int64   `json:"courseOfferingId"`
	ProfessorIDs     []int64 `json:"professorIds" gorm:"-"`
}

// TableName implements gorm's tabler.
func (Class) TableName() string { return "classes" }

// ClassProfessor links a class to one of its professors.
type ClassProfessor struct {
	ClassID     int64 `gorm:"primaryKey;autoIncrement:false"`
	ProfessorID int64 `gorm:"primaryKey;autoIncrement:false"`
}

// TableName implements gorm's tabler.
func (ClassProfessor) TableName() string { return "class_professors" }

// TimeLayout is the wire and storage format of schedule times.
const TimeLayout = "15:04"

// ClassSchedule is a weekly meeting of a class, optionally in a room.
// DayOfWeek follows time.Weekday: 0 is Sunday.
type ClassSchedule struct {
	ID        int64  `json:"id" gorm:"primaryKey"`
	ClassID   int64  `json:"classId"`
	RoomID    *int64 `json:"roomId"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// TableName implements gorm's tabler.
func (ClassSchedule) TableName() string { return "class_schedules" }

// NormalizeTime rewrites a valid time as zero padded HH:MM and returns any
// other input unchanged.
func NormalizeTime(s string) string {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return s
	}
	return t.Format(TimeLayout)
}

// Validate checks that the slot is a well formed, non empty time range.
func (s ClassSchedule) Validate() error {
	if s.DayOfWeek < int(time.Sunday) || s.DayOfWeek > int(time.Saturday) {
		return fmt.Errorf("%w: day of week %d out of range", ErrValidation, s.DayOfWeek)
	}
	start, err := time.Parse(TimeLayout, s.StartTime)
	if err != nil {
		return fmt.Errorf("%w: start %q", ErrInvalidTimeFormat, s.StartTime)
	}
	end, err := time.Parse(TimeLayout, s.EndTime)
	if err != nil {
		return fmt.Errorf("%w: end %q", ErrInvalidTimeFormat, s.EndTime)
	}
	if !start.Before(end) {
		return ErrInvalidTimeRange
	}
	return nil
}

// Overlaps reports whether s and other share a room on the same day at
// overlapping times. Touching slots (one ends when the other starts) do not
// overlap.
func (s ClassSchedule) Overlaps(other ClassSchedule) bool {
	if s.RoomID == nil || other.RoomID == nil || *s.RoomID != *other.RoomID {
		return false
	}
	if s.DayOfWeek != other.DayOfWeek {
		return false
	}
	return s.StartTime < other.EndTime && other.StartTime < s.EndTime
}
