package rsvp

import (
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultGuests = 1
	DefaultKids   = 0
)

// Attendance is the guest's answer
type Attendance string

const (
	AttendanceYes Attendance = "yes"
	AttendanceNo  Attendance = "no"
)

// ParseAttendance accepts yes/no in any case
func ParseAttendance(s string) (Attendance, bool) {
	switch Attendance(strings.ToLower(strings.TrimSpace(s))) {
	case AttendanceYes:
		return AttendanceYes, true
	case AttendanceNo:
		return AttendanceNo, true
	}
	return "", false
}

func (a *Attendance) Scan(value any) error {
	switch v := value.(type) {
	case string:
		*a = Attendance(v)
	case []byte:
		*a = Attendance(v)
	default:
		return fmt.Errorf("cannot scan %T into Attendance", value)
	}
	return nil
}

func (a Attendance) Value() (driver.Value, error) {
	return string(a), nil
}

// Submission is the single RSVP recorded for a password
type Submission struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Password    string     `json:"password" gorm:"not null;uniqueIndex:uq_rsvp_submissions_password"`
	GuestName   string     `json:"guest_name" gorm:"size:150;not null"`
	Email       string     `json:"email" gorm:"size:254;not null"`
	Phone       string     `json:"phone" gorm:"size:40;not null"`
	Attendance  Attendance `json:"attendance" gorm:"type:rsvp_attendance;not null"`
	Guests      int        `json:"guests" gorm:"not null"`
	Kids        int        `json:"kids" gorm:"not null"`
	Message     *string    `json:"message" gorm:"type:text"`
	SubmittedAt time.Time  `json:"submitted_at" gorm:"autoCreateTime"`
}

// TableName overrides the table name used by GORM
func (Submission) TableName() string {
	return "rsvp_submissions"
}

// BeforeCreate sets a UUID before creating the record
func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Attending reports whether the answer was yes
func (s *Submission) Attending() bool {
	return s.Attendance == AttendanceYes
}

// Headcount is adults plus children for an attending submission, zero otherwise
func (s *Submission) Headcount() int {
	if !s.Attending() {
		return 0
	}
	return s.Guests + s.Kids
}

// ParseCount reads a party-size field, falling back when the value is
// absent, not a whole number, or negative. Integral floats such as "2.0"
// or "2e0" count as whole numbers.
func ParseCount(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err == nil {
		if n < 0 {
			return fallback
		}
		return n
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f < 0 || f > math.MaxInt32 || math.Trunc(f) != f {
		return fallback
	}
	return int(f)
}

// Status reports whether a password already has a submission
type Status struct {
	Submitted   bool       `json:"submitted"`
	SubmittedAt *time.Time `json:"submittedAt"`
}

// Summary aggregates submissions for the admin panel
type Summary struct {
	TotalGuests    int64 `json:"totalGuests"`
	TotalRSVPs     int   `json:"totalRsvps"`
	Attending      int   `json:"attending"`
	TotalAttendees int   `json:"totalAttendees"`
	Declined       int   `json:"declined"`
}

// Summarize folds submissions into a Summary; guestCount is supplied by the caller
func Summarize(subs []*Submission, guestCount int64) Summary {
	sum := Summary{TotalGuests: guestCount, TotalRSVPs: len(subs)}
	for _, s := range subs {
		switch s.Attendance {
		case AttendanceYes:
			sum.Attending++
			sum.TotalAttendees += s.Headcount()
		case AttendanceNo:
			sum.Declined++
		}
	}
	return sum
}
