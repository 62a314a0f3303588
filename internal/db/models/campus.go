package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// EnrollmentState is the lifecycle state of a student's enrollment.
type EnrollmentState string

const (
	EnrollmentActive    EnrollmentState = "ACTIVE"
	EnrollmentCancelled EnrollmentState = "CANCELLED"
	EnrollmentGraduated EnrollmentState = "GRADUATED"
)

// Valid reports whether the state is one of the known values.
func (s EnrollmentState) Valid() bool {
	switch s {
	case EnrollmentActive, EnrollmentCancelled, EnrollmentGraduated:
		return true
	}
	return false
}

// RoleList stores a role set as a JSON array column so the same schema works
// on PostgreSQL and SQLite.
type RoleList []string

// Scan implements sql.Scanner for reading from database
func (rl *RoleList) Scan(value any) error {
	if value == nil {
		*rl = RoleList{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("failed to scan RoleList: expected []byte or string, got %T", value)
	}
	return json.Unmarshal(bytes, rl)
}

// Value implements driver.Valuer for writing to database
func (rl RoleList) Value() (driver.Value, error) {
	if rl == nil {
		return "[]", nil
	}
	bytes, err := json.Marshal(rl)
	if err != nil {
		return nil, err
	}
	return string(bytes), nil
}

// Student is a campus student and, through its email/password_hash/roles
// columns, one of the two credential stores.
type Student struct {
	bun.BaseModel `bun:"table:students,alias:st"`

	ID              int64           `bun:"id,pk,autoincrement"`
	Name            string          `bun:"name,notnull"`
	LastName        string          `bun:"last_name,notnull"`
	Email           string          `bun:"email,notnull,unique"`
	Address         string          `bun:"address,notnull"`
	Phone           string          `bun:"phone"`
	StudentNumber   string          `bun:"student_number,notnull,unique"`
	EnrollmentState EnrollmentState `bun:"enrollment_state,notnull"`
	Roles           RoleList        `bun:"roles,notnull"`
	PasswordHash    string          `bun:"password_hash,notnull"`
	CreatedAt       time.Time       `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt       time.Time       `bun:"updated_at,notnull,default:current_timestamp"`
}

// Professor is a campus professor and the second credential store.
type Professor struct {
	bun.BaseModel `bun:"table:professors,alias:pr"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Name         string    `bun:"name,notnull"`
	LastName     string    `bun:"last_name,notnull"`
	Email        string    `bun:"email,notnull,unique"`
	Phone        string    `bun:"phone"`
	Address      string    `bun:"address,notnull"`
	City         string    `bun:"city,notnull"`
	Roles        RoleList  `bun:"roles,notnull"`
	PasswordHash string    `bun:"password_hash,notnull"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Course is a campus course taught by a professor.
type Course struct {
	bun.BaseModel `bun:"table:courses,alias:co"`

	ID          int64     `bun:"id,pk,autoincrement"`
	Name        string    `bun:"name,notnull"`
	CourseCode  string    `bun:"course_code,notnull,unique"`
	Description string    `bun:"description,notnull"`
	MaxCapacity int       `bun:"max_capacity,notnull"`
	ProfessorID int64     `bun:"professor_id,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Enrollment links a student to a course.
type Enrollment struct {
	bun.BaseModel `bun:"table:enrollments,alias:en"`

	ID              int64           `bun:"id,pk,autoincrement"`
	StudentID       int64           `bun:"student_id,notnull"`
	CourseID        int64           `bun:"course_id,notnull"`
	EnrollmentDate  time.Time       `bun:"enrollment_date,notnull"`
	EnrollmentState EnrollmentState `bun:"enrollment_state,notnull"`
	CreatedAt       time.Time       `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt       time.Time       `bun:"updated_at,notnull,default:current_timestamp"`
}
