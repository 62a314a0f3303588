package migrations

import (
	"context"
	"fmt"

	"github.com/unicampus/campusapi/internal/db/models"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

func init() {
	Migrations.MustRegister(up_20250812000001, down_20250812000001)
}

// isPostgreSQL gates the statements SQLite cannot run, like ALTER TABLE ADD
// CONSTRAINT; the SQLite schema relies on the unique indexes alone.
func isPostgreSQL(db *bun.DB) bool {
	return db.Dialect().Name() == dialect.PG
}

// up_20250812000001 creates the students, professors, courses and enrollments tables
func up_20250812000001(ctx context.Context, db *bun.DB) error {
	// 1. Create students table
	fmt.Print(" [up] creating students table...")
	_, err := db.NewCreateTable().
		Model((*models.Student)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create students table: %w", err)
	}

	_, err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_students_email ON students(email)`)
	if err != nil {
		return fmt.Errorf("failed to create students email index: %w", err)
	}

	_, err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_students_student_number ON students(student_number)`)
	if err != nil {
		return fmt.Errorf("failed to create students student_number index: %w", err)
	}
	fmt.Println(" OK")

	// 2. Create professors table
	fmt.Print(" [up] creating professors table...")
	_, err = db.NewCreateTable().
		Model((*models.Professor)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create professors table: %w", err)
	}

	_, err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_professors_email ON professors(email)`)
	if err != nil {
		return fmt.Errorf("failed to create professors email index: %w", err)
	}
	fmt.Println(" OK")

	// 3. Create courses table
	fmt.Print(" [up] creating courses table...")
	_, err = db.NewCreateTable().
		Model((*models.Course)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create courses table: %w", err)
	}

	_, err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_courses_course_code ON courses(course_code)`)
	if err != nil {
		return fmt.Errorf("failed to create courses course_code index: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_courses_professor_id ON courses(professor_id)`)
	if err != nil {
		return fmt.Errorf("failed to create courses professor_id index: %w", err)
	}

	// FK constraints cannot be added to existing SQLite tables
	if isPostgreSQL(db) {
		_, err = db.Exec(`
			ALTER TABLE courses
			ADD CONSTRAINT fk_courses_professor_id
			FOREIGN KEY (professor_id) REFERENCES professors(id)
		`)
		if err != nil {
			return fmt.Errorf("failed to add courses professor_id FK: %w", err)
		}
	}
	fmt.Println(" OK")

	// 4. Create enrollments table
	fmt.Print(" [up] creating enrollments table...")
	_, err = db.NewCreateTable().
		Model((*models.Enrollment)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create enrollments table: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_enrollments_student_id ON enrollments(student_id)`)
	if err != nil {
		return fmt.Errorf("failed to create enrollments student_id index: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_enrollments_course_id ON enrollments(course_id)`)
	if err != nil {
		return fmt.Errorf("failed to create enrollments course_id index: %w", err)
	}

	_, err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_enrollments_student_course
		ON enrollments (student_id, course_id)
	`)
	if err != nil {
		return fmt.Errorf("failed to create enrollments student/course index: %w", err)
	}

	if isPostgreSQL(db) {
		_, err = db.Exec(`
			ALTER TABLE enrollments
			ADD CONSTRAINT fk_enrollments_student_id
			FOREIGN KEY (student_id) REFERENCES students(id) ON DELETE CASCADE
		`)
		if err != nil {
			return fmt.Errorf("failed to add enrollments student_id FK: %w", err)
		}

		_, err = db.Exec(`
			ALTER TABLE enrollments
			ADD CONSTRAINT fk_enrollments_course_id
			FOREIGN KEY (course_id) REFERENCES courses(id) ON DELETE CASCADE
		`)
		if err != nil {
			return fmt.Errorf("failed to add enrollments course_id FK: %w", err)
		}
	}
	fmt.Println(" OK")

	return nil
}

// down_20250812000001 drops all campus tables in reverse order
func down_20250812000001(ctx context.Context, db *bun.DB) error {
	tables := []string{
		"enrollments",
		"courses",
		"professors",
		"students",
	}

	cascade := ""
	if isPostgreSQL(db) {
		cascade = " CASCADE"
	}

	for _, table := range tables {
		fmt.Printf(" [down] dropping %s table...", table)
		_, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s%s", table, cascade))
		if err != nil {
			return fmt.Errorf("failed to drop %s table: %w", table, err)
		}
		fmt.Println(" OK")
	}

	return nil
}
