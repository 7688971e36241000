package course

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

type Repository interface {
	List(ctx context.Context, f ListFilter) ([]*Course, error)
	GetBySlug(ctx context.Context, slug string) (*Course, error)
	Enroll(ctx context.Context, userID, courseID uint) error
	IsEnrolled(ctx context.Context, userID, courseID uint) (bool, error)
	ListEnrollments(ctx context.Context, userID uint) ([]*Enrollment, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const courseColumns = `
	c.id, c.slug, c.title, c.description, c.instructor, c.category, c.thumbnail,
	c.price, c.discount, c.duration, c.is_featured, c.is_active, c.created_at, c.updated_at`

func scanCourse(row interface{ Scan(...any) error }) (*Course, error) {
	var c Course
	err := row.Scan(
		&c.ID, &c.Slug, &c.Title, &c.Description, &c.Instructor, &c.Category, &c.Thumbnail,
		&c.Price, &c.Discount, &c.Duration, &c.IsFeatured, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		&c.StudentCount,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// studentCount is appended to every course select so listings can show
// enrollment numbers without a second round trip.
const studentCount = `,
	(SELECT COUNT(*) FROM enrollments e WHERE e.course_id = c.id) AS student_count`

func (r *repository) List(ctx context.Context, f ListFilter) ([]*Course, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	where := []string{"c.is_active = TRUE"}
	args := []any{}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(c.title ILIKE $%d OR c.description ILIKE $%d)", len(args), len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("c.category = $%d", len(args)))
	}
	if f.Featured {
		where = append(where, "c.is_featured = TRUE")
	}

	query := `SELECT` + courseColumns + studentCount + `
	FROM courses c
	WHERE ` + strings.Join(where, " AND ") + `
	ORDER BY c.created_at DESC
	LIMIT $` + fmt.Sprint(len(args)+1) + `
	OFFSET $` + fmt.Sprint(len(args)+2)

	args = append(args, limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*Course, 0, limit)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Course, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT`+courseColumns+studentCount+` FROM courses c WHERE c.slug = $1`, slug)

	c, err := scanCourse(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return c, err
}

// Enroll is idempotent: enrolling twice leaves a single row.
func (r *repository) Enroll(ctx context.Context, userID, courseID uint) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO enrollments (user_id, course_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, course_id) DO NOTHING
	`, userID, courseID)
	return err
}

func (r *repository) IsEnrolled(ctx context.Context, userID, courseID uint) (bool, error) {
	var enrolled bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM enrollments WHERE user_id = $1 AND course_id = $2
		)
	`, userID, courseID).Scan(&enrolled)
	return enrolled, err
}

func (r *repository) ListEnrollments(ctx context.Context, userID uint) ([]*Enrollment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT en.id, en.user_id, en.course_id, en.created_at,`+courseColumns+studentCount+`
		FROM enrollments en
		JOIN courses c ON en.course_id = c.id
		WHERE en.user_id = $1
		ORDER BY en.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []*Enrollment
	for rows.Next() {
		e := &Enrollment{Course: &Course{}}
		c := e.Course
		err := rows.Scan(
			&e.ID, &e.UserID, &e.CourseID, &e.CreatedAt,
			&c.ID, &c.Slug, &c.Title, &c.Description, &c.Instructor, &c.Category, &c.Thumbnail,
			&c.Price, &c.Discount, &c.Duration, &c.IsFeatured, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
			&c.StudentCount,
		)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}
