package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"vontara-backend/internal/models"
)

type CourseRepo struct {
	pool *pgxpool.Pool
}

func NewCourseRepo(pool *pgxpool.Pool) *CourseRepo {
	return &CourseRepo{pool: pool}
}

func (r *CourseRepo) Create(ctx context.Context, c *models.Course) error {
	c.ID = uuid.New()

	query := `INSERT INTO courses (id, title, description, thumbnail, level, students, duration)
		VALUES ($1, $2, $3, $4, $5, 0, $6) RETURNING students, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		c.ID, c.Title, c.Description, c.Thumbnail, c.Level, c.Duration,
	).Scan(&c.Students, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CourseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	c := &models.Course{}
	query := `SELECT id, title, description, thumbnail, level, students, duration, created_at, updated_at
		FROM courses WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Title, &c.Description, &c.Thumbnail, &c.Level,
		&c.Students, &c.Duration, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CourseRepo) List(ctx context.Context) ([]models.Course, error) {
	query := `SELECT id, title, description, thumbnail, level, students, duration, created_at, updated_at
		FROM courses ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Description, &c.Thumbnail, &c.Level,
			&c.Students, &c.Duration, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (r *CourseRepo) Update(ctx context.Context, c *models.Course) error {
	query := `UPDATE courses
		SET title = $1, description = $2, thumbnail = $3, level = $4, duration = $5, updated_at = NOW()
		WHERE id = $6 RETURNING updated_at`

	return r.pool.QueryRow(ctx, query,
		c.Title, c.Description, c.Thumbnail, c.Level, c.Duration, c.ID,
	).Scan(&c.UpdatedAt)
}

func (r *CourseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM courses WHERE id = $1", id)
	return err
}

// IncrementStudents bumps the enrollment counter shown on course cards.
func (r *CourseRepo) IncrementStudents(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "UPDATE courses SET students = students + 1, updated_at = NOW() WHERE id = $1", id)
	return err
}
