package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"vontara-backend/internal/models"
)

type ChapterRepo struct {
	pool *pgxpool.Pool
}

func NewChapterRepo(pool *pgxpool.Pool) *ChapterRepo {
	return &ChapterRepo{pool: pool}
}

// Create appends the chapter at the end of the course's ordering.
func (r *ChapterRepo) Create(ctx context.Context, ch *models.Chapter) error {
	ch.ID = uuid.New()

	query := `INSERT INTO chapters (id, course_id, title, description, video_url, duration, order_number)
		VALUES ($1, $2, $3, $4, $5, $6,
			(SELECT COALESCE(MAX(order_number), 0) + 1 FROM chapters WHERE course_id = $2))
		RETURNING order_number, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		ch.ID, ch.CourseID, ch.Title, ch.Description, ch.VideoURL, ch.Duration,
	).Scan(&ch.OrderNumber, &ch.CreatedAt, &ch.UpdatedAt)
}

func (r *ChapterRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Chapter, error) {
	ch := &models.Chapter{}
	query := `SELECT id, course_id, title, description, video_url, duration, order_number, created_at, updated_at
		FROM chapters WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&ch.ID, &ch.CourseID, &ch.Title, &ch.Description, &ch.VideoURL,
		&ch.Duration, &ch.OrderNumber, &ch.CreatedAt, &ch.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return ch, nil
}

func (r *ChapterRepo) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Chapter, error) {
	query := `SELECT id, course_id, title, description, video_url, duration, order_number, created_at, updated_at
		FROM chapters WHERE course_id = $1 ORDER BY order_number ASC`

	rows, err := r.pool.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chapters := []models.Chapter{}
	for rows.Next() {
		var ch models.Chapter
		if err := rows.Scan(
			&ch.ID, &ch.CourseID, &ch.Title, &ch.Description, &ch.VideoURL,
			&ch.Duration, &ch.OrderNumber, &ch.CreatedAt, &ch.UpdatedAt,
		); err != nil {
			return nil, err
		}
		chapters = append(chapters, ch)
	}
	return chapters, rows.Err()
}

func (r *ChapterRepo) Update(ctx context.Context, ch *models.Chapter) error {
	query := `UPDATE chapters
		SET title = $1, description = $2, video_url = $3, duration = $4, updated_at = NOW()
		WHERE id = $5 RETURNING updated_at`

	return r.pool.QueryRow(ctx, query,
		ch.Title, ch.Description, ch.VideoURL, ch.Duration, ch.ID,
	).Scan(&ch.UpdatedAt)
}

func (r *ChapterRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM chapters WHERE id = $1", id)
	return err
}

// Reorder rewrites order_number for every chapter of a course from the given
// explicit ordering. Runs in one transaction so a partial reorder never lands.
func (r *ChapterRepo) Reorder(ctx context.Context, courseID uuid.UUID, orderedIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i, id := range orderedIDs {
		if _, err := tx.Exec(ctx, `
			UPDATE chapters SET order_number = $1, updated_at = NOW()
			WHERE id = $2 AND course_id = $3
		`, i+1, id, courseID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
