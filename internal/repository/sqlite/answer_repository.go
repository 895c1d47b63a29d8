package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/photodeck/internal/logger"
	"github.com/vytor/photodeck/internal/models"
	"github.com/vytor/photodeck/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type answerRepository struct {
	db *sql.DB
}

// NewAnswerRepository creates a new AnswerRepository implementation
func NewAnswerRepository(db *sql.DB) repository.AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Insert(ctx context.Context, a models.Answer) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("answer_repo")
	log.Debug("inserting answer: name=%s, correct=%t", a.Name, a.IsCorrect)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO answers (name, image_src, is_correct, answered_at)
VALUES (?, ?, ?, ?)
`, a.Name, a.ImageSrc, a.IsCorrect, a.AnsweredAt)
	if err != nil {
		log.Error("failed to insert answer: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get answer id: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *answerRepository) List(ctx context.Context, filter models.AnswerFilter) ([]models.Answer, error) {
	log := logger.FromContext(ctx).WithPrefix("answer_repo")
	log.Debug("listing answers: name=%q, limit=%d", filter.Name, filter.Limit)

	query := sqlBuilder.
		Select("id", "name", "image_src", "is_correct", "answered_at").
		From("answers")

	if filter.Name != "" {
		query = query.Where(squirrel.Eq{"name": filter.Name})
	}
	if filter.Correct != nil {
		query = query.Where(squirrel.Eq{"is_correct": *filter.Correct})
	}
	if !filter.Since.IsZero() {
		query = query.Where(squirrel.GtOrEq{"answered_at": filter.Since})
	}

	// Safe ORDER BY with validation
	orderDir := "DESC"
	if filter.OrderDir == "ASC" {
		orderDir = "ASC"
	}
	query = query.OrderBy("answered_at " + orderDir)

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query = query.Limit(uint64(limit))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build answers query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query answers: %v", err)
		return nil, err
	}
	defer rows.Close()

	var answers []models.Answer
	for rows.Next() {
		var a models.Answer
		if err := rows.Scan(&a.ID, &a.Name, &a.ImageSrc, &a.IsCorrect, &a.AnsweredAt); err != nil {
			log.Error("failed to scan answer row: %v", err)
			return nil, err
		}
		answers = append(answers, a)
	}
	log.Debug("found %d answers", len(answers))
	return answers, rows.Err()
}

func (r *answerRepository) Stats(ctx context.Context) (models.AnswerStats, error) {
	log := logger.FromContext(ctx).WithPrefix("answer_repo")

	var stats models.AnswerStats
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*), COALESCE(SUM(is_correct), 0) FROM answers
`).Scan(&stats.Total, &stats.Correct)
	if err != nil {
		log.Error("failed to compute answer stats: %v", err)
		return models.AnswerStats{}, err
	}
	if stats.Total > 0 {
		stats.Accuracy = float64(stats.Correct) / float64(stats.Total)
	}
	log.Debug("answer stats: total=%d, correct=%d", stats.Total, stats.Correct)
	return stats, nil
}
