package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"amora/internal/models"
)

type QuestionRepository interface {
	Create(ctx context.Context, q *models.Question, answers []string) error
	GetByID(ctx context.Context, id int64) (*models.Question, error)
	ListByPartner(ctx context.Context, partnerID string) ([]models.Question, error)
	RandomByPartner(ctx context.Context, partnerID string, limit int) ([]models.Question, error)
	Update(ctx context.Context, id int64, req *models.UpdateQuestionRequest) error
	Delete(ctx context.Context, id int64) error
}

type questionRepository struct {
	db *sql.DB
}

func NewQuestionRepository(db *sql.DB) QuestionRepository {
	return &questionRepository{db: db}
}

// Create inserts the question and its answer set in one transaction; a
// question row without its four answers must never be observable.
func (r *questionRepository) Create(ctx context.Context, q *models.Question, answers []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO questions (partner_id, prompt, correct_index, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, q.PartnerID, q.Prompt, q.CorrectIndex, q.CreatedAt).Scan(&q.ID, &q.CreatedAt)
	if err != nil {
		return err
	}

	for i, answer := range answers {
		var a models.Answer
		a.QuestionID = q.ID
		a.Answer = answer
		a.IsCorrect = i+1 == q.CorrectIndex
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO answers (question_id, answer, is_correct)
			VALUES ($1, $2, $3)
			RETURNING id
		`, a.QuestionID, a.Answer, a.IsCorrect).Scan(&a.ID); err != nil {
			return err
		}
		q.Answers = append(q.Answers, a)
	}

	return tx.Commit()
}

func (r *questionRepository) GetByID(ctx context.Context, id int64) (*models.Question, error) {
	var q models.Question
	err := r.db.QueryRowContext(ctx, `
		SELECT id, partner_id, prompt, correct_index, created_at
		FROM questions
		WHERE id = $1
	`, id).Scan(&q.ID, &q.PartnerID, &q.Prompt, &q.CorrectIndex, &q.CreatedAt)
	if err != nil {
		return nil, err
	}

	answers, err := r.answersFor(ctx, []int64{q.ID})
	if err != nil {
		return nil, err
	}
	q.Answers = answers[q.ID]
	return &q, nil
}

func (r *questionRepository) ListByPartner(ctx context.Context, partnerID string) ([]models.Question, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, partner_id, prompt, correct_index, created_at
		FROM questions
		WHERE partner_id = $1
		ORDER BY id
	`, partnerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanQuestions(rows)
}

// RandomByPartner returns up to limit questions in random order with their
// answers attached, the quiz-round selection.
func (r *questionRepository) RandomByPartner(ctx context.Context, partnerID string, limit int) ([]models.Question, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, partner_id, prompt, correct_index, created_at
		FROM questions
		WHERE partner_id = $1
		ORDER BY RANDOM()
		LIMIT $2
	`, partnerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions, err := scanQuestions(rows)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return questions, nil
	}

	ids := make([]int64, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	answers, err := r.answersFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range questions {
		questions[i].Answers = answers[questions[i].ID]
	}
	return questions, nil
}

// Update rewrites the question and all of its answers in one transaction.
func (r *questionRepository) Update(ctx context.Context, id int64, req *models.UpdateQuestionRequest) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE questions SET prompt = $1, correct_index = $2 WHERE id = $3
	`, req.Prompt, req.CorrectIndex, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}

	for i, answer := range req.Answers {
		isCorrect := i+1 == req.CorrectIndex
		if _, err := tx.ExecContext(ctx, `
			UPDATE answers SET answer = $1, is_correct = $2
			WHERE id = $3 AND question_id = $4
		`, answer.Answer, isCorrect, answer.ID, id); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Delete removes the answers and then the question in one transaction.
func (r *questionRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM answers WHERE question_id = $1`, id); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}

func (r *questionRepository) answersFor(ctx context.Context, questionIDs []int64) (map[int64][]models.Answer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, question_id, answer, is_correct
		FROM answers
		WHERE question_id = ANY($1)
		ORDER BY id
	`, pq.Array(questionIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byQuestion := make(map[int64][]models.Answer)
	for rows.Next() {
		var a models.Answer
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.Answer, &a.IsCorrect); err != nil {
			return nil, err
		}
		byQuestion[a.QuestionID] = append(byQuestion[a.QuestionID], a)
	}
	return byQuestion, rows.Err()
}

func scanQuestions(rows *sql.Rows) ([]models.Question, error) {
	var questions []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.PartnerID, &q.Prompt, &q.CorrectIndex, &q.CreatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scanning questions: %w", err)
	}
	return questions, nil
}
