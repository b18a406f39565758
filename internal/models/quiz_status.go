package models

import "time"

type QuizStatus struct {
	UserID     string    `json:"user_id"`
	Completed  bool      `json:"is_completed"`
	LastQuizAt time.Time `json:"data_ultimo_quiz"`
}
