package models

import "time"

type Question struct {
	ID           int64     `json:"id"`
	PartnerID    string    `json:"partner_id"`
	Prompt       string    `json:"question"`
	CorrectIndex int       `json:"correct_index"`
	CreatedAt    time.Time `json:"created_at"`
	Answers      []Answer  `json:"answers,omitempty"`
}

type Answer struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question_id"`
	Answer     string `json:"answer"`
	IsCorrect  bool   `json:"is_correct"`
}

type CreateQuestionRequest struct {
	Prompt       string   `json:"question" validate:"required"`
	CorrectIndex int      `json:"correct_index" validate:"required,min=1,max=4"`
	PartnerID    string   `json:"partner_id" validate:"required"`
	Answers      []string `json:"answers" validate:"required,len=4,dive,required"`
}

type UpdateQuestionRequest struct {
	Prompt       string         `json:"question" validate:"required"`
	CorrectIndex int            `json:"correct_index" validate:"required,min=1,max=4"`
	Answers      []UpdateAnswer `json:"answers" validate:"required,len=4"`
}

type UpdateAnswer struct {
	ID     int64  `json:"id" validate:"required"`
	Answer string `json:"answer" validate:"required"`
}
