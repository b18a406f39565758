// internal/routes/quiz_routes.go
package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"amora/internal/handlers"
	"amora/internal/repository"
)

func RegisterQuizRoutes(router chi.Router, db *sql.DB) {
	questionRepo := repository.NewQuestionRepository(db)
	statusRepo := repository.NewQuizStatusRepository(db)
	questionHandler := handlers.NewQuestionHandler(questionRepo, statusRepo)

	router.Get("/questions/{partnerId}", questionHandler.GetQuizRound)
	router.Get("/questionSingle/{idPergunta}", questionHandler.GetQuestion)
	router.Post("/createQuestion", questionHandler.CreateQuestion)
	router.Post("/editQuestion/{idPergunta}", questionHandler.UpdateQuestion)
	router.Delete("/deleteQuestion/{idPergunta}", questionHandler.DeleteQuestion)
	router.Get("/questionsAll/{partnerId}", questionHandler.ListQuestions)

	router.Get("/quiz-status/{userId}", questionHandler.GetQuizStatus)
	router.Post("/update-quiz-status/{userId}", questionHandler.UpdateQuizStatus)
}
