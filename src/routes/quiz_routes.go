package routes

import (
	"github.com/gofiber/fiber/v2"

	"Quiznator-Backend/src/controllers"
)

// quizRoutes กำหนดเส้นทางสำหรับ Quiz API
func quizRoutes(router fiber.Router, qc *controllers.QuizController) {
	quizzes := router.Group("/quizzes")
	quizzes.Post("/", qc.CreateQuiz)
	quizzes.Post("/clone", qc.CloneQuizzes)
	quizzes.Get("/answerable", qc.GetAnswerableQuizzes)
	quizzes.Get("/:id", qc.GetQuiz)
	quizzes.Put("/:id", qc.UpdateQuiz)
	quizzes.Delete("/:id", qc.DeleteQuiz)
	quizzes.Get("/:id/stats", qc.GetQuizStats)
}
