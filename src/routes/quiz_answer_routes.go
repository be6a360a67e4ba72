package routes

import (
	"github.com/gofiber/fiber/v2"

	"Quiznator-Backend/src/controllers"
)

func quizAnswerRoutes(router fiber.Router, ac *controllers.QuizAnswerController) {
	answers := router.Group("/quiz-answers")
	answers.Get("/", ac.GetQuizAnswers)
	answers.Post("/:id/confirmation", ac.UpdateConfirmation)
}
