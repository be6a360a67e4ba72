package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"Quiznator-Backend/src/controllers"
	"Quiznator-Backend/src/middleware"
	"Quiznator-Backend/src/utils"
)

// Deps carries what the routes hand to their controllers.
type Deps struct {
	Quizzes     *controllers.QuizController
	QuizAnswers *controllers.QuizAnswerController
	JWTSecret   string
	Revoked     *utils.RevokedTokens
}

func InitRoutes(app *fiber.App, deps Deps) {
	// เปิดใช้งาน Swagger ที่ URL /swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api/v1", middleware.AuthJWT(deps.JWTSecret, deps.Revoked))
	quizRoutes(api, deps.Quizzes)
	quizAnswerRoutes(api, deps.QuizAnswers)

	// Route เช็คว่า API ทำงานอยู่
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("✅ API is running...")
	})
}
