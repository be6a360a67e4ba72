package controllers

import (
	"github.com/gofiber/fiber/v2"

	"Quiznator-Backend/src/models"
	"Quiznator-Backend/src/services/answers"
	"Quiznator-Backend/src/utils"
)

type QuizAnswerController struct {
	answers *answers.Service
}

func NewQuizAnswerController(svc *answers.Service) *QuizAnswerController {
	return &QuizAnswerController{answers: svc}
}

type ConfirmationRequest struct {
	Confirmed bool `json:"confirmed"`
}

// GetQuizAnswers godoc
// @Summary      List quiz answers
// @Description  Answers of the given quizzes, of the quizzes carrying the given tags, or of the given answerers. The caller must own every quiz named by id.
// @Tags         quiz-answers
// @Produce      json
// @Security     BearerAuth
// @Param        quizzes    query  string  false  "Comma separated quiz ids"
// @Param        tags       query  string  false  "Comma separated tags"
// @Param        answerers  query  string  false  "Comma separated answerer ids"
// @Success      200  {array}   models.QuizAnswer
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Router       /quiz-answers [get]
func (ac *QuizAnswerController) GetQuizAnswers(c *fiber.Ctx) error {
	query := models.AnswerQuery{
		Quizzes:   utils.SplitCSV(c.Query("quizzes")),
		Tags:      utils.SplitCSV(c.Query("tags")),
		Answerers: utils.SplitCSV(c.Query("answerers")),
	}

	list, err := ac.answers.ListAnswers(c.UserContext(), utils.CurrentUser(c), query)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(list)
}

// UpdateConfirmation godoc
// @Summary      Confirm a quiz answer
// @Tags         quiz-answers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string               true  "Answer ID"
// @Param        body body      ConfirmationRequest  true  "Confirmation"
// @Success      200  {object}  models.QuizAnswer
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /quiz-answers/{id}/confirmation [post]
func (ac *QuizAnswerController) UpdateConfirmation(c *fiber.Ctx) error {
	var req ConfirmationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	answer, err := ac.answers.UpdateConfirmation(c.UserContext(), utils.CurrentUser(c), c.Params("id"), req.Confirmed)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(answer)
}
