package controllers

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Quiznator-Backend/src/jobs"
	"Quiznator-Backend/src/models"
	"Quiznator-Backend/src/services/quizzes"
	"Quiznator-Backend/src/utils"
)

type QuizController struct {
	quizzes  *quizzes.Service
	tasks    jobs.Enqueuer
	validate *validator.Validate
}

// NewQuizController: tasks may be nil, async clones then answer 503.
func NewQuizController(svc *quizzes.Service, tasks jobs.Enqueuer) *QuizController {
	return &QuizController{quizzes: svc, tasks: tasks, validate: utils.NewValidator()}
}

// CreateQuiz godoc
// @Summary      Create a quiz
// @Description  Create a quiz owned by the caller. Tags are stored lower-cased without repeats.
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body models.QuizInput true "Quiz"
// @Success      201  {object}  models.Quiz
// @Failure      400  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /quizzes [post]
func (qc *QuizController) CreateQuiz(c *fiber.Ctx) error {
	owner, ok := callerID(c)
	if !ok {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Token user is not a valid id")
	}

	var in models.QuizInput
	if err := c.BodyParser(&in); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	quiz, err := qc.quizzes.CreateQuiz(c.UserContext(), owner, in)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(quiz)
}

// GetAnswerableQuizzes godoc
// @Summary      List answerable quizzes
// @Description  Quizzes of the types a learner answers directly, optionally narrowed by tags
// @Tags         quizzes
// @Produce      json
// @Security     BearerAuth
// @Param        tags  query  string  false  "Comma separated tags"
// @Success      200  {array}   models.Quiz
// @Failure      500  {object}  models.ErrorResponse
// @Router       /quizzes/answerable [get]
func (qc *QuizController) GetAnswerableQuizzes(c *fiber.Ctx) error {
	query := bson.M{}
	if tags := utils.SplitCSV(c.Query("tags")); len(tags) > 0 {
		query = quizzes.WhereTags(tags)
	}

	list, err := qc.quizzes.FindAnswerable(c.UserContext(), query)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(list)
}

// GetQuiz godoc
// @Summary      Get a quiz
// @Tags         quizzes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Quiz ID"
// @Success      200  {object}  models.Quiz
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /quizzes/{id} [get]
func (qc *QuizController) GetQuiz(c *fiber.Ctx) error {
	id, err := quizIDParam(c)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	quiz, err := qc.quizzes.GetQuiz(c.UserContext(), id)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(quiz)
}

// UpdateQuiz godoc
// @Summary      Update a quiz
// @Description  Only the owner may update a quiz. Cached stats of the quiz are dropped.
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string            true  "Quiz ID"
// @Param        body body      models.QuizInput  true  "Quiz"
// @Success      200  {object}  models.Quiz
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /quizzes/{id} [put]
func (qc *QuizController) UpdateQuiz(c *fiber.Ctx) error {
	quiz, err := qc.ownedQuiz(c)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	var in models.QuizInput
	if err := c.BodyParser(&in); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	updated, err := qc.quizzes.UpdateQuiz(c.UserContext(), quiz.ID, in)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(updated)
}

// DeleteQuiz godoc
// @Summary      Delete a quiz
// @Description  Removes the quiz together with its answers and peer reviews
// @Tags         quizzes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Quiz ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /quizzes/{id} [delete]
func (qc *QuizController) DeleteQuiz(c *fiber.Ctx) error {
	quiz, err := qc.ownedQuiz(c)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	if err := qc.quizzes.RemoveQuiz(c.UserContext(), quiz.ID); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Quiz deleted successfully"})
}

// GetQuizStats godoc
// @Summary      Answer statistics of a quiz
// @Description  Answer counts and, for choice-style quizzes, the distribution over items
// @Tags         quizzes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Quiz ID"
// @Success      200  {object}  models.QuizStats
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /quizzes/{id}/stats [get]
func (qc *QuizController) GetQuizStats(c *fiber.Ctx) error {
	quiz, err := qc.ownedQuiz(c)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	stats, err := qc.quizzes.GetStats(c.UserContext(), quiz)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(stats)
}

// CloneQuizzes godoc
// @Summary      Clone quizzes
// @Description  Copies the quizzes with the given ids or tags into the caller's ownership. References between the copied quizzes are pointed at the copies. With async the clone runs on the worker.
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body      models.CloneRequest  true  "Selection"
// @Success      200  {object}  models.CloneResult
// @Success      202  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Failure      503  {object}  models.ErrorResponse
// @Router       /quizzes/clone [post]
func (qc *QuizController) CloneQuizzes(c *fiber.Ctx) error {
	owner, ok := callerID(c)
	if !ok {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Token user is not a valid id")
	}

	var req models.CloneRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := qc.validate.Struct(req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	if req.Async {
		return qc.enqueueClone(c, owner, req)
	}

	query, err := quizzes.BuildCloneQuery(req.IDs, req.Tags)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	result, err := qc.quizzes.Clone(c.UserContext(), query, bson.M{"userId": owner})
	if err != nil {
		if result != nil {
			return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
				"message": "Quizzes cloned, reference rewrite scheduled for retry",
				"data":    result,
			})
		}
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(result)
}

func (qc *QuizController) enqueueClone(c *fiber.Ctx, owner primitive.ObjectID, req models.CloneRequest) error {
	if qc.tasks == nil {
		return utils.HandleError(c, fiber.StatusServiceUnavailable, "asynq client not initialized")
	}

	task, err := jobs.NewCloneQuizzesTask(jobs.CloneQuizzesPayload{IDs: req.IDs, Tags: req.Tags, OwnerID: owner.Hex()})
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}

	taskID := "clone-" + uuid.NewString()
	if _, err := qc.tasks.Enqueue(task, asynq.TaskID(taskID)); err != nil {
		log.Printf("❌ Failed to enqueue clone task %s: %v", taskID, err)
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "enqueued", "taskId": taskID})
}

// ownedQuiz loads the :id quiz and checks the caller owns it.
func (qc *QuizController) ownedQuiz(c *fiber.Ctx) (*models.Quiz, error) {
	id, err := quizIDParam(c)
	if err != nil {
		return nil, err
	}
	quiz, err := qc.quizzes.GetQuiz(c.UserContext(), id)
	if err != nil {
		return nil, err
	}
	if !quiz.CanInspectAnswers(utils.CurrentUser(c)) {
		return nil, fmt.Errorf("quiz %s: %w", id.Hex(), models.ErrForbidden)
	}
	return quiz, nil
}

func quizIDParam(c *fiber.Ctx) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid quiz id", models.ErrInvalidRequest)
	}
	return id, nil
}

func callerID(c *fiber.Ctx) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(utils.CurrentUser(c).ID)
	return id, err == nil
}
