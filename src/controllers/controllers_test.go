package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Quiznator-Backend/src/controllers"
	"Quiznator-Backend/src/jobs"
	"Quiznator-Backend/src/models"
	"Quiznator-Backend/src/routes"
	"Quiznator-Backend/src/services/answers"
	"Quiznator-Backend/src/services/quizzes"
	"Quiznator-Backend/src/store/memstore"
	"Quiznator-Backend/src/utils"
)

const secret = "controller-secret"

type recordingEnqueuer struct {
	tasks []*asynq.Task
}

func (r *recordingEnqueuer) Enqueue(task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	r.tasks = append(r.tasks, task)
	return &asynq.TaskInfo{ID: "t"}, nil
}

type testServer struct {
	app      *fiber.App
	quizColl *memstore.Collection
	answers  *memstore.Collection
	tasks    *recordingEnqueuer
	owner    primitive.ObjectID
	ownerJWT string
	other    primitive.ObjectID
	otherJWT string
}

func newServer(t *testing.T, withTasks bool) *testServer {
	t.Helper()
	s := &testServer{quizColl: memstore.New(), answers: memstore.New(), owner: primitive.NewObjectID(), other: primitive.NewObjectID()}

	quizSvc := quizzes.NewService(s.quizColl, s.answers, memstore.New(), quizzes.WithBatchJournal(memstore.New()))
	answerSvc := answers.NewService(s.answers, quizSvc)

	var enq jobs.Enqueuer
	if withTasks {
		s.tasks = &recordingEnqueuer{}
		enq = s.tasks
	}

	s.app = fiber.New()
	routes.InitRoutes(s.app, routes.Deps{
		Quizzes:     controllers.NewQuizController(quizSvc, enq),
		QuizAnswers: controllers.NewQuizAnswerController(answerSvc),
		JWTSecret:   secret,
	})

	var err error
	s.ownerJWT, err = utils.GenerateJWT(secret, s.owner.Hex(), "owner@example.com", "teacher")
	require.NoError(t, err)
	s.otherJWT, err = utils.GenerateJWT(secret, s.other.Hex(), "other@example.com", "teacher")
	require.NoError(t, err)
	return s
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func (s *testServer) createQuiz(t *testing.T, in models.QuizInput) models.Quiz {
	t.Helper()
	status, body := s.do(t, http.MethodPost, "/api/v1/quizzes", s.ownerJWT, in)
	require.Equal(t, fiber.StatusCreated, status, string(body))
	var quiz models.Quiz
	require.NoError(t, json.Unmarshal(body, &quiz))
	return quiz
}

func TestRoutesRequireToken(t *testing.T) {
	s := newServer(t, false)
	status, _ := s.do(t, http.MethodGet, "/api/v1/quizzes/answerable", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestCreateAndGetQuiz(t *testing.T) {
	s := newServer(t, false)

	quiz := s.createQuiz(t, models.QuizInput{Type: models.Essay, Title: "First essay", Data: bson.M{"minWords": 10}, Tags: []string{"Week1", "week1"}})
	assert.Equal(t, []string{"week1"}, quiz.Tags)
	assert.Equal(t, s.owner, quiz.UserID)

	status, body := s.do(t, http.MethodGet, "/api/v1/quizzes/"+quiz.ID.Hex(), s.otherJWT, nil)
	require.Equal(t, fiber.StatusOK, status)
	var got models.Quiz
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "First essay", got.Title)
}

func TestQuizStatusMapping(t *testing.T) {
	s := newServer(t, false)
	quiz := s.createQuiz(t, models.QuizInput{Type: models.Essay, Title: "Owned", Data: bson.M{"x": 1}})

	cases := []struct {
		name, method, path, token string
		body                      interface{}
		want                      int
	}{
		{"invalid input", http.MethodPost, "/api/v1/quizzes", s.ownerJWT, models.QuizInput{Type: "NOPE", Title: "x", Data: bson.M{"a": 1}}, fiber.StatusBadRequest},
		{"malformed id", http.MethodGet, "/api/v1/quizzes/xyz", s.ownerJWT, nil, fiber.StatusBadRequest},
		{"unknown id", http.MethodGet, "/api/v1/quizzes/" + primitive.NewObjectID().Hex(), s.ownerJWT, nil, fiber.StatusNotFound},
		{"foreign update", http.MethodPut, "/api/v1/quizzes/" + quiz.ID.Hex(), s.otherJWT, models.QuizInput{Type: models.Essay, Title: "Stolen", Data: bson.M{"x": 1}}, fiber.StatusForbidden},
		{"foreign stats", http.MethodGet, "/api/v1/quizzes/" + quiz.ID.Hex() + "/stats", s.otherJWT, nil, fiber.StatusForbidden},
		{"foreign delete", http.MethodDelete, "/api/v1/quizzes/" + quiz.ID.Hex(), s.otherJWT, nil, fiber.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := s.do(t, tc.method, tc.path, tc.token, tc.body)
			assert.Equal(t, tc.want, status, string(body))
		})
	}
}

func TestQuizStatsEndpoint(t *testing.T) {
	s := newServer(t, false)
	quiz := s.createQuiz(t, models.QuizInput{
		Type:  models.Checkbox,
		Title: "Pick fruits",
		Data:  bson.M{"items": []interface{}{bson.M{"id": "a", "title": "Apple"}, bson.M{"id": "b", "title": "Banana"}}},
	})
	s.answers.Insert(
		bson.M{"quizId": quiz.ID, "answererId": "s1", "data": []string{"a", "b"}},
		bson.M{"quizId": quiz.ID, "answererId": "s2", "data": []string{"a"}},
	)

	status, body := s.do(t, http.MethodGet, "/api/v1/quizzes/"+quiz.ID.Hex()+"/stats", s.ownerJWT, nil)
	require.Equal(t, fiber.StatusOK, status, string(body))

	var stats struct {
		AnswerCounts       models.AnswerCounts `json:"answerCounts"`
		AnswerDistribution []struct {
			Value map[string]interface{} `json:"value"`
			Count int64                  `json:"count"`
		} `json:"answerDistribution"`
	}
	require.NoError(t, json.Unmarshal(body, &stats))
	assert.Equal(t, models.AnswerCounts{All: 2, Unique: 2}, stats.AnswerCounts)

	counts := map[string]int64{}
	for _, e := range stats.AnswerDistribution {
		counts[e.Value["title"].(string)] = e.Count
	}
	assert.Equal(t, map[string]int64{"Apple": 2, "Banana": 1}, counts)
}

func TestDeleteQuizRemovesAnswers(t *testing.T) {
	s := newServer(t, false)
	quiz := s.createQuiz(t, models.QuizInput{Type: models.Open, Title: "Short lived", Data: bson.M{"x": 1}})
	s.answers.Insert(bson.M{"quizId": quiz.ID, "answererId": "s1", "data": "hi"})

	status, _ := s.do(t, http.MethodDelete, "/api/v1/quizzes/"+quiz.ID.Hex(), s.ownerJWT, nil)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Zero(t, s.quizColl.Count())
	assert.Zero(t, s.answers.Count())
}

func TestCloneEndpointSync(t *testing.T) {
	s := newServer(t, false)
	essay := s.createQuiz(t, models.QuizInput{Type: models.Essay, Title: "Essay", Data: bson.M{"x": 1}, Tags: []string{"course-a"}})
	review := s.createQuiz(t, models.QuizInput{Type: models.PeerReview, Title: "Review", Data: bson.M{"quizId": essay.ID.Hex()}, Tags: []string{"course-a"}})

	status, body := s.do(t, http.MethodPost, "/api/v1/quizzes/clone", s.otherJWT, fiber.Map{"tags": []string{"COURSE-A"}})
	require.Equal(t, fiber.StatusOK, status, string(body))

	var result models.CloneResult
	require.NoError(t, json.Unmarshal(body, &result))
	require.Len(t, result.Mapping, 2)

	cloneID, err := primitive.ObjectIDFromHex(result.Mapping[review.ID.Hex()])
	require.NoError(t, err)
	clone, ok := s.quizColl.Get(cloneID)
	require.True(t, ok)
	assert.Equal(t, s.other, clone["userId"])
	assert.Equal(t, result.Mapping[essay.ID.Hex()], clone["data"].(bson.M)["quizId"])
}

func TestCloneEndpointValidation(t *testing.T) {
	s := newServer(t, false)

	status, _ := s.do(t, http.MethodPost, "/api/v1/quizzes/clone", s.ownerJWT, fiber.Map{})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodPost, "/api/v1/quizzes/clone", s.ownerJWT, fiber.Map{"ids": []string{"not-hex"}})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestCloneEndpointAsync(t *testing.T) {
	s := newServer(t, true)

	status, body := s.do(t, http.MethodPost, "/api/v1/quizzes/clone", s.ownerJWT, fiber.Map{"tags": []string{"a"}, "async": true})

	require.Equal(t, fiber.StatusAccepted, status, string(body))
	require.Len(t, s.tasks.tasks, 1)
	assert.Equal(t, jobs.TypeCloneQuizzes, s.tasks.tasks[0].Type())

	var p jobs.CloneQuizzesPayload
	require.NoError(t, json.Unmarshal(s.tasks.tasks[0].Payload(), &p))
	assert.Equal(t, s.owner.Hex(), p.OwnerID)
	assert.Equal(t, []string{"a"}, p.Tags)

	noQueue := newServer(t, false)
	status, _ = noQueue.do(t, http.MethodPost, "/api/v1/quizzes/clone", noQueue.ownerJWT, fiber.Map{"tags": []string{"a"}, "async": true})
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
}

func TestQuizAnswersEndpoints(t *testing.T) {
	s := newServer(t, false)
	mine := s.createQuiz(t, models.QuizInput{Type: models.Open, Title: "Mine", Data: bson.M{"x": 1}})
	ids := s.answers.Insert(
		bson.M{"quizId": mine.ID, "answererId": "s1", "data": "a", "confirmed": false},
		bson.M{"quizId": mine.ID, "answererId": "s2", "data": "b", "confirmed": false},
	)

	status, body := s.do(t, http.MethodGet, "/api/v1/quiz-answers?quizzes="+mine.ID.Hex()+"&answerers=s1", s.ownerJWT, nil)
	require.Equal(t, fiber.StatusOK, status, string(body))
	var list []models.QuizAnswer
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "s1", list[0].AnswererID)

	status, _ = s.do(t, http.MethodGet, "/api/v1/quiz-answers?quizzes="+mine.ID.Hex(), s.otherJWT, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = s.do(t, http.MethodGet, "/api/v1/quiz-answers", s.ownerJWT, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	answerID := ids[0].(primitive.ObjectID).Hex()
	status, body = s.do(t, http.MethodPost, "/api/v1/quiz-answers/"+answerID+"/confirmation", s.ownerJWT, fiber.Map{"confirmed": true})
	require.Equal(t, fiber.StatusOK, status, string(body))
	var answer models.QuizAnswer
	require.NoError(t, json.Unmarshal(body, &answer))
	assert.True(t, answer.Confirmed)

	status, _ = s.do(t, http.MethodPost, "/api/v1/quiz-answers/"+primitive.NewObjectID().Hex()+"/confirmation", s.ownerJWT, fiber.Map{"confirmed": true})
	assert.Equal(t, fiber.StatusNotFound, status)
}
