package service

import (
	"encoding/json"
	"lms_backend/internal/model"
	"lms_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildQuiz(t *testing.T, env *testEnv, passingScore *int) (*model.Assessment, []*model.Question) {
	t.Helper()

	a, err := env.assessment.CreateAssessment(AssessmentRequest{
		Title:        "Quiz",
		PassingScore: passingScore,
	})
	require.NoError(t, err)

	options, _ := json.Marshal([]string{"1", "2", "3"})
	q1, err := env.assessment.CreateQuestion(a.ID, QuestionRequest{
		Text: "1+1?", QuestionType: "multiple_choice",
		Options: options, CorrectAnswer: "2", Points: 2,
	})
	require.NoError(t, err)

	q2, err := env.assessment.CreateQuestion(a.ID, QuestionRequest{
		Text: "The sky is blue.", QuestionType: "true_false",
		CorrectAnswer: "true", Points: 1,
	})
	require.NoError(t, err)

	q3, err := env.assessment.CreateQuestion(a.ID, QuestionRequest{
		Text: "Explain pointers.", QuestionType: "short_answer", Points: 5,
	})
	require.NoError(t, err)

	return a, []*model.Question{q1, q2, q3}
}

func TestCreateQuestionRejectsUnknownType(t *testing.T) {
	env := newTestEnv(t)
	a, err := env.assessment.CreateAssessment(AssessmentRequest{Title: "Q"})
	require.NoError(t, err)

	_, err = env.assessment.CreateQuestion(a.ID, QuestionRequest{
		Text: "?", QuestionType: "essay",
	})
	assert.ErrorIs(t, err, util.ErrInvalidQuestionType)
}

func TestStudentQuestionsHideAnswers(t *testing.T) {
	env := newTestEnv(t)
	a, _ := buildQuiz(t, env, nil)

	qs, err := env.assessment.ListStudentQuestions(a.ID)
	require.NoError(t, err)
	require.Len(t, qs, 3)

	raw, err := json.Marshal(qs)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "correctAnswer")
	assert.NotContains(t, string(raw), "explanation")
}

func TestStartAttemptReusesOpenOne(t *testing.T) {
	env := newTestEnv(t)
	user := env.user(t, "taker", model.RoleEmployee)
	a, _ := buildQuiz(t, env, nil)

	first, err := env.assessment.StartAttempt(user.ID, a.ID)
	require.NoError(t, err)
	second, err := env.assessment.StartAttempt(user.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestSubmitAttemptScoresClosedQuestions(t *testing.T) {
	env := newTestEnv(t)
	user := env.user(t, "taker", model.RoleEmployee)
	passing := 3
	a, qs := buildQuiz(t, env, &passing)

	attempt, err := env.assessment.StartAttempt(user.ID, a.ID)
	require.NoError(t, err)

	// whitespace and case do not matter for closed questions; the short
	// answer earns nothing until graded
	result, err := env.assessment.SubmitAttempt(user.ID, attempt.ID, SubmitAttemptRequest{
		Answers: []model.QuestionAnswer{
			{QuestionID: qs[0].ID, Answer: " 2 "},
			{QuestionID: qs[1].ID, Answer: "TRUE"},
			{QuestionID: qs[2].ID, Answer: "a pointer holds an address"},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, result.Score)
	assert.Equal(t, 3, *result.Score)
	assert.Equal(t, model.AttemptPassed, result.Status)
	assert.NotNil(t, result.CompletedAt)
}

func TestSubmitAttemptFailsBelowPassingScore(t *testing.T) {
	env := newTestEnv(t)
	user := env.user(t, "taker", model.RoleEmployee)
	passing := 3
	a, qs := buildQuiz(t, env, &passing)

	attempt, err := env.assessment.StartAttempt(user.ID, a.ID)
	require.NoError(t, err)

	result, err := env.assessment.SubmitAttempt(user.ID, attempt.ID, SubmitAttemptRequest{
		Answers: []model.QuestionAnswer{
			{QuestionID: qs[0].ID, Answer: "3"},
			{QuestionID: qs[1].ID, Answer: "true"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, *result.Score)
	assert.Equal(t, model.AttemptFailed, result.Status)
}

func TestSubmitWithoutPassingScoreCompletes(t *testing.T) {
	env := newTestEnv(t)
	user := env.user(t, "taker", model.RoleEmployee)
	a, qs := buildQuiz(t, env, nil)

	attempt, err := env.assessment.StartAttempt(user.ID, a.ID)
	require.NoError(t, err)

	result, err := env.assessment.SubmitAttempt(user.ID, attempt.ID, SubmitAttemptRequest{
		Answers: []model.QuestionAnswer{{QuestionID: qs[0].ID, Answer: "2"}},
	})
	require.NoError(t, err)
	assert.Equal(t, model.AttemptCompleted, result.Status)
}

func TestSubmitAttemptGuards(t *testing.T) {
	env := newTestEnv(t)
	user := env.user(t, "taker", model.RoleEmployee)
	stranger := env.user(t, "stranger", model.RoleEmployee)
	a, qs := buildQuiz(t, env, nil)

	attempt, err := env.assessment.StartAttempt(user.ID, a.ID)
	require.NoError(t, err)

	_, err = env.assessment.SubmitAttempt(stranger.ID, attempt.ID, SubmitAttemptRequest{
		Answers: []model.QuestionAnswer{},
	})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = env.assessment.SubmitAttempt(user.ID, attempt.ID, SubmitAttemptRequest{
		Answers: []model.QuestionAnswer{{QuestionID: qs[0].ID, Answer: "2"}},
	})
	require.NoError(t, err)

	_, err = env.assessment.SubmitAttempt(user.ID, attempt.ID, SubmitAttemptRequest{
		Answers: []model.QuestionAnswer{},
	})
	assert.ErrorIs(t, err, util.ErrAttemptFinished)
}

func TestGradeAttemptOverridesScore(t *testing.T) {
	env := newTestEnv(t)
	user := env.user(t, "taker", model.RoleEmployee)
	passing := 6
	a, qs := buildQuiz(t, env, &passing)

	attempt, err := env.assessment.StartAttempt(user.ID, a.ID)
	require.NoError(t, err)

	submitted, err := env.assessment.SubmitAttempt(user.ID, attempt.ID, SubmitAttemptRequest{
		Answers: []model.QuestionAnswer{
			{QuestionID: qs[0].ID, Answer: "2"},
			{QuestionID: qs[2].ID, Answer: "solid explanation"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, model.AttemptFailed, submitted.Status)

	// reviewer awards the short-answer points
	graded, err := env.assessment.GradeAttempt(attempt.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, *graded.Score)
	assert.Equal(t, model.AttemptPassed, graded.Status)
}
