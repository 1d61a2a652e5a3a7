package service

import (
	"encoding/json"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AssessmentService struct {
	Repo     *repository.AssessmentRepository
	Activity *ActivityService
}

func NewAssessmentService(repo *repository.AssessmentRepository, activity *ActivityService) *AssessmentService {
	return &AssessmentService{Repo: repo, Activity: activity}
}

type AssessmentRequest struct {
	ModuleID     *uint  `json:"moduleId"`
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	TimeLimit    int    `json:"timeLimit"`
	PassingScore *int   `json:"passingScore"`
}

func (s *AssessmentService) CreateAssessment(req AssessmentRequest) (*model.Assessment, error) {
	a := &model.Assessment{
		ModuleID:     req.ModuleID,
		Title:        req.Title,
		Description:  req.Description,
		TimeLimit:    req.TimeLimit,
		PassingScore: req.PassingScore,
	}
	if err := s.Repo.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssessmentService) GetAssessment(id uint) (*model.Assessment, error) {
	return s.Repo.FindByIDWithQuestions(id)
}

func (s *AssessmentService) UpdateAssessment(id uint, req AssessmentRequest) (*model.Assessment, error) {
	a, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	a.ModuleID = req.ModuleID
	a.Title = req.Title
	a.Description = req.Description
	a.TimeLimit = req.TimeLimit
	a.PassingScore = req.PassingScore
	if err := s.Repo.Update(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssessmentService) DeleteAssessment(id uint) error {
	return s.Repo.Delete(id)
}

type QuestionRequest struct {
	Text          string          `json:"text" binding:"required"`
	QuestionType  string          `json:"questionType" binding:"required"`
	Options       json.RawMessage `json:"options"`
	CorrectAnswer string          `json:"correctAnswer"`
	Explanation   string          `json:"explanation"`
	Points        int             `json:"points"`
	Position      int             `json:"position"`
}

func validQuestionType(t string) bool {
	switch model.QuestionType(t) {
	case model.QuestionMultipleChoice, model.QuestionTrueFalse, model.QuestionShortAnswer:
		return true
	}
	return false
}

func (s *AssessmentService) CreateQuestion(assessmentID uint, req QuestionRequest) (*model.Question, error) {
	if !validQuestionType(req.QuestionType) {
		return nil, util.ErrInvalidQuestionType
	}
	if _, err := s.Repo.FindByID(assessmentID); err != nil {
		return nil, err
	}

	points := req.Points
	if points <= 0 {
		points = 1
	}

	q := &model.Question{
		AssessmentID:  assessmentID,
		Text:          req.Text,
		QuestionType:  model.QuestionType(req.QuestionType),
		Options:       datatypes.JSON(req.Options),
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
		Points:        points,
		Position:      req.Position,
	}
	if err := s.Repo.CreateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *AssessmentService) UpdateQuestion(id uint, req QuestionRequest) (*model.Question, error) {
	if !validQuestionType(req.QuestionType) {
		return nil, util.ErrInvalidQuestionType
	}
	q, err := s.Repo.FindQuestionByID(id)
	if err != nil {
		return nil, err
	}
	q.Text = req.Text
	q.QuestionType = model.QuestionType(req.QuestionType)
	q.Options = datatypes.JSON(req.Options)
	q.CorrectAnswer = req.CorrectAnswer
	q.Explanation = req.Explanation
	if req.Points > 0 {
		q.Points = req.Points
	}
	q.Position = req.Position
	if err := s.Repo.UpdateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *AssessmentService) DeleteQuestion(id uint) error {
	return s.Repo.DeleteQuestion(id)
}

// StudentQuestion hides the correct answer and explanation from takers.
type StudentQuestion struct {
	ID           uint            `json:"id"`
	Text         string          `json:"text"`
	QuestionType string          `json:"questionType"`
	Options      json.RawMessage `json:"options,omitempty"`
	Points       int             `json:"points"`
	Position     int             `json:"position"`
}

func (s *AssessmentService) ListForModule(moduleID uint) ([]model.Assessment, error) {
	return s.Repo.ListByModule(moduleID)
}

func (s *AssessmentService) ListStudentQuestions(assessmentID uint) ([]StudentQuestion, error) {
	qs, err := s.Repo.ListQuestions(assessmentID)
	if err != nil {
		return nil, err
	}

	res := make([]StudentQuestion, len(qs))
	for i, q := range qs {
		res[i] = StudentQuestion{
			ID:           q.ID,
			Text:         q.Text,
			QuestionType: string(q.QuestionType),
			Options:      json.RawMessage(q.Options),
			Points:       q.Points,
			Position:     q.Position,
		}
	}
	return res, nil
}

// StartAttempt opens an attempt, reusing an in-progress one if the user
// already has it open.
func (s *AssessmentService) StartAttempt(userID, assessmentID uint) (*model.AssessmentAttempt, error) {
	if _, err := s.Repo.FindByID(assessmentID); err != nil {
		return nil, err
	}

	if open, err := s.Repo.FindOpenAttempt(userID, assessmentID); err == nil {
		return open, nil
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	attempt := &model.AssessmentAttempt{
		UserID:       userID,
		AssessmentID: assessmentID,
		StartedAt:    time.Now(),
		Status:       model.AttemptInProgress,
	}
	if err := s.Repo.CreateAttempt(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

type SubmitAttemptRequest struct {
	Answers []model.QuestionAnswer `json:"answers" binding:"required"`
}

// SubmitAttempt scores the closed-form questions against their stored
// answers. Short-answer questions earn nothing automatically and wait
// for a manual grade. With a passing score set the attempt lands on
// passed or failed, otherwise on completed.
func (s *AssessmentService) SubmitAttempt(userID, attemptID uint, req SubmitAttemptRequest) (*model.AssessmentAttempt, error) {
	attempt, err := s.Repo.FindAttemptByID(attemptID)
	if err != nil {
		return nil, util.ErrAttemptNotFound
	}
	if attempt.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	if attempt.Status != model.AttemptInProgress {
		return nil, util.ErrAttemptFinished
	}

	assessment, err := s.Repo.FindByID(attempt.AssessmentID)
	if err != nil {
		return nil, err
	}
	questions, err := s.Repo.ListQuestions(attempt.AssessmentID)
	if err != nil {
		return nil, err
	}

	questionMap := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		questionMap[q.ID] = q
	}

	score := 0
	for _, ans := range req.Answers {
		q, ok := questionMap[ans.QuestionID]
		if !ok {
			continue
		}
		switch q.QuestionType {
		case model.QuestionMultipleChoice, model.QuestionTrueFalse:
			if answersMatch(ans.Answer, q.CorrectAnswer) {
				score += q.Points
			}
		case model.QuestionShortAnswer:
			// graded manually, see GradeAttempt
		}
	}

	answersJSON, _ := json.Marshal(req.Answers)
	now := time.Now()

	attempt.Answers = datatypes.JSON(answersJSON)
	attempt.Score = &score
	attempt.CompletedAt = &now
	attempt.Status = statusForScore(assessment, score)

	if err := s.Repo.UpdateAttempt(attempt); err != nil {
		return nil, err
	}

	s.Activity.Log(userID, "assessment.submitted", "assessment", &attempt.AssessmentID,
		map[string]interface{}{"score": score, "status": attempt.Status})

	return attempt, nil
}

// GradeAttempt lets a reviewer override the score after reading the
// short answers.
func (s *AssessmentService) GradeAttempt(attemptID uint, score int) (*model.AssessmentAttempt, error) {
	attempt, err := s.Repo.FindAttemptByID(attemptID)
	if err != nil {
		return nil, util.ErrAttemptNotFound
	}
	if attempt.Status == model.AttemptInProgress {
		return nil, util.ErrAttemptNotFound
	}

	assessment, err := s.Repo.FindByID(attempt.AssessmentID)
	if err != nil {
		return nil, err
	}

	attempt.Score = &score
	attempt.Status = statusForScore(assessment, score)
	if err := s.Repo.UpdateAttempt(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

func (s *AssessmentService) ListAttempts(assessmentID uint, page, limit int) ([]model.AssessmentAttempt, int64, error) {
	return s.Repo.ListAttempts(assessmentID, page, limit)
}

func (s *AssessmentService) ListAttemptsForUser(userID uint) ([]model.AssessmentAttempt, error) {
	return s.Repo.ListAttemptsByUser(userID)
}

func answersMatch(given, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(correct))
}

func statusForScore(a *model.Assessment, score int) model.AttemptStatus {
	if a.PassingScore == nil {
		return model.AttemptCompleted
	}
	if score >= *a.PassingScore {
		return model.AttemptPassed
	}
	return model.AttemptFailed
}
