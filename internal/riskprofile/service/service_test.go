package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"riskgate/internal/riskprofile/models"
	accountstore "riskgate/internal/riskprofile/store/account"
	profilestore "riskgate/internal/riskprofile/store/profile"
	questionstore "riskgate/internal/riskprofile/store/question"
	responsestore "riskgate/internal/riskprofile/store/response"
	scalestore "riskgate/internal/riskprofile/store/scale"
	selectionstore "riskgate/internal/riskprofile/store/selection"
	id "riskgate/pkg/domain"
	dErrors "riskgate/pkg/domain-errors"
	audit "riskgate/pkg/platform/audit"
	auditmemory "riskgate/pkg/platform/audit/store/memory"
)

// The fixture gives every question q three answers with scores q, 2q and 3q.
// Picking the middle answer for all six questions yields a total of 42, which
// lands in the middle scale. Picking the top answer yields 63, which no scale
// covers.
const testCountry = id.CountryID(1)

type ServiceSuite struct {
	suite.Suite
	ctx        context.Context
	svc        *Service
	accounts   *accountstore.InMemory
	selections *selectionstore.InMemory
	profiles   *profilestore.InMemory
	scales     *scalestore.InMemory
	auditLog   *auditmemory.InMemoryStore
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()

	s.accounts = accountstore.NewInMemory()
	s.accounts.Add(id.AccountID(1))
	s.accounts.Add(id.AccountID(2))

	questions := questionstore.NewInMemory()
	responses := responsestore.NewInMemory()
	for q := int64(1); q <= 6; q++ {
		questions.Put(&models.Question{ID: id.QuestionID(q), CountryID: testCountry, Text: "question"})
		for i := int64(1); i <= 3; i++ {
			responses.Put(&models.Response{
				ID:         id.ResponseID(q*10 + i),
				QuestionID: id.QuestionID(q),
				Text:       "answer",
				Score:      int(q * i),
			})
		}
	}

	s.scales = scalestore.NewInMemory()
	s.scales.Put(&models.Scale{ID: 1, Description: "Low", MinValue: 0, MaxValue: 20})
	s.scales.Put(&models.Scale{ID: 2, Description: "Medium", MinValue: 21, MaxValue: 50})
	s.scales.Put(&models.Scale{ID: 3, Description: "High", MinValue: 51, MaxValue: 60})

	s.selections = selectionstore.NewInMemory()
	s.profiles = profilestore.NewInMemory()
	s.auditLog = auditmemory.NewInMemoryStore()

	s.svc = NewService(Stores{
		Accounts:   s.accounts,
		Questions:  questions,
		Responses:  responses,
		Selections: s.selections,
		Scales:     s.scales,
		Profiles:   s.profiles,
	}, WithAuditor(audit.NewPublisher(s.auditLog)))
}

// answerAll records the answer with the given score multiplier (1..3) for
// every question.
func (s *ServiceSuite) answerAll(account id.AccountID, multiplier int64) {
	for q := int64(1); q <= 6; q++ {
		_, err := s.svc.RecordSelection(s.ctx, account, id.ResponseID(q*10+multiplier))
		s.Require().NoError(err)
	}
}

func (s *ServiceSuite) TestRecordSelectionReplacesPriorAnswer() {
	account := id.AccountID(1)

	first, err := s.svc.RecordSelection(s.ctx, account, id.ResponseID(11))
	s.Require().NoError(err)
	s.NotZero(first.ID)

	// Same question, different answer: the first selection must go away.
	second, err := s.svc.RecordSelection(s.ctx, account, id.ResponseID(12))
	s.Require().NoError(err)

	stored, err := s.selections.ListByAccount(s.ctx, account)
	s.Require().NoError(err)
	s.Require().Len(stored, 1)
	s.Equal(second.ID, stored[0].ID)
	s.Equal(id.ResponseID(12), stored[0].ResponseID)
}

func (s *ServiceSuite) TestRecordSelectionKeepsOtherQuestions() {
	account := id.AccountID(1)
	_, err := s.svc.RecordSelection(s.ctx, account, id.ResponseID(11))
	s.Require().NoError(err)
	_, err = s.svc.RecordSelection(s.ctx, account, id.ResponseID(21))
	s.Require().NoError(err)
	_, err = s.svc.RecordSelection(s.ctx, account, id.ResponseID(13))
	s.Require().NoError(err)

	stored, err := s.selections.ListByAccount(s.ctx, account)
	s.Require().NoError(err)
	s.Len(stored, 2)
}

func (s *ServiceSuite) TestRecordSelectionUnknownAnswer() {
	_, err := s.svc.RecordSelection(s.ctx, id.AccountID(1), id.ResponseID(999))
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.Equal("risk profile answer not found", dErrors.MessageOf(err))
}

func (s *ServiceSuite) TestListSelectionsEmbedsAnswers() {
	account := id.AccountID(1)
	s.answerAll(account, 2)

	selections, err := s.svc.ListSelections(s.ctx, account)
	s.Require().NoError(err)
	s.Require().Len(selections, 6)
	for _, selection := range selections {
		s.Require().NotNil(selection.Response)
		s.Equal(selection.ResponseID, selection.Response.ID)
	}
}

func (s *ServiceSuite) TestListSelectionsEmptyIsNotFound() {
	_, err := s.svc.ListSelections(s.ctx, id.AccountID(1))
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.Equal("No risk profile answers found", dErrors.MessageOf(err))
}

func (s *ServiceSuite) TestComputeTotalScore() {
	account := id.AccountID(1)

	total, err := s.svc.ComputeTotalScore(s.ctx, account)
	s.Require().NoError(err)
	s.Zero(total, "no selections sum to zero")

	s.answerAll(account, 2)
	total, err = s.svc.ComputeTotalScore(s.ctx, account)
	s.Require().NoError(err)
	s.Equal(42, total)

	// Same answers recorded in reverse order for another account give the
	// same total.
	other := id.AccountID(2)
	for q := int64(6); q >= 1; q-- {
		_, err := s.svc.RecordSelection(s.ctx, other, id.ResponseID(q*10+2))
		s.Require().NoError(err)
	}
	reversed, err := s.svc.ComputeTotalScore(s.ctx, other)
	s.Require().NoError(err)
	s.Equal(total, reversed)
}

func (s *ServiceSuite) TestCreateProfileMatchesScale() {
	account := id.AccountID(1)
	s.answerAll(account, 2)

	profile, err := s.svc.CreateProfile(s.ctx, account)
	s.Require().NoError(err)
	s.Equal(42, profile.TotalScore)
	s.Equal(id.ScaleID(2), profile.ScaleID)
	s.NotZero(profile.ID)

	events, err := s.auditLog.ListByAccount(s.ctx, account)
	s.Require().NoError(err)
	s.Require().NotEmpty(events)
	s.Equal(audit.ActionProfileCreated, events[len(events)-1].Action)
}

func (s *ServiceSuite) TestCreateProfileRequiresAllAnswers() {
	account := id.AccountID(1)
	for q := int64(1); q <= 5; q++ {
		_, err := s.svc.RecordSelection(s.ctx, account, id.ResponseID(q*10+1))
		s.Require().NoError(err)
	}

	_, err := s.svc.CreateProfile(s.ctx, account)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeIncompleteInput))
	s.Equal("Please answer all 6 risk profile questions", dErrors.MessageOf(err))
}

func (s *ServiceSuite) TestCreateProfileRejectsDuplicate() {
	account := id.AccountID(1)
	s.answerAll(account, 2)

	_, err := s.svc.CreateProfile(s.ctx, account)
	s.Require().NoError(err)

	_, err = s.svc.CreateProfile(s.ctx, account)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	s.Equal("Risk profile already exists for this account. Please update the existing risk profile", dErrors.MessageOf(err))
}

func (s *ServiceSuite) TestCreateProfileUnknownAccount() {
	_, err := s.svc.CreateProfile(s.ctx, id.AccountID(99))
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.Equal("Natural investment account not found", dErrors.MessageOf(err))
}

func (s *ServiceSuite) TestCreateProfileWithoutCoveringScale() {
	account := id.AccountID(1)
	s.answerAll(account, 3) // total 63, above every band

	_, err := s.svc.CreateProfile(s.ctx, account)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	_, err = s.profiles.FindByAccount(s.ctx, account)
	s.Require().Error(err, "no profile must be persisted on a scale gap")
}

func (s *ServiceSuite) TestGetProfiles() {
	account := id.AccountID(1)

	_, err := s.svc.GetProfiles(s.ctx, account)
	s.Require().Error(err)
	s.Equal("No risk profiles found for the specified account", dErrors.MessageOf(err))

	s.answerAll(account, 1)
	_, err = s.svc.CreateProfile(s.ctx, account)
	s.Require().NoError(err)

	profiles, err := s.svc.GetProfiles(s.ctx, account)
	s.Require().NoError(err)
	s.Len(profiles, 1)

	_, err = s.svc.GetProfiles(s.ctx, id.AccountID(99))
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestOverrideScale() {
	account := id.AccountID(1)
	s.answerAll(account, 2)
	created, err := s.svc.CreateProfile(s.ctx, account)
	s.Require().NoError(err)
	s.Require().Equal(id.ScaleID(2), created.ScaleID)

	updated, changed, err := s.svc.OverrideScale(s.ctx, account, id.ScaleID(3))
	s.Require().NoError(err)
	s.True(changed)
	s.Equal(id.ScaleID(3), updated.ScaleID)
	s.Equal(created.TotalScore, updated.TotalScore, "the stored score is frozen")

	// Second override to the same scale is a no-op.
	same, changed, err := s.svc.OverrideScale(s.ctx, account, id.ScaleID(3))
	s.Require().NoError(err)
	s.False(changed)
	s.Equal(id.ScaleID(3), same.ScaleID)
}

func (s *ServiceSuite) TestOverrideScaleErrors() {
	account := id.AccountID(1)

	_, _, err := s.svc.OverrideScale(s.ctx, id.AccountID(99), id.ScaleID(1))
	s.Equal("Investment account does not exist", dErrors.MessageOf(err))

	_, _, err = s.svc.OverrideScale(s.ctx, account, id.ScaleID(99))
	s.Equal("Scales ID does not exist", dErrors.MessageOf(err))

	_, _, err = s.svc.OverrideScale(s.ctx, account, id.ScaleID(1))
	s.Equal("No risk profile found with the provided investment account natural.", dErrors.MessageOf(err))
}

func (s *ServiceSuite) TestQuestions() {
	questions, err := s.svc.Questions(s.ctx, testCountry, id.QuestionID(3))
	s.Require().NoError(err)
	s.Require().Len(questions, 1)
	s.Equal(id.QuestionID(3), questions[0].ID)

	_, err = s.svc.Questions(s.ctx, id.CountryID(9), id.QuestionID(3))
	s.Equal("No risk profile questions found for the specified country ID", dErrors.MessageOf(err))

	_, err = s.svc.Questions(s.ctx, testCountry, id.QuestionID(99))
	s.Equal("No risk profile questions found for the specified question ID", dErrors.MessageOf(err))
}

func (s *ServiceSuite) TestQuestionResponses() {
	responses, err := s.svc.QuestionResponses(s.ctx, testCountry, id.QuestionID(2))
	s.Require().NoError(err)
	s.Len(responses, 3)

	_, err = s.svc.QuestionResponses(s.ctx, testCountry, id.QuestionID(99))
	s.Equal("No answers found for the specified question", dErrors.MessageOf(err))

	_, err = s.svc.QuestionResponses(s.ctx, id.CountryID(9), id.QuestionID(2))
	s.Equal("No answers found for the specified country", dErrors.MessageOf(err))
}

func (s *ServiceSuite) TestScales() {
	scales, err := s.svc.Scales(s.ctx)
	s.Require().NoError(err)
	s.Len(scales, 3)
}
