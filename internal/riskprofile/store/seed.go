package store

import (
	"riskgate/internal/riskprofile/models"
	"riskgate/internal/riskprofile/store/account"
	"riskgate/internal/riskprofile/store/question"
	"riskgate/internal/riskprofile/store/response"
	"riskgate/internal/riskprofile/store/scale"
	id "riskgate/pkg/domain"
)

// SeedDevData loads a small questionnaire catalogue into the in-memory stores
// so the server is usable without a database.
func SeedDevData(as *account.InMemory, qs *question.InMemory, rs *response.InMemory, ss *scale.InMemory) {
	as.Add(id.AccountID(1))
	as.Add(id.AccountID(2))

	questions := []struct {
		id   id.QuestionID
		text string
	}{
		{1, "What is your primary investment objective?"},
		{2, "How long do you plan to keep your money invested?"},
		{3, "How would you react to a 20% drop in your portfolio value?"},
		{4, "What portion of your monthly income can you set aside for investing?"},
		{5, "How familiar are you with financial instruments such as stocks and bonds?"},
		{6, "Have you invested in variable-income products before?"},
	}
	const countryID = id.CountryID(1)
	for _, q := range questions {
		qs.Put(&models.Question{ID: q.id, CountryID: countryID, Text: q.text})
	}

	answers := []string{"Strongly conservative", "Conservative", "Moderate", "Aggressive"}
	var responseID id.ResponseID = 1
	for _, q := range questions {
		for i, text := range answers {
			rs.Put(&models.Response{
				ID:         responseID,
				QuestionID: q.id,
				Text:       text,
				Score:      i + 1,
			})
			responseID++
		}
	}

	ss.Put(&models.Scale{ID: 1, Description: "Conservative", MinValue: 0, MaxValue: 10})
	ss.Put(&models.Scale{ID: 2, Description: "Moderate", MinValue: 11, MaxValue: 17})
	ss.Put(&models.Scale{ID: 3, Description: "Aggressive", MinValue: 18, MaxValue: 24})
}
