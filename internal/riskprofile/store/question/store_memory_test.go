package question

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riskgate/internal/riskprofile/models"
	id "riskgate/pkg/domain"
	"riskgate/pkg/platform/sentinel"
)

func TestListByCountryFiltersAndSorts(t *testing.T) {
	store := NewInMemory()
	store.Put(&models.Question{ID: 2, CountryID: 1, Text: "b"})
	store.Put(&models.Question{ID: 1, CountryID: 1, Text: "a"})
	store.Put(&models.Question{ID: 3, CountryID: 2, Text: "c"})

	questions, err := store.ListByCountry(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, id.QuestionID(1), questions[0].ID)
	assert.Equal(t, id.QuestionID(2), questions[1].ID)

	empty, err := store.ListByCountry(context.Background(), 9)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestFindByID(t *testing.T) {
	store := NewInMemory()
	store.Put(&models.Question{ID: 1, CountryID: 1, Text: "a"})

	question, err := store.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "a", question.Text)

	_, err = store.FindByID(context.Background(), 9)
	require.ErrorIs(t, err, sentinel.ErrNotFound)
}
