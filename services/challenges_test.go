package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllChallenges(t *testing.T) {
	challenges := AllChallenges()

	assert.Len(t, challenges, 5)

	// mutating the copy must not touch the catalogue
	challenges[0].Title = "changed"
	assert.Equal(t, "Design a Mars Habitat", AllChallenges()[0].Title)
}

func TestChallengeByID(t *testing.T) {
	c := ChallengeByID("rover-mission-001")
	require.NotNil(t, c)
	assert.Equal(t, "Plan a Rover Mission", c.Title)
	assert.Equal(t, "beginner", c.Difficulty)
	assert.Equal(t, 400, c.Rewards.Points)

	assert.Nil(t, ChallengeByID("no-such-challenge"))
}

func TestFilterChallenges(t *testing.T) {
	all := FilterChallenges("", "", 0)
	assert.Len(t, all, 5)

	habitat := FilterChallenges("habitat", "", 0)
	require.Len(t, habitat, 1)
	assert.Equal(t, "habitat-design-001", habitat[0].ID)

	advanced := FilterChallenges("", "advanced", 0)
	assert.Len(t, advanced, 2)

	both := FilterChallenges("energy", "advanced", 0)
	require.Len(t, both, 1)
	assert.Equal(t, "solar-power-001", both[0].ID)

	assert.Empty(t, FilterChallenges("energy", "beginner", 0))

	limited := FilterChallenges("", "", 2)
	assert.Len(t, limited, 2)
}

func TestChallengeVocabularies(t *testing.T) {
	assert.Equal(t, []string{"habitat", "energy", "water", "food", "transportation"}, ChallengeCategories())
	assert.Equal(t, []string{"intermediate", "advanced", "beginner"}, ChallengeDifficulties())
	assert.Equal(t, []string{"habitat", "energy", "water", "food", "transportation"}, MissionCategories())
	assert.Equal(t, []string{"beginner", "intermediate", "advanced"}, MissionDifficulties())
}
