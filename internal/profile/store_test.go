package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hues-Apply/profile-sync/internal/dtos"
)

func TestNewStoreInitialState(t *testing.T) {
	s := NewStore()
	assert.True(t, s.Loading)
	assert.Empty(t, s.Error)
	assert.Equal(t, PersonalInfo{}, s.Personal)
	assert.NotNil(t, s.Education)
	assert.Len(t, s.Education, 0)
	assert.Len(t, s.Experience, 0)
	assert.Len(t, s.Projects, 0)
}

func TestAddEntryGetsTempID(t *testing.T) {
	s := NewStore()
	now := time.UnixMilli(1712345678901)

	edu := s.AddEducation(now)
	assert.Equal(t, "temp_1712345678901", edu.ID.String())
	require.Len(t, s.Education, 1)

	exp := s.AddExperience(now)
	assert.Equal(t, ClassPending, exp.ID.Class())

	proj := s.AddProject(now)
	assert.Equal(t, ClassPending, proj.ID.Class())
}

func TestRemoveLastEntryReinsertsBlankPlaceholder(t *testing.T) {
	s := NewStore()
	s.Education = []Education{{ID: Persisted(7), Degree: "BSc"}}

	s.RemoveEducationAt(0)
	require.Len(t, s.Education, 1)
	assert.Equal(t, Education{ID: Unsaved()}, s.Education[0])

	s.Experience = []Experience{{ID: Persisted(8)}}
	s.RemoveExperienceAt(0)
	require.Len(t, s.Experience, 1)
	assert.Equal(t, "new", s.Experience[0].ID.String())

	s.Projects = []Project{{ID: Persisted(9)}}
	s.RemoveProjectAt(0)
	require.Len(t, s.Projects, 1)
	assert.Equal(t, ClassUnsaved, s.Projects[0].ID.Class())
}

func TestRemoveMiddleEntryKeepsOthers(t *testing.T) {
	s := NewStore()
	s.Education = []Education{
		{ID: Persisted(1), Degree: "A"},
		{ID: Persisted(2), Degree: "B"},
		{ID: Persisted(3), Degree: "C"},
	}

	s.RemoveEducationAt(1)
	require.Len(t, s.Education, 2)
	assert.Equal(t, "A", s.Education[0].Degree)
	assert.Equal(t, "C", s.Education[1].Degree)
}

func TestRemoveOutOfRangeIsNoOp(t *testing.T) {
	s := NewStore()
	s.Education = []Education{{ID: Persisted(1)}}

	s.RemoveEducationAt(-1)
	s.RemoveEducationAt(5)
	assert.Len(t, s.Education, 1)
}

func TestPopulateReplacesEverySection(t *testing.T) {
	s := NewStore()
	s.Error = "stale error"
	s.Education = []Education{{ID: Persisted(99), Degree: "stale"}}

	data := &dtos.ComprehensiveProfile{
		Profile:       &dtos.PersonalProfile{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		CareerProfile: &dtos.CareerProfileRecord{Industry: "Tech", JobTitle: "Engineer"},
		EducationProfiles: []dtos.EducationRecord{
			{ID: 7, Degree: "BSc", School: "MIT"},
		},
		OpportunitiesInterest: &dtos.OpportunitiesInterestRecord{Scholarships: true},
	}
	s.Populate(data)

	assert.Equal(t, "Ada Lovelace", s.Personal.Name)
	assert.Equal(t, "Tech", s.Career.Industry)
	require.Len(t, s.Education, 1)
	assert.Equal(t, "7", s.Education[0].ID.String())
	// Sections absent from the payload fall back to blank placeholders.
	require.Len(t, s.Experience, 1)
	assert.Equal(t, ClassUnsaved, s.Experience[0].ID.Class())
	assert.True(t, s.AIPreferences.Opportunities.Scholarships)
	assert.Empty(t, s.Error)
	assert.Same(t, data, s.Raw)
}
