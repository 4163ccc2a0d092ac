package profile

import (
	"time"

	"github.com/Hues-Apply/profile-sync/internal/dtos"
)

// Store is the single source of truth for one user's editable profile
// state. It is plain data: the reconciler fills it on load, and the edit
// endpoints replace slices wholesale. Callers are responsible for
// serializing access (the session layer holds a mutex around every use).
type Store struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error"`

	// Raw is the last server-shape payload as fetched, replaced (never
	// merged) on every successful load. The UI never mutates it.
	Raw *dtos.ComprehensiveProfile `json:"-"`

	Personal      PersonalInfo  `json:"personalInfo"`
	Career        CareerProfile `json:"careerProfile"`
	Education     []Education   `json:"education"`
	Experience    []Experience  `json:"experience"`
	Projects      []Project     `json:"projects"`
	AIPreferences AIPreferences `json:"aiPreferences"`
}

// NewStore returns the initial state: every string empty, every list empty,
// loading set until the first fetch lands.
func NewStore() *Store {
	return &Store{
		Loading:    true,
		Education:  []Education{},
		Experience: []Experience{},
		Projects:   []Project{},
	}
}

// Populate replaces every section from a fetched comprehensive payload.
func (s *Store) Populate(data *dtos.ComprehensiveProfile) {
	s.Raw = data
	s.Personal = personalFromWire(data.Profile)
	s.Career = careerFromWire(data.CareerProfile)
	s.Education = educationFromWire(data.EducationProfiles)
	s.Experience = experienceFromWire(data.ExperienceProfiles)
	s.Projects = projectsFromWire(data.ProjectProfiles)
	s.AIPreferences = aiPreferencesFromWire(data.OpportunitiesInterest, data.RecommendationPriority)
	s.Error = ""
}

// AddEducation appends a blank row with a fresh temp id and returns it.
func (s *Store) AddEducation(now time.Time) Education {
	entry := Education{ID: NewPending(now)}
	s.Education = append(s.Education, entry)
	return entry
}

func (s *Store) AddExperience(now time.Time) Experience {
	entry := Experience{ID: NewPending(now)}
	s.Experience = append(s.Experience, entry)
	return entry
}

func (s *Store) AddProject(now time.Time) Project {
	entry := Project{ID: NewPending(now)}
	s.Projects = append(s.Projects, entry)
	return entry
}

// RemoveEducationAt drops the entry at index. The list is never left
// empty: removing the last entry re-inserts a single blank placeholder.
func (s *Store) RemoveEducationAt(index int) {
	if index < 0 || index >= len(s.Education) {
		return
	}
	s.Education = append(s.Education[:index:index], s.Education[index+1:]...)
	if len(s.Education) == 0 {
		s.Education = []Education{BlankEducation()}
	}
}

func (s *Store) RemoveExperienceAt(index int) {
	if index < 0 || index >= len(s.Experience) {
		return
	}
	s.Experience = append(s.Experience[:index:index], s.Experience[index+1:]...)
	if len(s.Experience) == 0 {
		s.Experience = []Experience{BlankExperience()}
	}
}

func (s *Store) RemoveProjectAt(index int) {
	if index < 0 || index >= len(s.Projects) {
		return
	}
	s.Projects = append(s.Projects[:index:index], s.Projects[index+1:]...)
	if len(s.Projects) == 0 {
		s.Projects = []Project{BlankProject()}
	}
}
