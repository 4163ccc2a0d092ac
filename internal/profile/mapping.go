package profile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Hues-Apply/profile-sync/internal/dtos"
)

// Wire <-> local mapping for every section. The read side is defensive:
// missing or null pieces of the comprehensive payload become zero values,
// never errors.

// --- Read side ---

func personalFromWire(p *dtos.PersonalProfile) PersonalInfo {
	if p == nil {
		return PersonalInfo{}
	}
	return PersonalInfo{
		Name:    strings.TrimSpace(p.FirstName + " " + p.LastName),
		Email:   p.Email,
		Phone:   p.PhoneNumber,
		Country: p.Country,
		Goal:    formatGoals(p.UserGoals, p.Goal),
	}
}

// formatGoals renders the prioritized goal list as "<priority>. <text>"
// lines in ascending priority order, falling back to the raw goal string
// when the list is absent.
func formatGoals(goals []dtos.UserGoal, fallback string) string {
	if len(goals) == 0 {
		return fallback
	}
	sorted := make([]dtos.UserGoal, len(goals))
	copy(sorted, goals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	lines := make([]string, 0, len(sorted))
	for _, g := range sorted {
		lines = append(lines, fmt.Sprintf("%d. %s", g.Priority, g.GoalDisplay))
	}
	return strings.Join(lines, "\n")
}

func careerFromWire(c *dtos.CareerProfileRecord) CareerProfile {
	if c == nil {
		return CareerProfile{}
	}
	return CareerProfile{
		Industry:       c.Industry,
		JobTitle:       c.JobTitle,
		ProfileSummary: c.ProfileSummary,
	}
}

func educationFromWire(records []dtos.EducationRecord) []Education {
	if len(records) == 0 {
		return []Education{BlankEducation()}
	}
	out := make([]Education, 0, len(records))
	for _, r := range records {
		out = append(out, Education{
			ID:          Persisted(r.ID),
			Degree:      r.Degree,
			School:      r.School,
			StartDate:   r.StartDate,
			EndDate:     r.EndDate,
			IsStudying:  r.IsCurrentlyStudying,
			Description: r.ExtraCurricular,
		})
	}
	return out
}

func experienceFromWire(records []dtos.ExperienceRecord) []Experience {
	if len(records) == 0 {
		return []Experience{BlankExperience()}
	}
	out := make([]Experience, 0, len(records))
	for _, r := range records {
		out = append(out, Experience{
			ID:                 Persisted(r.ID),
			JobTitle:           r.JobTitle,
			CompanyName:        r.CompanyName,
			Location:           r.Location,
			StartDate:          r.StartDate,
			EndDate:            r.EndDate,
			IsCurrentlyWorking: r.IsCurrentlyWorking,
			Description:        r.Description,
		})
	}
	return out
}

func projectsFromWire(records []dtos.ProjectRecord) []Project {
	if len(records) == 0 {
		return []Project{BlankProject()}
	}
	out := make([]Project, 0, len(records))
	for _, r := range records {
		out = append(out, Project{
			ID:          Persisted(r.ID),
			Title:       r.ProjectTitle,
			StartDate:   r.StartDate,
			EndDate:     r.EndDate,
			IsOngoing:   r.IsCurrentlyOngoing,
			Description: r.Description,
		})
	}
	return out
}

func aiPreferencesFromWire(interest *dtos.OpportunitiesInterestRecord, priority *dtos.RecommendationPriorityRecord) AIPreferences {
	var prefs AIPreferences
	if interest != nil {
		prefs.Opportunities = OpportunityInterests{
			Scholarships: interest.Scholarships,
			Jobs:         interest.Jobs,
			Grants:       interest.Grants,
			Internships:  interest.Internships,
		}
	}
	if priority != nil {
		prefs.PrioritizeBy = RecommendationPriorities{
			AcademicBackground: priority.AcademicBackground,
			WorkExperience:     priority.WorkExperience,
			PreferredLocations: priority.PreferredLocations,
			Others:             priority.Others,
		}
		prefs.SalaryExpectation = priority.AdditionalPreferences
	}
	return prefs
}

// --- Write side ---

// splitName cuts the display name on the first space boundary. A single
// word becomes the first name with an empty last name.
func splitName(name string) (first, last string) {
	first, last, _ = strings.Cut(name, " ")
	return first, last
}

func personalToWire(p PersonalInfo) dtos.PersonalInfoRequest {
	first, last := splitName(p.Name)
	return dtos.PersonalInfoRequest{
		FirstName:   first,
		LastName:    last,
		Email:       p.Email,
		PhoneNumber: p.Phone,
		Country:     p.Country,
		Goal:        p.Goal,
	}
}

func careerToWire(c CareerProfile) dtos.CareerProfileRequest {
	return dtos.CareerProfileRequest{
		Industry:       c.Industry,
		JobTitle:       c.JobTitle,
		ProfileSummary: c.ProfileSummary,
	}
}

// endDate suppresses the stored end date while the entry is marked as
// currently active, so the payload omits the field rather than sending a
// stale value.
func endDate(value string, currentlyActive bool) *string {
	if currentlyActive {
		return nil
	}
	return &value
}

func educationToWire(e Education) dtos.EducationRequest {
	return dtos.EducationRequest{
		Degree:              e.Degree,
		School:              e.School,
		StartDate:           e.StartDate,
		EndDate:             endDate(e.EndDate, e.IsStudying),
		IsCurrentlyStudying: e.IsStudying,
		ExtraCurricular:     e.Description,
	}
}

func experienceToWire(e Experience) dtos.ExperienceRequest {
	return dtos.ExperienceRequest{
		JobTitle:           e.JobTitle,
		CompanyName:        e.CompanyName,
		Location:           e.Location,
		StartDate:          e.StartDate,
		EndDate:            endDate(e.EndDate, e.IsCurrentlyWorking),
		IsCurrentlyWorking: e.IsCurrentlyWorking,
		Description:        e.Description,
	}
}

func projectToWire(p Project) dtos.ProjectRequest {
	return dtos.ProjectRequest{
		ProjectTitle:       p.Title,
		StartDate:          p.StartDate,
		EndDate:            endDate(p.EndDate, p.IsOngoing),
		IsCurrentlyOngoing: p.IsOngoing,
		Description:        p.Description,
	}
}

func interestsToWire(o OpportunityInterests) dtos.OpportunitiesInterestRequest {
	return dtos.OpportunitiesInterestRequest{
		Scholarships: o.Scholarships,
		Jobs:         o.Jobs,
		Grants:       o.Grants,
		Internships:  o.Internships,
	}
}

func prioritiesToWire(r RecommendationPriorities, additional string) dtos.RecommendationPriorityRequest {
	return dtos.RecommendationPriorityRequest{
		AcademicBackground:    r.AcademicBackground,
		WorkExperience:        r.WorkExperience,
		PreferredLocations:    r.PreferredLocations,
		Others:                r.Others,
		AdditionalPreferences: additional,
	}
}
