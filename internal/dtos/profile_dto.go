package dtos

// Wire shapes for the Remote Profile API. Everything here is snake_case
// and mirrors the backend contract exactly; the camelCase editable shapes
// live in internal/profile.

type PersonalInfoRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Country     string `json:"country"`
	Goal        string `json:"goal"`
}

type CareerProfileRequest struct {
	Industry       string `json:"industry"`
	JobTitle       string `json:"job_title"`
	ProfileSummary string `json:"profile_summary"`
}

// EducationRequest is used for both create (POST) and update (PUT).
// EndDate is a pointer so it can be omitted entirely while the user is
// still studying, instead of sending a stale stored date.
type EducationRequest struct {
	Degree              string  `json:"degree"`
	School              string  `json:"school"`
	StartDate           string  `json:"start_date"`
	EndDate             *string `json:"end_date,omitempty"`
	IsCurrentlyStudying bool    `json:"is_currently_studying"`
	ExtraCurricular     string  `json:"extra_curricular"`
}

type ExperienceRequest struct {
	JobTitle           string  `json:"job_title"`
	CompanyName        string  `json:"company_name"`
	Location           string  `json:"location"`
	StartDate          string  `json:"start_date"`
	EndDate            *string `json:"end_date,omitempty"`
	IsCurrentlyWorking bool    `json:"is_currently_working"`
	Description        string  `json:"description"`
}

type ProjectRequest struct {
	ProjectTitle       string  `json:"project_title"`
	StartDate          string  `json:"start_date"`
	EndDate            *string `json:"end_date,omitempty"`
	IsCurrentlyOngoing bool    `json:"is_currently_ongoing"`
	Description        string  `json:"description"`
}

type OpportunitiesInterestRequest struct {
	Scholarships bool `json:"scholarships"`
	Jobs         bool `json:"jobs"`
	Grants       bool `json:"grants"`
	Internships  bool `json:"internships"`
}

type RecommendationPriorityRequest struct {
	AcademicBackground    bool   `json:"academic_background"`
	WorkExperience        bool   `json:"work_experience"`
	PreferredLocations    bool   `json:"preferred_locations"`
	Others                bool   `json:"others"`
	AdditionalPreferences string `json:"additional_preferences"`
}

// --- Read side (GET /api/profile/comprehensive/) ---

type UserGoal struct {
	Priority    int    `json:"priority"`
	GoalDisplay string `json:"goal_display"`
}

type PersonalProfile struct {
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	PhoneNumber string     `json:"phone_number"`
	Country     string     `json:"country"`
	Goal        string     `json:"goal"`
	UserGoals   []UserGoal `json:"user_goals"`
}

type CareerProfileRecord struct {
	Industry       string `json:"industry"`
	JobTitle       string `json:"job_title"`
	ProfileSummary string `json:"profile_summary"`
}

type EducationRecord struct {
	ID                  int64  `json:"id"`
	Degree              string `json:"degree"`
	School              string `json:"school"`
	StartDate           string `json:"start_date"`
	EndDate             string `json:"end_date"`
	IsCurrentlyStudying bool   `json:"is_currently_studying"`
	ExtraCurricular     string `json:"extra_curricular"`
}

type ExperienceRecord struct {
	ID                 int64  `json:"id"`
	JobTitle           string `json:"job_title"`
	CompanyName        string `json:"company_name"`
	Location           string `json:"location"`
	StartDate          string `json:"start_date"`
	EndDate            string `json:"end_date"`
	IsCurrentlyWorking bool   `json:"is_currently_working"`
	Description        string `json:"description"`
}

type ProjectRecord struct {
	ID                 int64  `json:"id"`
	ProjectTitle       string `json:"project_title"`
	StartDate          string `json:"start_date"`
	EndDate            string `json:"end_date"`
	IsCurrentlyOngoing bool   `json:"is_currently_ongoing"`
	Description        string `json:"description"`
}

type OpportunitiesInterestRecord struct {
	Scholarships bool `json:"scholarships"`
	Jobs         bool `json:"jobs"`
	Grants       bool `json:"grants"`
	Internships  bool `json:"internships"`
}

type RecommendationPriorityRecord struct {
	AcademicBackground    bool   `json:"academic_background"`
	WorkExperience        bool   `json:"work_experience"`
	PreferredLocations    bool   `json:"preferred_locations"`
	Others                bool   `json:"others"`
	AdditionalPreferences string `json:"additional_preferences"`
}

// ComprehensiveProfile is the nested payload under "data". Any section the
// backend has no row for comes back as a zero value / empty slice; the
// reconciler fills in defaults, nothing here is required.
type ComprehensiveProfile struct {
	Profile                *PersonalProfile              `json:"profile"`
	CareerProfile          *CareerProfileRecord          `json:"career_profile"`
	EducationProfiles      []EducationRecord             `json:"education_profiles"`
	ExperienceProfiles     []ExperienceRecord            `json:"experience_profiles"`
	ProjectProfiles        []ProjectRecord               `json:"project_profiles"`
	OpportunitiesInterest  *OpportunitiesInterestRecord  `json:"opportunities_interest"`
	RecommendationPriority *RecommendationPriorityRecord `json:"recommendation_priority"`
}

type ComprehensiveProfileResponse struct {
	Success bool                 `json:"success"`
	Data    ComprehensiveProfile `json:"data"`
}

type SaveResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id,omitempty"`
}

// --- Opportunities list service ---

type OpportunityFilter struct {
	Kind     string // "job" | "scholarship" | "" for all
	Query    string
	Location string
	Page     int
	PageSize int
}

type Opportunity struct {
	ID           int64  `json:"id"`
	Kind         string `json:"kind"`
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Location     string `json:"location"`
	Deadline     string `json:"deadline"`
	Link         string `json:"link"`
	Score        int    `json:"score,omitempty"`
}

type OpportunityListResponse struct {
	Success bool          `json:"success"`
	Count   int           `json:"count"`
	Results []Opportunity `json:"results"`
}
