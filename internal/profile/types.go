package profile

// Local editable shapes. These are what the UI mutates; everything is a
// plain always-defined string or bool, and json tags are camelCase to match
// the frontend state shape. Wire translation lives in mapping.go.

// Section labels the six independently-saved groupings. Save dispatches on
// exactly these values; anything else is a no-op.
const (
	SectionPersonal   = "Personal"
	SectionCareer     = "Career Profile"
	SectionEducation  = "Education"
	SectionExperience = "Experience"
	SectionProjects   = "Projects"
	SectionAI         = "AI"
)

type PersonalInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Country string `json:"country"`
	Goal    string `json:"goal"`
}

type CareerProfile struct {
	Industry       string `json:"industry"`
	JobTitle       string `json:"jobTitle"`
	ProfileSummary string `json:"profileSummary"`
}

type Education struct {
	ID          EntryID `json:"id"`
	Degree      string  `json:"degree"`
	School      string  `json:"school"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	IsStudying  bool    `json:"isStudying"`
	Description string  `json:"description"`
}

// blank reports whether the entry was never filled in. A blank unsaved
// placeholder is skipped on save rather than persisted as an empty record.
func (e Education) blank() bool {
	return e.Degree == "" && e.School == "" && e.StartDate == "" && e.EndDate == "" &&
		!e.IsStudying && e.Description == ""
}

type Experience struct {
	ID                 EntryID `json:"id"`
	JobTitle           string  `json:"jobTitle"`
	CompanyName        string  `json:"companyName"`
	Location           string  `json:"location"`
	StartDate          string  `json:"startDate"`
	EndDate            string  `json:"endDate"`
	IsCurrentlyWorking bool    `json:"isCurrentlyWorking"`
	Description        string  `json:"description"`
}

func (e Experience) blank() bool {
	return e.JobTitle == "" && e.CompanyName == "" && e.Location == "" &&
		e.StartDate == "" && e.EndDate == "" && !e.IsCurrentlyWorking && e.Description == ""
}

type Project struct {
	ID          EntryID `json:"id"`
	Title       string  `json:"title"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	IsOngoing   bool    `json:"isOngoing"`
	Description string  `json:"description"`
}

func (p Project) blank() bool {
	return p.Title == "" && p.StartDate == "" && p.EndDate == "" && !p.IsOngoing && p.Description == ""
}

// BlankEducation returns the placeholder row every repeating section falls
// back to, so the UI always has at least one editable entry.
func BlankEducation() Education {
	return Education{ID: Unsaved()}
}

func BlankExperience() Experience {
	return Experience{ID: Unsaved()}
}

func BlankProject() Project {
	return Project{ID: Unsaved()}
}

// OpportunityInterests is the typed form of the frontend's
// opportunities string array. The English labels only exist at the
// presentation boundary (Labels / InterestsFromLabels).
type OpportunityInterests struct {
	Scholarships bool `json:"scholarships"`
	Jobs         bool `json:"jobs"`
	Grants       bool `json:"grants"`
	Internships  bool `json:"internships"`
}

var interestLabels = []string{"Scholarships", "Jobs", "Grants", "Internships"}

// Labels renders the selected interests in the fixed vocabulary order.
func (o OpportunityInterests) Labels() []string {
	out := []string{}
	for i, on := range []bool{o.Scholarships, o.Jobs, o.Grants, o.Internships} {
		if on {
			out = append(out, interestLabels[i])
		}
	}
	return out
}

// InterestsFromLabels sets flags by exact label match; unrecognized labels
// are ignored.
func InterestsFromLabels(labels []string) OpportunityInterests {
	var o OpportunityInterests
	for _, l := range labels {
		switch l {
		case "Scholarships":
			o.Scholarships = true
		case "Jobs":
			o.Jobs = true
		case "Grants":
			o.Grants = true
		case "Internships":
			o.Internships = true
		}
	}
	return o
}

// RecommendationPriorities is the typed form of the prioritizeBy array.
type RecommendationPriorities struct {
	AcademicBackground bool `json:"academicBackground"`
	WorkExperience     bool `json:"workExperience"`
	PreferredLocations bool `json:"preferredLocations"`
	Others             bool `json:"others"`
}

var priorityLabels = []string{"academic background", "work experience", "preferred locations", "other"}

func (r RecommendationPriorities) Labels() []string {
	out := []string{}
	for i, on := range []bool{r.AcademicBackground, r.WorkExperience, r.PreferredLocations, r.Others} {
		if on {
			out = append(out, priorityLabels[i])
		}
	}
	return out
}

func PrioritiesFromLabels(labels []string) RecommendationPriorities {
	var r RecommendationPriorities
	for _, l := range labels {
		switch l {
		case "academic background":
			r.AcademicBackground = true
		case "work experience":
			r.WorkExperience = true
		case "preferred locations":
			r.PreferredLocations = true
		case "other":
			r.Others = true
		}
	}
	return r
}

type AIPreferences struct {
	Opportunities     OpportunityInterests     `json:"opportunities"`
	PrioritizeBy      RecommendationPriorities `json:"prioritizeBy"`
	SalaryExpectation string                   `json:"salaryExpectation"`
}
