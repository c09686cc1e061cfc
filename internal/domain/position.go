package domain

// JobPosition is the list-item projection of a posting. Read-only on the
// client; replaced wholesale on refetch, never mutated in place.
type JobPosition struct {
	ID                         int64    `json:"id"`
	Slug                       string   `json:"slug"`
	Title                      string   `json:"title"`
	Company                    string   `json:"company"`
	CompanyLogo                string   `json:"companyLogo,omitempty"`
	Location                   string   `json:"location"`
	JobType                    string   `json:"jobType"`
	JobTypeDescription         string   `json:"jobTypeDescription"`
	ExperienceLevel            string   `json:"experienceLevel"`
	ExperienceLevelDescription string   `json:"experienceLevelDescription"`
	SalaryRange                string   `json:"salaryRange,omitempty"`
	RemoteWorkAvailable        bool     `json:"remoteWorkAvailable"`
	RequiredSkills             []string `json:"requiredSkills"`
	PreferredSkills            []string `json:"preferredSkills"`
	ViewCount                  int      `json:"viewCount"`
	ApplicationCount           int      `json:"applicationCount"`
	CreatedAt                  string   `json:"createdAt"`
	ApplicationDeadline        string   `json:"applicationDeadline,omitempty"`

	// MatchScore is computed locally from the user's skill preferences,
	// never sent by the backend.
	MatchScore int `json:"matchScore,omitempty"`
}

// JobPositionDetail is the superset returned by the detail endpoints.
type JobPositionDetail struct {
	JobPosition

	CompanyDescription      string   `json:"companyDescription,omitempty"`
	Description             string   `json:"description"`
	Requirements            string   `json:"requirements"`
	PreferredQualifications string   `json:"preferredQualifications,omitempty"`
	Benefits                []string `json:"benefits"`
	ContactEmail            string   `json:"contactEmail,omitempty"`
	ContactPerson           string   `json:"contactPerson,omitempty"`
	IsActive                bool     `json:"isActive"`
}

type FacetCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// FilterOptions are the faceted aggregates behind the position filters.
// Refreshed on a slow cadence; read-only.
type FilterOptions struct {
	Companies        []FacetCount      `json:"companies"`
	Locations        []FacetCount      `json:"locations"`
	ExperienceLevels map[string]string `json:"experienceLevels"`
	JobTypes         map[string]string `json:"jobTypes"`
}

type Pagination struct {
	CurrentPage   int  `json:"currentPage"`
	TotalPages    int  `json:"totalPages"`
	TotalElements int  `json:"totalElements"`
	Size          int  `json:"size"`
	HasNext       bool `json:"hasNext"`
	HasPrevious   bool `json:"hasPrevious"`
}
