package domain

type ExperienceLevel string

const (
	ExperienceJunior ExperienceLevel = "JUNIOR"
	ExperienceMiddle ExperienceLevel = "MIDDLE"
	ExperienceSenior ExperienceLevel = "SENIOR"
	ExperienceLead   ExperienceLevel = "LEAD"
)

type JobType string

const (
	JobFullTime  JobType = "FULL_TIME"
	JobContract  JobType = "CONTRACT"
	JobFreelance JobType = "FREELANCE"
	JobIntern    JobType = "INTERN"
)

// ApplicationSummary is the candidate-facing row from /application/my-list.
type ApplicationSummary struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Status      string `json:"status"`
	SubmittedAt string `json:"submittedAt"`
}

// AdminApplication is the staff-facing projection. Status transitions are
// owned by the server; the client only displays them.
type AdminApplication struct {
	ID                int64  `json:"id"`
	ApplicantName     string `json:"applicantName"`
	ApplicantEmail    string `json:"applicantEmail"`
	Company           string `json:"company"`
	Position          string `json:"position"`
	Status            string `json:"status"`
	StatusDescription string `json:"statusDescription"`
	ExperienceLevel   string `json:"experienceLevel"`
	JobType           string `json:"jobType"`
	SubmittedAt       string `json:"submittedAt"`
	UpdatedAt         string `json:"updatedAt"`
}

type CreateApplicationRequest struct {
	Company            string          `json:"company"`
	Position           string          `json:"position"`
	ExperienceLevel    ExperienceLevel `json:"experienceLevel"`
	JobType            JobType         `json:"jobType"`
	Skills             []string        `json:"skills"`
	CoverLetter        string          `json:"coverLetter"`
	ExpectedSalary     string          `json:"expectedSalary,omitempty"`
	AvailableStartDate string          `json:"availableStartDate,omitempty"`
	WorkLocation       string          `json:"workLocation,omitempty"`
}
