package platform

import "gamecraft-engine/internal/domain"

// Envelope is the uniform response shape. A 2xx response may still carry
// success:false ("soft failure"); callers must branch on Success, not on the
// HTTP status alone.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Err     string `json:"error,omitempty"`
}

// UserInfo is the backend's user record; field names differ from the local
// domain.User (numeric id, "name" instead of "nickname").
type UserInfo struct {
	ID           int64  `json:"id"`
	KakaoID      string `json:"kakaoId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	ProfileImage string `json:"profileImage,omitempty"`
	Role         string `json:"role"`
	Status       string `json:"status"`
	CreatedAt    string `json:"createdAt"`
}

type UserInfoResponse struct {
	Envelope
	User       *UserInfo         `json:"user,omitempty"`
	UserStatus string            `json:"userStatus,omitempty"`
	NextSteps  map[string]string `json:"nextSteps,omitempty"`
}

type FormInfoResponse struct {
	Envelope
	Companies        []string          `json:"companies"`
	Positions        []string          `json:"positions"`
	ExperienceLevels map[string]string `json:"experienceLevels"`
	JobTypes         map[string]string `json:"jobTypes"`
}

type ApplicationListResponse struct {
	Envelope
	TotalCount   int                         `json:"totalCount"`
	Applications []domain.ApplicationSummary `json:"applications"`
}

type CreateApplicationResponse struct {
	Envelope
	ApplicationID int64  `json:"applicationId"`
	Company       string `json:"company"`
	Position      string `json:"position"`
	Status        string `json:"status"`
}

type DashboardStatistics struct {
	TotalApplications       int            `json:"totalApplications"`
	TotalUsers              int            `json:"totalUsers"`
	StatusStats             map[string]int `json:"statusStats"`
	CompanyStats            map[string]int `json:"companyStats"`
	RecentApplicationsCount int            `json:"recentApplicationsCount"`
}

type AdminDashboardResponse struct {
	Envelope
	Statistics *DashboardStatistics `json:"statistics,omitempty"`
}

type AdminApplicationListResponse struct {
	Envelope
	TotalCount   int                       `json:"totalCount"`
	Applications []domain.AdminApplication `json:"applications"`
}

type AdminApplicationDetailResponse struct {
	Envelope
	Application *domain.AdminApplication `json:"application,omitempty"`
	AdminNotes  string                   `json:"adminNotes,omitempty"`
}

type PositionsResponse struct {
	Envelope
	Jobs       []domain.JobPosition `json:"jobs"`
	Pagination domain.Pagination    `json:"pagination"`
}

type PositionDetailResponse struct {
	Envelope
	Job *domain.JobPositionDetail `json:"job,omitempty"`
}

type PositionListResponse struct {
	Envelope
	Jobs []domain.JobPosition `json:"jobs"`
}

type FilterOptionsResponse struct {
	Envelope
	domain.FilterOptions
}
