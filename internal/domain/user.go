package domain

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Nickname     string `json:"nickname"`
	ProfileImage string `json:"profileImage,omitempty"`
	Role         Role   `json:"role"`
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// UserPatch carries the fields a profile update may change.
// Identity fields (id, role) are deliberately not here.
type UserPatch struct {
	Email        *string `json:"email,omitempty"`
	Nickname     *string `json:"nickname,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
}

// Session is the client-held record of who is logged in.
// The token is a local marker only; it is never sent to the backend
// (server auth rides on cookies).
type Session struct {
	User          *User  `json:"user"`
	Token         string `json:"token"`
	Authenticated bool   `json:"isAuthenticated"`
}
