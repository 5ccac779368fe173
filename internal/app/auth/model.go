package auth

const defaultColor = "#3B82F6"

// AuthUser is the stored credential record. PasswordHash never leaves the
// service; handlers respond with Profile.
type AuthUser struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
	Name         string `json:"name"`
	Color        string `json:"color"`
	CreatedAt    int64  `json:"createdAt"`
}

type Profile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Username string `json:"username"`
}

func (u *AuthUser) Profile() Profile {
	return Profile{ID: u.ID, Name: u.Name, Color: u.Color, Username: u.Username}
}

type demoUser struct {
	username, password, name, color string
}

var demoUsers = []demoUser{
	{"admin", "admin123", "Admin User", "#3B82F6"},
	{"user1", "password", "John Doe", "#10B981"},
	{"user2", "password", "Jane Smith", "#F59E0B"},
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Color    string `json:"color" binding:"omitempty,hexcolor"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
