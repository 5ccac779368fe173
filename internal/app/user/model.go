package user

const (
	DefaultUserID    = "default-user"
	defaultUserName  = "Default User"
	defaultUserColor = "#3B82F6"
	newUserName      = "New User"
)

// Palette is cycled through for users created without a colour.
var Palette = []string{
	"#3B82F6",
	"#10B981",
	"#F59E0B",
	"#EF4444",
	"#8B5CF6",
	"#EC4899",
	"#14B8A6",
	"#F97316",
}

type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	CreatedAt int64  `json:"createdAt"`
}

type Patch struct {
	Name  *string `json:"name"`
	Color *string `json:"color" binding:"omitempty,hexcolor"`
}

type CreateUserRequest struct {
	Name  string `json:"name"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
}

type CurrentUserRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
