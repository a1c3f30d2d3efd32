package model

// Wire shapes as returned by the backend. Date fields stay strings on
// purpose: the backend emits ISO timestamps, the client treats records as
// opaque and only parses dates when sorting or formatting.

type ProjectStatus = string

const (
	ProjectStatusPending    ProjectStatus = "Pending"
	ProjectStatusInProgress ProjectStatus = "In Progress"
	ProjectStatusCompleted  ProjectStatus = "Completed"
)

type TaskPriority = string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

type UserRole = string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleUser   UserRole = "user"
	UserRoleLeader UserRole = "leader"
)

type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	Deadline    string        `json:"deadline"`
	AuthorID    string        `json:"author_id"`
}

type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     string       `json:"due_date"`
	ProjectID   string       `json:"project_id"`
	AssignedTo  string       `json:"assigned_to"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
}

type User struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Role      UserRole `json:"role"`
	CreatedAt string   `json:"created_at"`
}

// Session pairs the bearer token with the identity it was issued for.
// Invariant: User is non-nil exactly when Token is non-empty.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

func (s Session) Authenticated() bool { return s.Token != "" && s.User != nil }

// Request payloads.

type NewUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type NewProject struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Deadline    string `json:"deadline"`
}

type NewTask struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
	ProjectID   string `json:"project_id"`
	AssignedTo  string `json:"assigned_to,omitempty"`
}

// LoginResponse is the shape of POST /api/login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

func (r LoginResponse) SessionUser() *User {
	return &User{ID: r.UserID, Name: r.Name, Email: r.Email, Role: r.Role}
}
