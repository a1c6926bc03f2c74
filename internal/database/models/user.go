package models

// UserRole represents the role of an application user
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

// IsValid checks if the UserRole is valid
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleUser:
		return true
	}
	return false
}

// User represents an operator account. PasswordHash is a bcrypt hash.
type User struct {
	BaseModel
	Username     string   `json:"username" gorm:"uniqueIndex;not null;size:100" validate:"required,min=3,max=100"`
	PasswordHash string   `json:"-" gorm:"not null;size:100"`
	Role         UserRole `json:"role" gorm:"type:varchar(20);not null;default:'user'" validate:"required"`
}

// IsAdmin returns true for administrator accounts
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}
