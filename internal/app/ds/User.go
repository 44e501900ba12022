package ds

// @Schema(description="User model representing a registered port user")
type User struct {
	Model
	FirstName    string `gorm:"column:first_name"`
	LastName     string `gorm:"column:last_name"`
	Username     string `gorm:"column:username;uniqueIndex;not null"`
	Email        string `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	Role         string `gorm:"column:role;default:User"` // "User" unless changed by an operator
}

const DefaultRole = "User"

func (User) TableName() string {
	return "users"
}

func (u User) ToDTO() UserDTO {
	return UserDTO{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
