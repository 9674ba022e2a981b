package domain

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID           int64
	Username     string
	Login        string
	PasswordHash string
	Role         string
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
