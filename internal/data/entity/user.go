package entity

type User struct {
	Base
	Email        string `db:"email"`
	PasswordHash string `db:"password"`
	FullName     string `db:"full_name"`
	Pincode      string `db:"pincode"`
	Address      string `db:"address"`
	IsAdmin      bool   `db:"is_admin"`
}
