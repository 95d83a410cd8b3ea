package user

// User is a registered account. The password hash never leaves the
// process: it is excluded from every serialized form.
type User struct {
	ID           int    `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}
