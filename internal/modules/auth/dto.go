package auth

// LoginRequest carries the login form. Platform is validated by the
// service so a missing value maps to its own error code, and gpassword
// falls back to password when absent.
type LoginRequest struct {
	Cardnum   string `form:"cardnum" json:"cardnum" binding:"required"`
	Password  string `form:"password" json:"password" binding:"required"`
	GPassword string `form:"gpassword" json:"gpassword"`
	Platform  string `form:"platform" json:"platform"`
}

// MeResponse is the public projection of an authenticated session: digests
// and profile fields only, no secrets.
type MeResponse struct {
	Cardnum   string `json:"cardnum"`
	Name      string `json:"name"`
	Schoolnum string `json:"schoolnum"`
	Platform  string `json:"platform"`
	Token     string `json:"token"`
	PersonID  string `json:"person_id"`
}
