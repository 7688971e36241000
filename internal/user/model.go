package user

import "time"

type User struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile is the editable account data shown on the profile page.
type Profile struct {
	UserID   uint    `json:"user_id"`
	FullName string  `json:"full_name"`
	Phone    string  `json:"phone"`
	Address  string  `json:"address"`
	PhotoURL *string `json:"photo_url,omitempty"`
}

// Session is the record the client persists: token pair plus the
// identity fields it renders without another round trip.
type Session struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
	UserID       uint   `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
}
