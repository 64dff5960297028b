package models

// HelpRequest is the body of POST /api/help-requests/submit.
type HelpRequest struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Area        string `json:"area"`
	Phone       string `json:"phone"`
	Urgency     string `json:"urgency,omitempty"`
}

// VolunteerApplication is the body of POST /api/volunteers/add.
type VolunteerApplication struct {
	Skills       string `json:"skills"`
	Availability string `json:"availability,omitempty"`
	Area         string `json:"area"`
}

// Credentials is the body of POST /api/auth/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup is the body of POST /api/auth/signup.
type Signup struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
