package models

// NotificationContent is the title and body of a reminder
type NotificationContent struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Celebration is shown after a quiz completion that moved the streak
type Celebration struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Badge is the compact streak indicator shown next to the daily words
type Badge struct {
	Count int  `json:"count"`
	Lit   bool `json:"lit"` // Completed today
}
