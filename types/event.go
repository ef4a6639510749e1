package types

// Event is a scheduled calendar entry owned by a single user.
type Event struct {
	// ID is the unique identifier of the event, assigned by storage.
	ID int `json:"id" db:"id"`

	// UserID references the owning user.
	UserID int `json:"user_id" db:"user_id"`

	// Title is the display title of the event.
	Title string `json:"title" db:"title"`

	// Date is the calendar date, formatted YYYY-MM-DD.
	Date string `json:"date" db:"date"`

	// Time is the time of day, formatted HH:MM (24-hour).
	Time string `json:"time" db:"time"`

	// Description is optional free text; nil when unset.
	Description *string `json:"description" db:"description"`

	// Link is an optional URL attached to the event; nil when unset.
	Link *string `json:"link" db:"link"`
}
