package types

// User represents an account in the system.
// Accounts are created on first login and never updated afterwards.
type User struct {
	// ID is the unique identifier of the user, assigned by storage.
	ID int `json:"id" db:"id"`

	// FirebaseUID is the opaque identity-provider token used as the
	// natural key for lookup.
	FirebaseUID string `json:"firebase_uid" db:"firebase_uid"`

	// Email is the user's email address as supplied at first login.
	Email string `json:"email" db:"email"`

	// Username is derived from the local part of the email at creation
	// time and never recomputed.
	Username string `json:"username" db:"username"`
}
