package model

// UserProfile identifies a person using the tracker.
type UserProfile struct {
	UserName string `json:"userName"`
}
