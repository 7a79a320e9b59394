package models

// Profile is the per-request projection returned by profile lookups: the
// target user plus its resolved follower/following sets, all redacted. It is
// never persisted; every request recomputes (or re-reads from cache).
type Profile struct {
	UserSummary
	Followings []UserSummary `json:"followings"`
	Followers  []UserSummary `json:"followers"`
}
