package models

import "time"

// Follow is a directed edge: Follower follows Following. No uniqueness is
// enforced on edges, so duplicates are possible and readers see them exactly
// as stored.
type Follow struct {
	ID          string    `json:"id"`
	FollowerID  string    `json:"followerId"`
	FollowingID string    `json:"followingId"`
	CreatedAt   time.Time `json:"createdAt"`
}
