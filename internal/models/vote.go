package models

import "time"

// Vote represents a user's vote on a comment.
// The combination of UserID and CommentID must be unique; the database
// constraint is the source of truth and a violation surfaces as AlreadyVoted.
// Votes are hard-deleted on retraction so the unique index never blocks a
// later re-vote.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_comment" json:"user_id"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_user_comment" json:"comment_id"`
	IsUpvote  bool      `gorm:"not null" json:"is_upvote"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID" json:"user"`
	Comment Comment `gorm:"foreignKey:CommentID" json:"comment"`
}
