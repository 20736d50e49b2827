package models

import (
	"github.com/google/uuid"
)

type UserModel struct {
	UserId         string   `bson:"_id" json:"id"`
	Username       string   `bson:"username" json:"username"`
	Email          string   `bson:"email" json:"email"`
	Name           string   `bson:"name" json:"name"`
	Bio            string   `bson:"bio" json:"bio"`
	ProfileImage   string   `bson:"profileImage" json:"profileImage"`
	CoverImage     string   `bson:"coverImage" json:"coverImage"`
	FollowerCount  int64    `bson:"followerCount" json:"followerCount"`
	FollowingCount int64    `bson:"followingCount" json:"followingCount"`
	Bookmarks      []string `bson:"bookmarks" json:"bookmarks"`
	CreatedOn      int64    `bson:"createdOn" json:"createdOn"`
}

func (m *UserModel) Id() string {
	if len(m.UserId) == 0 {
		m.UserId = uuid.NewString()
	}
	return m.UserId
}

// UserSummary is the slim projection attached to follower lists,
// suggestions and feed entries.
type UserSummary struct {
	UserId       string `bson:"_id" json:"id"`
	Username     string `bson:"username" json:"username"`
	Name         string `bson:"name" json:"name"`
	Bio          string `bson:"bio" json:"bio"`
	ProfileImage string `bson:"profileImage" json:"profileImage"`
}
