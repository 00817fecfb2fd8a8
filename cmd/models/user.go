package models

// User is identified by an opaque caller-supplied id. Names are globally unique.
type User struct {
	ID   string `gorm:"column:id;primaryKey;size:32" json:"id"`
	Name string `gorm:"column:name;size:20;not null;uniqueIndex:uq_users_name" json:"name"`
}

// Follow records a directed edge: Follower receives Following's tweets in
// their feed. The composite primary key rejects duplicate edges; self-edges
// are rejected at the service layer before the insert.
type Follow struct {
	FollowerID  string `gorm:"column:follower_id;primaryKey;size:32" json:"follower_id"`
	FollowingID string `gorm:"column:following_id;primaryKey;size:32" json:"following_id"`

	Follower  *User `gorm:"foreignKey:FollowerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Following *User `gorm:"foreignKey:FollowingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Follow) TableName() string {
	return "follows"
}
