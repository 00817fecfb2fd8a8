package models

type Tweet struct {
	ID       uint   `gorm:"column:id;primaryKey" json:"id"`
	Content  string `gorm:"column:content;size:6553;not null" json:"content"`
	AuthorID string `gorm:"column:author_id;size:32;not null" json:"author_id"`

	Author *User   `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"author,omitempty"`
	Images []Image `gorm:"foreignKey:TweetID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"images,omitempty"`
	Likes  []Like  `gorm:"foreignKey:TweetID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"likes,omitempty"`
}

// Like is keyed by (user, tweet): a user can like a tweet at most once.
type Like struct {
	UserID  string `gorm:"column:user_id;primaryKey;size:32" json:"user_id"`
	TweetID uint   `gorm:"column:tweet_id;primaryKey" json:"tweet_id"`

	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user,omitempty"`
}
