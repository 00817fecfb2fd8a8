package models

import "path"

// Image is an uploaded media file. The row only stores the pieces the disk
// path is derived from; the path itself is computed, never persisted.
// TweetID stays null until the image is attached at tweet-creation time.
type Image struct {
	ID        string `gorm:"column:id;primaryKey;size:32" json:"id"`
	Folder    string `gorm:"column:folder;size:10;not null" json:"folder"`
	Extension string `gorm:"column:extension;size:10;not null" json:"extension"`
	TweetID   *uint  `gorm:"column:tweet_id" json:"tweet_id,omitempty"`
}

// RelativePath projects the stored fields to the file's slash-separated path
// below the media root, e.g. "2026-08-29/3f2a...d1.jpg".
func (i Image) RelativePath() string {
	return path.Join(i.Folder, i.ID+"."+i.Extension)
}
