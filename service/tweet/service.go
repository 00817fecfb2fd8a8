package tweet

import (
	"errors"
	"sort"

	"gorm.io/gorm"

	"github.com/nroshan/chirper-server/cmd/models"
	"github.com/nroshan/chirper-server/cmd/utils"
	"github.com/nroshan/chirper-server/db"
	"github.com/nroshan/chirper-server/service/media"
	"github.com/nroshan/chirper-server/service/user"
)

// Service creates and deletes tweets and assembles the engagement-ranked
// feed. Media existence is delegated to the media service, user existence
// to the user service.
type Service struct {
	db    *gorm.DB
	users *user.Service
	media *media.Service
}

func NewService(database *gorm.DB, users *user.Service, mediaSvc *media.Service) *Service {
	return &Service{db: database, users: users, media: mediaSvc}
}

// AddTweet inserts a tweet and attaches the given pre-existing images to it,
// all inside one transaction. Media ids that do not resolve fail the whole
// operation, naming exactly the unresolved ids.
func (s *Service) AddTweet(authorID, content string, mediaIDs []string) (uint, error) {
	newTweet := models.Tweet{Content: content, AuthorID: authorID}

	tx := s.db.Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}

	// Repeated ids in the request collapse to one attachment, so resolution
	// compares against the distinct set.
	distinctIDs := uniqueIDs(mediaIDs)

	if len(distinctIDs) > 0 {
		var images []models.Image
		if err := tx.Where("id IN ?", distinctIDs).Find(&images).Error; err != nil {
			tx.Rollback()
			return 0, err
		}
		if len(images) != len(distinctIDs) {
			tx.Rollback()
			return 0, utils.NotFound("media ids do not exist: %v", missingIDs(distinctIDs, images))
		}
	}

	if err := tx.Create(&newTweet).Error; err != nil {
		tx.Rollback()
		if v := db.Classify(err); v.Constraint == db.ConstraintTweetAuthor || v.Kind == db.ViolationMissingRef {
			return 0, utils.NotFound("user with id %s does not exist", authorID)
		}
		return 0, err
	}

	if len(distinctIDs) > 0 {
		if err := tx.Model(&models.Image{}).
			Where("id IN ?", distinctIDs).
			Update("tweet_id", newTweet.ID).Error; err != nil {
			tx.Rollback()
			return 0, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return 0, err
	}
	return newTweet.ID, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	distinct := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			distinct = append(distinct, id)
		}
	}
	return distinct
}

func missingIDs(requested []string, found []models.Image) []string {
	present := make(map[string]bool, len(found))
	for _, img := range found {
		present[img.ID] = true
	}
	missing := []string{}
	for _, id := range requested {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

// DeleteTweet removes the tweet owned by authorID. The ownership check is
// embedded in the delete predicate; zero affected rows reads as NotFound
// whether the tweet is absent or owned by someone else. Attached image rows
// and likes go via cascade, the files afterwards. The disk cleanup runs
// after the commit and is only logged on failure, since the transaction
// cannot be unwound at that point.
func (s *Service) DeleteTweet(authorID string, tweetID uint) error {
	if !s.users.UserExists(authorID) {
		return utils.NotFound("user with id %s does not exist", authorID)
	}

	imagePaths, err := s.media.ImagePaths(tweetID)
	if err != nil {
		return err
	}

	result := s.db.Where("author_id = ? AND id = ?", authorID, tweetID).Delete(&models.Tweet{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.NotFound("tweet with id %d does not exist", tweetID)
	}

	for _, p := range imagePaths {
		s.media.DeleteFromDisk(p)
	}
	return nil
}

// FeedFor assembles the viewer's timeline: tweets by followed users plus the
// viewer's own, ranked by like count. Followee tweets are fetched before the
// viewer's own, both in id order, and the sort is stable, so that fetch
// order is the tie-break.
func (s *Service) FeedFor(userID string) ([]models.Tweet, error) {
	if !s.users.UserExists(userID) {
		return nil, utils.NotFound("user with id %s does not exist", userID)
	}

	// Both reads share one transaction so the feed is a consistent snapshot.
	var feed []models.Tweet
	err := s.db.Transaction(func(tx *gorm.DB) error {
		followees := tx.Model(&models.Follow{}).
			Select("following_id").
			Where("follower_id = ?", userID)

		if err := hydrated(tx).
			Where("author_id IN (?)", followees).
			Order("id").
			Find(&feed).Error; err != nil {
			return err
		}

		var own []models.Tweet
		if err := hydrated(tx).
			Where("author_id = ?", userID).
			Order("id").
			Find(&own).Error; err != nil {
			return err
		}

		feed = append(feed, own...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return len(feed[i].Likes) > len(feed[j].Likes)
	})
	return feed, nil
}

func hydrated(database *gorm.DB) *gorm.DB {
	return database.Preload("Author").Preload("Images").Preload("Likes.User")
}

// GetTweetByID returns a fully hydrated tweet.
func (s *Service) GetTweetByID(tweetID uint) (*models.Tweet, error) {
	var t models.Tweet
	if err := hydrated(s.db).First(&t, "id = ?", tweetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("tweet with id %d does not exist", tweetID)
		}
		return nil, err
	}
	return &t, nil
}

// GetAllTweetIDs enumerates every tweet id, for seeding and diagnostics.
func (s *Service) GetAllTweetIDs() ([]uint, error) {
	var ids []uint
	if err := s.db.Model(&models.Tweet{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
