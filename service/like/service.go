package like

import (
	"gorm.io/gorm"

	"github.com/nroshan/chirper-server/cmd/models"
	"github.com/nroshan/chirper-server/cmd/utils"
	"github.com/nroshan/chirper-server/db"
)

type Service struct {
	db *gorm.DB
}

func NewService(database *gorm.DB) *Service {
	return &Service{db: database}
}

// AddLike inserts the (user, tweet) pair. The failing constraint decides
// which entity is missing or whether the like already exists; no existence
// pre-check runs before the insert.
func (s *Service) AddLike(userID string, tweetID uint) error {
	newLike := models.Like{UserID: userID, TweetID: tweetID}
	if err := s.db.Create(&newLike).Error; err != nil {
		v := db.Classify(err)
		switch {
		case v.Constraint == db.ConstraintLikeUser:
			return utils.NotFound("user with id %s does not exist", userID)
		case v.Constraint == db.ConstraintLikeTweet:
			return utils.NotFound("tweet with id %d does not exist", tweetID)
		case v.Constraint == db.ConstraintLikePK:
			return utils.Conflict("user %s already likes tweet %d", userID, tweetID)
		case v.Kind == db.ViolationMissingRef:
			if !s.userExists(userID) {
				return utils.NotFound("user with id %s does not exist", userID)
			}
			return utils.NotFound("tweet with id %d does not exist", tweetID)
		case v.Kind == db.ViolationDuplicate:
			return utils.Conflict("user %s already likes tweet %d", userID, tweetID)
		}
		return err
	}
	return nil
}

// DeleteLike removes the pair; zero affected rows reads as NotFound.
func (s *Service) DeleteLike(userID string, tweetID uint) error {
	result := s.db.
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Delete(&models.Like{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.NotFound("user %s does not like tweet %d", userID, tweetID)
	}
	return nil
}

// LikesCount is a full-table count, used by seeding and diagnostics.
func (s *Service) LikesCount() (int64, error) {
	var count int64
	err := s.db.Model(&models.Like{}).Count(&count).Error
	return count, err
}

func (s *Service) userExists(id string) bool {
	var count int64
	s.db.Model(&models.User{}).Where("id = ?", id).Count(&count)
	return count > 0
}
