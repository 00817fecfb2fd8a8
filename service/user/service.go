package user

import (
	"errors"

	"gorm.io/gorm"

	"github.com/nroshan/chirper-server/cmd/models"
	"github.com/nroshan/chirper-server/cmd/utils"
	"github.com/nroshan/chirper-server/db"
)

// Service maintains users and the follow graph.
type Service struct {
	db *gorm.DB
}

func NewService(database *gorm.DB) *Service {
	return &Service{db: database}
}

// Brief is the minimal user projection embedded in profiles and feeds.
type Brief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Info is a profile hydrated with both sides of the follow graph.
type Info struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Followers []Brief `json:"followers"`
	Following []Brief `json:"following"`
}

// AddUser creates a user, distinguishing an id collision from a name
// collision in the returned error.
func (s *Service) AddUser(id, name string) (*models.User, error) {
	newUser := models.User{ID: id, Name: name}
	if err := s.db.Create(&newUser).Error; err != nil {
		v := db.Classify(err)
		switch {
		case v.Constraint == db.ConstraintUserPK:
			return nil, utils.Conflict("user with id %s already exists", id)
		case v.Constraint == db.ConstraintUserName:
			return nil, utils.Conflict("user name %s is already taken", name)
		case v.Kind == db.ViolationDuplicate:
			// Engine did not name the constraint: probe to tell the two apart.
			if s.UserExists(id) {
				return nil, utils.Conflict("user with id %s already exists", id)
			}
			return nil, utils.Conflict("user name %s is already taken", name)
		}
		return nil, err
	}
	return &newUser, nil
}

// GetUser returns the profile with follower and following lists hydrated.
func (s *Service) GetUser(id string) (*Info, error) {
	var u models.User
	if err := s.db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("user with id %s does not exist", id)
		}
		return nil, err
	}

	followers := []Brief{}
	if err := s.db.Model(&models.User{}).
		Select("users.id, users.name").
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.following_id = ?", id).
		Order("users.id").
		Scan(&followers).Error; err != nil {
		return nil, err
	}

	following := []Brief{}
	if err := s.db.Model(&models.User{}).
		Select("users.id, users.name").
		Joins("JOIN follows ON follows.following_id = users.id").
		Where("follows.follower_id = ?", id).
		Order("users.id").
		Scan(&following).Error; err != nil {
		return nil, err
	}

	return &Info{ID: u.ID, Name: u.Name, Followers: followers, Following: following}, nil
}

// DeleteUser removes the user; follow edges, tweets and likes go with it via
// cascade. Deleting an absent user is not an error.
func (s *Service) DeleteUser(id string) error {
	return s.db.Delete(&models.User{}, "id = ?", id).Error
}

// Follow inserts the edge followerID -> followingID.
func (s *Service) Follow(followerID, followingID string) error {
	if followerID == followingID {
		return utils.Unprocessable("users cannot follow themselves")
	}

	edge := models.Follow{FollowerID: followerID, FollowingID: followingID}
	if err := s.db.Create(&edge).Error; err != nil {
		v := db.Classify(err)
		switch {
		case v.Constraint == db.ConstraintFollowFollower:
			return utils.NotFound("user with id %s does not exist", followerID)
		case v.Constraint == db.ConstraintFollowFollowing:
			return utils.NotFound("user with id %s does not exist", followingID)
		case v.Constraint == db.ConstraintFollowPK:
			return utils.Conflict("user %s already follows user %s", followerID, followingID)
		case v.Kind == db.ViolationMissingRef:
			if !s.UserExists(followerID) {
				return utils.NotFound("user with id %s does not exist", followerID)
			}
			return utils.NotFound("user with id %s does not exist", followingID)
		case v.Kind == db.ViolationDuplicate:
			return utils.Conflict("user %s already follows user %s", followerID, followingID)
		}
		return err
	}
	return nil
}

// Unfollow deletes the edge. The affected-row count decides NotFound, so
// there is no racy existence pre-check.
func (s *Service) Unfollow(followerID, followingID string) error {
	result := s.db.
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.NotFound("user %s does not follow user %s", followerID, followingID)
	}
	return nil
}

// UserExists is the existence probe other services use to produce NotFound
// instead of surfacing a raw constraint violation.
func (s *Service) UserExists(id string) bool {
	var count int64
	s.db.Model(&models.User{}).Where("id = ?", id).Count(&count)
	return count > 0
}
