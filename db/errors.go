package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Constraint names the migrator assigns on the Postgres backend. Services
// map them to domain errors instead of pre-checking row existence, so there
// is no window between a check and the failing write.
const (
	ConstraintUserPK          = "users_pkey"
	ConstraintUserName        = "uq_users_name"
	ConstraintFollowPK        = "follows_pkey"
	ConstraintFollowFollower  = "fk_follows_follower"
	ConstraintFollowFollowing = "fk_follows_following"
	ConstraintTweetAuthor     = "fk_tweets_author"
	ConstraintLikePK          = "likes_pkey"
	ConstraintLikeUser        = "fk_likes_user"
	ConstraintLikeTweet       = "fk_tweets_likes"
	ConstraintImageTweet      = "fk_tweets_images"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type ViolationKind int

const (
	ViolationNone ViolationKind = iota
	// ViolationDuplicate is a unique or primary key violation.
	ViolationDuplicate
	// ViolationMissingRef is a foreign key violation: a referenced row is absent.
	ViolationMissingRef
)

// Violation is a storage constraint error reduced to its kind and, when the
// engine reports one, the offending constraint's name. SQLite reports the
// kind but not the name; callers fall back to a diagnostic probe there.
type Violation struct {
	Kind       ViolationKind
	Constraint string
}

// Classify inspects a write error and extracts the constraint violation, if
// any. Errors that are not constraint violations classify as ViolationNone.
func Classify(err error) Violation {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return Violation{Kind: ViolationDuplicate, Constraint: pgErr.ConstraintName}
		case pgForeignKeyViolation:
			return Violation{Kind: ViolationMissingRef, Constraint: pgErr.ConstraintName}
		}
		return Violation{}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return Violation{Kind: ViolationDuplicate}
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return Violation{Kind: ViolationMissingRef}
	}
	return Violation{}
}
