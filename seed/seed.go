// Package seed fills the store with generated users, images, tweets, likes
// and follow edges, exercising only the public service operations. Conflict
// and not-found errors from the random picks are expected and skipped, the
// way a generator retrying with different values would behave.
package seed

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"gorm.io/gorm"

	"github.com/nroshan/chirper-server/cmd/utils"
	"github.com/nroshan/chirper-server/service/like"
	"github.com/nroshan/chirper-server/service/media"
	"github.com/nroshan/chirper-server/service/tweet"
	"github.com/nroshan/chirper-server/service/user"
)

type Counts struct {
	Users  int
	Images int
	Tweets int
	Likes  int
}

func DefaultCounts() Counts {
	return Counts{Users: 20, Images: 10, Tweets: 40, Likes: 100}
}

var firstNames = []string{
	"Alice", "Bob", "Carol", "Dave", "Erin", "Frank", "Grace", "Heidi",
	"Ivan", "Judy", "Mallory", "Niaj", "Olivia", "Peggy", "Rupert", "Sybil",
	"Trent", "Victor", "Walter", "Yvonne",
}

var words = []string{
	"morning", "coffee", "deploy", "friday", "weekend", "release", "bug",
	"sunny", "rain", "lunch", "meeting", "finally", "shipped", "today",
	"reading", "music", "running", "cat", "dog", "garden",
}

func Run(database *gorm.DB, mediaRoot string, counts Counts) error {
	users := user.NewService(database)
	medias := media.NewService(database, mediaRoot)
	tweets := tweet.NewService(database, users, medias)
	likes := like.NewService(database)

	userIDs := make([]string, 0, counts.Users)
	for i := 1; i <= counts.Users; i++ {
		id := fmt.Sprintf("user_%d", i)
		name := firstNames[(i-1)%len(firstNames)]
		if i > len(firstNames) {
			name = fmt.Sprintf("%s%d", name, i)
		}
		if _, err := users.AddUser(id, name); err != nil {
			if !expected(err) {
				return fmt.Errorf("seeding user %s: %w", id, err)
			}
			continue
		}
		userIDs = append(userIDs, id)
	}
	log.Printf("Seeded %d users", len(userIDs))

	if len(userIDs) < 2 {
		return errors.New("not enough users to seed relations")
	}

	follows := 0
	for i := 0; i < counts.Users*2; i++ {
		err := users.Follow(pick(userIDs), pick(userIDs))
		if err != nil {
			if !expected(err) {
				return fmt.Errorf("seeding follow edge: %w", err)
			}
			continue
		}
		follows++
	}
	log.Printf("Seeded %d follow edges", follows)

	imageIDs := make([]string, 0, counts.Images)
	for i := 0; i < counts.Images; i++ {
		data := make([]byte, 256+rand.Intn(1024))
		for j := range data {
			data[j] = byte(rand.Intn(256))
		}
		id, err := medias.AddImage(data, fmt.Sprintf("seed_%d.jpg", i))
		if err != nil {
			return fmt.Errorf("seeding image: %w", err)
		}
		imageIDs = append(imageIDs, id)
	}
	log.Printf("Seeded %d images", len(imageIDs))

	tweetIDs := make([]uint, 0, counts.Tweets)
	for i := 0; i < counts.Tweets; i++ {
		var mediaIDs []string
		if len(imageIDs) > 0 && rand.Intn(3) == 0 {
			mediaIDs = []string{pick(imageIDs)}
		}
		id, err := tweets.AddTweet(pick(userIDs), sentence(), mediaIDs)
		if err != nil {
			if !expected(err) {
				return fmt.Errorf("seeding tweet: %w", err)
			}
			continue
		}
		tweetIDs = append(tweetIDs, id)
	}
	log.Printf("Seeded %d tweets", len(tweetIDs))

	if len(tweetIDs) == 0 {
		return nil
	}
	seeded := 0
	for i := 0; i < counts.Likes; i++ {
		err := likes.AddLike(pick(userIDs), tweetIDs[rand.Intn(len(tweetIDs))])
		if err != nil {
			if !expected(err) {
				return fmt.Errorf("seeding like: %w", err)
			}
			continue
		}
		seeded++
	}
	log.Printf("Seeded %d likes", seeded)
	return nil
}

// expected reports whether the error is a normal consequence of random
// picks colliding (duplicate edge, self-follow, repeated like).
func expected(err error) bool {
	var apiErr *utils.APIError
	return errors.As(err, &apiErr)
}

func pick(ids []string) string {
	return ids[rand.Intn(len(ids))]
}

func sentence() string {
	n := 3 + rand.Intn(8)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = words[rand.Intn(len(words))]
	}
	return strings.Join(parts, " ")
}
