package media

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nroshan/chirper-server/cmd/models"
	"github.com/nroshan/chirper-server/cmd/utils"
)

const MaxImageSize = 10 << 20 // 10 MB

// Service binds opaque image ids to files below the media root and tracks
// the binding in the images table.
type Service struct {
	db   *gorm.DB
	root string
}

func NewService(database *gorm.DB, root string) *Service {
	return &Service{db: database, root: root}
}

func (s *Service) Root() string {
	return s.root
}

// AddImage persists the bytes and the image row. The write is two-phase:
// the file lands on a staging path first, the row is inserted, and only
// after the insert succeeds is the file renamed to its final path. A
// failure at any step removes whatever partial artifact exists, so no
// orphan file or row survives.
func (s *Service) AddImage(data []byte, filename string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return "", utils.Unprocessable("file name %q has no extension", filename)
	}

	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	folder := time.Now().Format("2006-01-02")

	dir := filepath.Join(s.root, folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", utils.IOError("could not create media directory: %v", err)
	}

	staging := filepath.Join(dir, id+".part")
	if err := os.WriteFile(staging, data, 0644); err != nil {
		return "", utils.IOError("could not write media file: %v", err)
	}

	img := models.Image{ID: id, Folder: folder, Extension: ext}
	if err := s.db.Create(&img).Error; err != nil {
		os.Remove(staging)
		return "", err
	}

	if err := os.Rename(staging, filepath.Join(dir, id+"."+ext)); err != nil {
		// Compensate: the row must not outlive the file.
		s.db.Delete(&models.Image{}, "id = ?", id)
		os.Remove(staging)
		return "", utils.IOError("could not publish media file: %v", err)
	}
	return id, nil
}

// ImagePaths resolves every image attached to the tweet to its relative
// disk path.
func (s *Service) ImagePaths(tweetID uint) ([]string, error) {
	var images []models.Image
	if err := s.db.Where("tweet_id = ?", tweetID).Find(&images).Error; err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(images))
	for _, img := range images {
		paths = append(paths, img.RelativePath())
	}
	return paths, nil
}

// DeleteFromDisk is best-effort: it removes the file and then tries to
// remove the date folder, which fails harmlessly while the folder still
// holds other images.
func (s *Service) DeleteFromDisk(relativePath string) {
	abs := filepath.Join(s.root, filepath.FromSlash(relativePath))
	if err := os.Remove(abs); err != nil {
		log.Printf("Could not remove media file %s: %v", relativePath, err)
		return
	}
	os.Remove(filepath.Dir(abs))
}

// ListImageIDs enumerates every stored image id.
func (s *Service) ListImageIDs() ([]string, error) {
	var ids []string
	if err := s.db.Model(&models.Image{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
