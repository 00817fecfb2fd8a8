package tweet

import (
	"encoding/json"
	"net/http"
	"path"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/nroshan/chirper-server/cmd/models"
	"github.com/nroshan/chirper-server/cmd/utils"
	"github.com/nroshan/chirper-server/service/media"
	"github.com/nroshan/chirper-server/service/user"
)

const (
	maxContentLength = 6553
	maxMediaIDs      = 10
)

type Handler struct {
	tweets *Service
}

func NewHandler(database *gorm.DB, users *user.Service, mediaSvc *media.Service) *Handler {
	return &Handler{tweets: NewService(database, users, mediaSvc)}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/tweets", h.GetFeed).Methods("GET")
	router.HandleFunc("/tweets", h.AddTweet).Methods("POST")
	router.HandleFunc("/tweets/{id}", h.DeleteTweet).Methods("DELETE")
}

type newTweetRequest struct {
	TweetData     string   `json:"tweet_data"`
	TweetMediaIDs []string `json:"tweet_media_ids"`
}

type newTweetResult struct {
	Result  bool `json:"result"`
	TweetID uint `json:"tweet_id"`
}

type likeView struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

type tweetView struct {
	ID          uint       `json:"id"`
	Content     string     `json:"content"`
	Attachments []string   `json:"attachments"`
	Author      user.Brief `json:"author"`
	Likes       []likeView `json:"likes"`
}

type feedResult struct {
	Result bool        `json:"result"`
	Tweets []tweetView `json:"tweets"`
}

func toView(t models.Tweet) tweetView {
	view := tweetView{
		ID:          t.ID,
		Content:     t.Content,
		Attachments: []string{},
		Likes:       []likeView{},
	}
	if t.Author != nil {
		view.Author = user.Brief{ID: t.Author.ID, Name: t.Author.Name}
	}
	for _, img := range t.Images {
		view.Attachments = append(view.Attachments, path.Join("images", img.RelativePath()))
	}
	for _, l := range t.Likes {
		lv := likeView{UserID: l.UserID}
		if l.User != nil {
			lv.Name = l.User.Name
		}
		view.Likes = append(view.Likes, lv)
	}
	return view
}

// GetFeed returns the calling user's ranked timeline
func (h *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {
	userID, apiErr := utils.Identity(r)
	if apiErr != nil {
		utils.WriteError(w, apiErr)
		return
	}

	feed, err := h.tweets.FeedFor(userID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	views := make([]tweetView, 0, len(feed))
	for _, t := range feed {
		views = append(views, toView(t))
	}
	utils.WriteJSON(w, http.StatusOK, feedResult{Result: true, Tweets: views})
}

// AddTweet creates a tweet for the calling user
func (h *Handler) AddTweet(w http.ResponseWriter, r *http.Request) {
	userID, apiErr := utils.Identity(r)
	if apiErr != nil {
		utils.WriteError(w, apiErr)
		return
	}

	var req newTweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, utils.Validation("invalid request body: %v", err))
		return
	}
	if len(req.TweetData) > maxContentLength {
		utils.WriteError(w, utils.Validation("tweet_data must be at most %d characters", maxContentLength))
		return
	}
	if len(req.TweetMediaIDs) > maxMediaIDs {
		utils.WriteError(w, utils.Validation("tweet_media_ids must hold at most %d ids", maxMediaIDs))
		return
	}

	tweetID, err := h.tweets.AddTweet(userID, req.TweetData, req.TweetMediaIDs)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, newTweetResult{Result: true, TweetID: tweetID})
}

// DeleteTweet removes the calling user's tweet by id
func (h *Handler) DeleteTweet(w http.ResponseWriter, r *http.Request) {
	userID, apiErr := utils.Identity(r)
	if apiErr != nil {
		utils.WriteError(w, apiErr)
		return
	}

	tweetID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteError(w, utils.Validation("invalid tweet id"))
		return
	}

	if err := h.tweets.DeleteTweet(userID, uint(tweetID)); err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.OK())
}
