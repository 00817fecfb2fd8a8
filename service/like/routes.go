package like

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/nroshan/chirper-server/cmd/utils"
)

type Handler struct {
	likes *Service
}

func NewHandler(database *gorm.DB) *Handler {
	return &Handler{likes: NewService(database)}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/tweets/{id}/likes", h.AddLike).Methods("POST")
	router.HandleFunc("/tweets/{id}/likes", h.DeleteLike).Methods("DELETE")
}

// AddLike records the calling user's like on a tweet
func (h *Handler) AddLike(w http.ResponseWriter, r *http.Request) {
	userID, tweetID, apiErr := likeParams(r)
	if apiErr != nil {
		utils.WriteError(w, apiErr)
		return
	}

	if err := h.likes.AddLike(userID, tweetID); err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.OK())
}

// DeleteLike removes the calling user's like from a tweet
func (h *Handler) DeleteLike(w http.ResponseWriter, r *http.Request) {
	userID, tweetID, apiErr := likeParams(r)
	if apiErr != nil {
		utils.WriteError(w, apiErr)
		return
	}

	if err := h.likes.DeleteLike(userID, tweetID); err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.OK())
}

func likeParams(r *http.Request) (string, uint, *utils.APIError) {
	userID, apiErr := utils.Identity(r)
	if apiErr != nil {
		return "", 0, apiErr
	}
	tweetID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return "", 0, utils.Validation("invalid tweet id")
	}
	return userID, uint(tweetID), nil
}
