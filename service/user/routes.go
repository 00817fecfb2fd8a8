package user

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/nroshan/chirper-server/cmd/utils"
)

type Handler struct {
	users *Service
}

func NewHandler(database *gorm.DB) *Handler {
	return &Handler{users: NewService(database)}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/users", h.AddUser).Methods("POST")
	router.HandleFunc("/users/me", h.MyProfile).Methods("GET")
	router.HandleFunc("/users/{id}", h.UserProfile).Methods("GET")
	router.HandleFunc("/users/{id}/follow", h.Follow).Methods("POST")
	router.HandleFunc("/users/{id}/follow", h.Unfollow).Methods("DELETE")
}

type newUserRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type newUserResult struct {
	Result bool  `json:"result"`
	User   Brief `json:"user"`
}

type userInfoResult struct {
	Result bool `json:"result"`
	User   Info `json:"user"`
}

// AddUser creates a new user from a caller-supplied id and name
func (h *Handler) AddUser(w http.ResponseWriter, r *http.Request) {
	var req newUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, utils.Validation("invalid request body: %v", err))
		return
	}
	if len(req.ID) < 1 || len(req.ID) > 32 {
		utils.WriteError(w, utils.Validation("id must be 1-32 characters"))
		return
	}
	if len(req.Name) < 2 || len(req.Name) > 20 {
		utils.WriteError(w, utils.Validation("name must be 2-20 characters"))
		return
	}

	newUser, err := h.users.AddUser(req.ID, req.Name)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, newUserResult{
		Result: true,
		User:   Brief{ID: newUser.ID, Name: newUser.Name},
	})
}

// MyProfile returns the calling user's profile
func (h *Handler) MyProfile(w http.ResponseWriter, r *http.Request) {
	userID, apiErr := utils.Identity(r)
	if apiErr != nil {
		utils.WriteError(w, apiErr)
		return
	}
	h.writeProfile(w, userID)
}

// UserProfile returns another user's profile by id
func (h *Handler) UserProfile(w http.ResponseWriter, r *http.Request) {
	h.writeProfile(w, mux.Vars(r)["id"])
}

func (h *Handler) writeProfile(w http.ResponseWriter, userID string) {
	info, err := h.users.GetUser(userID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, userInfoResult{Result: true, User: *info})
}

// Follow subscribes the calling user to the user in the path
func (h *Handler) Follow(w http.ResponseWriter, r *http.Request) {
	userID, apiErr := utils.Identity(r)
	if apiErr != nil {
		utils.WriteError(w, apiErr)
		return
	}

	if err := h.users.Follow(userID, mux.Vars(r)["id"]); err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.OK())
}

// Unfollow removes the calling user's subscription to the user in the path
func (h *Handler) Unfollow(w http.ResponseWriter, r *http.Request) {
	userID, apiErr := utils.Identity(r)
	if apiErr != nil {
		utils.WriteError(w, apiErr)
		return
	}

	if err := h.users.Unfollow(userID, mux.Vars(r)["id"]); err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.OK())
}
