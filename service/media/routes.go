package media

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/nroshan/chirper-server/cmd/utils"
)

type Handler struct {
	media *Service
}

func NewHandler(database *gorm.DB, root string) *Handler {
	return &Handler{media: NewService(database, root)}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/media", h.Upload).Methods("POST")
}

type mediaResult struct {
	Result  bool   `json:"result"`
	MediaID string `json:"media_id"`
}

// Upload stores a multipart file and returns its media id
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(MaxImageSize); err != nil {
		utils.WriteError(w, utils.Unprocessable("could not parse multipart form: %v", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteError(w, utils.Unprocessable("file field is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.WriteError(w, utils.IOError("could not read uploaded file: %v", err))
		return
	}
	if len(data) == 0 {
		utils.WriteError(w, utils.Unprocessable("uploaded file is empty"))
		return
	}

	id, err := h.media.AddImage(data, header.Filename)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, mediaResult{Result: true, MediaID: id})
}
