package api

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/nroshan/chirper-server/cmd/utils"
	"github.com/nroshan/chirper-server/service/like"
	"github.com/nroshan/chirper-server/service/media"
	"github.com/nroshan/chirper-server/service/tweet"
	"github.com/nroshan/chirper-server/service/user"
)

type APIServer struct {
	address   string
	db        *gorm.DB
	mediaRoot string
}

func NewApiServer(address string, db *gorm.DB, mediaRoot string) *APIServer {
	return &APIServer{
		address:   address,
		db:        db,
		mediaRoot: mediaRoot,
	}
}

func (s *APIServer) Run() error {
	router := mux.NewRouter()
	subrouter := router.PathPrefix("/api").Subrouter()

	userService := user.NewService(s.db)
	mediaService := media.NewService(s.db, s.mediaRoot)

	userHandler := user.NewHandler(s.db)
	userHandler.RegisterRoutes(subrouter)

	tweetHandler := tweet.NewHandler(s.db, userService, mediaService)
	tweetHandler.RegisterRoutes(subrouter)

	likeHandler := like.NewHandler(s.db)
	likeHandler.RegisterRoutes(subrouter)

	mediaHandler := media.NewHandler(s.db, s.mediaRoot)
	mediaHandler.RegisterRoutes(subrouter)

	// Uploaded media is served directly off the media root.
	router.PathPrefix("/images/").Handler(
		http.StripPrefix("/images/", http.FileServer(http.Dir(s.mediaRoot))))

	chain := utils.Recovery(router)
	chain = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "DELETE"}),
		handlers.AllowedHeaders([]string{"Content-Type", utils.IdentityHeader}),
	)(chain)
	chain = handlers.LoggingHandler(os.Stdout, chain)

	log.Println("Server running at", s.address)
	return http.ListenAndServe(s.address, chain)
}
