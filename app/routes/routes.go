package routes

import (
	"net/http"

	"inkwell/app/config"
	"inkwell/app/controllers"
	"inkwell/app/middleware"
	"inkwell/app/repositories"
	"inkwell/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// SetupRoutes wires repositories, services and controllers over the given
// Badger DB and returns the router.
func SetupRoutes(db *badger.DB, logger zerolog.Logger, cfg config.Config) *mux.Router {
	postRepo := repositories.NewBadgerPostRepository(db)
	commentRepo := repositories.NewBadgerCommentRepository(db)
	userRepo := repositories.NewBadgerUserRepository(db)
	sessionRepo := repositories.NewBadgerSessionRepository(db)

	postService := services.NewPostService(postRepo, commentRepo)
	commentService := services.NewCommentService(commentRepo, postRepo)
	authService := services.NewAuthService(userRepo, sessionRepo)

	postController := controllers.NewPostController(postService, cfg.BasePath, cfg.PageSize)
	commentController := controllers.NewCommentController(commentService)
	authController := controllers.NewAuthController(authService, cfg.BasePath)

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Recoverer(logger))
	router.Use(middleware.CurrentActor(authService))

	// Serve static files
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	// Web routes
	router.HandleFunc("/", postController.Index).Methods("GET")
	router.HandleFunc("/post/new", postController.New).Methods("GET")
	router.HandleFunc("/post/new", postController.Create).Methods("POST")
	router.HandleFunc("/post/{slug}", postController.Show).Methods("GET")
	router.HandleFunc("/post/{slug}/edit", postController.EditForm).Methods("GET")
	router.HandleFunc("/post/{slug}/edit", postController.Update).Methods("POST")
	router.HandleFunc("/post/{slug}/delete", postController.Delete).Methods("POST")

	router.HandleFunc("/post/{postId:[0-9]+}/comments", commentController.Create).Methods("POST")
	router.HandleFunc("/comments/{id:[0-9]+}/delete", commentController.Delete).Methods("POST")
	router.HandleFunc("/comments/{postId:[0-9]+}/count", commentController.Count).Methods("GET")

	router.HandleFunc("/login", authController.LoginForm).Methods("GET")
	router.HandleFunc("/login", authController.Login).Methods("POST")
	router.HandleFunc("/logout", authController.Logout).Methods("POST")
	router.HandleFunc("/register", authController.RegisterForm).Methods("GET")
	router.HandleFunc("/register", authController.Register).Methods("POST")

	// JSON API
	api := router.PathPrefix("/api").Subrouter()

	posts := api.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.HandleFunc("", postController.Create).Methods("POST")
	posts.HandleFunc("/{postId:[0-9]+}/comments", commentController.Index).Methods("GET")
	posts.HandleFunc("/{postId:[0-9]+}/comments", commentController.Create).Methods("POST")
	posts.HandleFunc("/{postId:[0-9]+}/comments/count", commentController.Count).Methods("GET")
	posts.HandleFunc("/{slug}", postController.Show).Methods("GET")
	posts.HandleFunc("/{slug}", postController.Update).Methods("PUT")
	posts.HandleFunc("/{slug}", postController.Delete).Methods("DELETE")

	api.HandleFunc("/comments/{id:[0-9]+}", commentController.Delete).Methods("DELETE")
	api.HandleFunc("/users", authController.Register).Methods("POST")
	api.HandleFunc("/sessions", authController.Login).Methods("POST")
	api.HandleFunc("/sessions", authController.Logout).Methods("DELETE")

	return router
}
