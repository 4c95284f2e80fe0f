package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/garderoba/internal/classify"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string, classifier *classify.Client) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	usersHandler := &UsersHandler{DB: db}
	itemsHandler := &ItemsHandler{DB: db, Classifier: classifier}
	outfitsHandler := &OutfitsHandler{DB: db, Classifier: classifier}

	authMW := AuthMiddleware(jwtSecret)

	// Public: signup and login.
	mux.HandleFunc("POST /api/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Account.
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("GET /api/users/me", authMW(http.HandlerFunc(usersHandler.Me)))
	mux.Handle("PUT /api/users/me", authMW(http.HandlerFunc(usersHandler.Update)))

	// Wardrobe items.
	mux.Handle("POST /api/items", authMW(http.HandlerFunc(itemsHandler.Create)))
	mux.Handle("GET /api/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("GET /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("PATCH /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Update)))
	mux.Handle("DELETE /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Delete)))
	mux.Handle("GET /api/items/{id}/image", authMW(http.HandlerFunc(itemsHandler.GetImage)))
	mux.Handle("POST /api/items/{id}/wear", authMW(http.HandlerFunc(itemsHandler.Wear)))
	mux.Handle("POST /api/items/{id}/wash", authMW(http.HandlerFunc(itemsHandler.Wash)))

	// Outfits.
	mux.Handle("GET /api/outfits/generate", authMW(http.HandlerFunc(outfitsHandler.Generate)))
	mux.Handle("POST /api/outfits/wear", authMW(http.HandlerFunc(outfitsHandler.Wear)))
	mux.Handle("GET /api/outfits/recent", authMW(http.HandlerFunc(outfitsHandler.Recent)))

	return mux
}
