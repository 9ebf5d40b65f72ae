package middleware

import (
	"net/http"

	"github.com/rs/cors"
	"golang.org/x/exp/slices"
)

// AllowCors lets browsers on allowedOrigins call the json api. An empty list
// allows every origin.
func AllowCors(allowedOrigins []string, next http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding"},
		AllowCredentials: !slices.Contains(allowedOrigins, "*"),
	}).Handler(next)
}
