package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"auth-system/internal/requestid"
)

func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	handler := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", requestid.Header},
		ExposedHeaders:   []string{requestid.Header},
		MaxAge:           3600,
		AllowCredentials: false,
	})

	return handler.Handler
}
