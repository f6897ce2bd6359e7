// Package hello serves the database-free greeting routes.
package hello

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/people-api/internal/utils/response"
)

// Root handles GET /.
//
//	{ "message": "Hello World" }
func Root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string]string{"message": "Hello World"})
	}
}

// Greeting handles GET /greeting/{name}.
//
//	{ "message": "Hello Alice" }
func Greeting() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		slog.Debug("greeting", slog.String("name", name))

		response.WriteJSON(w, http.StatusOK,
			map[string]string{"message": fmt.Sprintf("Hello %s", name)})
	}
}
