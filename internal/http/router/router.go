// Package router assembles the application's http.Handler.
//
// Route table:
//
//	GET    /                  hello world
//	GET    /greeting/{name}   greet by name
//	GET    /testdb            database round trip
//	GET    /people            list all people
//	POST   /people            create a person
//	GET    /people/{id}       get one person
//	PUT    /people/{id}       update a person
//	DELETE /people/{id}       delete a person
package router

import (
	"net/http"

	"github.com/aanand-mishra/people-api/internal/http/handlers/hello"
	"github.com/aanand-mishra/people-api/internal/http/handlers/person"
	"github.com/aanand-mishra/people-api/internal/http/middleware"
	"github.com/aanand-mishra/people-api/internal/storage"
)

// New registers every route against s and wraps the mux in the CORS
// policy for allowedOrigins.
func New(s storage.Storage, allowedOrigins []string) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("GET /{$}", hello.Root())
	router.HandleFunc("GET /greeting/{name}", hello.Greeting())
	router.HandleFunc("GET /testdb", person.Probe(s))

	router.HandleFunc("GET /people", person.GetList(s))
	router.HandleFunc("POST /people", person.New(s))
	router.HandleFunc("GET /people/{id}", person.GetByID(s))
	router.HandleFunc("PUT /people/{id}", person.Update(s))
	router.HandleFunc("DELETE /people/{id}", person.Delete(s))

	return middleware.CORS(allowedOrigins)(router)
}
