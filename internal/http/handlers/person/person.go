// Package person contains the HTTP handlers for the Person resource.
//
// Every handler is built by a factory that receives the storage.Storage
// pool once at startup and returns the http.HandlerFunc called on each
// request:
//
//	router.HandleFunc("POST /people", person.New(storage))
//
// Each request checks out one connection, runs one data-access operation
// on it, and returns the connection on every exit path. A missing row is
// answered with 200 and a null payload, not 404.
package person

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/people-api/internal/storage"
	"github.com/aanand-mishra/people-api/internal/storage/people"
	"github.com/aanand-mishra/people-api/internal/types"
	"github.com/aanand-mishra/people-api/internal/utils/response"
)

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var errInvalidID = errors.New("invalid id: must be an integer")

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		response.WriteJSON(w, http.StatusUnprocessableEntity, response.GeneralError(errInvalidID))
		return 0, false
	}
	return id, true
}

// decodeInput reads and validates a PersonInput body, answering 422 itself
// when the body is empty, malformed or incomplete.
func decodeInput(w http.ResponseWriter, r *http.Request) (types.Person, bool) {
	var in types.PersonInput

	err := json.NewDecoder(r.Body).Decode(&in)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusUnprocessableEntity,
			response.GeneralError(errors.New("request body is empty")))
		return types.Person{}, false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusUnprocessableEntity, response.GeneralError(err))
		return types.Person{}, false
	}

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			response.WriteJSON(w, http.StatusUnprocessableEntity, response.ValidationError(verrs))
		} else {
			response.WriteJSON(w, http.StatusUnprocessableEntity, response.GeneralError(err))
		}
		return types.Person{}, false
	}

	return in.Person(), true
}

// acquire checks out a connection for this request. The caller owns it and
// must Close it.
func acquire(w http.ResponseWriter, r *http.Request, s storage.Storage) (*sql.Conn, bool) {
	conn, err := s.Conn(r.Context())
	if err != nil {
		slog.Error("error acquiring connection", slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
		return nil, false
	}
	return conn, true
}

func internalError(w http.ResponseWriter, msg string, id int64, err error) {
	slog.Error(msg, slog.Int64("id", id), slog.String("error", err.Error()))
	response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
}

// GetList handles GET /people.
//
//	{ "people": [ { "id": 1, "name": "Alice", "age": 30 } ] }
//
// The list is [] (not null) when the table is empty.
func GetList(s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("listing people")

		conn, ok := acquire(w, r, s)
		if !ok {
			return
		}
		defer conn.Close()

		list, err := people.List(r.Context(), conn)
		if err != nil {
			slog.Error("error listing people", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, map[string][]types.Person{"people": list})
	}
}

// GetByID handles GET /people/{id}.
//
//	{ "person": { "id": 1, "name": "Alice", "age": 30 } }
//	{ "person": null }
func GetByID(s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		slog.Info("getting a person", slog.Int64("id", id))

		conn, ok := acquire(w, r, s)
		if !ok {
			return
		}
		defer conn.Close()

		p, err := people.Get(r.Context(), conn, id)
		if err != nil {
			internalError(w, "error getting person", id, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, map[string]*types.Person{"person": p})
	}
}

// New handles POST /people. Any id in the body is ignored.
//
// Request:  { "name": "Alice", "age": 30 }
// Response: { "person": { "id": 1, "name": "Alice", "age": 30 } }
func New(s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a person")

		in, ok := decodeInput(w, r)
		if !ok {
			return
		}

		conn, ok := acquire(w, r, s)
		if !ok {
			return
		}
		defer conn.Close()

		p, err := people.Create(r.Context(), conn, in)
		if err != nil {
			slog.Error("error creating person", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		slog.Info("person created", slog.Int64("id", *p.ID))
		response.WriteJSON(w, http.StatusOK, map[string]*types.Person{"person": p})
	}
}

// Update handles PUT /people/{id}. Both fields are required; the id is
// taken from the path only.
func Update(s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		slog.Info("updating a person", slog.Int64("id", id))

		in, ok := decodeInput(w, r)
		if !ok {
			return
		}

		conn, ok := acquire(w, r, s)
		if !ok {
			return
		}
		defer conn.Close()

		p, err := people.Update(r.Context(), conn, id, in)
		if err != nil {
			internalError(w, "error updating person", id, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, map[string]*types.Person{"person": p})
	}
}

// Delete handles DELETE /people/{id} and echoes the removed row.
func Delete(s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		slog.Info("deleting a person", slog.Int64("id", id))

		conn, ok := acquire(w, r, s)
		if !ok {
			return
		}
		defer conn.Close()

		p, err := people.Delete(r.Context(), conn, id)
		if err != nil {
			internalError(w, "error deleting person", id, err)
			return
		}

		if p != nil {
			slog.Info("person deleted", slog.Int64("id", id))
		}
		response.WriteJSON(w, http.StatusOK, map[string]*types.Person{"person": p})
	}
}

// Probe handles GET /testdb, a round trip through the pool.
//
//	{ "result": 4 }
func Probe(s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, ok := acquire(w, r, s)
		if !ok {
			return
		}
		defer conn.Close()

		result, err := people.Probe(r.Context(), conn)
		if err != nil {
			slog.Error("error probing database", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, map[string]int64{"result": result})
	}
}
