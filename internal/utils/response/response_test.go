package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	require.NoError(t, WriteJSON(w, http.StatusTeapot, map[string]any{"person": nil}))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"person": null}`, w.Body.String())
}

func TestGeneralError(t *testing.T) {
	got := GeneralError(errors.New("boom"))
	assert.Equal(t, Response{Status: StatusError, Error: "boom"}, got)
}

func TestValidationError(t *testing.T) {
	type payload struct {
		Name *string `validate:"required"`
		Age  *int    `validate:"required"`
		Tag  string  `validate:"max=2"`
	}

	err := validator.New().Struct(payload{Tag: "toolong"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	got := ValidationError(verrs)
	assert.Equal(t, StatusError, got.Status)
	assert.Equal(t, "field Name is required, field Age is required, field Tag is invalid", got.Error)
}
