package validators

import (
	"errors"
	"net/http"
	"testing"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&models.RegisterRequest{
		Username: "gopher1",
		Email:    "g@example.com",
		Password: "longenough",
	}))

	err := v.Validate(&models.RegisterRequest{Username: "go", Email: "nope", Password: "short"})
	require.Error(t, err)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Contains(t, he.Message, "username must be at least 3 characters")
	assert.Contains(t, he.Message, "email must be a valid email")

	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 3)
}

func TestValidateContentLength(t *testing.T) {
	v := NewValidator()
	long := make([]byte, 281)
	for i := range long {
		long[i] = 'a'
	}
	assert.Error(t, v.Validate(&models.CreatePostRequest{Content: string(long)}))
	assert.Error(t, v.Validate(&models.CreatePostRequest{}))
	assert.NoError(t, v.Validate(&models.CreatePostRequest{Content: "ok"}))
}
