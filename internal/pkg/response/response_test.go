package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/docwell/editor-server/internal/pkg/apierr"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorWritesClassifiedBody(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, apierr.Classify(http.StatusServiceUnavailable, "overloaded").WithMessage("Failed to generate text"))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error":"Failed to generate text","details":"overloaded","kind":"upstream-failure"}`, w.Body.String())
	require.Len(t, c.Errors, 1)
	assert.True(t, c.IsAborted())
}

func TestErrorWrapsPlainErrors(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, errors.New("disk full"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error","details":"disk full","kind":"internal"}`, w.Body.String())
}

func TestOKWrapsSlices(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	OK(c, []string{"a"})
	assert.JSONEq(t, `{"data":["a"]}`, w.Body.String())
}
