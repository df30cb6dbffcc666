package helpers

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campushub/internal/pkg/apperrors"
)

func testContext(target string, params gin.Params) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	c.Params = params
	return c
}

func TestParseLimit(t *testing.T) {
	cases := map[string]int{
		"/n":           30,
		"/n?limit=5":   5,
		"/n?limit=0":   30,
		"/n?limit=-2":  30,
		"/n?limit=abc": 30,
		"/n?limit=500": 100,
	}
	for target, want := range cases {
		assert.Equal(t, want, ParseLimit(testContext(target, nil), 30, 100), target)
	}
}

func TestParseIDParam(t *testing.T) {
	id, err := ParseIDParam(testContext("/", gin.Params{{Key: "id", Value: "12"}}), "id")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	for _, raw := range []string{"", "0", "-4", "x1"} {
		_, err := ParseIDParam(testContext("/", gin.Params{{Key: "id", Value: raw}}), "id")
		assert.True(t, errors.Is(err, apperrors.ErrValidationFailed), raw)
	}
}
