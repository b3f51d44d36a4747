package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"rentride/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		want int
	}{
		{services.ErrNotFound, http.StatusNotFound},
		{services.ErrForbidden, http.StatusForbidden},
		{services.ErrInvalidTransition, http.StatusConflict},
		{services.ErrSelfBooking, http.StatusForbidden},
		{services.ErrSelfChat, http.StatusBadRequest},
		{services.ErrInvalidInput, http.StatusBadRequest},
		{services.ErrEmailTaken, http.StatusConflict},
		{services.ErrBadCredentials, http.StatusUnauthorized},
		{errors.New("disk on fire"), http.StatusInternalServerError},

		// Wrapped sentinels map the same as bare ones.
		{fmt.Errorf("%w: start date is in the past", services.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("%w: already decided", services.ErrInvalidTransition), http.StatusConflict},
	}

	for _, tc := range cases {
		recorder := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(recorder)

		respondServiceError(c, tc.err)

		assert.Equal(t, tc.want, recorder.Code, "error %v", tc.err)
	}
}

func TestCurrentUserIDMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	_, ok := currentUserID(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
