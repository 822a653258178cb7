package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(fn func(c *gin.Context)) (int, Response) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)

	var r Response
	_ = json.Unmarshal(w.Body.Bytes(), &r)
	return w.Code, r
}

func TestMutationFailed(t *testing.T) {
	code, r := record(func(c *gin.Context) {
		MutationFailed(c, http.StatusBadGateway, "delete", "championship", "failed to delete championship", "STORE_FAILURE")
	})

	assert.Equal(t, http.StatusBadGateway, code)
	assert.False(t, r.Success)
	require.NotNil(t, r.Notification)
	assert.Equal(t, NotificationError, r.Notification.Type)
	assert.Equal(t, "Failed to delete championship", r.Notification.Message)
	assert.Equal(t, "STORE_FAILURE", r.Error.Code)
}

func TestMutated(t *testing.T) {
	code, r := record(func(c *gin.Context) {
		Mutated(c, http.StatusCreated, "Promotion created", gin.H{"id": 1})
	})

	assert.Equal(t, http.StatusCreated, code)
	assert.True(t, r.Success)
	assert.Equal(t, NotificationSuccess, r.Notification.Type)
	assert.Equal(t, "Promotion created", r.Notification.Message)
}

func TestSuccessWithMeta_EmptyListIsArray(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SuccessWithMeta(c, http.StatusOK, []string{}, &Meta{Total: 0})

	assert.JSONEq(t, `{"success":true,"data":[],"meta":{"total":0}}`, w.Body.String())
}

func TestFailureMessage(t *testing.T) {
	assert.Equal(t, "Failed to update wrestler", FailureMessage("update", "wrestler"))
}
