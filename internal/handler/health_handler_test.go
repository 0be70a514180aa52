package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"docverify/internal/handler"
	"docverify/mocks"
)

func serveEngine(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthHandler_Liveness(t *testing.T) {
	h := handler.NewHealthHandler(new(mocks.MockCacheStore))

	w := serve(h.Liveness, getRequest("/healthz"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	store := new(mocks.MockCacheStore)
	store.On("Ping", mock.Anything).Return(nil)
	h := handler.NewHealthHandler(store)

	w := serve(h.Readiness, getRequest("/readyz"))

	assert.Equal(t, http.StatusOK, w.Code)
	store.AssertExpectations(t)
}

func TestHealthHandler_Readiness_StoreDown(t *testing.T) {
	store := new(mocks.MockCacheStore)
	store.On("Ping", mock.Anything).Return(errors.New("connection refused"))
	h := handler.NewHealthHandler(store)

	w := serve(h.Readiness, getRequest("/readyz"))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unavailable")
}
