package exclusion_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/ledger/internal/exclusion"
	"github.com/MrJamesThe3rd/ledger/internal/exclusion/memory"
	exclusionHandler "github.com/MrJamesThe3rd/ledger/internal/http/exclusion"
)

func serve(r chi.Router, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, nil))

	return rec
}

func newRouter(svc *exclusion.Service) chi.Router {
	r := chi.NewRouter()
	r.Route("/exclusions", exclusionHandler.NewHandler(svc, "api").Routes)

	return r
}

func TestHandler_Lifecycle(t *testing.T) {
	svc := exclusion.NewService(memory.New())
	r := newRouter(svc)

	rec := serve(r, http.MethodGet, "/exclusions")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ids":[],"count":0}`, rec.Body.String())

	rec = serve(r, http.MethodPut, "/exclusions/tx-1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"tx-1","excluded":true,"changed":true}`, rec.Body.String())

	rec = serve(r, http.MethodPut, "/exclusions/tx-1")
	assert.JSONEq(t, `{"id":"tx-1","excluded":true,"changed":false}`, rec.Body.String())

	serve(r, http.MethodPut, "/exclusions/tx-2")

	rec = serve(r, http.MethodGet, "/exclusions")
	assert.JSONEq(t, `{"ids":["tx-1","tx-2"],"count":2}`, rec.Body.String())

	rec = serve(r, http.MethodDelete, "/exclusions/tx-1")
	assert.JSONEq(t, `{"id":"tx-1","excluded":false,"changed":true}`, rec.Body.String())

	rec = serve(r, http.MethodDelete, "/exclusions/tx-1")
	assert.JSONEq(t, `{"id":"tx-1","excluded":false,"changed":false}`, rec.Body.String())

	rec = serve(r, http.MethodDelete, "/exclusions")
	assert.JSONEq(t, `{"cleared":1}`, rec.Body.String())

	ids, err := svc.List(context.Background(), "api")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestHandler_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := exclusion.NewMockRepository(ctrl)
	repo.EXPECT().Add(gomock.Any(), "api", "tx-1").Return(false, errors.New("db error"))
	repo.EXPECT().List(gomock.Any(), "api").Return(nil, errors.New("db error"))

	r := newRouter(exclusion.NewService(repo))

	assert.Equal(t, http.StatusInternalServerError, serve(r, http.MethodPut, "/exclusions/tx-1").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(r, http.MethodGet, "/exclusions").Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodPut, "/exclusions/%20").Code)
}
