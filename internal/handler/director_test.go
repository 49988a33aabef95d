package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-scheduler/internal/model"
	"github.com/iliyamo/cinema-scheduler/internal/repository"
)

type fakeDirectors struct {
	byID    map[string]model.Director
	created []model.Director
	updated []model.Director
	err     error
}

func (f *fakeDirectors) Create(_ context.Context, d *model.Director) error {
	if f.err != nil {
		return f.err
	}
	d.ID = "d-new"
	f.created = append(f.created, *d)
	return nil
}

func (f *fakeDirectors) GetByID(_ context.Context, id string) (*model.Director, error) {
	d, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrDirectorNotFound
	}
	return &d, nil
}

func (f *fakeDirectors) List(_ context.Context, _ model.PageRequest) ([]model.Director, int, error) {
	out := make([]model.Director, 0, len(f.byID))
	for _, d := range f.byID {
		out = append(out, d)
	}
	return out, len(out), nil
}

func (f *fakeDirectors) Update(_ context.Context, d *model.Director) error {
	f.updated = append(f.updated, *d)
	return f.err
}

func (f *fakeDirectors) Delete(_ context.Context, id string) (*model.Director, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.GetByID(context.Background(), id)
}

func TestDirectorCreate(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
		errMsg string
	}{
		{name: "created", body: `{"name":"  Greta Gerwig ","birth_date":"1983-08-04"}`, status: http.StatusCreated},
		{name: "malformed json", body: `{"name":`, status: http.StatusBadRequest, errMsg: "invalid body"},
		{name: "blank name", body: `{"name":"  "}`, status: http.StatusBadRequest, errMsg: "validation failed"},
		{name: "bad birth date", body: `{"name":"Greta","birth_date":"04/08/1983"}`, status: http.StatusBadRequest, errMsg: "validation failed"},
		{name: "duplicate", body: `{"name":"Greta"}`, err: repository.ErrNameTaken, status: http.StatusConflict, errMsg: "name already exists"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeDirectors{err: tt.err}
			h := NewDirectorHandler(store)

			rec := call(t, h.Create, http.MethodPost, "/directors", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			if tt.errMsg != "" {
				assert.Equal(t, tt.errMsg, decode(t, rec)["error"])
				return
			}
			require.Len(t, store.created, 1)
			assert.Equal(t, "Greta Gerwig", store.created[0].Name)
			assert.Equal(t, "d-new", decode(t, rec)["id"])
		})
	}
}

func TestDirectorGetNotFound(t *testing.T) {
	h := NewDirectorHandler(&fakeDirectors{})
	rec := call(t, h.Get, http.MethodGet, "/directors/x", "", "id", "x")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "director not found", decode(t, rec)["error"])
}

func TestDirectorUpdateKeepsAbsentFields(t *testing.T) {
	nat := "American"
	store := &fakeDirectors{byID: map[string]model.Director{
		"d1": {ID: "d1", Name: "Greta", Nationality: &nat},
	}}
	h := NewDirectorHandler(store)

	rec := call(t, h.Update, http.MethodPut, "/directors/d1", `{"name":"Greta Gerwig"}`, "id", "d1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, store.updated, 1)
	assert.Equal(t, "Greta Gerwig", store.updated[0].Name)
	require.NotNil(t, store.updated[0].Nationality)
	assert.Equal(t, "American", *store.updated[0].Nationality)
}

func TestDirectorDeleteStillReferenced(t *testing.T) {
	h := NewDirectorHandler(&fakeDirectors{err: repository.ErrConflict})
	rec := call(t, h.Delete, http.MethodDelete, "/directors/d1", "", "id", "d1")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "resource is still referenced", decode(t, rec)["error"])
}

func TestDirectorListPage(t *testing.T) {
	store := &fakeDirectors{byID: map[string]model.Director{"d1": {ID: "d1", Name: "Greta"}}}
	h := NewDirectorHandler(store)

	rec := call(t, h.List, http.MethodGet, "/directors?page=1&size=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 1, body["total"])
	assert.EqualValues(t, 5, body["size"])
	assert.Len(t, body["items"], 1)
}
