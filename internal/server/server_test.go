package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"mercari/internal/item"
	"mercari/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFrontURL = "http://localhost:3000"

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.New(filepath.Join(dir, "test_mercari.sqlite3"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	imagesDir := filepath.Join(dir, "images")
	images, err := NewImageDir(imagesDir)
	require.NoError(t, err)
	return New(store, images, testFrontURL), imagesDir
}

func multipartItem(t *testing.T, fields map[string]string, image []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if image != nil {
		fw, err := mw.CreateFormFile("image", "fake_image.jpg")
		require.NoError(t, err)
		fw.Write(image)
	}
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func do(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHello(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Hello, world!"}`, rec.Body.String())
}

func TestAddItem(t *testing.T) {
	tests := []struct {
		name       string
		fields     map[string]string
		image      []byte
		wantStatus int
	}{
		{"ok", map[string]string{"name": "used iPhone 16e", "category": "phone"}, []byte("fake image content"), http.StatusOK},
		{"missing name", map[string]string{"name": "", "category": "phone"}, []byte("x"), http.StatusBadRequest},
		{"missing category", map[string]string{"name": "iPhone"}, []byte("x"), http.StatusBadRequest},
		{"missing image", map[string]string{"name": "iPhone", "category": "phone"}, nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, imagesDir := newTestServer(t)
			body, ct := multipartItem(t, tt.fields, tt.image)
			req := httptest.NewRequest(http.MethodPost, "/items", body)
			req.Header.Set("Content-Type", ct)

			rec := do(t, s, req)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}
			assert.JSONEq(t, `{"message":"item received: used iPhone 16e"}`, rec.Body.String())

			list := getItems(t, s)
			require.Len(t, list.Items, 1)
			got := list.Items[0]
			assert.Equal(t, "used iPhone 16e", got.Name)
			assert.Equal(t, "phone", got.Category)
			assert.Len(t, got.ImageName, 64+len(".jpg"))
			data, err := os.ReadFile(filepath.Join(imagesDir, got.ImageName))
			require.NoError(t, err)
			assert.Equal(t, tt.image, data)
		})
	}
}

func getItems(t *testing.T, s *Server) item.List {
	t.Helper()
	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/items", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var list item.List
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	return list
}

func TestGetItems_EmptyIsArray(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/items", nil))
	assert.JSONEq(t, `{"items":[]}`, rec.Body.String())
}

func TestGetItemAndSearch(t *testing.T) {
	s, _ := newTestServer(t)
	for _, name := range []string{"blue chair", "lamp"} {
		body, ct := multipartItem(t, map[string]string{"name": name, "category": "home"}, []byte(name))
		req := httptest.NewRequest(http.MethodPost, "/items", body)
		req.Header.Set("Content-Type", ct)
		require.Equal(t, http.StatusOK, do(t, s, req).Code)
	}
	list := getItems(t, s)
	require.Len(t, list.Items, 2)

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/items/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var it item.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &it))
	assert.Equal(t, list.Items[0], it)

	assert.Equal(t, http.StatusNotFound, do(t, s, httptest.NewRequest(http.MethodGet, "/items/99", nil)).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, httptest.NewRequest(http.MethodGet, "/items/abc", nil)).Code)

	rec = do(t, s, httptest.NewRequest(http.MethodGet, "/search?keyword=chair", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var found item.List
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
	require.Len(t, found.Items, 1)
	assert.Equal(t, "blue chair", found.Items[0].Name)

	assert.Equal(t, http.StatusBadRequest, do(t, s, httptest.NewRequest(http.MethodGet, "/search", nil)).Code)
}

func TestGetImage(t *testing.T) {
	s, imagesDir := newTestServer(t)
	require.NoError(t, os.WriteFile(filepath.Join(imagesDir, "abc.jpg"), []byte("abc"), 0o644))

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/image/abc.jpg", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc", rec.Body.String())

	rec = do(t, s, httptest.NewRequest(http.MethodGet, "/image/a.png", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Missing with no default image.
	rec = do(t, s, httptest.NewRequest(http.MethodGet, "/image/missing.jpg", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.NoError(t, os.WriteFile(filepath.Join(imagesDir, DefaultImage), []byte("default"), 0o644))
	rec = do(t, s, httptest.NewRequest(http.MethodGet, "/image/missing.jpg", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Equal(t, "default", string(body))
}

func TestCORSAllowsFrontend(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	req.Header.Set("Origin", testFrontURL)
	rec := do(t, s, req)
	assert.Equal(t, testFrontURL, rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/items", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec = do(t, s, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
