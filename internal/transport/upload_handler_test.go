package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"catalog-admin/internal/upload"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const uploadLimit = 2 * 1024 * 1024

func newUploadRouter(t *testing.T) (http.Handler, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "uploads")
	storage, err := upload.NewDiskStorage(dir, "/public/uploads")
	require.NoError(t, err)

	r := chi.NewRouter()
	NewUploadHandler(upload.NewUploader(storage, uploadLimit), zap.NewNop()).RegisterRoutes(r)
	return r, dir
}

func multipartRequest(t *testing.T, field, filename, contentType string, data []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func pngBytes(t *testing.T, side int) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(7))
	img := image.NewNRGBA(image.Rect(0, 0, side, side))
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			img.Set(x, y, color.NRGBA{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256))})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func storedFiles(t *testing.T, dir string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return entries
}

func TestUploadHandler_StoresImage(t *testing.T) {
	h, dir := newUploadRouter(t)
	data := pngBytes(t, 360)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, multipartRequest(t, "file", "logo.png", "image/png", data))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, strings.HasPrefix(resp.Filename, "logo-"))
	assert.True(t, strings.HasSuffix(resp.Filename, ".png"))
	assert.Equal(t, "/public/uploads/"+resp.Filename, resp.URL)

	stored, err := os.ReadFile(filepath.Join(dir, resp.Filename))
	require.NoError(t, err)
	assert.Equal(t, data, stored)
}

func TestUploadHandler_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		req        func(t *testing.T) *http.Request
		wantStatus int
		wantError  string
	}{
		{
			name: "plain text",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "file", "notes.txt", "text/plain", []byte("hello, not an image"))
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "Only image files are allowed!",
		},
		{
			name: "text declared as png",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "file", "fake.png", "image/png", []byte("hello, not an image"))
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "Only image files are allowed!",
		},
		{
			name: "three megabytes",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "file", "big.png", "image/png", bytes.Repeat([]byte{0x89}, 3*1024*1024))
			},
			wantStatus: http.StatusRequestEntityTooLarge,
			wantError:  "File too large",
		},
		{
			name: "wrong field name",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "image", "logo.png", "image/png", pngBytes(t, 8))
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "No file uploaded",
		},
		{
			name: "not multipart",
			req: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("{}"))
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "No file uploaded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, dir := newUploadRouter(t)

			w := httptest.NewRecorder()
			h.ServeHTTP(w, tt.req(t))

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp UploadErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantError, resp.Error)
			assert.Empty(t, storedFiles(t, dir))
		})
	}
}

func TestUploadHandler_AppliesRouteMiddleware(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	storage, err := upload.NewDiskStorage(dir, "/public/uploads")
	require.NoError(t, err)

	blocked := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
	}

	r := chi.NewRouter()
	NewUploadHandler(upload.NewUploader(storage, uploadLimit), zap.NewNop()).RegisterRoutes(r, blocked)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "file", "logo.png", "image/png", pngBytes(t, 8)))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Empty(t, storedFiles(t, dir))
}
