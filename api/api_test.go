package api

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/submersibletoaster/mosaic"
	"github.com/submersibletoaster/mosaic/palette"
)

func newTestServer(t *testing.T, cfg Config) http.Handler {
	t.Helper()
	if cfg.MaxUnits == 0 {
		cfg.MaxUnits = 8
	}
	app, err := NewApplication(cfg)
	require.NoError(t, err)
	return app.BuildRoutes(http.NewServeMux())
}

func pngBytes(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 24, 24))
	for y := 0; y < 24; y++ {
		for x := 0; x < 24; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// uploadRequest builds a multipart request; empty field values are omitted.
func uploadRequest(t *testing.T, file []byte, width, height string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="upload.png"`)
		h.Set("Content-Type", "image/png")
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	if width != "" {
		require.NoError(t, mw.WriteField("width", width))
	}
	if height != "" {
		require.NoError(t, mw.WriteField("height", height))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/generate-mosaic", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) HandlerError {
	t.Helper()
	var he HandlerError
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&he))
	assert.NotEmpty(t, he.ErrorName)
	assert.NotEmpty(t, he.Description)
	return he
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, Config{})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestGenerateMosaic(t *testing.T) {
	srv := newTestServer(t, Config{})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, pngBytes(t, color.RGBA{196, 30, 58, 255}), "3", "2"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res mosaic.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, mosaic.NewDimensions(3, 2), res.Dimensions)
	assert.Len(t, res.Grid, 6)
	assert.Len(t, res.DetailedGrid, 2)

	red, _ := palette.ByName("red")
	assert.Equal(t, mosaic.ColorCount{red.Hex: 54}, res.ColorCount)
}

func TestGenerateMosaicDefaultSize(t *testing.T) {
	srv := newTestServer(t, Config{MaxUnits: 32})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, pngBytes(t, color.White), "", ""))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res mosaic.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, mosaic.DefaultUnits, res.Dimensions.Width)
	assert.Equal(t, mosaic.DefaultUnits, res.Dimensions.Height)
}

func TestGenerateMosaicRejects(t *testing.T) {
	img := pngBytes(t, color.Black)
	for _, tc := range []struct {
		name   string
		req    *http.Request
		status int
	}{
		{"missing image", uploadRequest(t, nil, "2", "2"), http.StatusBadRequest},
		{"zero width", uploadRequest(t, img, "0", "2"), http.StatusBadRequest},
		{"negative height", uploadRequest(t, img, "2", "-1"), http.StatusBadRequest},
		{"too wide", uploadRequest(t, img, "9", "2"), http.StatusBadRequest},
		{"not a number", uploadRequest(t, img, "wide", "2"), http.StatusBadRequest},
		{"not an image", uploadRequest(t, []byte("hello, plain text"), "2", "2"), http.StatusUnsupportedMediaType},
		{"not multipart", httptest.NewRequest(http.MethodPost, "/api/generate-mosaic", strings.NewReader("{}")), http.StatusBadRequest},
		{"wrong method", httptest.NewRequest(http.MethodGet, "/api/generate-mosaic", nil), http.StatusMethodNotAllowed},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newTestServer(t, Config{}).ServeHTTP(rec, tc.req)
			assert.Equal(t, tc.status, rec.Code)
			decodeError(t, rec)
		})
	}
}

func TestGenerateMosaicUploadLimit(t *testing.T) {
	srv := newTestServer(t, Config{MaxUploadBytes: 64})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, pngBytes(t, color.White), "2", "2"))
	assert.Contains(t, []int{http.StatusBadRequest, http.StatusRequestEntityTooLarge}, rec.Code)
}

func TestGeneratePDF(t *testing.T) {
	res, err := mosaic.Generate(image.NewRGBA(image.Rect(0, 0, 12, 12)), 2, 2)
	require.NoError(t, err)

	payload, err := json.Marshal(map[string]interface{}{
		"mosaicData": res,
		"settings":   map[string]int{"width": 2, "height": 2},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	newTestServer(t, Config{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/generate-pdf", bytes.NewReader(payload)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), PDFFilename)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestGeneratePDFBadJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(t, Config{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/generate-pdf", strings.NewReader("{nope")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Error Parsing JSON", decodeError(t, rec).ErrorName)
}

func TestCallerInfoOnlyInDevMode(t *testing.T) {
	for _, dev := range []bool{false, true} {
		rec := httptest.NewRecorder()
		newTestServer(t, Config{DevMode: dev}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/generate-pdf", nil))
		he := decodeError(t, rec)
		assert.Equal(t, dev, he.CallerInfo != "")
	}
}

func TestCors(t *testing.T) {
	srv := newTestServer(t, Config{AllowedOrigins: []string{"https://mosaic.example.com"}})

	for _, tc := range []struct {
		origin string
		status int
	}{
		{"", http.StatusOK},
		{"http://localhost:3000", http.StatusOK},
		{"https://mosaic.example.com", http.StatusOK},
		{"https://evil.example.net", http.StatusForbidden},
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		if tc.origin != "" {
			req.Header.Set("Origin", tc.origin)
		}
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		assert.Equal(t, tc.status, rec.Code, tc.origin)
		if tc.status == http.StatusOK && tc.origin != "" {
			assert.Equal(t, tc.origin, rec.Header().Get("Access-Control-Allow-Origin"))
		}
	}

	req := httptest.NewRequest(http.MethodOptions, "/api/generate-mosaic", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestNewApplicationResampler(t *testing.T) {
	_, err := NewApplication(Config{Resampler: "nearest"})
	assert.ErrorIs(t, err, mosaic.ErrResampler)

	app, err := NewApplication(Config{Resampler: "mitchell", MaxUnits: 10})
	require.NoError(t, err)
	assert.Equal(t, mosaic.Mitchell, app.Generator.Options().Resampler)
	assert.Equal(t, 10, app.Generator.Options().MaxUnits)
	assert.EqualValues(t, DefaultMaxUploadBytes, app.Config.MaxUploadBytes)
}
