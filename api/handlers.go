package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/submersibletoaster/mosaic"
	"github.com/submersibletoaster/mosaic/report"
)

// PDFFilename is the attachment name of a generated guide.
const PDFFilename = "rubiks-mosaic-guide.pdf"

type pdfRequest struct {
	MosaicData *mosaic.Result  `json:"mosaicData"`
	Settings   report.Settings `json:"settings"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("Writing response")
	}
}

// POST /api/generate-mosaic
func (app *Application) generateMosaic(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, app.Config.MaxUploadBytes)
	if err := r.ParseMultipartForm(app.Config.MaxUploadBytes); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			app.uploadTooLarge(w, r, err)
			return
		}
		app.badRequest(w, r, fmt.Errorf("reading upload: %w", err))
		return
	}

	width, err := formInt(r, "width", mosaic.DefaultUnits)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}
	height, err := formInt(r, "height", mosaic.DefaultUnits)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}
	if err := app.Generator.Validate(width, height); err != nil {
		app.invalidDimensions(w, r, err)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		app.badRequest(w, r, errors.New("no image file provided"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		app.badRequest(w, r, fmt.Errorf("reading image: %w", err))
		return
	}
	if ct := http.DetectContentType(data); !strings.HasPrefix(ct, "image/") {
		app.unsupportedImage(w, r, fmt.Errorf("content type %s is not an image", ct))
		return
	}

	img, err := mosaic.Decode(bytes.NewReader(data))
	if err != nil {
		app.unsupportedImage(w, r, err)
		return
	}

	res, err := app.Generator.Generate(img, width, height)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// POST /api/generate-pdf
func (app *Application) generatePDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	req := &pdfRequest{}
	body := http.MaxBytesReader(w, r.Body, app.Config.MaxUploadBytes)
	if err := json.NewDecoder(body).Decode(req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := report.WritePDF(&buf, req.MosaicData, req.Settings); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", PDFFilename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// GET /api/health
func (app *Application) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// formInt reads an integer form field, returning def when it is absent.
func formInt(r *http.Request, key string, def int) (int, error) {
	v := strings.TrimSpace(r.FormValue(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}
