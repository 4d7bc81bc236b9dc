package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"runtime"

	log "github.com/sirupsen/logrus"
)

// Helper function to get caller information
func getCallerInfo() string {
	_, file, line, ok := runtime.Caller(3)
	if !ok {
		return "[unknown]"
	}
	return fmt.Sprintf("[%s:%d]", filepath.Base(file), line)
}

type HandlerError struct {
	ErrorName        string `json:"errorName"`
	Description      string `json:"description"`
	PossibleSolution string `json:"possibleSolution"`
	CallerInfo       string `json:"callerInfo,omitempty"`
}

var ErrGET = fmt.Errorf("GET method required for this endpoint")
var ErrPOST = fmt.Errorf("POST method required for this endpoint")

func (app *Application) writeError(w http.ResponseWriter, r *http.Request, status int, he HandlerError) {
	if app.Config.DevMode {
		he.CallerInfo = getCallerInfo()
	}
	log.WithFields(log.Fields{
		"path":   r.URL.Path,
		"status": status,
	}).Warn(he.ErrorName + ": " + he.Description)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(he)
}

func (app *Application) requirePostMethod(w http.ResponseWriter, r *http.Request, err error) {
	w.Header().Set("Allow", http.MethodPost)
	app.writeError(w, r, http.StatusMethodNotAllowed, HandlerError{
		ErrorName:        "Post Method Required",
		Description:      err.Error() + " you used: " + r.Method,
		PossibleSolution: "Use POST method",
	})
}

func (app *Application) requireGetMethod(w http.ResponseWriter, r *http.Request, err error) {
	w.Header().Set("Allow", http.MethodGet)
	app.writeError(w, r, http.StatusMethodNotAllowed, HandlerError{
		ErrorName:        "GET Method Required",
		Description:      err.Error() + " you used: " + r.Method,
		PossibleSolution: "Use GET method",
	})
}

func (app *Application) badJSONRequest(w http.ResponseWriter, r *http.Request, err error) {
	app.writeError(w, r, http.StatusBadRequest, HandlerError{
		ErrorName:        "Error Parsing JSON",
		Description:      err.Error(),
		PossibleSolution: "Double check your JSON formatting",
	})
}

func (app *Application) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	app.writeError(w, r, http.StatusBadRequest, HandlerError{
		ErrorName:        "Bad Request",
		Description:      err.Error(),
		PossibleSolution: "Check your request parameters",
	})
}

func (app *Application) invalidDimensions(w http.ResponseWriter, r *http.Request, err error) {
	app.writeError(w, r, http.StatusBadRequest, HandlerError{
		ErrorName:        "Invalid Mosaic Size",
		Description:      err.Error(),
		PossibleSolution: fmt.Sprintf("Use a width and height between 1 and %d cubes", app.Generator.Options().MaxUnits),
	})
}

func (app *Application) unsupportedImage(w http.ResponseWriter, r *http.Request, err error) {
	app.writeError(w, r, http.StatusUnsupportedMediaType, HandlerError{
		ErrorName:        "Unsupported Image",
		Description:      err.Error(),
		PossibleSolution: "Upload a PNG, JPEG, GIF or WebP image",
	})
}

func (app *Application) uploadTooLarge(w http.ResponseWriter, r *http.Request, err error) {
	app.writeError(w, r, http.StatusRequestEntityTooLarge, HandlerError{
		ErrorName:        "Upload Too Large",
		Description:      err.Error(),
		PossibleSolution: fmt.Sprintf("Upload an image smaller than %d bytes", app.Config.MaxUploadBytes),
	})
}

func (app *Application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.writeError(w, r, http.StatusInternalServerError, HandlerError{
		ErrorName:        "Internal Server Error",
		Description:      err.Error(),
		PossibleSolution: "Internal Server Error requiring support",
	})
}
