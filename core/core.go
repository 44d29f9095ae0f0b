package core

import (
	"net/http"

	"go.uber.org/zap"
)

// Config wires the library to its host environment.
type Config struct {
	// BaseURL is the API root, e.g. "http://localhost:4000/api".
	BaseURL string

	Storage  KeyValueStorage
	Renderer Renderer
	Notifier Notifier

	// Optional collaborators
	Display    SessionDisplay
	Confirm    Confirmer
	Navigator  Navigator
	HTTPClient *http.Client
	Logger     *zap.SugaredLogger
}
