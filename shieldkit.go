package shieldkit

import (
	"net/http"
	"time"

	"github.com/parcelshield/shieldkit/core"
	"github.com/parcelshield/shieldkit/services"
	"go.uber.org/zap"
)

// interfaces
type (
	KeyValueStorage = core.KeyValueStorage

	Renderer       = core.Renderer
	Notifier       = core.Notifier
	SessionDisplay = core.SessionDisplay
	Confirmer      = core.Confirmer
	Navigator      = core.Navigator
	TokenSource    = core.TokenSource
)

// structs
type (
	Config = core.Config

	User            = core.User
	Session         = core.Session
	ContentItem     = core.ContentItem
	DetectionResult = core.DetectionResult
	UploadDraft     = core.UploadDraft
	FileRef         = core.FileRef
	Resource        = core.Resource
	ListEntry       = core.ListEntry
)

type (
	Kind = core.Kind
	Tone = core.Tone
)

const (
	KindScamTips   = core.KindScamTips
	KindScamCases  = core.KindScamCases
	KindUserManual = core.KindUserManual

	ToneInfo    = core.ToneInfo
	ToneSuccess = core.ToneSuccess
	ToneError   = core.ToneError
)

const defaultTimeout = 30 * time.Second

// Constructors & helpers (convenience re-exports)
var (
	ResourceFor   = core.ResourceFor
	Kinds         = core.Kinds
	FileFromBytes = core.FileFromBytes
	ValidateDraft = services.ValidateDraft
)

var (
	ErrFileRequired        = core.ErrFileRequired
	ErrTitleRequired       = core.ErrTitleRequired
	ErrCredentialsRequired = core.ErrCredentialsRequired
	ErrNoFileSelected      = core.ErrNoFileSelected
	ErrManualNotPDF        = core.ErrManualNotPDF
	ErrImageTypeInvalid    = core.ErrImageTypeInvalid
)

var (
	ErrAuthRequired   = core.ErrAuthRequired
	ErrUnknownKind    = core.ErrUnknownKind
	ErrKeyNotFound    = core.ErrKeyNotFound
	ErrUploadInFlight = core.ErrUploadInFlight
)

var (
	ErrBaseURLRequired  = core.ErrBaseURLRequired
	ErrStorageRequired  = core.ErrStorageRequired
	ErrRendererRequired = core.ErrRendererRequired
	ErrNotifierRequired = core.ErrNotifierRequired
)

var (
	IsNetworkError = core.IsNetworkError
	IsDomainError  = core.IsDomainError
)

// ShieldKit bundles the wired controllers. Construct with New.
type ShieldKit struct {
	Sessions *services.SessionStore
	API      *services.APIClient
	Auth     *services.AuthController
	Content  *services.ContentSyncController
	Upload   *services.UploadController
	Detect   *services.DetectionController
}

func New(config Config) (*ShieldKit, error) {
	if config.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}
	if config.Storage == nil {
		return nil, ErrStorageRequired
	}
	if config.Renderer == nil {
		return nil, ErrRendererRequired
	}
	if config.Notifier == nil {
		return nil, ErrNotifierRequired
	}

	// Set Defaults

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	display := config.Display
	if display == nil {
		display = noopDisplay{}
	}

	confirm := config.Confirm
	if confirm == nil {
		confirm = approveAll{}
	}

	navigator := config.Navigator
	if navigator == nil {
		navigator = noopNavigator{}
	}

	sessions := services.NewSessionStore(config.Storage, display, logger)
	api := services.NewAPIClient(config.BaseURL, httpClient, sessions, logger)

	kit := &ShieldKit{
		Sessions: sessions,
		API:      api,
		Auth:     services.NewAuthController(api, sessions, config.Notifier, navigator, logger),
		Content:  services.NewContentSyncController(api, config.Renderer, config.Notifier, confirm, logger),
		Upload:   services.NewUploadController(api, sessions, config.Notifier, logger),
		Detect:   services.NewDetectionController(api, config.Renderer, config.Notifier, logger),
	}

	sessions.Init()

	return kit, nil
}

type noopDisplay struct{}

func (noopDisplay) ShowLoggedIn(*core.User) {}
func (noopDisplay) ShowLoggedOut()          {}

// approveAll is the default confirmer for hosts that gate destructive
// actions themselves.
type approveAll struct{}

func (approveAll) Confirm(string) bool { return true }

type noopNavigator struct{}

func (noopNavigator) SwitchTo(string, time.Duration) {}
