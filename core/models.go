package core

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// User is the identity returned by the login endpoint.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// RoleAdmin is the only role carrying admin affordances.
const RoleAdmin = "admin"

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Session pairs a user with their bearer token.
//
// Owned exclusively by the session store: created on successful login,
// destroyed on logout or token absence.
type Session struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// ContentItem is the wire shape shared by the three resource kinds.
// Each kind populates exactly one display-title field (title or
// headline) and at most one display-path field.
type ContentItem struct {
	ID        int64  `json:"id"`
	Title     string `json:"title,omitempty"`
	Headline  string `json:"headline,omitempty"`
	ImagePath string `json:"image_path,omitempty"`
	FilePath  string `json:"file_path,omitempty"`
	NewsLink  string `json:"news_link,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// field resolves a wire field by name. Probing is closed over the
// fields the three kinds can carry; unknown names resolve empty.
func (it *ContentItem) field(name string) string {
	switch name {
	case "title":
		return it.Title
	case "headline":
		return it.Headline
	case "image_path":
		return it.ImagePath
	case "file_path":
		return it.FilePath
	case "news_link":
		return it.NewsLink
	}
	return ""
}

// DetectionResult is the structured verdict for one analyzed image.
// Ephemeral: produced per request, discarded on the next upload.
type DetectionResult struct {
	IsAIGenerated     bool    `json:"is_ai_generated"`
	ConfidencePercent float64 `json:"confidence_percent"`
	ProbabilityScore  float64 `json:"probability_score"`
	LikelyGenerator   string  `json:"likely_generator"`
	Explanation       string  `json:"explanation"`
}

// Verdict visual states.
const (
	VerdictAIGenerated = "ai-generated"
	VerdictLikelyReal  = "likely-real"
)

// Label classifies the verdict into one of the two visual states.
func (r *DetectionResult) Label() string {
	if r.IsAIGenerated {
		return VerdictAIGenerated
	}
	return VerdictLikelyReal
}

// FileRef points at a file chosen by the host UI. Open is called once
// per submission; the content is streamed, never held in the draft.
type FileRef struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// FileFromBytes builds an in-memory FileRef, mainly for tests.
func FileFromBytes(name string, data []byte) *FileRef {
	return &FileRef{
		Name: name,
		Size: int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// Extension returns the lowercased filename extension without the dot.
func (f *FileRef) Extension() string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(f.Name), "."))
}

// UploadDraft is a transient new-content submission: validated before
// the request is built, discarded after success or failure.
type UploadDraft struct {
	Kind     Kind
	Title    string
	File     *FileRef
	NewsLink string
}
