package core

import (
	"fmt"
	"strings"
	"text/template"
)

// Kind identifies one of the three content collections.
type Kind string

const (
	KindScamTips   Kind = "scam-tips"
	KindScamCases  Kind = "scam-cases"
	KindUserManual Kind = "user-manual"
)

// imageExtensions is shared by the two image-backed kinds.
var imageExtensions = []string{"jpg", "jpeg", "png", "gif", "webp", "avif"}

// Resource describes one content kind: field mapping, upload rules and
// the public render template. The table is closed - adding a kind
// means adding a row here; nothing else branches on kind.
type Resource struct {
	Kind       Kind
	TitleField string
	// PathFields is the display-path probe order; first non-empty wins.
	PathFields        []string
	MultipartField    string
	AllowedExtensions []string
	EmptyMessage      string
	// Target is the render target for the kind's public view.
	Target         string
	AllowsNewsLink bool
	template       *template.Template
}

var resources = []*Resource{
	{
		Kind:              KindScamTips,
		TitleField:        "title",
		PathFields:        []string{"image_path"},
		MultipartField:    "poster",
		AllowedExtensions: imageExtensions,
		EmptyMessage:      "No Scam Tips Available Yet. Admin can upload scam awareness posters from the Admin Panel.",
		Target:            "scam-tips-list",
		template:          mustTemplate("scam-tips", "{{.Title}}{{if .ImagePath}}\n  image: {{.ImagePath}}{{end}}"),
	},
	{
		Kind:              KindScamCases,
		TitleField:        "headline",
		PathFields:        []string{"image_path", "news_link"},
		MultipartField:    "caseImage",
		AllowedExtensions: imageExtensions,
		EmptyMessage:      "No Scam Cases Reported Yet. Check back later for Malaysia parcel scam case reports.",
		Target:            "scam-cases-list",
		AllowsNewsLink:    true,
		template:          mustTemplate("scam-cases", "{{.Headline}}{{if .ImagePath}}\n  image: {{.ImagePath}}{{end}}{{if .NewsLink}}\n  read full news article: {{.NewsLink}}{{end}}"),
	},
	{
		Kind:              KindUserManual,
		TitleField:        "title",
		PathFields:        []string{"file_path"},
		MultipartField:    "manual",
		AllowedExtensions: []string{"pdf"},
		EmptyMessage:      "No User Manuals Available. Documentation will be uploaded by administrators.",
		Target:            "user-manual-list",
		template:          mustTemplate("user-manual", "{{.Title}}{{if .FilePath}}\n  open manual (PDF): {{.FilePath}}{{end}}"),
	},
}

func mustTemplate(name, text string) *template.Template {
	return template.Must(template.New(name).Parse(text))
}

// ResourceFor looks up the table row for a kind. The lookup is total
// over the three kinds; anything else is an error.
func ResourceFor(kind Kind) (*Resource, error) {
	for _, r := range resources {
		if r.Kind == kind {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// Kinds returns the three kinds in table order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(resources))
	for _, r := range resources {
		kinds = append(kinds, r.Kind)
	}
	return kinds
}

// DisplayTitle probes the kind's title field, then the other title
// field, then the Untitled fallback. Used for admin listings.
func (r *Resource) DisplayTitle(item *ContentItem) string {
	if v := item.field(r.TitleField); v != "" {
		return v
	}
	if item.Title != "" {
		return item.Title
	}
	if item.Headline != "" {
		return item.Headline
	}
	return "Untitled"
}

// DisplayPath probes the kind's path fields in order; first non-empty
// wins. The order is fixed per kind.
func (r *Resource) DisplayPath(item *ContentItem) string {
	for _, name := range r.PathFields {
		if v := item.field(name); v != "" {
			return v
		}
	}
	return ""
}

// Render executes the kind's public template for one item.
func (r *Resource) Render(item *ContentItem) (string, error) {
	var buf strings.Builder
	if err := r.template.Execute(&buf, item); err != nil {
		return "", fmt.Errorf("render %s item %d: %w", r.Kind, item.ID, err)
	}
	return buf.String(), nil
}

// ValidateExtension checks a filename against the kind's allowed set.
// Manuals require exactly pdf; the image kinds share a fixed image set.
func (r *Resource) ValidateExtension(filename string) error {
	ext := (&FileRef{Name: filename}).Extension()
	for _, allowed := range r.AllowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	if r.Kind == KindUserManual {
		return ErrManualNotPDF
	}
	return ErrImageTypeInvalid
}
