package core

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DocKind identifies the format of a crawled document, used to pick the
// splitter path (the section splitter handles Markdown; OpenAPI specs are
// routed to a dedicated splitter that chunks by path/operation instead).
type DocKind string

const (
	// DocKindMarkdown covers both rendered HTML pages (after HTML->Markdown
	// conversion) and plain Markdown/text sources.
	DocKindMarkdown DocKind = "markdown"
	// DocKindOpenAPI covers OpenAPI/Swagger specification documents.
	DocKindOpenAPI DocKind = "openapi"
)

// specExtensions is the set of file extensions worth sniffing for an
// OpenAPI/Swagger body; anything else is classified as Markdown without
// inspecting its content at all.
var specExtensions = map[string]struct{}{
	".yaml": {},
	".yml":  {},
	".json": {},
}

// DetectContentType classifies a crawled document by extension first, then —
// for YAML/JSON bodies only — by sniffing the top-level "openapi" (OAS 3.x)
// or "swagger" (OAS 2.0) version field that marks a specification document.
// Everything else, including a YAML/JSON file that doesn't carry that
// marker, is classified as Markdown rather than dropped, so the section
// splitter still gets a chance at arbitrary documentation content.
func DetectContentType(path string, content []byte) DocKind {
	ext := strings.ToLower(filepath.Ext(path))

	if _, maybeSpec := specExtensions[ext]; maybeSpec && hasSpecMarker(content, ext) {
		return DocKindOpenAPI
	}

	return DocKindMarkdown
}

// specMarker captures the root-level version field shared by OpenAPI 3.x and
// Swagger 2.0 documents. Pointers distinguish "field present" from "field
// absent" even when the value itself is an empty string.
type specMarker struct {
	OpenAPI *string `json:"openapi" yaml:"openapi"`
	Swagger *string `json:"swagger" yaml:"swagger"`
}

// hasSpecMarker decodes content with whichever format it most likely is
// (JSON when the extension or a leading '{' suggests it, YAML otherwise) and
// reports whether either root-level marker field was present. A decode
// failure is treated as "not a spec" rather than an error, since content
// here may legitimately be an arbitrary, non-spec YAML/JSON file.
func hasSpecMarker(content []byte, ext string) bool {
	var (
		marker specMarker
		err    error
	)

	if ext == ".json" || (len(content) > 0 && content[0] == '{') {
		err = json.Unmarshal(content, &marker)
	} else {
		err = yaml.Unmarshal(content, &marker)
	}

	if err != nil {
		return false
	}

	return marker.OpenAPI != nil || marker.Swagger != nil
}
