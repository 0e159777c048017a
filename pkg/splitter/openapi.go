package splitter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/ksysoev/docindex/pkg/core"
)

// httpMethods lists the operations considered on a path item, in a
// deterministic order (kin-openapi's PathItem exposes them as named fields,
// not a map).
var httpMethods = []struct {
	name string
	get  func(*openapi3.PathItem) *openapi3.Operation
}{
	{"GET", func(p *openapi3.PathItem) *openapi3.Operation { return p.Get }},
	{"POST", func(p *openapi3.PathItem) *openapi3.Operation { return p.Post }},
	{"PUT", func(p *openapi3.PathItem) *openapi3.Operation { return p.Put }},
	{"DELETE", func(p *openapi3.PathItem) *openapi3.Operation { return p.Delete }},
	{"PATCH", func(p *openapi3.PathItem) *openapi3.Operation { return p.Patch }},
	{"HEAD", func(p *openapi3.PathItem) *openapi3.Operation { return p.Head }},
	{"OPTIONS", func(p *openapi3.PathItem) *openapi3.Operation { return p.Options }},
	{"TRACE", func(p *openapi3.PathItem) *openapi3.Operation { return p.Trace }},
}

// SplitOpenAPI chunks an OpenAPI/Swagger spec by path and operation instead
// of running it through the Markdown section splitter: each chunk holds one
// operation's summary, description and parameter list, addressed by a
// SectionPath of ["paths", <path>, <method>] so retrieval can still expand a
// hit to its surrounding siblings (§4.7) the same way it does for Markdown
// sections.
func SplitOpenAPI(content []byte, opts Options) ([]core.Chunk, error) {
	opts = opts.withDefaults()

	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = false

	spec, err := loader.LoadFromData(content)
	if err != nil {
		return nil, fmt.Errorf("parse openapi spec: %w", err)
	}

	var pieces []core.Chunk

	if info := infoChunk(spec); info != nil {
		pieces = append(pieces, *info...)
	}

	for _, path := range sortedPaths(spec) {
		item := spec.Paths.Value(path)
		if item == nil {
			continue
		}

		for _, m := range httpMethods {
			op := m.get(item)
			if op == nil {
				continue
			}

			chunks, err := operationChunks(path, m.name, op, opts.Max)
			if err != nil {
				return nil, err
			}

			pieces = append(pieces, chunks...)
		}
	}

	return Coalesce(pieces, opts), nil
}

func infoChunk(spec *openapi3.T) *[]core.Chunk {
	if spec.Info == nil || (spec.Info.Title == "" && spec.Info.Description == "") {
		return nil
	}

	var buf strings.Builder

	if spec.Info.Title != "" {
		buf.WriteString(spec.Info.Title)
		buf.WriteByte('\n')
	}

	if spec.Info.Description != "" {
		buf.WriteString(spec.Info.Description)
	}

	chunks := []core.Chunk{{
		Types:   map[core.SectionType]struct{}{core.SectionHeading: {}},
		Content: strings.TrimSpace(buf.String()),
		Level:   1,
		Path:    core.SectionPath{"info"},
	}}

	return &chunks
}

func operationChunks(path, method string, op *openapi3.Operation, max int) ([]core.Chunk, error) {
	sectionPath := core.SectionPath{"paths", path, method}

	var buf strings.Builder

	fmt.Fprintf(&buf, "%s %s\n", method, path)

	if op.Summary != "" {
		buf.WriteString(op.Summary)
		buf.WriteByte('\n')
	}

	if op.Description != "" {
		buf.WriteString(op.Description)
		buf.WriteByte('\n')
	}

	for _, p := range op.Parameters {
		if p.Value == nil {
			continue
		}

		fmt.Fprintf(&buf, "- %s (%s): %s\n", p.Value.Name, p.Value.In, p.Value.Description)
	}

	texts, err := SplitText(strings.TrimSpace(buf.String()), max)
	if err != nil {
		return nil, fmt.Errorf("split operation %s %s: %w", method, path, err)
	}

	chunks := make([]core.Chunk, 0, len(texts))
	for i, t := range texts {
		types := map[core.SectionType]struct{}{core.SectionText: {}}
		if i == 0 {
			// Marking the first piece of each operation as a heading-level
			// boundary stops the coalescer from merging distinct operations
			// together; it still merges multiple pieces of the *same*
			// oversized operation, since only the first carries the marker.
			types[core.SectionHeading] = struct{}{}
		}

		chunks = append(chunks, core.Chunk{
			Types:   types,
			Content: t,
			Level:   2, //nolint:mnd // operations nest one level under "paths"
			Path:    sectionPath,
		})
	}

	return chunks, nil
}

func sortedPaths(spec *openapi3.T) []string {
	if spec.Paths == nil {
		return nil
	}

	paths := make([]string, 0, spec.Paths.Len())
	for p := range spec.Paths.Map() {
		paths = append(paths, p)
	}

	sort.Strings(paths)

	return paths
}
