package jsonschema

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/dadav/go-jsonpointer"
)

// UnresolvedRefs reports every `$ref` in the document that does not point at
// a location inside the document itself. Local refs (`#/...`) are resolved as
// JSON pointers against the marshaled document; any other ref is reported as
// unresolved. The document is not modified.
func UnresolvedRefs(doc *Document) ([]Warning, error) {
	if doc == nil {
		return nil, nil
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal json schema: %w", err)
	}

	var obj any
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil, fmt.Errorf("unmarshal json schema: %w", err)
	}

	w := &refWalker{root: obj}
	w.walk(obj, "")

	return w.warnings, nil
}

type refWalker struct {
	root     any
	warnings []Warning
}

func (w *refWalker) walk(v any, path string) {
	switch node := v.(type) {
	case map[string]any:
		if ref, ok := node["$ref"].(string); ok {
			w.check(ref, path)
		}

		keys := make([]string, 0, len(node))
		for k := range node {
			keys = append(keys, k)
		}

		slices.Sort(keys)

		for _, k := range keys {
			w.walk(node[k], joinPath(path, escapePointer(k)))
		}

	case []any:
		for i, item := range node {
			w.walk(item, joinPath(path, fmt.Sprint(i)))
		}
	}
}

func (w *refWalker) check(ref, path string) {
	file, pointer, found := strings.Cut(ref, "#")
	if !found || file != "" {
		w.unresolved(path, ref, "not a local reference")

		return
	}

	if pointer == "" {
		return
	}

	target, err := jsonpointer.Get(w.root, pointer)
	if err != nil {
		w.unresolved(path, ref, err.Error())

		return
	}

	if target == nil {
		w.unresolved(path, ref, "no such location")
	}
}

func (w *refWalker) unresolved(path, ref, reason string) {
	w.warnings = append(w.warnings, Warning{
		Kind:   WarnUnresolvedRef,
		Path:   path,
		Detail: fmt.Sprintf("%s: %s", ref, reason),
	})
}

func escapePointer(s string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(s)
}
