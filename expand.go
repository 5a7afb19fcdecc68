package excel

import (
	"github.com/geoirb/xlsx-template/internal/data"
	"github.com/geoirb/xlsx-template/internal/placeholder"
)

// binding is one resolved value of a placeholder, offset rows below the
// anchor cell.
type binding struct {
	offset int
	value  data.Value
}

// expand resolves p against root. A path without an iteration marker is a
// one element array, so the result always holds at least one binding.
func expand(root data.Value, p placeholder.Placeholder) []binding {
	arrayPath, slugPath, ok := p.Split()
	if !ok {
		return []binding{{value: data.Resolve(root, p.Path)}}
	}

	items := data.Resolve(root, arrayPath)
	switch {
	case items.IsBlank():
		return []binding{{value: data.AbsentValue}}
	case items.Kind() != data.Sequence:
		items = data.SequenceValue(items)
	case items.Len() == 0:
		return []binding{{value: data.AbsentValue}}
	}

	bindings := make([]binding, items.Len())
	for i := range bindings {
		bindings[i] = binding{
			offset: i,
			value:  data.Resolve(items.Index(i), slugPath),
		}
	}
	return bindings
}
