package data

import (
	"strconv"
	"strings"
)

type segment struct {
	key     string
	index   int
	isIndex bool
}

// parsePath splits "a.b[2]['c.d']" into its segments. ok is false for
// malformed paths such as an unterminated bracket.
func parsePath(path string) (segs []segment, ok bool) {
	rest := path
	for rest != "" {
		switch rest[0] {
		case '.':
			rest = rest[1:]
			continue
		case '[':
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return nil, false
			}
			inner := strings.TrimSpace(rest[1:end])
			rest = rest[end+1:]
			if n := len(inner); n >= 2 && (inner[0] == '"' || inner[0] == '\'') && inner[n-1] == inner[0] {
				segs = append(segs, segment{key: inner[1 : n-1]})
				continue
			}
			if i, err := strconv.Atoi(inner); err == nil {
				segs = append(segs, segment{key: inner, index: i, isIndex: true})
				continue
			}
			segs = append(segs, segment{key: inner})
		default:
			end := strings.IndexAny(rest, ".[")
			if end < 0 {
				end = len(rest)
			}
			segs = append(segs, segment{key: rest[:end]})
			rest = rest[end:]
		}
	}
	return segs, true
}

func (s segment) step(v Value) Value {
	switch v.kind {
	case Sequence:
		if s.isIndex {
			return v.Index(s.index)
		}
		if i, err := strconv.Atoi(s.key); err == nil {
			return v.Index(i)
		}
	case Mapping:
		return v.Key(s.key)
	}
	return AbsentValue
}

// Resolve walks path from root. Any missing segment, a segment applied to
// a value of the wrong shape, or a malformed path yields Absent. An empty
// path returns root itself.
func Resolve(root Value, path string) Value {
	segs, ok := parsePath(path)
	if !ok {
		return AbsentValue
	}
	cur := root
	for _, s := range segs {
		cur = s.step(cur)
		if cur.kind == Absent {
			return AbsentValue
		}
	}
	return cur
}

// Lookup is Resolve with a fallback: def is returned whenever the resolved
// value is absent or null.
func Lookup(root Value, path string, def Value) Value {
	if v := Resolve(root, path); !v.IsBlank() {
		return v
	}
	return def
}
