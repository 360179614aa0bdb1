package record

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"steward/plain"
)

// PathSegment is one dotted part of a path: a slot or key name followed
// by zero or more bracketed selectors.
type PathSegment struct {
	Name      string
	Selectors []string
}

// Path addresses a value below a record, e.g. "friends[0].home.zip" or
// "offices[berlin].street".
type Path struct {
	Segments []PathSegment
}

// ParsePath parses a path. Selectors hold a list index or a dict key and
// may not contain '.', '[' or ']'.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return Path{}, errors.New("empty path")
	}

	var segments []PathSegment

	for part := range strings.SplitSeq(s, ".") {
		seg, err := parseSegment(part)
		if err != nil {
			return Path{}, fmt.Errorf("invalid path %q: %w", s, err)
		}

		segments = append(segments, seg)
	}

	return Path{Segments: segments}, nil
}

func parseSegment(part string) (PathSegment, error) {
	name, rest, _ := strings.Cut(part, "[")
	if name == "" {
		return PathSegment{}, errors.New("empty segment name")
	}

	if strings.Contains(name, "]") {
		return PathSegment{}, fmt.Errorf("unexpected ']' in %q", part)
	}

	seg := PathSegment{Name: name}
	if rest == "" && !strings.Contains(part, "[") {
		return seg, nil
	}

	rest = "[" + rest
	for rest != "" {
		if rest[0] != '[' {
			return PathSegment{}, fmt.Errorf("unexpected %q after selector", rest)
		}

		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return PathSegment{}, fmt.Errorf("unterminated selector in %q", part)
		}

		sel := rest[1:end]
		if sel == "" || strings.Contains(sel, "[") {
			return PathSegment{}, fmt.Errorf("invalid selector %q", sel)
		}

		seg.Selectors = append(seg.Selectors, sel)
		rest = rest[end+1:]
	}

	return seg, nil
}

func (p Path) String() string {
	var b strings.Builder

	for i, seg := range p.Segments {
		if i > 0 {
			b.WriteByte('.')
		}

		b.WriteString(seg.Name)

		for _, sel := range seg.Selectors {
			b.WriteString("[" + sel + "]")
		}
	}

	return b.String()
}

// Resolve walks path from r and returns the value found: a slot value, a
// record, a proxy, or a plain value below an untyped field.
func (r *Record) Resolve(path string) (any, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}

	var cur any = r

	walked := ""

	for _, seg := range p.Segments {
		walked = joinPath(walked, seg.Name)

		cur, err = step(cur, seg.Name)
		if err != nil {
			return nil, fmt.Errorf("resolve %q at %q: %w", path, walked, err)
		}

		for _, sel := range seg.Selectors {
			walked += "[" + sel + "]"

			cur, err = step(cur, sel)
			if err != nil {
				return nil, fmt.Errorf("resolve %q at %q: %w", path, walked, err)
			}
		}
	}

	return cur, nil
}

// step moves from cur to its child called key.
func step(cur any, key string) (any, error) {
	switch t := cur.(type) {
	case nil:
		return nil, fmt.Errorf("%w: '%s' of a nil value", ErrKeyNotFound, key)
	case *Record:
		if t == nil {
			return nil, fmt.Errorf("%w: '%s' of a nil record", ErrKeyNotFound, key)
		}

		return t.Get(key)
	case *DictProxy:
		return t.Get(key)
	case *ListProxy:
		i, err := index(key)
		if err != nil {
			return nil, err
		}

		return t.At(i)
	}

	switch plain.KindOf(cur) {
	case plain.KindMap:
		m, _ := asMap(cur)

		v, ok := m[key]
		if !ok {
			return nil, keyNotFound(key)
		}

		return v, nil
	case plain.KindList:
		seq, _ := asList(cur)

		i, err := index(key)
		if err != nil {
			return nil, err
		}

		if i < 0 || i >= seq.Len() {
			return nil, indexOutOfRange(i, seq.Len())
		}

		return seq.At(i), nil
	default:
		return nil, &TypeMismatchError{Want: "container", Got: typeName(cur)}
	}
}

func index(key string) (int, error) {
	i, err := strconv.Atoi(key)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a list index", ErrIndexOutOfRange, key)
	}

	return i, nil
}
