// Package placeholder recognises the templating forms a cell can hold:
//
//	str(path)             value written as is
//	number(path [fmt])    numeric value with an optional number format
//	date(path [fmt])      date value with an optional number format
//	link(path)            {text, ref} written as a hyperlink
//	qrcode(path)          value rendered as a QR code picture
//	{text}                text written verbatim, without further processing
//
// Every form must span the whole cell text.
package placeholder

import (
	"regexp"
	"strings"
)

// Kind identifies a placeholder form.
type Kind int

const (
	Str Kind = iota
	Number
	Date
	Link
	QRCode
	Raw
)

// Kinds returns every kind in binding order.
func Kinds() []Kind {
	return []Kind{Str, Number, Date, Link, QRCode, Raw}
}

var kindNames = [...]string{
	Str:    "str",
	Number: "number",
	Date:   "date",
	Link:   "link",
	QRCode: "qrcode",
	Raw:    "raw",
}

func (k Kind) valid() bool {
	return k >= 0 && int(k) < len(kindNames)
}

func (k Kind) String() string {
	if k.valid() {
		return kindNames[k]
	}
	return "unknown"
}

var patterns = [...]*regexp.Regexp{
	Str:    regexp.MustCompile(`^str\(([^)]+)\)$`),
	Number: regexp.MustCompile(`^number\((\S+?)(?:\s(\S+))?\)$`),
	Date:   regexp.MustCompile(`^date\((\S+?)(?:\s(.+))?\)$`),
	Link:   regexp.MustCompile(`^link\((.+)\)$`),
	QRCode: regexp.MustCompile(`^qrcode\((.+)\)$`),
	Raw:    regexp.MustCompile(`^\{(.+)\}$`),
}

// IterationMarker splits a path into an array part and a per-element part.
const IterationMarker = "[i]"

// Placeholder is a parsed placeholder.
type Placeholder struct {
	Kind Kind
	// Path is the data path, or the verbatim inner text for Raw.
	Path string
	// Format is the optional number format of Number and Date placeholders.
	Format string
}

// Pattern returns the anchored expression matching k.
func Pattern(k Kind) *regexp.Regexp {
	if !k.valid() {
		return nil
	}
	return patterns[k]
}

// Match parses text as a placeholder of kind k.
func Match(k Kind, text string) (Placeholder, bool) {
	if !k.valid() {
		return Placeholder{}, false
	}
	m := patterns[k].FindStringSubmatch(text)
	if m == nil {
		return Placeholder{}, false
	}
	p := Placeholder{Kind: k, Path: m[1]}
	if len(m) > 2 {
		p.Format = strings.TrimSpace(m[2])
	}
	return p, true
}

// Parse tries every kind in binding order.
func Parse(text string) (Placeholder, bool) {
	for _, k := range Kinds() {
		if p, ok := Match(k, text); ok {
			return p, true
		}
	}
	return Placeholder{}, false
}

// Split cuts the path at the first iteration marker. ok is false when the
// path holds no marker.
func (p Placeholder) Split() (arrayPath, slugPath string, ok bool) {
	return strings.Cut(p.Path, IterationMarker)
}

func (p Placeholder) String() string {
	switch p.Kind {
	case Raw:
		return "{" + p.Path + "}"
	case Number, Date:
		if p.Format != "" {
			return p.Kind.String() + "(" + p.Path + " " + p.Format + ")"
		}
	}
	return p.Kind.String() + "(" + p.Path + ")"
}
