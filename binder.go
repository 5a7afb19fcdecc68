package excel

import (
	"log/slog"
	"time"

	"github.com/skip2/go-qrcode"

	"github.com/geoirb/xlsx-template/internal/data"
	"github.com/geoirb/xlsx-template/internal/placeholder"
)

// binder writes one payload into a document. Passes run in a fixed order
// and each rescans the document, so a cell rewritten by an earlier pass is
// seen by later passes only through its new text.
type binder struct {
	doc      Document
	root     data.Value
	cfg      Config
	logger   *slog.Logger
	literals literals
}

// cellKey addresses a cell, or a sheet title when ref is empty.
type cellKey struct {
	sheet string
	ref   string
}

// literals records the text written by raw placeholders into cells and
// sheet titles. That text may look like a placeholder but is not bound again
// while it is unchanged.
type literals map[cellKey]string

// holds reports whether text at sheet and ref is a recorded literal. A record
// whose text was replaced since is dropped.
func (l literals) holds(sheet, ref, text string) bool {
	key := cellKey{sheet, ref}
	written, ok := l[key]
	if ok && written != text {
		delete(l, key)
		return false
	}
	return ok
}

func (l literals) renameSheet(from, to string) {
	if from == to {
		return
	}
	moved := make(map[cellKey]string)
	for k, text := range l {
		if k.sheet == from {
			delete(l, k)
			if k.ref == "" {
				text = to
			}
			moved[cellKey{to, k.ref}] = text
		}
	}
	for k, text := range moved {
		l[k] = text
	}
}

func (b *binder) run() error {
	for _, kind := range placeholder.Kinds() {
		if err := b.bindCells(kind); err != nil {
			return err
		}
	}
	for _, kind := range []placeholder.Kind{placeholder.Str, placeholder.Raw} {
		b.bindSheetTitles(kind)
	}
	return nil
}

func (b *binder) bindCells(kind placeholder.Kind) error {
	cells, err := b.doc.FindCells(placeholder.Pattern(kind))
	if err != nil {
		return err
	}
	if len(cells) > 0 {
		b.logger.Debug("binding placeholders", "kind", kind, "matches", len(cells))
	}
	for _, c := range cells {
		text, err := c.Text()
		if err != nil {
			return err
		}
		if b.literals.holds(c.Sheet(), c.Ref(), text) {
			continue
		}
		// An expansion earlier in this pass may have overwritten the cell.
		p, ok := placeholder.Match(kind, text)
		if !ok {
			continue
		}
		if err := b.bindCell(c, p); err != nil {
			return err
		}
	}
	return nil
}

func (b *binder) bindCell(anchor Cell, p placeholder.Placeholder) error {
	if p.Kind == placeholder.Raw {
		if err := anchor.SetValue(p.Path); err != nil {
			return err
		}
		b.literals[cellKey{anchor.Sheet(), anchor.Ref()}] = p.Path
		return nil
	}

	bindings := expand(b.root, p)
	b.logger.Debug("binding cell",
		"sheet", anchor.Sheet(), "cell", anchor.Ref(), "path", p.Path, "rows", len(bindings))

	for _, bnd := range bindings {
		target := anchor
		if bnd.offset > 0 {
			var err error
			if target, err = anchor.RelativeCell(bnd.offset, 0); err != nil {
				return err
			}
			if err = target.InheritStyle(anchor); err != nil {
				return err
			}
			delete(b.literals, cellKey{target.Sheet(), target.Ref()})
		}
		if err := b.write(target, p, bnd.value); err != nil {
			return err
		}
	}
	return nil
}

func (b *binder) write(c Cell, p placeholder.Placeholder, v data.Value) error {
	switch p.Kind {
	case placeholder.Number:
		if err := c.SetValue(numberValue(v)); err != nil {
			return err
		}
		return c.SetStyle(StyleNumberFormat, orDefault(p.Format, b.cfg.NumberFormat))
	case placeholder.Date:
		if err := c.SetValue(b.dateValue(v)); err != nil {
			return err
		}
		return c.SetStyle(StyleNumberFormat, orDefault(p.Format, b.cfg.DateFormat))
	case placeholder.Link:
		return b.writeLink(c, v)
	case placeholder.QRCode:
		return b.writeQRCode(c, v)
	}
	return c.SetValue(v.Native())
}

func (b *binder) writeLink(c Cell, v data.Value) error {
	text, ref := v.Text(), b.cfg.LinkRef
	if v.Kind() == data.Mapping {
		text = v.Key("text").Text()
		if r := v.Key("ref").Text(); r != "" {
			ref = r
		}
	}
	if err := c.SetValue(text); err != nil {
		return err
	}
	if err := c.SetHyperlink(ref); err != nil {
		return err
	}
	if err := c.SetStyle(StyleFontColor, b.cfg.LinkColor); err != nil {
		return err
	}
	if b.cfg.LinkUnderline == "" {
		return nil
	}
	return c.SetStyle(StyleUnderline, b.cfg.LinkUnderline)
}

func (b *binder) writeQRCode(c Cell, v data.Value) error {
	if err := c.SetValue(nil); err != nil {
		return err
	}
	content := v.Text()
	if content == "" {
		return nil
	}
	png, err := qrcode.Encode(content, b.cfg.qrLevel(), b.cfg.QRCodeSize)
	if err != nil {
		return &DocumentError{Op: "encode qrcode", Sheet: c.Sheet(), Cell: c.Ref(), Err: err}
	}
	return c.SetPicture(png, content)
}

// bindSheetTitles renames sheets whose name is a placeholder of kind.
// Sheet names cannot fan out, so iteration markers are not expanded.
func (b *binder) bindSheetTitles(kind placeholder.Kind) {
	for _, sheet := range b.doc.Sheets() {
		if b.literals.holds(sheet.Name(), "", sheet.Name()) {
			continue
		}
		p, ok := placeholder.Match(kind, sheet.Name())
		if !ok {
			continue
		}
		name := p.Path
		if kind != placeholder.Raw {
			name = data.Resolve(b.root, p.Path).Text()
		}
		if name == "" {
			b.logger.Warn("sheet title resolved to empty name", "sheet", sheet.Name(), "path", p.Path)
			continue
		}
		old := sheet.Name()
		if err := sheet.SetName(name); err != nil {
			b.logger.Warn("sheet title not applied", "sheet", old, "name", name, "error", err)
			continue
		}
		b.literals.renameSheet(old, name)
		if kind == placeholder.Raw {
			b.literals[cellKey{name, ""}] = name
		}
	}
}

func numberValue(v data.Value) any {
	if v.Kind() == data.String {
		if f, ok := v.Float(); ok {
			return f
		}
	}
	return v.Native()
}

func (b *binder) dateValue(v data.Value) any {
	if s, ok := v.Str(); ok {
		for _, layout := range b.cfg.DateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
	}
	return v.Native()
}

func orDefault(s, def string) string {
	if s != "" {
		return s
	}
	return def
}
