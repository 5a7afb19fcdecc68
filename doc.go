// Package excel fills xlsx templates with data.
//
// A template is an ordinary workbook whose cells hold placeholders:
//
//	str(customer.name)            the value as is
//	number(order.total 0.00)      a number with an optional number format
//	date(order.created dd.mm.yy)  a date with an optional number format
//	link(order.url)               {"text": ..., "ref": ...} as a hyperlink
//	qrcode(order.url)             the value as a QR code picture
//	{str(kept)}                   the inner text, written verbatim
//
// A path holding the iteration marker [i] is bound to every element of the
// array on its left, one row per element going down from the placeholder
// cell: str(items[i].name) fills the column with the item names. Sheet
// names may hold str(...) and {...} placeholders too.
//
// Missing data never fails a binding; the cell is left blank. Text written
// by a {...} placeholder stays literal when data is applied again.
//
//	t, err := excel.NewTemplate()
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := t.LoadTemplate("template.xlsx"); err != nil {
//		log.Fatal(err)
//	}
//	if err := t.ApplyData(payload); err != nil {
//		log.Fatal(err)
//	}
//	if err := t.ToFile("result.xlsx"); err != nil {
//		log.Fatal(err)
//	}
package excel
