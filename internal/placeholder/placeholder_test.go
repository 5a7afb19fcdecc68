package placeholder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		text string
		want Placeholder
	}{
		{"str(data.foo)", Placeholder{Kind: Str, Path: "data.foo"}},
		{"str(data foo)", Placeholder{Kind: Str, Path: "data foo"}},
		{"str(data[i].foo)", Placeholder{Kind: Str, Path: "data[i].foo"}},
		{"number(data.foo)", Placeholder{Kind: Number, Path: "data.foo"}},
		{"number(data.foo 0.00)", Placeholder{Kind: Number, Path: "data.foo", Format: "0.00"}},
		{"number(data.foo[i] #,##0)", Placeholder{Kind: Number, Path: "data.foo[i]", Format: "#,##0"}},
		{"date(data.foo)", Placeholder{Kind: Date, Path: "data.foo"}},
		{"date(data.foo dd/mmm/yyyy)", Placeholder{Kind: Date, Path: "data.foo", Format: "dd/mmm/yyyy"}},
		{"date(data.foo d mmm yyyy h:mm)", Placeholder{Kind: Date, Path: "data.foo", Format: "d mmm yyyy h:mm"}},
		{"link(data.foo)", Placeholder{Kind: Link, Path: "data.foo"}},
		{"qrcode(data.url)", Placeholder{Kind: QRCode, Path: "data.url"}},
		{"{str(data.foo)}", Placeholder{Kind: Raw, Path: "str(data.foo)"}},
		{"{plain}", Placeholder{Kind: Raw, Path: "plain"}},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			got, ok := Parse(tc.text)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.text, got.String())
		})
	}
}

func TestParseRejects(t *testing.T) {
	for _, text := range []string{
		"",
		"plain text",
		" str(data.foo)",
		"str(data.foo) ",
		"str()",
		"str(a) and str(b)",
		"number(data foo bar)",
		"number()",
		"date()",
		"link()",
		"{}",
		"prefix {raw}",
		"STR(data.foo)",
	} {
		_, ok := Parse(text)
		assert.False(t, ok, "%q", text)
	}
}

func TestMatchIsKindSpecific(t *testing.T) {
	_, ok := Match(Number, "str(data.foo)")
	assert.False(t, ok)

	_, ok = Match(Kind(99), "str(data.foo)")
	assert.False(t, ok)

	p, ok := Match(Str, "str(data.foo)")
	require.True(t, ok)
	assert.Equal(t, Str, p.Kind)
	assert.True(t, Pattern(Str).MatchString("str(x)"))
}

func TestSplit(t *testing.T) {
	cases := []struct {
		path       string
		array      string
		slug       string
		iterations bool
	}{
		{"data.foo", "data.foo", "", false},
		{"data.foo[i]", "data.foo", "", true},
		{"data[i].foo", "data", ".foo", true},
		{"data[i].foo.bar[0]", "data", ".foo.bar[0]", true},
		{"[i].foo", "", ".foo", true},
	}
	for _, tc := range cases {
		array, slug, ok := Placeholder{Kind: Str, Path: tc.path}.Split()
		assert.Equal(t, tc.iterations, ok, tc.path)
		if ok {
			assert.Equal(t, tc.array, array, tc.path)
			assert.Equal(t, tc.slug, slug, tc.path)
		}
	}
}

func TestKindString(t *testing.T) {
	var names []string
	for _, k := range Kinds() {
		names = append(names, k.String())
	}
	assert.Equal(t, []string{"str", "number", "date", "link", "qrcode", "raw"}, names)
	assert.Equal(t, "unknown", Kind(-1).String())
	assert.Equal(t, "unknown", Kind(len(names)).String())
}

func TestKindsIsACopy(t *testing.T) {
	kinds := Kinds()
	kinds[0] = Raw

	assert.Equal(t, Str, Kinds()[0])
}

func TestUnknownKind(t *testing.T) {
	assert.Nil(t, Pattern(Kind(42)))
	_, ok := Match(Kind(42), "str(a)")
	assert.False(t, ok)
}
