package field

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueKey(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{name: "null", v: Null(), want: "null"},
		{name: "int", v: Int(42), want: "i:42"},
		{name: "string", v: String("deadbeef"), want: "s:deadbeef"},
		{name: "bool true", v: Bool(true), want: "b:1"},
		{name: "empty array", v: Array(nil), want: "a:"},
		{name: "array", v: Array([]Value{Int(1), String("x")}), want: "a:i:1\x1fs:x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Key())
		})
	}
}

func TestValueIsZero(t *testing.T) {
	assert.True(t, Value{}.IsZero())
	assert.True(t, Null().IsZero())
	assert.True(t, String("").IsZero())
	assert.False(t, String("a").IsZero())
	assert.False(t, Int(0).IsZero())
	assert.False(t, Bool(false).IsZero())
}

func TestValueText(t *testing.T) {
	assert.Equal(t, "1024", Int(1024).Text())
	assert.Equal(t, "yes", Bool(true).Text())
	assert.Equal(t, "a,b", Array([]Value{String("a"), String("b")}).Text())
	assert.Equal(t, "", Null().Text())
}

func TestStringValueWithoutHandle(t *testing.T) {
	v := Value{Kind: KindString}

	require.NotPanics(t, func() { _ = v.Key() })
	assert.Equal(t, "s:", v.Key())
	assert.Equal(t, "", v.Text())
	assert.True(t, v.IsZero())
	assert.True(t, v.Equal(String("")))

	s, ok := v.AsString()
	assert.True(t, ok)
	assert.Equal(t, "", s)

	data, err := json.Marshal(v)
	require.NoError(t, err)
	var back Value
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.IsZero())

	d := Document{"name": v}
	assert.Equal(t, "", d.GetString("name"))
}

func TestDocumentCloneIsDeep(t *testing.T) {
	orig := Document{
		"name":  String("rom"),
		"parts": Array([]Value{String("a")}),
		"sub":   Record(Document{"x": Int(1)}),
	}

	clone := orig.Clone()
	clone["parts"].A[0] = String("changed")
	clone["sub"].R["x"] = Int(2)
	clone["name"] = String("other")

	assert.Equal(t, "a", orig.GetString("parts"))
	got, _ := orig["sub"].R.GetInt("x")
	assert.Equal(t, int64(1), got)
	assert.Equal(t, "rom", orig.GetString("name"))
}

func TestDocumentSetString(t *testing.T) {
	d := Document{}
	d.SetString("crc", "deadbeef")
	assert.True(t, d.Has("crc"))

	d.SetString("crc", "")
	_, ok := d["crc"]
	assert.False(t, ok)
}

func TestDocumentKeyIsOrderIndependent(t *testing.T) {
	a := Document{"a": Int(1), "b": String("x")}
	b := Document{"b": String("x"), "a": Int(1)}
	assert.Equal(t, a.Key(), b.Key())
}

func TestValueJSONRoundTrip(t *testing.T) {
	doc := Document{
		"crc":    String("deadbeef"),
		"size":   Int(4),
		"mia":    Bool(true),
		"nested": Record(Document{"region": String("USA")}),
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var got Document
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, doc.Key(), got.Key())
	assert.Equal(t, "deadbeef", got.GetString("crc"))
}

func TestFromAny(t *testing.T) {
	d, err := DocumentFromAny(map[string]any{
		"name":  "rom",
		"size":  1024,
		"tags":  []string{"a", "b"},
		"inner": map[string]any{"k": true},
	})
	require.NoError(t, err)
	assert.Equal(t, String("rom"), d["name"])
	assert.Equal(t, Int(1024), d["size"])
	assert.Equal(t, KindArray, d["tags"].Kind)
	assert.True(t, d["inner"].R.GetBool("k"))

	_, err = FromAny(struct{}{})
	assert.Error(t, err)
}
