package editor

import (
	"testing"

	"github.com/artpar/scenarist/internal/bodypath"
	"github.com/artpar/scenarist/internal/document"
	"github.com/artpar/scenarist/internal/field"
	"github.com/artpar/scenarist/internal/interpolate"
	"github.com/artpar/scenarist/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFields = []field.Descriptor{
	{Path: "metaData.owner", Type: field.TypeString, Required: true},
	{Path: "metaData.version", Type: field.TypeInteger, Required: true},
	{Path: "price", Type: field.TypeNumber},
	{Path: "active", Type: field.TypeBoolean},
	{Path: "tags", Type: field.TypeArray},
	{Path: "status", Type: field.TypeEnum, Enum: []string{"draft", "live"}},
}

func mustObject(t *testing.T, x map[string]any) *document.Object {
	t.Helper()
	v, err := document.FromAny(x)
	require.NoError(t, err)
	return v.(*document.Object)
}

func TestNew(t *testing.T) {
	t.Run("creates editor with defaults", func(t *testing.T) {
		e := New()
		assert.Equal(t, DefaultConfig(), e.Config())
		assert.Equal(t, 0, e.Document().Len())
		assert.Equal(t, 0, e.Selection().Len())
		assert.Empty(t, e.Fields())
	})

	t.Run("derives selection from the starting document", func(t *testing.T) {
		doc := mustObject(t, map[string]any{"a": map[string]any{"b": 1}})
		e := New(WithDocument(doc))
		assert.Same(t, doc, e.Document())
		assert.Equal(t, []string{"a", "a.b"}, e.Selection().Paths())
	})

	t.Run("applies options", func(t *testing.T) {
		cfg := Config{Endpoint: "users", StrictReferences: true}
		ns := interpolate.NewNamespace("token")
		e := New(WithConfig(cfg), WithFields(testFields), WithNamespace(ns))

		assert.Equal(t, cfg, e.Config())
		assert.Len(t, e.Fields(), len(testFields))
		assert.Same(t, ns, e.Namespace())

		d, ok := e.Descriptor("price")
		require.True(t, ok)
		assert.Equal(t, field.TypeNumber, d.Type)
	})
}

func TestEditor_Toggle(t *testing.T) {
	t.Run("selects with the field default", func(t *testing.T) {
		e := New(WithFields(testFields))

		selected, err := e.Toggle("metaData.version")
		require.NoError(t, err)
		assert.True(t, selected)

		v, ok, err := e.Get("metaData.version")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, document.Number(0), v)
		assert.True(t, e.Selection().Has("metaData.version"))
	})

	t.Run("selects unknown paths with an empty string", func(t *testing.T) {
		e := New()
		_, err := e.Toggle("custom.path")
		require.NoError(t, err)
		v, _, _ := e.Get("custom.path")
		assert.Equal(t, document.String(""), v)
	})

	t.Run("deselects and removes", func(t *testing.T) {
		e := New(WithDocument(mustObject(t, map[string]any{"price": 3})))
		selected, err := e.Toggle("price")
		require.NoError(t, err)
		assert.False(t, selected)

		_, ok, _ := e.Get("price")
		assert.False(t, ok)
		assert.False(t, e.Selection().Has("price"))
	})

	t.Run("treats present array elements as selected", func(t *testing.T) {
		e := New(WithDocument(mustObject(t, map[string]any{
			"items": []any{map[string]any{"name": "first"}, map[string]any{"name": "second"}},
		})))

		selected, err := e.Toggle("items[0].name")
		require.NoError(t, err)
		assert.False(t, selected)
		_, ok, _ := e.Get("items[0].name")
		assert.False(t, ok)

		v, _, _ := e.Get("items[1].name")
		assert.Equal(t, document.String("second"), v)
	})

	t.Run("toggles an array element on and off", func(t *testing.T) {
		e := New()
		selected, err := e.Toggle("tags[0]")
		require.NoError(t, err)
		assert.True(t, selected)

		again := New(WithDocument(e.Document()))
		selected, err = again.Toggle("tags[0]")
		require.NoError(t, err)
		assert.False(t, selected)

		v, _, _ := again.Get("tags")
		assert.Equal(t, 0, v.(*document.Array).Len())
	})

	t.Run("rejects malformed paths", func(t *testing.T) {
		e := New()
		_, err := e.Toggle("a..b")
		assert.Error(t, err)
		assert.Equal(t, 0, e.Document().Len())
	})
}

func TestEditor_SetValue(t *testing.T) {
	t.Run("coerces by descriptor", func(t *testing.T) {
		e := New(WithFields(testFields))
		require.NoError(t, e.SetValue("price", document.String("12.5")))
		require.NoError(t, e.SetValue("active", document.String("TRUE")))
		require.NoError(t, e.SetValue("metaData.version", document.String("abc")))

		v, _, _ := e.Get("price")
		assert.Equal(t, document.Number(12.5), v)
		v, _, _ = e.Get("active")
		assert.Equal(t, document.Bool(true), v)
		v, _, _ = e.Get("metaData.version")
		assert.Equal(t, document.Number(0), v)
	})

	t.Run("stores unknown paths as given and selects them", func(t *testing.T) {
		e := New()
		require.NoError(t, e.SetValue("a.b[1]", document.String("x")))

		expected := mustObject(t, map[string]any{"a": map[string]any{"b": []any{map[string]any{}, "x"}}})
		assert.True(t, document.Equal(expected, e.Document()))
		assert.True(t, e.Selection().Has("a.b[1]"))
		assert.True(t, e.Selection().Has("a"))
		assert.True(t, e.Selection().Has("a.b"))
	})

	t.Run("rejects malformed paths", func(t *testing.T) {
		e := New()
		assert.Error(t, e.SetValue("a[", document.String("x")))
		assert.Equal(t, 0, e.Document().Len())
	})
}

func TestEditor_Check(t *testing.T) {
	e := New(WithFields(testFields))

	verr := e.Check("price", document.String("abc"))
	require.NotNil(t, verr)
	assert.Equal(t, field.CodeNotNumber, verr.Code)

	assert.Nil(t, e.Check("price", document.String("1.5")))
	assert.Nil(t, e.Check("unknown", document.String("abc")))
}

func TestEditor_SetReference(t *testing.T) {
	t.Run("stores the literal and selects the path", func(t *testing.T) {
		e := New()
		require.NoError(t, e.SetReference("userId", "createUser_response"))

		v, _, _ := e.Get("userId")
		assert.Equal(t, document.String("${createUser_response}"), v)
		assert.True(t, e.Selection().Has("userId"))
	})

	t.Run("strict mode requires a known root name", func(t *testing.T) {
		e := New(
			WithConfig(Config{StrictReferences: true}),
			WithNamespace(interpolate.NewNamespace("user")),
		)
		require.NoError(t, e.SetReference("owner", "user.id"))

		err := e.SetReference("order", "order.id")
		assert.ErrorIs(t, err, ErrUnknownReference)
		_, ok, _ := e.Get("order")
		assert.False(t, ok)
	})
}

func TestEditor_Expand(t *testing.T) {
	e := New(WithDocument(mustObject(t, map[string]any{"tags": []any{"x", "y"}})))

	p, err := e.Expand("tags", 1)
	require.NoError(t, err)
	assert.Equal(t, "tags[1]", p)
	assert.True(t, e.Selection().Has("tags[1]"))
}

func TestEditor_Import(t *testing.T) {
	t.Run("replaces document and selection", func(t *testing.T) {
		e := New()
		_, err := e.Toggle("old")
		require.NoError(t, err)

		require.NoError(t, e.Import(`{"a":{"b":1},"c":[1]}`))
		assert.Equal(t, []string{"a", "a.b", "c"}, e.Selection().Paths())
		_, ok, _ := e.Get("old")
		assert.False(t, ok)
	})

	t.Run("leaves the session unchanged on error", func(t *testing.T) {
		e := New(WithDocument(mustObject(t, map[string]any{"a": 1})))
		before := document.CloneObject(e.Document())

		err := e.Import(`{"a":`)
		assert.ErrorIs(t, err, transfer.ErrInvalidJSON)
		assert.True(t, document.Equal(before, e.Document()))
		assert.Equal(t, []string{"a"}, e.Selection().Paths())
	})
}

func TestEditor_Export(t *testing.T) {
	e := New()
	require.NoError(t, e.SetValue("b", document.Number(1)))
	require.NoError(t, e.SetValue("a", document.String("x")))

	other := New()
	require.NoError(t, other.Import(e.Export()))
	assert.True(t, document.Equal(e.Document(), other.Document()))
}

func TestEditor_LoadTemplate(t *testing.T) {
	tmpl := mustObject(t, map[string]any{"meta": map[string]any{"labels": []any{"a"}}})
	e := New()
	e.LoadTemplate(tmpl)

	assert.Equal(t, []string{"meta", "meta.labels"}, e.Selection().Paths())
	require.NoError(t, e.SetValue("meta.labels[0]", document.String("changed")))

	original, _ := document.Get(tmpl, mustPath("meta.labels[0]"))
	assert.Equal(t, document.String("a"), original)
}

func TestEditor_ApplyRequired(t *testing.T) {
	e := New(
		WithFields(testFields),
		WithDocument(mustObject(t, map[string]any{"metaData": map[string]any{"owner": "alice"}})),
	)

	filled := e.ApplyRequired()
	assert.Equal(t, []string{"metaData.version"}, filled)

	v, _, _ := e.Get("metaData.owner")
	assert.Equal(t, document.String("alice"), v)
	v, _, _ = e.Get("metaData.version")
	assert.Equal(t, document.Number(0), v)
	assert.True(t, e.Selection().Has("metaData.version"))

	assert.Empty(t, e.ApplyRequired())
}

func TestEditor_Validate(t *testing.T) {
	e := New(
		WithFields(testFields),
		WithDocument(mustObject(t, map[string]any{
			"metaData": map[string]any{"owner": "", "version": 1.5},
			"status":   "archived",
			"price":    "12",
		})),
	)

	problems := e.Validate()
	codes := make(map[string]string)
	for _, p := range problems {
		codes[p.Path] = p.Code
	}
	assert.Equal(t, map[string]string{
		"metaData.owner":   field.CodeRequired,
		"metaData.version": field.CodeNotInteger,
		"status":           field.CodeNotInEnum,
	}, codes)
}

func TestEditor_UnresolvedReferences(t *testing.T) {
	e := New(
		WithNamespace(interpolate.NewNamespace("user")),
		WithDocument(mustObject(t, map[string]any{
			"owner": "${user.id}",
			"order": "${order}",
		})),
	)

	assert.Equal(t, []interpolate.Binding{{Path: "order", Name: "order"}}, e.UnresolvedReferences())
}

func mustPath(s string) bodypath.Path {
	return bodypath.MustParse(s)
}

func TestEditor_Randomize(t *testing.T) {
	e := New(WithFields(testFields))

	filled := e.Randomize()
	assert.Len(t, filled, len(testFields))
	for _, d := range testFields {
		assert.True(t, e.Selection().Has(d.Path), d.Path)
	}

	v, _, _ := e.Get("status")
	assert.Contains(t, []document.Value{document.String("draft"), document.String("live")}, v)
	v, _, _ = e.Get("metaData.version")
	assert.Equal(t, document.KindNumber, v.Kind())
	assert.Empty(t, e.Validate())
}
