package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/artpar/scenarist/internal/bodypath"
	"github.com/artpar/scenarist/internal/document"
	"github.com/artpar/scenarist/internal/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `
endpoints:
  api-specs:
    fields:
      - path: metaData.owner
        type: string
        required: true
      - path: metaData.version
        type: integer
      - path: tags[0]
      - path: status
        type: enum
        enum: [draft, live]
    templates:
      minimal:
        metaData:
          owner: alice
          labels: [a, b]
  users:
    fields:
      - path: email
        type: string
        required: true
`

func TestParse(t *testing.T) {
	t.Run("loads endpoints and fields", func(t *testing.T) {
		c, err := Parse([]byte(sampleCatalog))
		require.NoError(t, err)

		assert.Equal(t, []string{"api-specs", "users"}, c.Endpoints())

		fields, err := c.Fields("api-specs")
		require.NoError(t, err)
		require.Len(t, fields, 4)
		assert.Equal(t, field.Descriptor{Path: "metaData.owner", Type: field.TypeString, Required: true}, fields[0])
		assert.Equal(t, field.TypeInteger, fields[1].Type)
		assert.Equal(t, field.TypeString, fields[2].Type, "type defaults to string")
		assert.Equal(t, []string{"draft", "live"}, fields[3].Enum)
	})

	t.Run("accepts JSON", func(t *testing.T) {
		c, err := Parse([]byte(`{"endpoints":{"orders":{"fields":[{"path":"id","type":"number"}]}}}`))
		require.NoError(t, err)
		d, ok := c.Lookup("orders", "id")
		require.True(t, ok)
		assert.Equal(t, field.TypeNumber, d.Type)
	})

	t.Run("rejects malformed field paths", func(t *testing.T) {
		_, err := Parse([]byte("endpoints:\n  x:\n    fields:\n      - path: a..b\n"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidCatalog)
		assert.Contains(t, err.Error(), "a..b")
	})

	t.Run("rejects unknown types", func(t *testing.T) {
		_, err := Parse([]byte("endpoints:\n  x:\n    fields:\n      - path: a\n        type: date\n"))
		assert.ErrorIs(t, err, ErrInvalidCatalog)
	})

	t.Run("rejects duplicate fields", func(t *testing.T) {
		_, err := Parse([]byte("endpoints:\n  x:\n    fields:\n      - path: a\n      - path: a\n"))
		assert.ErrorIs(t, err, ErrInvalidCatalog)
	})

	t.Run("rejects non object templates", func(t *testing.T) {
		_, err := Parse([]byte("endpoints:\n  x:\n    templates:\n      t: [1, 2]\n"))
		assert.ErrorIs(t, err, ErrInvalidCatalog)
	})

	t.Run("rejects invalid yaml", func(t *testing.T) {
		_, err := Parse([]byte("endpoints: [unclosed"))
		assert.ErrorIs(t, err, ErrInvalidCatalog)
	})
}

func TestLoad(t *testing.T) {
	t.Run("reads from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0644))

		c, err := Load(path)
		require.NoError(t, err)
		assert.Len(t, c.Endpoints(), 2)
	})

	t.Run("reports missing files", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestCatalog_Lookup(t *testing.T) {
	c, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	d, ok := c.Lookup("api-specs", "metaData.version")
	require.True(t, ok)
	assert.Equal(t, field.TypeInteger, d.Type)

	_, ok = c.Lookup("api-specs", "nope")
	assert.False(t, ok)
	_, ok = c.Lookup("unknown", "metaData.version")
	assert.False(t, ok)

	_, err = c.Fields("unknown")
	assert.ErrorIs(t, err, ErrUnknownEndpoint)
}

func TestCatalog_Template(t *testing.T) {
	c, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	t.Run("lists template names", func(t *testing.T) {
		assert.Equal(t, []string{"minimal"}, c.TemplateNames("api-specs"))
		assert.Empty(t, c.TemplateNames("users"))
		assert.Nil(t, c.TemplateNames("unknown"))
	})

	t.Run("returns independent copies", func(t *testing.T) {
		first, err := c.Template("api-specs", "minimal")
		require.NoError(t, err)
		document.Set(first, bodypath.MustParse("metaData.owner"), document.String("mallory"))
		document.Set(first, bodypath.MustParse("metaData.labels[0]"), document.String("changed"))

		second, err := c.Template("api-specs", "minimal")
		require.NoError(t, err)
		owner, _ := document.Get(second, bodypath.MustParse("metaData.owner"))
		assert.Equal(t, document.String("alice"), owner)
		label, _ := document.Get(second, bodypath.MustParse("metaData.labels[0]"))
		assert.Equal(t, document.String("a"), label)
	})

	t.Run("reports missing templates", func(t *testing.T) {
		_, err := c.Template("api-specs", "nope")
		assert.ErrorIs(t, err, ErrTemplateNotFound)

		_, err = c.Template("unknown", "minimal")
		assert.ErrorIs(t, err, ErrUnknownEndpoint)
	})
}

func TestClassify(t *testing.T) {
	cases := map[string]string{
		"":                                       DefaultEndpoint,
		"http://localhost:8099/api/users/42":     "users",
		"http://localhost:8099/api/orders?x=1":   "orders",
		"https://example.com/api-specs/{id}":     "api-specs",
		"https://example.com/widgets#frag":       "widgets",
		"/api/payments":                          "payments",
		"https://example.com":                    DefaultEndpoint,
		"https://example.com/":                   DefaultEndpoint,
		"https://example.com/v1/api/":            "v1",
		"https://example.com/service/api/things": "things",
	}
	for url, expected := range cases {
		assert.Equal(t, expected, Classify(url), url)
	}
}
