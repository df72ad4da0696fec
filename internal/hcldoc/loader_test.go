package hcldoc

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/propgraph/internal/registry"
	mathmod "github.com/vk/propgraph/modules/math"
)

func mathCatalog() *registry.Catalog {
	cat := registry.NewCatalog()
	mathmod.Register(cat)
	return cat
}

const sampleDoc = `
component "math/const" "left" {
  property "value" {
    value = 2
  }
}

component "math/const" "right" {
  property "value" {
    value = 3
    path  = "inputs.right"
  }
}

component "math/add" "adder" {}

link {
  from = "left.out"
  to   = "adder.a"
}

link {
  from = "right.out"
  to   = "adder.b"
}
`

func TestLoad(t *testing.T) {
	ctx := context.Background()
	g, err := Load(ctx, []byte(sampleDoc), "sample.hcl", mathCatalog())
	require.NoError(t, err)
	require.Len(t, g.Components(), 3)

	left, ok := g.Find("left")
	require.True(t, ok)
	right, ok := g.Find("right")
	require.True(t, ok)
	adder, ok := g.Find("adder")
	require.True(t, ok)

	t.Run("property values are applied", func(t *testing.T) {
		assert.Equal(t, 2.0, left.Input("value").Float())
		assert.Equal(t, 3.0, right.Input("value").Float())
		assert.Equal(t, "inputs.right", right.Input("value").Path())
	})

	t.Run("links are wired", func(t *testing.T) {
		assert.True(t, adder.Input("a").HasIncoming())
		assert.True(t, adder.Input("b").HasIncoming())
	})

	t.Run("one cycle settles the arithmetic", func(t *testing.T) {
		g.Step(ctx)
		assert.Equal(t, 5.0, adder.Output("sum").Float())
	})
}

func TestLoadElementIndexedLink(t *testing.T) {
	// math components are scalar, so an indexed link must be rejected as
	// misuse rather than silently dropped.
	src := `
component "math/const" "c" {}
component "math/add" "a" {}

link {
  from      = "c.out"
  to        = "a.a"
  src_index = 1
}
`
	_, err := Load(context.Background(), []byte(src), "idx.hcl", mathCatalog())
	assert.ErrorContains(t, err, "element index")
}

func TestLoadErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("syntax error", func(t *testing.T) {
		_, err := Load(ctx, []byte("component {{{"), "bad.hcl", mathCatalog())
		assert.Error(t, err)
	})

	t.Run("unknown component type", func(t *testing.T) {
		_, err := Load(ctx, []byte(`component "math/pow" "p" {}`), "bad.hcl", mathCatalog())
		assert.ErrorContains(t, err, "unknown component type")
	})

	t.Run("unknown property", func(t *testing.T) {
		src := `
component "math/const" "c" {
  property "bogus" {
    value = 1
  }
}
`
		_, err := Load(ctx, []byte(src), "bad.hcl", mathCatalog())
		assert.ErrorContains(t, err, "no property")
	})

	t.Run("bad link address", func(t *testing.T) {
		src := `
component "math/const" "c" {}

link {
  from = "c.out"
  to   = "nowhere"
}
`
		_, err := Load(ctx, []byte(src), "bad.hcl", mathCatalog())
		assert.ErrorContains(t, err, "name.key")
	})

	t.Run("unknown link target", func(t *testing.T) {
		src := `
component "math/const" "c" {}

link {
  from = "c.out"
  to   = "ghost.a"
}
`
		_, err := Load(ctx, []byte(src), "bad.hcl", mathCatalog())
		assert.ErrorContains(t, err, "no component named")
	})
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.hcl")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))

	g, err := LoadFile(context.Background(), path, mathCatalog())
	require.NoError(t, err)
	assert.Len(t, g.Components(), 3)

	_, err = LoadFile(context.Background(), filepath.Join(dir, "missing.hcl"), mathCatalog())
	assert.ErrorContains(t, err, "reading document")
}
