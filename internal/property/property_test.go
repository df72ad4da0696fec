package property

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/propgraph/internal/value"
)

// stubOwner records the callbacks a property makes into its owning entity.
type stubOwner struct {
	id          string
	changed     bool
	sortRequest int
}

func (o *stubOwner) ID() string   { return o.id }
func (o *stubOwner) MarkChanged() { o.changed = true }
func (o *stubOwner) RequestSort() { o.sortRequest++ }

// twoNodes builds an output property on one owner and an input property on
// another, the minimal topology for link tests.
func twoNodes(t *testing.T, srcKind, dstKind value.Kind) (*Property, *Property, *stubOwner, *stubOwner) {
	t.Helper()
	srcOwner := &stubOwner{id: "a"}
	dstOwner := &stubOwner{id: "b"}
	src := NewSet(RoleOutput, srcOwner).Add("out", New(srcKind, 1, nil))
	dst := NewSet(RoleInput, dstOwner).Add("in", New(dstKind, 1, nil))
	return src, dst, srcOwner, dstOwner
}

func TestNewProperty(t *testing.T) {
	t.Run("null values per kind", func(t *testing.T) {
		assert.Equal(t, 0.0, New(value.Number, 1, nil).Value())
		assert.Equal(t, false, New(value.Bool, 1, nil).Value())
		assert.Equal(t, "", New(value.String, 1, nil).Value())
		assert.Nil(t, New(value.Object, 1, nil).Value())
	})

	t.Run("preset becomes initial value", func(t *testing.T) {
		p := New(value.Number, 1, &value.Schema{Preset: 4.2})
		assert.Equal(t, 4.2, p.Value())
		assert.True(t, p.IsDefault())
	})

	t.Run("array preset is cloned not shared", func(t *testing.T) {
		preset := []float64{1, 2, 3}
		a := New(value.Number, 3, &value.Schema{Preset: preset})
		b := New(value.Number, 3, &value.Schema{Preset: preset})
		a.Value().([]float64)[0] = 99
		assert.Equal(t, []float64{1, 2, 3}, b.Value())
		assert.Equal(t, []float64{1, 2, 3}, preset)
	})

	t.Run("multi starts with zero channels", func(t *testing.T) {
		p := New(value.Number, 1, &value.Schema{Multi: true})
		assert.Equal(t, []any{}, p.Value())
	})
}

func TestSetValue(t *testing.T) {
	t.Run("marks property changed", func(t *testing.T) {
		p := New(value.Number, 1, nil)
		require.False(t, p.Changed())
		p.SetValue(1.0)
		assert.True(t, p.Changed())
		assert.Equal(t, 1.0, p.Value())
	})

	t.Run("input write marks owner changed", func(t *testing.T) {
		owner := &stubOwner{id: "n"}
		p := NewSet(RoleInput, owner).Add("in", New(value.Number, 1, nil))
		p.SetValue(1.0)
		assert.True(t, owner.changed)
	})

	t.Run("output write does not mark owner changed", func(t *testing.T) {
		owner := &stubOwner{id: "n"}
		p := NewSet(RoleOutput, owner).Add("out", New(value.Number, 1, nil))
		p.SetValue(1.0)
		assert.False(t, owner.changed)
	})

	t.Run("silent write skips changed flags", func(t *testing.T) {
		owner := &stubOwner{id: "n"}
		p := NewSet(RoleInput, owner).Add("in", New(value.Number, 1, nil))
		p.SetValueSilent(1.0)
		assert.False(t, p.Changed())
		assert.False(t, owner.changed)
		assert.Equal(t, 1.0, p.Value())
	})

	t.Run("copy write does not alias caller slice", func(t *testing.T) {
		p := New(value.Number, 3, nil)
		src := []float64{1, 2, 3}
		p.CopyValue(src)
		src[0] = 99
		assert.Equal(t, []float64{1, 2, 3}, p.Value())
	})
}

func TestReset(t *testing.T) {
	p := New(value.Number, 1, &value.Schema{Preset: 7.0})
	p.SetValue(3.0)
	p.ClearChanged()
	p.Reset()
	assert.Equal(t, 7.0, p.Value())
	assert.True(t, p.Changed())
	assert.True(t, p.IsDefault())
}

func TestSetOptions(t *testing.T) {
	shared := &value.Schema{}
	p := New(value.Number, 1, shared)
	p.SetOptions([]value.Option{{Label: "low", Value: 0}, {Label: "high", Value: 1}})
	assert.Len(t, p.Schema().Options, 2)
	assert.Empty(t, shared.Options, "shared schema must not be mutated")
	assert.True(t, p.Changed())
}

func TestSetMultiChannelCount(t *testing.T) {
	t.Run("grows with preset clones", func(t *testing.T) {
		p := New(value.Number, 2, &value.Schema{Multi: true, Preset: []float64{1, 1}})
		p.SetMultiChannelCount(3)
		chans := p.Value().([]any)
		require.Len(t, chans, 3)
		assert.Equal(t, []float64{1, 1}, chans[0])
		chans[0].([]float64)[0] = 99
		assert.Equal(t, []float64{1, 1}, chans[1], "channels must not share storage")
		assert.True(t, p.Changed())
	})

	t.Run("shrinks keeping leading channels", func(t *testing.T) {
		p := New(value.Number, 1, &value.Schema{Multi: true})
		p.SetMultiChannelCount(4)
		p.Value().([]any)[1] = 5.0
		p.SetMultiChannelCount(2)
		chans := p.Value().([]any)
		require.Len(t, chans, 2)
		assert.Equal(t, 5.0, chans[1])
	})

	t.Run("panics on non-multi property", func(t *testing.T) {
		p := New(value.Number, 1, nil)
		assert.Panics(t, func() { p.SetMultiChannelCount(2) })
	})
}
