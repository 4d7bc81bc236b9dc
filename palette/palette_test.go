package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/submersibletoaster/mosaic/colorspace"
)

func TestTable(t *testing.T) {
	all := All()
	wantNames := []string{"white", "yellow", "orange", "red", "green", "blue"}
	wantHex := []string{"#FFFFFF", "#FFD500", "#FF5800", "#C41E3A", "#009E60", "#0051BA"}

	seen := map[string]bool{}
	for i, c := range all {
		assert.Equal(t, wantNames[i], c.Name)
		assert.Equal(t, wantHex[i], c.Hex)
		assert.False(t, seen[c.Name], "duplicate %s", c.Name)
		seen[c.Name] = true

		lab, err := colorspace.ToLab(float64(c.RGB.R), float64(c.RGB.G), float64(c.RGB.B))
		require.NoError(t, err)
		assert.Equal(t, lab, c.Lab)
	}
	assert.Len(t, seen, Size)
}

func TestAllReturnsCopy(t *testing.T) {
	a := All()
	a[0].Name = "mutated"
	assert.Equal(t, "white", All()[0].Name)
	assert.Equal(t, "white", Default().Name)
}

func TestLookups(t *testing.T) {
	c, ok := ByHex("#c41e3a")
	require.True(t, ok)
	assert.Equal(t, "red", c.Name)

	c, ok = ByName("blue")
	require.True(t, ok)
	assert.Equal(t, "#0051BA", c.Hex)

	_, ok = ByName("black")
	assert.False(t, ok)
	assert.False(t, Contains("#000000"))
	assert.True(t, Contains("#FFd500"))
}

func TestTitleFor(t *testing.T) {
	assert.Equal(t, "Orange", TitleFor("#ff5800", ""))
	assert.Equal(t, "purple", TitleFor("#800080", "purple"))
	assert.Equal(t, "Unknown", TitleFor("#800080", ""))
}

func TestPalette(t *testing.T) {
	p := Palette()
	require.Len(t, p, Size)
	r, g, b, _ := p[3].RGBA()
	assert.Equal(t, []uint32{196, 30, 58}, []uint32{r >> 8, g >> 8, b >> 8})
}
