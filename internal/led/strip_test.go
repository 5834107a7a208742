package led

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spitest"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/devices/v3/screen1d"
)

func recordStrip(t *testing.T, buf *bytes.Buffer, n int) *Strip {
	o := nrzled.Opts{NumPixels: n, Channels: 3, Freq: 2500 * physic.KiloHertz}
	d, err := nrzled.NewSPI(spitest.NewRecordRaw(buf), &o)
	require.NoError(t, err)
	assert.Equal(t, "nrzled{recordraw}", d.String())
	return newStrip(d, n, 1, nil)
}

func TestStripWrite(t *testing.T) {
	buf := bytes.Buffer{}
	s := recordStrip(t, &buf, 4)
	assert.Equal(t, "nrzled{recordraw}", s.String())

	require.NoError(t, s.Write(make([]byte, 12)))
	assert.NotZero(t, buf.Len(), "frame reaches the SPI port")

	assert.Error(t, s.Write(make([]byte, 5)))
}

func TestStripClose(t *testing.T) {
	buf := bytes.Buffer{}
	s := recordStrip(t, &buf, 2)
	require.NoError(t, s.Close())
	assert.Error(t, s.Write(make([]byte, 6)))
	assert.NoError(t, s.Close())
}

func TestConsoleStrip(t *testing.T) {
	s := newStrip(screen1d.New(&screen1d.Opts{X: 3}), 3, 1, nil)
	assert.False(t, s.SPI)
	require.NoError(t, s.Write(make([]byte, 9)))
	require.NoError(t, s.Close())
}

func TestGammaLUT(t *testing.T) {
	id := BuildGammaLUT(1)
	for v := 0; v < 256; v++ {
		assert.Equal(t, byte(v), id[v])
	}
	g := BuildGammaLUT(2.2)
	assert.Equal(t, byte(0), g[0])
	assert.Equal(t, byte(255), g[255])
	assert.Less(t, g[128], byte(128))
	for v := 1; v < 256; v++ {
		assert.GreaterOrEqual(t, g[v], g[v-1])
	}
}
