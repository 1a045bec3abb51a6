package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_DevuelvePDF(t *testing.T) {
	g := NewLabelSheetGenerator()
	out, err := g.Generate(context.Background(), "QR Barang", []Label{
		{Code: "BRG-00000001", Name: "Proyektor"},
		{Code: "BRG-00000002", Name: "Kabel HDMI"},
		{Code: "BRG-00000003", Name: "Laptop"},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerate_SinEtiquetas_Error(t *testing.T) {
	_, err := NewLabelSheetGenerator().Generate(context.Background(), "x", nil)
	assert.Error(t, err)
}

func TestLabelRows_DosPorFila(t *testing.T) {
	rows := labelRows([]Label{{Code: "A"}, {Code: "B"}, {Code: "C"}})
	// Por cada grupo de dos: fila QR, fila texto y separador.
	assert.Len(t, rows, 6)
}
