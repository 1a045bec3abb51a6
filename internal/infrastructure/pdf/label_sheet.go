// Package pdf genera las hojas de etiquetas QR de los items.
//
// Layout de la página A4 (dos etiquetas por fila):
//
//	┌──────────────────────────────────────────────┐
//	│  TÍTULO + fecha                               │
//	│  ──────────────────────────────────────────  │
//	│  ┌──────────────┐        ┌──────────────┐     │
//	│  │     QR       │        │     QR       │     │
//	│  │ Nombre       │        │ Nombre       │     │
//	│  │ BRG-XXXXXXXX │        │ BRG-XXXXXXXX │     │
//	│  └──────────────┘        └──────────────┘     │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/inventaris-api/internal/application/usecase"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// LabelsPerRow etiquetas por fila de la hoja.
const LabelsPerRow = 2

// Label es una etiqueta: el QR codifica Code.
type Label = usecase.Label

// LabelSheetGenerator implementa usecase.LabelSheetGenerator usando Maroto v2.
type LabelSheetGenerator struct {
	now func() time.Time
}

var _ usecase.LabelSheetGenerator = (*LabelSheetGenerator)(nil)

// NewLabelSheetGenerator construye el generador.
func NewLabelSheetGenerator() *LabelSheetGenerator {
	return &LabelSheetGenerator{now: time.Now}
}

// Generate arma la hoja con las etiquetas en el orden recibido y devuelve los bytes del PDF.
func (g *LabelSheetGenerator) Generate(_ context.Context, title string, labels []Label) ([]byte, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("pdf: no hay etiquetas para generar")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(titleRow(title, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(row.New(4))
	m.AddRows(labelRows(labels)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func titleRow(title string, at time.Time) core.Row {
	return row.New(12).Add(
		col.New(8).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
		})),
		col.New(4).Add(text.New(at.Format("02/01/2006 15:04"), props.Text{
			Size: 8, Align: align.Right, Color: colorGray, Top: 4,
		})),
	)
}

// labelRows agrupa las etiquetas de LabelsPerRow en LabelsPerRow; la última fila puede quedar incompleta.
func labelRows(labels []Label) []core.Row {
	width := 12 / LabelsPerRow
	var rows []core.Row
	for i := 0; i < len(labels); i += LabelsPerRow {
		qrRow := row.New(55)
		textRow := row.New(14)
		for j := i; j < i+LabelsPerRow; j++ {
			if j >= len(labels) {
				qrRow.Add(col.New(width))
				textRow.Add(col.New(width))
				continue
			}
			l := labels[j]
			qrRow.Add(col.New(width).Add(code.NewQr(l.Code, props.Rect{Percent: 90, Center: true})))
			textRow.Add(col.New(width).Add(
				text.New(l.Name, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Center, Top: 1}),
				text.New(l.Code, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 6}),
			))
		}
		rows = append(rows, qrRow, textRow, row.New(6))
	}
	return rows
}
