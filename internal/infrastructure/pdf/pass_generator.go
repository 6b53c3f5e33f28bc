// Package pdf genera el pase de visitante imprimible.
//
// Layout de la página A6:
//
//	┌───────────────────────────────┐
//	│  PASE DE VISITANTE   #id      │
//	│  ───────────────────────────  │
//	│  Visitante / Cargo            │
//	│  Anfitrión / Cargo            │
//	│  Fecha · Horario · Duración   │
//	│  Propósito                    │
//	│  ───────────────────────────  │
//	│  QR (código del pase)         │
//	│  Estado + leyenda             │
//	└───────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/visit-pipeline/internal/domain/entity"
	"github.com/jhoicas/visit-pipeline/internal/domain/visit"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Dimensiones A6 en milímetros.
const (
	a6Width  = 105.0
	a6Height = 148.0
)

// ── Generator ─────────────────────────────────────────────────────────────────

// PassGenerator genera el pase de visitante con Maroto v2.
type PassGenerator struct {
	issuer string
}

// NewPassGenerator construye el generador; issuer aparece como autor del documento.
func NewPassGenerator(issuer string) *PassGenerator { return &PassGenerator{issuer: issuer} }

// GeneratePass genera el PDF del pase y devuelve sus bytes.
func (g *PassGenerator) GeneratePass(_ context.Context, d *entity.VisitDetails) ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("pdf: visita nula")
	}
	cfg := config.NewBuilder().
		WithDimensions(a6Width, a6Height).
		WithLeftMargin(6).WithRightMargin(6).
		WithTopMargin(6).WithBottomMargin(6).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(fmt.Sprintf("Pase de visitante #%d", d.ID), true).
		WithAuthor(nonEmpty(g.issuer, "Visit Pipeline"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(d))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(personRow("VISITANTE", d.VisitorName, d.VisitorPosition))
	if d.HostID != nil {
		m.AddRows(personRow("ANFITRIÓN", d.HostName, d.HostPosition))
	}
	m.AddRows(scheduleRow(d))
	m.AddRows(purposeRow(d))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(qrRow(d))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// PassCode contenido del QR: identifica la visita y su ventana horaria.
func PassCode(d *entity.VisitDetails) string {
	return fmt.Sprintf("VISIT:%d:%s:%s-%s", d.ID, d.VisitDate.Format("2006-01-02"), d.StartTime, d.EndTime)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(d *entity.VisitDetails) core.Row {
	return row.New(12).Add(
		col.New(8).Add(
			text.New("PASE DE VISITANTE", props.Text{
				Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("#%d", d.ID), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
		),
	)
}

func personRow(label, name, position string) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 6.5, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(name, "—"), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 4,
			}),
			text.New(nonEmpty(position, "—"), props.Text{
				Size: 7, Top: 8.5, Color: colorGray,
			}),
		),
	)
}

func scheduleRow(d *entity.VisitDetails) core.Row {
	item := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 6.5, Color: colorPrimary, Top: 1}),
			text.New(value, props.Text{Size: 8, Top: 4.5}),
		)
	}
	return row.New(10).Add(
		item("FECHA", d.VisitDate.Format("02/01/2006")),
		item("HORARIO", d.StartTime+" - "+d.EndTime),
		item("DURACIÓN", nonEmpty(visit.Duration(d.StartTime, d.EndTime), "—")),
	)
}

func purposeRow(d *entity.VisitDetails) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("PROPÓSITO", props.Text{Style: fontstyle.Bold, Size: 6.5, Color: colorPrimary, Top: 1}),
			text.New(d.Purpose, props.Text{Size: 8, Top: 4.5}),
		),
	)
}

func qrRow(d *entity.VisitDetails) core.Row {
	return row.New(40).Add(
		col.New(6).Add(code.NewQr(PassCode(d), props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(6).Add(
			text.New("Estado: "+visit.StatusLabel(d.Status), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 6, Left: 2, Color: colorPrimary,
			}),
			text.New("Presente este pase en\nla recepción.", props.Text{
				Size: 7, Top: 14, Left: 2, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
