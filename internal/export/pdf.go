// Package export renders saved quotes as printable documents.
package export

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/mmynk/serralheria/internal/calculator"
	"github.com/mmynk/serralheria/internal/format"
	"github.com/mmynk/serralheria/internal/models"
)

var (
	accent = &props.Color{Red: 234, Green: 88, Blue: 12}
	slate  = &props.Color{Red: 51, Green: 65, Blue: 85}
	muted  = &props.Color{Red: 120, Green: 120, Blue: 120}
	white  = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// QuotePDF renders a quote with the business header as an A4 portrait PDF.
func QuotePDF(q models.Quote, business models.BusinessProfile) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   muted,
		}).
		Build()

	m := maroto.New(cfg)

	addBusinessHeader(m, business)
	addQuoteTitle(m, q)
	addClient(m, q)
	addItemsHeader(m)
	for i, item := range q.Items {
		addItem(m, i+1, item)
	}
	addTotals(m, q)
	addSignature(m, business)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addBusinessHeader(m core.Maroto, b models.BusinessProfile) {
	company := b.CompanyName
	if company == "" {
		company = "Serralheria"
	}

	if logo, ext, ok := decodeDataURL(b.Logo); ok {
		m.AddRows(row.New(24).Add(
			col.New(3).Add(image.NewFromBytes(logo, ext, props.Rect{Center: true, Percent: 90})),
			col.New(9).Add(businessLines(company, b)...),
		))
	} else {
		m.AddRows(row.New(24).Add(col.New(12).Add(businessLines(company, b)...)))
	}

	m.AddRows(row.New(2).WithStyle(&props.Cell{BackgroundColor: accent}))
	m.AddRows(row.New(4))
}

func businessLines(company string, b models.BusinessProfile) []core.Component {
	lines := []core.Component{
		text.New(company, props.Text{Size: 15, Style: fontstyle.Bold, Color: slate}),
	}
	top := 8.0
	add := func(s string) {
		if s == "" {
			return
		}
		lines = append(lines, text.New(s, props.Text{Top: top, Size: 8, Color: muted}))
		top += 4
	}
	add(b.OwnerName)
	add(joinNonEmpty(" · ", b.Phone, b.Email))
	add(b.Address)
	return lines
}

func addQuoteTitle(m core.Maroto, q models.Quote) {
	m.AddRows(row.New(10).Add(
		col.New(6).Add(text.New("ORÇAMENTO", props.Text{Size: 13, Style: fontstyle.Bold, Color: accent})),
		col.New(6).Add(
			text.New(fmt.Sprintf("Nº %s", shortID(q.ID)), props.Text{Size: 9, Align: align.Right, Color: slate}),
			text.New(fmt.Sprintf("Data: %s", q.Date), props.Text{Top: 4, Size: 9, Align: align.Right, Color: slate}),
		),
	))
}

func addClient(m core.Maroto, q models.Quote) {
	label := props.Text{Size: 7, Style: fontstyle.Bold, Color: muted}
	value := props.Text{Top: 3.5, Size: 9}

	clientCol := col.New(6).Add(text.New("CLIENTE", label), text.New(q.ClientName, value))
	phoneCol := col.New(6).Add(text.New("TELEFONE", label), text.New(q.ClientPhone, value))
	m.AddRows(row.New(10).Add(clientCol, phoneCol))

	if q.ClientAddress != "" {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("ENDEREÇO DA OBRA", label),
			text.New(q.ClientAddress, value),
		)))
	}
	m.AddRows(row.New(4))
}

func addItemsHeader(m core.Maroto) {
	header := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center, Color: white}
	headerLeft := header
	headerLeft.Align = align.Left
	cell := &props.Cell{BackgroundColor: slate}

	m.AddRows(row.New(8).Add(
		col.New(1).Add(text.New("#", header)).WithStyle(cell),
		col.New(4).Add(text.New("Item", headerLeft)).WithStyle(cell),
		col.New(2).Add(text.New("Material", header)).WithStyle(cell),
		col.New(2).Add(text.New("Medidas (L x A)", header)).WithStyle(cell),
		col.New(1).Add(text.New("Qtd", header)).WithStyle(cell),
		col.New(2).Add(text.New("Total", header)).WithStyle(cell),
	))
}

func addItem(m core.Maroto, index int, item models.QuoteItem) {
	base := props.Text{Size: 8, Align: align.Center}

	name := item.Name
	if name == "" {
		name = "Item sem nome"
	}
	unit := fmt.Sprintf("%s / un.", format.Currency(calculator.Normalize(item.PricePerUnit)))

	height := 8.0
	details := []core.Component{text.New(name, props.Text{Size: 8, Style: fontstyle.Bold})}
	if item.Description != "" {
		details = append(details, text.New(item.Description, props.Text{Top: 4, Size: 7, Color: muted}))
		height = 12
	}

	m.AddRows(row.New(height).Add(
		col.New(1).Add(text.New(fmt.Sprintf("%d", index), base)),
		col.New(4).Add(details...),
		col.New(2).Add(text.New(string(item.Material), base)),
		col.New(2).Add(text.New(measures(item), base)),
		col.New(1).Add(text.New(format.Quantity(item.Quantity), base)),
		col.New(2).Add(
			text.New(format.Currency(calculator.LineTotal(item)), props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}),
			text.New(unit, props.Text{Top: 4, Size: 6, Align: align.Right, Color: muted}),
		),
	))

	if photo, ext, ok := decodeDataURL(item.Image); ok {
		m.AddRows(row.New(30).Add(
			col.New(1),
			col.New(4).Add(image.NewFromBytes(photo, ext, props.Rect{Percent: 95})),
		))
	}
	m.AddRows(row.New(1).WithStyle(&props.Cell{BackgroundColor: &props.Color{Red: 230, Green: 230, Blue: 230}}))
}

func addTotals(m core.Maroto, q models.Quote) {
	m.AddRows(row.New(6))

	label := props.Text{Size: 9, Align: align.Right, Color: slate}
	value := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}

	m.AddRows(row.New(7).Add(
		col.New(9).Add(text.New("Subtotal dos itens", label)),
		col.New(3).Add(text.New(format.Currency(calculator.Subtotal(q.Items)), value)),
	))
	m.AddRows(row.New(7).Add(
		col.New(9).Add(text.New("Custo adicional (frete / mão de obra)", label)),
		col.New(3).Add(text.New(format.Currency(calculator.Normalize(q.LaborCost)), value)),
	))
	if discount := calculator.Normalize(q.Discount); discount != 0 {
		m.AddRows(row.New(7).Add(
			col.New(9).Add(text.New("Desconto", label)),
			col.New(3).Add(text.New("-"+format.Currency(discount), value)),
		))
	}

	totalCell := &props.Cell{BackgroundColor: slate}
	m.AddRows(row.New(10).Add(
		col.New(9).Add(text.New("TOTAL", props.Text{Top: 2, Size: 11, Style: fontstyle.Bold, Align: align.Right, Color: accent})).WithStyle(totalCell),
		col.New(3).Add(text.New(format.Currency(q.Total), props.Text{Top: 2, Size: 11, Style: fontstyle.Bold, Align: align.Right, Color: white})).WithStyle(totalCell),
	))
}

func addSignature(m core.Maroto, b models.BusinessProfile) {
	m.AddRows(row.New(24))
	signer := b.OwnerName
	if signer == "" {
		signer = b.CompanyName
	}
	m.AddRows(row.New(10).Add(
		col.New(3),
		col.New(6).Add(
			text.New("_____________________________________", props.Text{Size: 9, Align: align.Center, Color: muted}),
			text.New(signer, props.Text{Top: 5, Size: 8, Align: align.Center}),
		),
		col.New(3),
	))
}

// measures renders "L x A" for the item table, or "-" when no measurement is set.
func measures(item models.QuoteItem) string {
	if !item.Width.IsSet() && !item.Height.IsSet() {
		return "-"
	}
	return format.Measure(item.Width) + " x " + format.Measure(item.Height)
}

func shortID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
