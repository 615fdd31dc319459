// Package pdf renders printable artifacts.
package pdf

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// TicketReceipt is the data printed on a ticket PDF.
type TicketReceipt struct {
	EventName   string
	EventDate   time.Time
	Location    string
	HolderName  string
	QRCode      string
	Price       int64
	Currency    string
	PurchasedAt time.Time
}

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderTicket builds a one-page ticket with the entry QR code.
func (r *Renderer) RenderTicket(receipt TicketReceipt) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		Build()

	m := maroto.New(cfg)

	m.AddRows(
		text.NewRow(12, "StageHub Event Ticket", props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
		text.NewRow(8, receipt.EventName, props.Text{
			Size:  13,
			Align: align.Center,
		}),
		text.NewRow(6, receipt.EventDate.Format("Monday, 2 January 2006 15:04"), props.Text{
			Size:  10,
			Align: align.Center,
		}),
		text.NewRow(6, receipt.Location, props.Text{
			Size:  10,
			Align: align.Center,
		}),
	)

	m.AddRow(50,
		code.NewQrCol(12, receipt.QRCode, props.Rect{
			Center:  true,
			Percent: 80,
		}),
	)

	m.AddRows(
		text.NewRow(6, fmt.Sprintf("Ticket holder: %s", receipt.HolderName), props.Text{Size: 9}),
		text.NewRow(6, fmt.Sprintf("Price: %d %s", receipt.Price, receipt.Currency), props.Text{Size: 9}),
		row.New(6).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Purchased %s", receipt.PurchasedAt.Format("2006-01-02 15:04")), props.Text{Size: 8}),
			),
		),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
