package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
)

type ReceiptData struct {
	StoreName string
	Order     orderdomain.Order
	Lines     []ReceiptLine
}

type ReceiptLine struct {
	Description string
	Quantity    int64
	UnitPrice   int64
}

func (l ReceiptLine) Amount() int64 {
	return l.Quantity * l.UnitPrice
}

// NewReceiptData pairs order items with product names. Items whose product
// no longer exists are labelled by id.
func NewReceiptData(storeName string, order orderdomain.Order, items []orderdomain.OrderItem, names map[int64]string) ReceiptData {
	lines := make([]ReceiptLine, 0, len(items))
	for _, item := range items {
		desc, ok := names[item.ProductID]
		if !ok || desc == "" {
			desc = "Product #" + strconv.FormatInt(item.ProductID, 10)
		}
		lines = append(lines, ReceiptLine{
			Description: desc,
			Quantity:    item.Quantity,
			UnitPrice:   item.Price,
		})
	}
	return ReceiptData{StoreName: storeName, Order: order, Lines: lines}
}

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateReceipt(_ context.Context, data ReceiptData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)
	order := data.Order

	m.AddRow(20,
		text.NewCol(8, data.StoreName, props.Text{Size: 18, Style: fontstyle.Bold, Align: align.Left}),
		text.NewCol(4, "Order receipt", props.Text{Size: 12, Align: align.Right, Top: 3}),
	)

	m.AddRow(18,
		col.New(6).Add(
			text.New("Order number: "+strconv.FormatInt(order.ID, 10), props.Text{Size: 9}),
			text.New("Placed on: "+order.CreatedAt.In(time.UTC).Format("02 Jan 2006 15:04 MST"), props.Text{Size: 9, Top: 4}),
			text.New("Status: "+order.Status, props.Text{Size: 9, Top: 8}),
		),
		col.New(6).Add(
			text.New("Ship to", props.Text{Size: 9, Style: fontstyle.Bold}),
			text.New(order.CustomerName, props.Text{Size: 9, Top: 4}),
			text.New(order.ShippingAddress+", "+order.City+" "+order.PostalCode, props.Text{Size: 9, Top: 8}),
			text.New(order.CustomerEmail+" / "+order.CustomerPhone, props.Text{Size: 9, Top: 12}),
		),
	)

	m.AddRow(10,
		text.NewCol(6, "Item", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	m.AddRow(2, line.NewCol(12))

	for _, l := range data.Lines {
		m.AddRow(8,
			text.NewCol(6, l.Description, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", l.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, FormatPrice(l.UnitPrice), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, FormatPrice(l.Amount()), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(2, line.NewCol(12))
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewCol(2, FormatPrice(order.Total), props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
