// Package checkout turns a customer's cart into a stored order.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"feriwala/database"
	"feriwala/mappers"
	"feriwala/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// LineRequest is one product the customer asked for.
type LineRequest struct {
	ID       uuid.UUID `json:"id"`
	Quantity int       `json:"quantity"`
}

// Request is the order form. Client-side totals are not part of it; they are always recomputed.
type Request struct {
	Name           string             `json:"name"`
	Phone          string             `json:"phone"`
	Address        string             `json:"address"`
	Note           string             `json:"note"`
	DeliveryZone   model.DeliveryZone `json:"deliveryZone"`
	DeliveryCharge *decimal.Decimal   `json:"deliveryCharge"`
	Products       []LineRequest      `json:"products"`
}

func (req *Request) normalize() {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Address = strings.TrimSpace(req.Address)
	req.Note = strings.TrimSpace(req.Note)
}

func (req *Request) validate() error {
	if req.Name == "" || req.Phone == "" || req.Address == "" {
		return model.NewValidationError(model.MsgFillAllFields, "")
	}
	return nil
}

// zone picks the delivery zone: an explicit zone first, then the zone whose fee matches
// the submitted charge, then inside Dhaka.
func (req *Request) zone(charges model.DeliveryCharge) (model.DeliveryZone, error) {
	if req.DeliveryZone != "" {
		if !req.DeliveryZone.Valid() {
			return "", model.NewValidationError(model.MsgInvalidDeliveryZone, "deliveryZone")
		}
		return req.DeliveryZone, nil
	}
	if req.DeliveryCharge != nil {
		if z, ok := charges.ZoneFor(*req.DeliveryCharge); ok {
			return z, nil
		}
	}
	return model.ZoneInsideDhaka, nil
}

// LinesFromCart converts cart lines into line requests.
func LinesFromCart(items []model.CartItem) []LineRequest {
	lines := make([]LineRequest, 0, len(items))
	for _, it := range items {
		lines = append(lines, LineRequest{ID: it.ID, Quantity: it.Quantity})
	}
	return lines
}

// BuildOrder validates the request and prices every line from the catalog.
// The returned order has no number yet.
func BuildOrder(ctx context.Context, db sqlx.QueryerContext, req Request, charges model.DeliveryCharge) (*model.Order, error) {
	req.normalize()
	if err := req.validate(); err != nil {
		return nil, err
	}
	if len(req.Products) == 0 {
		return nil, model.NewValidationError(model.MsgEmptyCart, "products")
	}
	zone, err := req.zone(charges)
	if err != nil {
		return nil, err
	}
	fee, err := charges.Fee(zone)
	if err != nil {
		return nil, err
	}

	lines := make([]model.OrderLine, 0, len(req.Products))
	subTotal := decimal.Zero
	for _, lr := range req.Products {
		if lr.Quantity < 1 {
			return nil, model.NewValidationError(model.MsgInvalidQuantity, "quantity")
		}
		p, err := database.GetProduct(ctx, db, lr.ID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return nil, model.NewValidationError(model.MsgUnknownProduct, lr.ID.String())
			}
			return nil, err
		}
		line := mappers.OrderLineFromProduct(p, lr.Quantity)
		subTotal = subTotal.Add(line.LineTotal())
		lines = append(lines, line)
	}

	now := time.Now().UTC()
	return &model.Order{
		ID:             uuid.Must(uuid.NewV7()),
		Name:           req.Name,
		Phone:          req.Phone,
		Address:        req.Address,
		Note:           req.Note,
		Status:         model.StatusActive,
		PaymentMethod:  model.DefaultPaymentMethod,
		DeliveryZone:   zone,
		SubTotal:       subTotal,
		DeliveryCharge: fee,
		TotalAmount:    subTotal.Add(fee),
		Products:       lines,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// Place numbers and stores the order in one transaction.
func Place(ctx context.Context, db *sqlx.DB, o *model.Order) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	number, err := database.NextOrderNumberInTx(ctx, tx)
	if err != nil {
		return err
	}
	o.OrderNumber = number
	if err := database.InsertOrderInTx(ctx, tx, o); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing order %s: %w", number, err)
	}
	return nil
}
