package checkout

import (
	"net/http"

	"feriwala/cart"
	"feriwala/delivery"
	"feriwala/locale"
	"feriwala/model"
	"feriwala/respond"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type placeResponse struct {
	Message      string       `json:"message"`
	OrderNumber  string       `json:"orderNumber"`
	Order        *model.Order `json:"order"`
	ProductNames []string     `json:"productNames"`
}

// PlaceOrderHandler stores an order from the request lines, or from the session cart when the request has none.
func PlaceOrderHandler(conn *sqlx.DB, carts *cart.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Request
		if !respond.Decode(w, r, &req) {
			return
		}

		sessionID := cart.SessionID(w, r)
		fromCart := len(req.Products) == 0
		var saved cart.Cart
		if fromCart {
			c, err := carts.Get(r.Context(), sessionID)
			if err != nil {
				respond.Failure(w, r, err)
				return
			}
			saved = c
			req.Products = LinesFromCart(c)
		}

		charges, err := delivery.Current(r.Context(), conn)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		order, err := BuildOrder(r.Context(), conn, req, charges)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		if fromCart {
			if shown := saved.Total(order.DeliveryCharge); !shown.Equal(order.TotalAmount) {
				zap.S().Infow("cart repriced at checkout",
					"session", sessionID, "items", saved.Names(),
					"cartTotal", shown.String(), "orderTotal", order.TotalAmount.String())
			}
		}
		if err := Place(r.Context(), conn, order); err != nil {
			respond.Failure(w, r, err)
			return
		}

		if err := carts.Clear(r.Context(), sessionID); err != nil {
			zap.S().Warnw("clearing cart after order", "order", order.OrderNumber, "error", err)
		}
		zap.S().Infow("order placed",
			"order", order.OrderNumber, "lines", len(order.Products), "total", order.TotalAmount.String(), "fromCart", fromCart)

		respond.JSON(w, http.StatusCreated, placeResponse{
			Message:      locale.T(locale.Negotiate(r), locale.MsgOrderPlaced),
			OrderNumber:  order.OrderNumber,
			Order:        order,
			ProductNames: order.ProductNames(),
		})
	}
}
