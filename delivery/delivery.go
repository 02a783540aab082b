// Package delivery serves the two flat courier fees.
package delivery

import (
	"context"
	"errors"
	"net/http"

	"feriwala/config"
	"feriwala/database"
	"feriwala/model"
	"feriwala/respond"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// Fallback is the configured fee pair used until an admin saves one.
func Fallback() model.DeliveryCharge {
	cfg := config.GetConfig()
	return model.DeliveryCharge{
		InsideDhaka:  decimal.NewFromFloat(cfg.Delivery.FallbackInside),
		OutsideDhaka: decimal.NewFromFloat(cfg.Delivery.FallbackOutside),
	}
}

// Current returns the stored fees, or Fallback when none are stored.
func Current(ctx context.Context, db sqlx.QueryerContext) (model.DeliveryCharge, error) {
	c, err := database.GetDeliveryCharge(ctx, db)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return Fallback(), nil
		}
		return model.DeliveryCharge{}, err
	}
	return *c, nil
}

func GetDeliveryChargeHandler(conn *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := Current(r.Context(), conn)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, c)
	}
}

// UpdateDeliveryChargeHandler saves {insideDhaka, outsideDhaka}. Both are required and non-negative.
func UpdateDeliveryChargeHandler(conn *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			InsideDhaka  *decimal.Decimal `json:"insideDhaka"`
			OutsideDhaka *decimal.Decimal `json:"outsideDhaka"`
		}
		if !respond.Decode(w, r, &req) {
			return
		}
		if req.InsideDhaka == nil || req.OutsideDhaka == nil {
			respond.Failure(w, r, model.NewValidationError(model.MsgInvalidDeliveryCharge, "deliveryCharge"))
			return
		}
		c := model.DeliveryCharge{InsideDhaka: *req.InsideDhaka, OutsideDhaka: *req.OutsideDhaka}
		if err := c.Validate(); err != nil {
			respond.Failure(w, r, err)
			return
		}
		if err := database.UpsertDeliveryCharge(r.Context(), conn, c); err != nil {
			respond.Failure(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, c)
	}
}
