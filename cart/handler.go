package cart

import (
	"net/http"
	"time"

	"feriwala/model"
	"feriwala/respond"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	SessionCookie = "checkoutCart"
	sessionMaxAge = 30 * 24 * time.Hour
)

// SessionID returns the cart session from the cookie, minting one when absent.
func SessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}
	id := uuid.Must(uuid.NewV7()).String()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(sessionMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: id})
	return id
}

type cartResponse struct {
	Items    Cart            `json:"items"`
	SubTotal decimal.Decimal `json:"subTotal"`
	Quantity int             `json:"quantity"`
}

func writeCart(w http.ResponseWriter, c Cart) {
	if c == nil {
		c = Cart{}
	}
	respond.JSON(w, http.StatusOK, cartResponse{Items: c, SubTotal: c.Subtotal(), Quantity: c.Quantity()})
}

func GetCartHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.Get(r.Context(), SessionID(w, r))
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		writeCart(w, c)
	}
}

func AddItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ProductID uuid.UUID `json:"productId"`
		}
		if !respond.Decode(w, r, &req) {
			return
		}
		c, err := svc.AddProduct(r.Context(), SessionID(w, r), req.ProductID)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		writeCart(w, c)
	}
}

var errInvalidItem = model.NewValidationError(model.MsgInvalidRequest, "id")

func itemHandler(op func(*http.Request, string, uuid.UUID) (Cart, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			respond.Failure(w, r, errInvalidItem)
			return
		}
		c, err := op(r, SessionID(w, r), id)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		writeCart(w, c)
	}
}

func IncreaseItemHandler(svc *Service) http.HandlerFunc {
	return itemHandler(func(r *http.Request, sid string, id uuid.UUID) (Cart, error) {
		return svc.Increase(r.Context(), sid, id)
	})
}

func DecreaseItemHandler(svc *Service) http.HandlerFunc {
	return itemHandler(func(r *http.Request, sid string, id uuid.UUID) (Cart, error) {
		return svc.Decrease(r.Context(), sid, id)
	})
}

func RemoveItemHandler(svc *Service) http.HandlerFunc {
	return itemHandler(func(r *http.Request, sid string, id uuid.UUID) (Cart, error) {
		return svc.Remove(r.Context(), sid, id)
	})
}

func ClearCartHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Clear(r.Context(), SessionID(w, r)); err != nil {
			respond.Failure(w, r, err)
			return
		}
		writeCart(w, Cart{})
	}
}
