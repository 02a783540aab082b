// Package order serves the admin order book.
package order

import (
	"fmt"
	"net/http"
	"strings"

	"feriwala/automation"
	"feriwala/config"
	"feriwala/database"
	"feriwala/locale"
	"feriwala/model"
	"feriwala/pagination"
	"feriwala/render"
	"feriwala/respond"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, model.NewValidationError(model.MsgInvalidRequest, "id")
	}
	return id, nil
}

// ListOrdersHandler lists orders newest first, optionally filtered by ?status= and paged by ?page=.
func ListOrdersHandler(conn *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := model.OrderStatus(strings.TrimSpace(r.URL.Query().Get("status")))
		if status != "" && !status.Valid() {
			respond.Failure(w, r, model.NewValidationError(model.MsgInvalidStatus, "status"))
			return
		}
		orders, err := database.ListOrders(r.Context(), conn, status)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		page, paged := pagination.ParsePage(r)
		if !paged {
			respond.JSON(w, http.StatusOK, orders)
			return
		}
		respond.JSON(w, http.StatusOK, pagination.Paginate(orders, config.GetConfig().Pagination.AdminPageSize, page))
	}
}

func GetOrderHandler(conn *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		o, err := database.GetOrder(r.Context(), conn, id)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, o)
	}
}

type statusResponse struct {
	Message string       `json:"message"`
	Data    *model.Order `json:"data"`
}

// UpdateStatusHandler moves an order to any of the known statuses.
func UpdateStatusHandler(conn *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		var req struct {
			Status model.OrderStatus `json:"status"`
		}
		if !respond.Decode(w, r, &req) {
			return
		}
		if !req.Status.Valid() {
			respond.Failure(w, r, model.NewValidationError(model.MsgInvalidStatus, "status"))
			return
		}

		tx, err := conn.BeginTxx(r.Context(), nil)
		if err != nil {
			respond.Failure(w, r, fmt.Errorf("starting transaction: %w", err))
			return
		}
		defer tx.Rollback()

		o, err := database.UpdateOrderStatusInTx(r.Context(), tx, id, req.Status)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		if err := tx.Commit(); err != nil {
			respond.Failure(w, r, fmt.Errorf("committing status of order %s: %w", id, err))
			return
		}
		zap.S().Infow("order status updated", "order", o.OrderNumber, "status", o.Status)

		respond.JSON(w, http.StatusOK, statusResponse{
			Message: locale.T(locale.Negotiate(r), locale.MsgOrderUpdated),
			Data:    o,
		})
	}
}

func invoiceDocument(r *http.Request, conn *sqlx.DB) (*model.Order, string, error) {
	id, err := parseID(r)
	if err != nil {
		return nil, "", err
	}
	o, err := database.GetOrder(r.Context(), conn, id)
	if err != nil {
		return nil, "", err
	}
	doc, err := render.InvoiceHTML(o, config.GetConfig().Shop, locale.Negotiate(r))
	if err != nil {
		return nil, "", err
	}
	return o, doc, nil
}

// InvoiceHandler returns the printable invoice as HTML.
func InvoiceHandler(conn *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, doc, err := invoiceDocument(r, conn)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(doc))
	}
}

// InvoicePDFHandler prints the invoice through pdf. A rendering failure is a 502.
func InvoicePDFHandler(conn *sqlx.DB, pdf automation.PDFRenderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, doc, err := invoiceDocument(r, conn)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		out, err := pdf.RenderPDF(r.Context(), doc)
		if err != nil {
			zap.S().Errorw("rendering invoice pdf", "order", o.OrderNumber, "error", err)
			respond.Message(w, r, locale.MsgInvoiceUnavailable, http.StatusBadGateway)
			return
		}
		automation.WritePDF(w, o.OrderNumber+".pdf", out)
	}
}

func DashboardHandler(conn *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := database.GetDashboard(r.Context(), conn)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, d)
	}
}
