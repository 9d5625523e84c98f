package controllers

import (
	"fmt"
	"net/http"

	"github.com/candyland-dev/candyland-backend/api/responses"
	"github.com/candyland-dev/candyland-backend/api/validators"
	ecommercesvc "github.com/candyland-dev/candyland-backend/internal/ecommerce"
	"github.com/candyland-dev/candyland-backend/internal/invoices"
	ordersvc "github.com/candyland-dev/candyland-backend/internal/orders"
	"github.com/candyland-dev/candyland-backend/pkg/logger"
)

func writePDF(w http.ResponseWriter, name string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// OrderInvoicePDF renders the invoice for one counter order.
func OrderInvoicePDF(svc ordersvc.Service, renderer *invoices.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		data, err := renderer.Render(invoices.FromOrder(order))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		writePDF(w, fmt.Sprintf("factura-%s.pdf", order.ID), data)
	}
}

// EcommerceInvoicePDF renders the invoice for one online order.
func EcommerceInvoicePDF(svc ecommercesvc.Service, renderer *invoices.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		data, err := renderer.Render(invoices.FromEcommerceOrder(order))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		writePDF(w, fmt.Sprintf("factura-ecommerce-%s.pdf", order.ID), data)
	}
}
