package payments

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/techipro/konnect-admin/db"
	"github.com/techipro/konnect-admin/types"
	"github.com/techipro/konnect-admin/util"
)

// Routes creates a new Chi router with all of the routes for the payment resource,
// at the root level
func Routes(paymentProvider db.PaymentProvider) *chi.Mux {
	router := chi.NewRouter()
	router.Get("/", GetAll(paymentProvider))
	router.Get("/{id}", GetSingle(paymentProvider))
	return router
}

// GetAll lists payments, optionally filtered by status
func GetAll(paymentProvider db.PaymentProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payments, err := paymentProvider.GetAllPayments(r.Context())
		if err != nil {
			util.Error(w, err)
			return
		}

		status := strings.TrimSpace(r.URL.Query().Get("status"))
		filtered := []types.Payment{}
		for _, payment := range payments {
			if status == "" || strings.EqualFold(payment.Status, status) {
				filtered = append(filtered, payment)
			}
		}

		start, end, info := util.Page(r, len(filtered), 50)
		render.JSON(w, r, types.PaymentPage{
			Items:    filtered[start:end],
			PageInfo: info,
		})
	}
}

// GetSingle gets a single payment by its ID
func GetSingle(paymentProvider db.PaymentProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			util.ErrorWithCode(w, errors.New("the URL parameter is empty"),
				http.StatusBadRequest)
			return
		}

		payment, err := paymentProvider.GetPayment(r.Context(), id)
		if err != nil {
			util.Error(w, err)
			return
		}

		render.JSON(w, r, payment)
	}
}
