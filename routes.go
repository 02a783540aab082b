package main

import (
	"net/http"

	"feriwala/admin"
	"feriwala/auth"
	"feriwala/automation"
	"feriwala/cart"
	"feriwala/category"
	"feriwala/checkout"
	"feriwala/config"
	"feriwala/delivery"
	"feriwala/loader"
	"feriwala/locale"
	"feriwala/middleware"
	"feriwala/order"
	"feriwala/product"
	"feriwala/slider"
	"feriwala/upload"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
)

// NewRouter builds the HTTP handler with the shared middleware stack, static uploads and every API route.
func NewRouter(cfg config.Config, dbConn *sqlx.DB, issuer *auth.Issuer, carts *cart.Service, pdf automation.PDFRenderer) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.Compress)
	r.Use(chimw.Recoverer)

	r.Handle(upload.PublicPrefix+"*", http.StripPrefix(upload.PublicPrefix, uploadsHandler()))

	SetupRoutes(r, dbConn, issuer, carts, pdf)
	return r
}

// uploadsHandler serves the folder named by the live config, which POST /api/config may change.
func uploadsHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.FileServer(http.Dir(config.GetConfig().Uploads.Dir)).ServeHTTP(w, r)
	})
}

func SetupRoutes(r chi.Router, dbConn *sqlx.DB, issuer *auth.Issuer, carts *cart.Service, pdf automation.PDFRenderer) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/products", product.ListProductsHandler(dbConn))
		r.Get("/productdetails/{id}", product.GetProductHandler(dbConn))
		r.Get("/related-products", product.RelatedProductsHandler(dbConn))
		r.Get("/search", product.SearchHandler(dbConn))
		r.Get("/products-category/{category}", product.ProductsByCategoryHandler(dbConn))
		r.Get("/categories", category.ListCategoriesHandler(dbConn))
		r.Get("/sliders", slider.ListSlidersHandler(dbConn))
		r.Get("/updatedeliverycharge", delivery.GetDeliveryChargeHandler(dbConn))
		r.Get("/labels", locale.GetLabelsHandler())
		r.Get("/config", GetConfigHandler())

		r.Get("/cart", cart.GetCartHandler(carts))
		r.Delete("/cart", cart.ClearCartHandler(carts))
		r.Post("/cart/items", cart.AddItemHandler(carts))
		r.Post("/cart/items/{id}/increase", cart.IncreaseItemHandler(carts))
		r.Post("/cart/items/{id}/decrease", cart.DecreaseItemHandler(carts))
		r.Delete("/cart/items/{id}", cart.RemoveItemHandler(carts))

		r.Post("/orders", checkout.PlaceOrderHandler(dbConn, carts))
		r.Post("/login", admin.LoginHandler(dbConn, issuer))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(issuer, dbConn))

			r.Get("/me", admin.MeHandler())
			r.Get("/allAdmin", admin.ListAdminsHandler(dbConn))

			r.Get("/allOrders", order.ListOrdersHandler(dbConn))
			r.Get("/orders/{id}", order.GetOrderHandler(dbConn))
			r.Patch("/orders/{id}", order.UpdateStatusHandler(dbConn))
			r.Get("/orders/{id}/invoice", order.InvoiceHandler(dbConn))
			r.Get("/orders/{id}/invoice.pdf", order.InvoicePDFHandler(dbConn, pdf))
			r.Get("/dashboard", order.DashboardHandler(dbConn))

			r.Post("/products", product.CreateProductHandler(dbConn))
			r.Post("/products/import", loader.ImportProductsHandler(dbConn))
			r.Patch("/product/{id}", product.UpdateProductHandler(dbConn))
			r.Delete("/product/{id}", product.DeleteProductHandler(dbConn))

			r.Post("/category", category.CreateCategoryHandler(dbConn))
			r.Delete("/category/{id}", category.DeleteCategoryHandler(dbConn))

			r.Post("/slider", slider.CreateSliderHandler(dbConn))
			r.Delete("/sliderDelete", slider.DeleteSliderHandler(dbConn))

			r.Patch("/updatedeliverycharge", delivery.UpdateDeliveryChargeHandler(dbConn))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSuperAdmin)
				r.Post("/register", admin.RegisterHandler(dbConn))
				r.Delete("/admin/{id}", admin.DeleteAdminHandler(dbConn))
				r.Patch("/admin/{id}/role", admin.UpdateRoleHandler(dbConn))
				r.Get("/settings", GetSettingsHandler())
				r.Post("/config", SaveConfigHandler())
			})
		})
	})
}
