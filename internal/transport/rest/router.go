package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/asset-management/internal/accessory"
	"github.com/frahmantamala/asset-management/internal/asset"
	"github.com/frahmantamala/asset-management/internal/assignment"
	"github.com/frahmantamala/asset-management/internal/cctv"
	"github.com/frahmantamala/asset-management/internal/dashboard"
	"github.com/frahmantamala/asset-management/internal/location"
	"github.com/frahmantamala/asset-management/internal/repair"
	"github.com/frahmantamala/asset-management/internal/staff"
	"github.com/frahmantamala/asset-management/internal/transport/middleware"
	"github.com/frahmantamala/asset-management/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// OpenAPIPath is where the API document is read from, relative to the working directory.
const OpenAPIPath = "./api/openapi.yml"

// Handlers groups the per-domain handlers mounted under /api/v1. A nil handler leaves its
// routes unregistered.
type Handlers struct {
	Health     *HealthHandler
	Asset      *asset.Handler
	Staff      *staff.Handler
	Assignment *assignment.Handler
	Repair     *repair.Handler
	Accessory  *accessory.Handler
	CCTV       *cctv.Handler
	Location   *location.Handler
	Dashboard  *dashboard.Handler
	Realtime   http.Handler
}

func RegisterAllRoutes(router *chi.Mux, handlers Handlers, allowedOrigins string, logger *slog.Logger) {
	// Apply global middleware
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.Technician)

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, OpenAPIPath)
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		if handlers.Health != nil {
			r.Get("/health", handlers.Health.healthCheckHandler)
			r.Get("/ping", handlers.Health.pingHandler)
		}

		if handlers.Realtime != nil {
			r.Handle("/ws", handlers.Realtime)
		}

		r.Route("/assets", func(ar chi.Router) {
			if handlers.Asset != nil {
				ar.Get("/", handlers.Asset.ListAssets)
				ar.Post("/", handlers.Asset.CreateAsset)
				ar.Get("/{id}", handlers.Asset.GetAsset)
				ar.Put("/{id}", handlers.Asset.UpdateAsset)
				ar.Delete("/{id}", handlers.Asset.DeleteAsset)
				ar.Get("/{id}/history", handlers.Asset.GetAssetHistory)
			}

			if handlers.Assignment != nil {
				ar.Post("/{id}/issue", handlers.Assignment.IssueAsset)
				ar.Post("/{id}/return", handlers.Assignment.ReturnAsset)
				ar.Get("/{id}/assignment", handlers.Assignment.GetCurrentAssignment)
			}

			if handlers.Accessory != nil {
				ar.Get("/{id}/configuration", handlers.Accessory.GetAssetConfiguration)
			}
		})

		if handlers.Staff != nil {
			r.Route("/staff", func(sr chi.Router) {
				sr.Get("/", handlers.Staff.ListStaff)
				sr.Post("/", handlers.Staff.CreateStaff)
				sr.Get("/{id}", handlers.Staff.GetStaff)
				sr.Put("/{id}", handlers.Staff.UpdateStaff)
				sr.Delete("/{id}", handlers.Staff.DeleteStaff)
				sr.Get("/{id}/profile", handlers.Staff.GetStaffProfile)
			})
		}

		if handlers.Repair != nil {
			r.Route("/repairs", func(rr chi.Router) {
				rr.Get("/", handlers.Repair.ListRepairs)
				rr.Post("/", handlers.Repair.LogRepair)
			})
		}

		if handlers.Accessory != nil {
			r.Route("/accessories", func(xr chi.Router) {
				xr.Get("/", handlers.Accessory.ListAccessories)
				xr.Post("/", handlers.Accessory.CreateAccessory)
				xr.Get("/{id}", handlers.Accessory.GetAccessory)
				xr.Put("/{id}", handlers.Accessory.UpdateAccessory)
				xr.Delete("/{id}", handlers.Accessory.DeleteAccessory)
				xr.Post("/{id}/install", handlers.Accessory.InstallAccessory)
				xr.Post("/{id}/remove", handlers.Accessory.RemoveAccessory)
			})
		}

		if handlers.CCTV != nil {
			r.Route("/cctv", func(cr chi.Router) {
				cr.Get("/", handlers.CCTV.ListCameras)
				cr.Post("/", handlers.CCTV.CreateCamera)
				cr.Get("/overview", handlers.CCTV.GetOverview)
				cr.Post("/stock", handlers.CCTV.AddStockCamera)
				cr.Get("/{id}", handlers.CCTV.GetCamera)
				cr.Put("/{id}", handlers.CCTV.UpdateCamera)
				cr.Delete("/{id}", handlers.CCTV.DeleteCamera)
				cr.Patch("/{id}/status", handlers.CCTV.SetStatus)
				cr.Post("/{id}/repairs", handlers.CCTV.LogCameraRepair)
				cr.Get("/{id}/history", handlers.CCTV.GetCameraHistory)
				cr.Post("/{id}/replace", handlers.CCTV.ReplaceCamera)
			})
		}

		if handlers.Location != nil {
			r.Route("/premises", func(pr chi.Router) {
				pr.Get("/", handlers.Location.ListPremises)
				pr.Post("/", handlers.Location.CreatePremise)
				pr.Delete("/{id}", handlers.Location.DeletePremise)
			})
			r.Route("/floors", func(fr chi.Router) {
				fr.Get("/", handlers.Location.ListFloors)
				fr.Post("/", handlers.Location.CreateFloor)
				fr.Delete("/{id}", handlers.Location.DeleteFloor)
			})
		}

		if handlers.Dashboard != nil {
			r.Get("/dashboard", handlers.Dashboard.GetSummary)
		}
	})
}
