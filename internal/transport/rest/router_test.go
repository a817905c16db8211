package rest_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/accessory"
	accessoryPostgres "github.com/frahmantamala/asset-management/internal/accessory/postgres"
	"github.com/frahmantamala/asset-management/internal/asset"
	assetPostgres "github.com/frahmantamala/asset-management/internal/asset/postgres"
	"github.com/frahmantamala/asset-management/internal/assignment"
	assignmentPostgres "github.com/frahmantamala/asset-management/internal/assignment/postgres"
	"github.com/frahmantamala/asset-management/internal/cctv"
	cctvPostgres "github.com/frahmantamala/asset-management/internal/cctv/postgres"
	"github.com/frahmantamala/asset-management/internal/core/events"
	"github.com/frahmantamala/asset-management/internal/dashboard"
	dashboardPostgres "github.com/frahmantamala/asset-management/internal/dashboard/postgres"
	"github.com/frahmantamala/asset-management/internal/location"
	locationPostgres "github.com/frahmantamala/asset-management/internal/location/postgres"
	"github.com/frahmantamala/asset-management/internal/realtime"
	"github.com/frahmantamala/asset-management/internal/repair"
	repairPostgres "github.com/frahmantamala/asset-management/internal/repair/postgres"
	"github.com/frahmantamala/asset-management/internal/staff"
	staffPostgres "github.com/frahmantamala/asset-management/internal/staff/postgres"
	"github.com/frahmantamala/asset-management/internal/testdb"
	"github.com/frahmantamala/asset-management/internal/transport"
	"github.com/frahmantamala/asset-management/internal/transport/rest"
	"github.com/frahmantamala/asset-management/internal/transport/swagger"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "REST Suite")
}

const openAPIFile = "../../../api/openapi.yml"

func newRouter() *chi.Mux {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError + 4}))

	db, err := testdb.Open()
	Expect(err).NotTo(HaveOccurred())
	sqlDB, err := db.DB()
	Expect(err).NotTo(HaveOccurred())
	readDB := sqlx.NewDb(sqlDB, "sqlite3")

	bus := events.NewEventBus(logger)
	base := transport.NewBaseHandler(logger)
	hub := realtime.NewHub(internal.RealtimeConfig{SendBuffer: 1}, "*", logger)

	handlers := rest.Handlers{
		Health:     rest.NewHealthHandler(readDB, hub),
		Asset:      asset.NewHandler(base, asset.NewService(assetPostgres.NewAssetRepository(db), bus, logger)),
		Staff:      staff.NewHandler(base, staff.NewService(staffPostgres.NewStaffRepository(db), bus, logger)),
		Assignment: assignment.NewHandler(base, assignment.NewService(assignmentPostgres.NewAssignmentRepository(db), bus, logger)),
		Repair:     repair.NewHandler(base, repair.NewService(repairPostgres.NewRepairRepository(db), bus, internal.DefaultTechnician, logger)),
		Accessory:  accessory.NewHandler(base, accessory.NewService(accessoryPostgres.NewAccessoryRepository(db), bus, internal.DefaultTechnician, logger)),
		CCTV:       cctv.NewHandler(base, cctv.NewService(cctvPostgres.NewCCTVRepository(db), bus, internal.DefaultTechnician, internal.DefaultPremise, logger)),
		Location:   location.NewHandler(base, location.NewService(locationPostgres.NewLocationRepository(db), bus, logger)),
		Dashboard:  dashboard.NewHandler(base, dashboard.NewService(dashboardPostgres.NewDashboardRepository(readDB), logger)),
		Realtime:   hub,
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, handlers, "http://localhost:5173", logger)
	return router
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

var _ = Describe("Router", func() {
	var router *chi.Mux

	BeforeEach(func() {
		router = newRouter()
	})

	It("should answer the liveness and readiness probes", func() {
		Expect(do(router, http.MethodGet, "/api/v1/ping", "").Code).To(Equal(http.StatusOK))

		rec := do(router, http.MethodGet, "/api/v1/health", "")
		Expect(rec.Code).To(Equal(http.StatusOK))

		var resp rest.HealthResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Status).To(Equal(rest.HealthHealthy))
		Expect(resp.Components).To(HaveKey("postgres"))
		Expect(resp.Components).To(HaveKey("realtime"))
	})

	It("should run an issue and return through the API", func() {
		rec := do(router, http.MethodPost, "/api/v1/assets", `{"serial_number":"SN-1","model":"ThinkPad T14","type":"Laptop"}`)
		Expect(rec.Code).To(Equal(http.StatusCreated))
		var created asset.Asset
		Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())

		rec = do(router, http.MethodPost, "/api/v1/staff", `{"employee_id":"E-1","name":"Rina"}`)
		Expect(rec.Code).To(Equal(http.StatusCreated))
		var member staff.Staff
		Expect(json.Unmarshal(rec.Body.Bytes(), &member)).To(Succeed())

		path := "/api/v1/assets/" + jsonID(created.ID)
		body := `{"staff_id":` + jsonID(member.ID) + `,"issue_date":"2024-03-01"}`
		Expect(do(router, http.MethodPost, path+"/issue", body).Code).To(Equal(http.StatusCreated))
		Expect(do(router, http.MethodPost, path+"/issue", body).Code).To(Equal(http.StatusConflict))

		rec = do(router, http.MethodGet, path, "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring(`"status":"Issued"`))

		Expect(do(router, http.MethodPost, path+"/return", `{"return_date":"2024-03-10"}`).Code).To(Equal(http.StatusOK))

		rec = do(router, http.MethodGet, "/api/v1/dashboard", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		var summary dashboard.Summary
		Expect(json.Unmarshal(rec.Body.Bytes(), &summary)).To(Succeed())
		Expect(summary.Assets.Available).To(BeNumerically("==", 1))
		Expect(summary.RecentAssignments).To(HaveLen(1))
	})

	It("should answer CORS preflight for API routes", func() {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/assets", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusNoContent))
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://localhost:5173"))
	})

	Describe("OpenAPI document", func() {
		var doc *openapi3.T

		BeforeEach(func() {
			var err error
			doc, err = swagger.LoadDocument(context.Background(), openAPIFile)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should document every API route", func() {
			methods := map[string]bool{
				http.MethodGet: true, http.MethodPost: true, http.MethodPut: true,
				http.MethodPatch: true, http.MethodDelete: true,
			}

			var missing []string
			err := chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
				if !methods[method] || !strings.HasPrefix(route, "/api/v1/") {
					return nil
				}
				path := strings.TrimSuffix(strings.TrimPrefix(route, "/api/v1"), "/")
				if path == "/ws" && method != http.MethodGet {
					return nil
				}

				item := doc.Paths.Find(path)
				if item == nil || item.GetOperation(method) == nil {
					missing = append(missing, method+" "+path)
				}
				return nil
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(missing).To(BeEmpty())
		})

		It("should only document routes the router serves", func() {
			for path, item := range doc.Paths.Map() {
				for method := range item.Operations() {
					rctx := chi.NewRouteContext()
					Expect(router.Match(rctx, method, "/api/v1"+strings.ReplaceAll(path, "{id}", "1"))).
						To(BeTrue(), "%s %s is documented but not routed", method, path)
				}
			}
		})
	})
})

func jsonID(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
