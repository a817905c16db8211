package accessory_test

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/frahmantamala/asset-management/internal/accessory"
	accessoryPostgres "github.com/frahmantamala/asset-management/internal/accessory/postgres"
	assetDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/asset"
	"github.com/frahmantamala/asset-management/internal/testdb"
	"github.com/frahmantamala/asset-management/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("Accessory Handler Integration", func() {
	var (
		db     *gorm.DB
		router *chi.Mux
	)

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		var err error
		db, err = testdb.Open()
		Expect(err).NotTo(HaveOccurred())

		service := accessory.NewService(accessoryPostgres.NewAccessoryRepository(db), nil, "Admin", slogger)
		handler := accessory.NewHandler(transport.NewBaseHandler(slogger), service)

		router = chi.NewRouter()
		router.Get("/accessories", handler.ListAccessories)
		router.Post("/accessories", handler.CreateAccessory)
		router.Get("/accessories/{id}", handler.GetAccessory)
		router.Post("/accessories/{id}/install", handler.InstallAccessory)
		router.Post("/accessories/{id}/remove", handler.RemoveAccessory)
		router.Get("/assets/{id}/configuration", handler.GetAssetConfiguration)
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("should install an accessory and report the new specs", func() {
		host := &assetDatamodel.Asset{SerialNumber: "PC-1", Model: "OptiPlex", Type: "Desktop", Status: "Available", SpecsRAM: "8GB"}
		Expect(db.Create(host).Error).To(Succeed())

		w := do(http.MethodPost, "/accessories", `{"type":"RAM","brand":"Kingston","model":"8GB"}`)
		Expect(w.Code).To(Equal(http.StatusCreated))
		var created accessory.Accessory
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())

		w = do(http.MethodPost, fmt.Sprintf("/accessories/%d/install", created.ID), fmt.Sprintf(`{"asset_id":%d}`, host.ID))
		Expect(w.Code).To(Equal(http.StatusOK))
		var result accessory.ChangeResult
		Expect(json.NewDecoder(w.Body).Decode(&result)).To(Succeed())
		Expect(result.Asset.SpecsRAM).To(Equal("16GB"))

		w = do(http.MethodGet, fmt.Sprintf("/assets/%d/configuration", host.ID), "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"specs_ram":"16GB"`))

		w = do(http.MethodGet, fmt.Sprintf("/accessories?asset_id=%d", host.ID), "")
		Expect(w.Code).To(Equal(http.StatusOK))
		var list accessory.AccessoriesResponse
		Expect(json.NewDecoder(w.Body).Decode(&list)).To(Succeed())
		Expect(list.Accessories).To(HaveLen(1))
	})

	It("should return 409 when installing a faulty accessory", func() {
		host := &assetDatamodel.Asset{SerialNumber: "PC-2", Model: "OptiPlex", Type: "Desktop", Status: "Available"}
		Expect(db.Create(host).Error).To(Succeed())

		w := do(http.MethodPost, "/accessories", `{"type":"SSD","model":"1TB","status":"Faulty"}`)
		Expect(w.Code).To(Equal(http.StatusCreated))
		var created accessory.Accessory
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())

		w = do(http.MethodPost, fmt.Sprintf("/accessories/%d/install", created.ID), fmt.Sprintf(`{"asset_id":%d}`, host.ID))
		Expect(w.Code).To(Equal(http.StatusConflict))
		Expect(w.Body.String()).To(ContainSubstring("ACCESSORY_NOT_AVAILABLE"))
	})

	It("should reject a bad asset_id filter", func() {
		w := do(http.MethodGet, "/accessories?asset_id=abc", "")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should require asset_id on install", func() {
		w := do(http.MethodPost, "/accessories/1/install", `{}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})
