package asset_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/asset"
	assetPostgres "github.com/frahmantamala/asset-management/internal/asset/postgres"
	"github.com/frahmantamala/asset-management/internal/testdb"
	"github.com/frahmantamala/asset-management/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Asset Handler Integration", func() {
	var (
		router  *chi.Mux
		service *asset.Service
	)

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err := testdb.Open()
		Expect(err).NotTo(HaveOccurred())

		service = asset.NewService(assetPostgres.NewAssetRepository(db), nil, slogger)
		handler := asset.NewHandler(transport.NewBaseHandler(slogger), service)

		router = chi.NewRouter()
		router.Get("/assets", handler.ListAssets)
		router.Post("/assets", handler.CreateAsset)
		router.Get("/assets/{id}", handler.GetAsset)
		router.Put("/assets/{id}", handler.UpdateAsset)
		router.Delete("/assets/{id}", handler.DeleteAsset)
		router.Get("/assets/{id}/history", handler.GetAssetHistory)
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("should create and fetch an asset", func() {
		w := do(http.MethodPost, "/assets", `{"serial_number":"SN-9","model":"EliteBook","type":"Laptop","specs_ram":"8GB"}`)
		Expect(w.Code).To(Equal(http.StatusCreated))

		var created asset.Asset
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		Expect(created.Status).To(Equal("Available"))

		w = do(http.MethodGet, "/assets/1", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))
	})

	It("should return a structured validation error", func() {
		w := do(http.MethodPost, "/assets", `{"serial_number":"","model":"EliteBook","type":"Laptop"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		var resp struct {
			Error struct {
				Type    string `json:"type"`
				Details struct {
					Errors []internal.ValidationError `json:"errors"`
				} `json:"details"`
			} `json:"error"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Error.Type).To(Equal(string(internal.ErrorTypeValidation)))
		Expect(resp.Error.Details.Errors[0].Field).To(Equal("serial_number"))
	})

	It("should reject unknown fields", func() {
		w := do(http.MethodPost, "/assets", `{"serial_number":"SN-1","model":"X","type":"Laptop","colour":"red"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should return 404 for a missing asset", func() {
		w := do(http.MethodGet, "/assets/77", "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("should return 400 for a malformed id", func() {
		w := do(http.MethodGet, "/assets/abc", "")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should filter the list by status", func() {
		_, err := service.CreateAsset(context.Background(), asset.CreateAssetDTO{SerialNumber: "A", Model: "M", Type: "Laptop"})
		Expect(err).NotTo(HaveOccurred())
		_, err = service.CreateAsset(context.Background(), asset.CreateAssetDTO{SerialNumber: "B", Model: "M", Type: "Laptop", Status: "Repair"})
		Expect(err).NotTo(HaveOccurred())

		w := do(http.MethodGet, "/assets?status=Repair", "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp asset.AssetsResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Assets).To(HaveLen(1))
		Expect(resp.Assets[0].SerialNumber).To(Equal("B"))

		w = do(http.MethodGet, "/assets?status=Lost", "")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should delete an asset", func() {
		_, err := service.CreateAsset(context.Background(), asset.CreateAssetDTO{SerialNumber: "A", Model: "M", Type: "Laptop"})
		Expect(err).NotTo(HaveOccurred())

		w := do(http.MethodDelete, "/assets/1", "")
		Expect(w.Code).To(Equal(http.StatusNoContent))

		w = do(http.MethodGet, "/assets/1/history", "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})
