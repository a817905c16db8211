package accessory_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/accessory"
	accessoryPostgres "github.com/frahmantamala/asset-management/internal/accessory/postgres"
	accessoryDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/accessory"
	assetDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/asset"
	"github.com/frahmantamala/asset-management/internal/core/events"
	"github.com/frahmantamala/asset-management/internal/testdb"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func TestAccessoryService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Accessory Service Suite")
}

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.events = append(p.events, event)
	return nil
}

// failingLogRepository passes everything through to the wrapped repository except CreateLog.
type failingLogRepository struct {
	accessory.RepositoryAPI
	err error
}

func (r *failingLogRepository) WithinTx(ctx context.Context, fn func(repo accessory.RepositoryAPI) error) error {
	return r.RepositoryAPI.WithinTx(ctx, func(repo accessory.RepositoryAPI) error {
		return fn(&failingLogRepository{RepositoryAPI: repo, err: r.err})
	})
}

func (r *failingLogRepository) CreateLog(ctx context.Context, l *accessoryDatamodel.Log) error {
	return r.err
}

var _ = Describe("Accessory Service", func() {
	var (
		db        *gorm.DB
		service   *accessory.Service
		publisher *recordingPublisher
		ctx       context.Context
	)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		var err error
		db, err = testdb.Open()
		Expect(err).NotTo(HaveOccurred())

		publisher = &recordingPublisher{}
		service = accessory.NewService(accessoryPostgres.NewAccessoryRepository(db), publisher, "Admin", logger)
		ctx = context.Background()
	})

	createAsset := func(serial, ram, storage, storage2 string) *assetDatamodel.Asset {
		a := &assetDatamodel.Asset{
			SerialNumber:  serial,
			Model:         "OptiPlex 7090",
			Type:          "Desktop",
			Status:        "Available",
			SpecsRAM:      ram,
			SpecsStorage:  storage,
			SpecsStorage2: storage2,
		}
		Expect(db.Create(a).Error).To(Succeed())
		return a
	}

	createAccessory := func(kind, model string) *accessory.Accessory {
		created, err := service.CreateAccessory(ctx, accessory.CreateAccessoryDTO{Type: kind, Brand: "Kingston", Model: model})
		Expect(err).NotTo(HaveOccurred())
		return created
	}

	reload := func(id int64) *assetDatamodel.Asset {
		var a assetDatamodel.Asset
		Expect(db.First(&a, id).Error).To(Succeed())
		return &a
	}

	Describe("CreateAccessory", func() {
		It("should default the status to Available", func() {
			created := createAccessory("RAM", "8GB")
			Expect(created.Status).To(Equal(accessory.StatusAvailable))
			Expect(publisher.events).To(HaveLen(1))
		})

		It("should reject an unknown type", func() {
			_, err := service.CreateAccessory(ctx, accessory.CreateAccessoryDTO{Type: "GPU", Model: "RTX"})
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("should not create an accessory as Installed", func() {
			_, err := service.CreateAccessory(ctx, accessory.CreateAccessoryDTO{Type: "RAM", Model: "8GB", Status: "Installed"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Install and Remove RAM", func() {
		It("should add and subtract GB quantities", func() {
			host := createAsset("PC-1", "8GB", "", "")
			stick := createAccessory("RAM", "8GB")

			result, err := service.Install(ctx, stick.ID, accessory.ChangeDTO{AssetID: host.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Asset.SpecsRAM).To(Equal("16GB"))
			Expect(result.Accessory.Status).To(Equal(accessory.StatusInstalled))
			Expect(*result.Accessory.AssetID).To(Equal(host.ID))
			Expect(result.Log.Action).To(Equal(accessory.ActionInstalled))
			Expect(result.Log.Technician).To(Equal("Admin"))
			Expect(reload(host.ID).SpecsRAM).To(Equal("16GB"))

			result, err = service.Remove(ctx, stick.ID, accessory.ChangeDTO{AssetID: host.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Asset.SpecsRAM).To(Equal("8GB"))
			Expect(result.Accessory.Status).To(Equal(accessory.StatusAvailable))
			Expect(result.Accessory.AssetID).To(BeNil())
			Expect(reload(host.ID).SpecsRAM).To(Equal("8GB"))
		})

		It("should fill an empty RAM field and keep adding", func() {
			host := createAsset("PC-2", "", "", "")
			big := createAccessory("RAM", "16GB")
			small := createAccessory("RAM", "8GB")

			_, err := service.Install(ctx, big.ID, accessory.ChangeDTO{AssetID: host.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(reload(host.ID).SpecsRAM).To(Equal("16GB"))

			_, err = service.Install(ctx, small.ID, accessory.ChangeDTO{AssetID: host.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(reload(host.ID).SpecsRAM).To(Equal("24GB"))
		})

		It("should use the technician from the request context", func() {
			host := createAsset("PC-3", "4GB", "", "")
			stick := createAccessory("RAM", "4GB")

			result, err := service.Install(internal.ContextWithTechnician(ctx, "Ketut"), stick.ID, accessory.ChangeDTO{AssetID: host.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Log.Technician).To(Equal("Ketut"))
		})
	})

	Describe("Install and Remove storage", func() {
		It("should fill the primary slot, then the secondary, then append", func() {
			host := createAsset("PC-4", "", "", "")
			first := createAccessory("SSD", "Samsung 980 500GB")
			second := createAccessory("HDD", "WD Blue 1TB")
			third := createAccessory("Storage", "Crucial 1TB")

			for _, item := range []*accessory.Accessory{first, second, third} {
				_, err := service.Install(ctx, item.ID, accessory.ChangeDTO{AssetID: host.ID})
				Expect(err).NotTo(HaveOccurred())
			}

			a := reload(host.ID)
			Expect(a.SpecsStorage).To(Equal("Samsung 980 500GB"))
			Expect(a.SpecsStorage2).To(Equal("WD Blue 1TB + Crucial 1TB"))

			_, err := service.Remove(ctx, third.ID, accessory.ChangeDTO{AssetID: host.ID})
			Expect(err).NotTo(HaveOccurred())
			a = reload(host.ID)
			Expect(a.SpecsStorage).To(Equal("Samsung 980 500GB"))
			Expect(a.SpecsStorage2).To(Equal("WD Blue 1TB"))

			_, err = service.Remove(ctx, first.ID, accessory.ChangeDTO{AssetID: host.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(reload(host.ID).SpecsStorage).To(Equal(""))
		})

		It("should leave specs untouched for accessories outside the RAM and storage families", func() {
			host := createAsset("PC-5", "8GB", "256GB SSD", "")
			mouse := createAccessory("Mouse", "MX Master 3")

			result, err := service.Install(ctx, mouse.ID, accessory.ChangeDTO{AssetID: host.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Asset.SpecsRAM).To(Equal("8GB"))
			Expect(result.Asset.SpecsStorage).To(Equal("256GB SSD"))
		})
	})

	Describe("preconditions", func() {
		It("should reject installing an accessory that is already installed", func() {
			host := createAsset("PC-6", "8GB", "", "")
			stick := createAccessory("RAM", "8GB")
			_, err := service.Install(ctx, stick.ID, accessory.ChangeDTO{AssetID: host.ID})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Install(ctx, stick.ID, accessory.ChangeDTO{AssetID: host.ID})
			Expect(err).To(MatchError(internal.ErrAccessoryNotAvailable))
			Expect(reload(host.ID).SpecsRAM).To(Equal("16GB"))
		})

		It("should reject removing an accessory that is not installed", func() {
			host := createAsset("PC-7", "8GB", "", "")
			stick := createAccessory("RAM", "8GB")

			_, err := service.Remove(ctx, stick.ID, accessory.ChangeDTO{AssetID: host.ID})
			Expect(err).To(MatchError(internal.ErrAccessoryNotInstalled))
		})

		It("should reject removing from a different asset", func() {
			host := createAsset("PC-8", "8GB", "", "")
			other := createAsset("PC-9", "8GB", "", "")
			stick := createAccessory("RAM", "8GB")
			_, err := service.Install(ctx, stick.ID, accessory.ChangeDTO{AssetID: host.ID})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Remove(ctx, stick.ID, accessory.ChangeDTO{AssetID: other.ID})
			Expect(err).To(MatchError(internal.ErrAccessoryHostMismatch))
			Expect(reload(other.ID).SpecsRAM).To(Equal("8GB"))
		})

		It("should return not found for a missing asset or accessory", func() {
			stick := createAccessory("RAM", "8GB")
			_, err := service.Install(ctx, stick.ID, accessory.ChangeDTO{AssetID: 404})
			Expect(err).To(MatchError(internal.ErrAssetNotFound))

			host := createAsset("PC-10", "8GB", "", "")
			_, err = service.Install(ctx, 404, accessory.ChangeDTO{AssetID: host.ID})
			Expect(err).To(MatchError(internal.ErrAccessoryNotFound))
		})
	})

	Describe("when the log entry cannot be written", func() {
		var failing *accessory.Service

		BeforeEach(func() {
			logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
			repo := &failingLogRepository{RepositoryAPI: accessoryPostgres.NewAccessoryRepository(db), err: errors.New("insert failed")}
			failing = accessory.NewService(repo, publisher, "Admin", logger)
		})

		reloadAccessory := func(id int64) *accessoryDatamodel.Accessory {
			var a accessoryDatamodel.Accessory
			Expect(db.First(&a, id).Error).To(Succeed())
			return &a
		}

		It("should roll back an install", func() {
			host := createAsset("PC-20", "8GB", "", "")
			stick := createAccessory("RAM", "8GB")
			published := len(publisher.events)

			_, err := failing.Install(ctx, stick.ID, accessory.ChangeDTO{AssetID: host.ID})
			Expect(err).To(HaveOccurred())

			Expect(reload(host.ID).SpecsRAM).To(Equal("8GB"))
			row := reloadAccessory(stick.ID)
			Expect(row.Status).To(Equal(accessory.StatusAvailable))
			Expect(row.AssetID).To(BeNil())
			Expect(publisher.events).To(HaveLen(published))
		})

		It("should roll back a removal", func() {
			host := createAsset("PC-21", "8GB", "", "")
			stick := createAccessory("RAM", "8GB")
			_, err := service.Install(ctx, stick.ID, accessory.ChangeDTO{AssetID: host.ID})
			Expect(err).NotTo(HaveOccurred())

			_, err = failing.Remove(ctx, stick.ID, accessory.ChangeDTO{AssetID: host.ID})
			Expect(err).To(HaveOccurred())

			Expect(reload(host.ID).SpecsRAM).To(Equal("16GB"))
			row := reloadAccessory(stick.ID)
			Expect(row.Status).To(Equal(accessory.StatusInstalled))
			Expect(*row.AssetID).To(Equal(host.ID))

			var count int64
			Expect(db.Model(&accessoryDatamodel.Log{}).Where("accessory_id = ?", stick.ID).Count(&count).Error).To(Succeed())
			Expect(count).To(Equal(int64(1)))
		})
	})

	Describe("UpdateAccessory", func() {
		It("should refuse to set Installed directly", func() {
			stick := createAccessory("RAM", "8GB")
			_, err := service.UpdateAccessory(ctx, stick.ID, accessory.UpdateAccessoryDTO{Type: "RAM", Model: "8GB", Status: "Installed"})
			Expect(err).To(HaveOccurred())
			appErr, _ := internal.IsAppError(err)
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidTransition))
		})

		It("should mark stock as Faulty", func() {
			stick := createAccessory("RAM", "8GB")
			updated, err := service.UpdateAccessory(ctx, stick.ID, accessory.UpdateAccessoryDTO{Type: "RAM", Model: "8GB", Status: "Faulty"})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(accessory.StatusFaulty))
		})
	})

	Describe("DeleteAccessory", func() {
		It("should remove the accessory and its logs", func() {
			host := createAsset("PC-11", "8GB", "", "")
			stick := createAccessory("RAM", "8GB")
			_, err := service.Install(ctx, stick.ID, accessory.ChangeDTO{AssetID: host.ID})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Remove(ctx, stick.ID, accessory.ChangeDTO{AssetID: host.ID})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.DeleteAccessory(ctx, stick.ID)).To(Succeed())

			var count int64
			Expect(db.Model(&accessoryDatamodel.Log{}).Where("accessory_id = ?", stick.ID).Count(&count).Error).To(Succeed())
			Expect(count).To(BeZero())
			Expect(service.DeleteAccessory(ctx, stick.ID)).To(MatchError(internal.ErrAccessoryNotFound))
		})

		It("should refuse to delete an installed accessory", func() {
			host := createAsset("PC-12", "8GB", "", "")
			stick := createAccessory("RAM", "8GB")
			_, err := service.Install(ctx, stick.ID, accessory.ChangeDTO{AssetID: host.ID})
			Expect(err).NotTo(HaveOccurred())

			err = service.DeleteAccessory(ctx, stick.ID)
			Expect(err).To(HaveOccurred())
			appErr, _ := internal.IsAppError(err)
			Expect(appErr.Type).To(Equal(internal.ErrorTypeConflict))
		})
	})

	Describe("AssetConfiguration", func() {
		It("should list installed parts, available stock and the log", func() {
			host := createAsset("PC-13", "8GB", "", "")
			installed := createAccessory("RAM", "8GB")
			createAccessory("SSD", "Spare 1TB")
			_, err := service.Install(ctx, installed.ID, accessory.ChangeDTO{AssetID: host.ID})
			Expect(err).NotTo(HaveOccurred())

			cfg, err := service.AssetConfiguration(ctx, host.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Asset.SpecsRAM).To(Equal("16GB"))
			Expect(cfg.Installed).To(HaveLen(1))
			Expect(*cfg.Installed[0].AssetSerialNumber).To(Equal("PC-13"))
			Expect(cfg.Available).To(HaveLen(1))
			Expect(cfg.Logs).To(HaveLen(1))
			Expect(cfg.Logs[0].AccessoryModel).To(Equal("8GB"))
		})

		It("should return not found for a missing asset", func() {
			_, err := service.AssetConfiguration(ctx, 404)
			Expect(err).To(MatchError(internal.ErrAssetNotFound))
		})
	})

	It("should return the accessory with its history", func() {
		host := createAsset("PC-14", "8GB", "", "")
		stick := createAccessory("RAM", "8GB")
		_, err := service.Install(ctx, stick.ID, accessory.ChangeDTO{AssetID: host.ID})
		Expect(err).NotTo(HaveOccurred())

		detail, err := service.GetAccessory(ctx, stick.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(detail.Accessory.Status).To(Equal(accessory.StatusInstalled))
		Expect(detail.Logs).To(HaveLen(1))
		Expect(detail.Logs[0].AssetSerialNumber).To(Equal("PC-14"))
	})
})
