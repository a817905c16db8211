package realtime_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/core/events"
	"github.com/frahmantamala/asset-management/internal/realtime"
	"github.com/gorilla/websocket"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRealtime(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Realtime Suite")
}

var _ = Describe("Hub", func() {
	var (
		hub    *realtime.Hub
		bus    *events.EventBus
		server *httptest.Server
		cancel context.CancelFunc
	)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		cfg := internal.RealtimeConfig{
			Enabled:      true,
			WriteTimeout: time.Second,
			PingInterval: time.Second,
			SendBuffer:   8,
		}
		hub = realtime.NewHub(cfg, "http://allowed.test", logger)

		var ctx context.Context
		ctx, cancel = context.WithCancel(context.Background())
		go hub.Run(ctx)

		bus = events.NewEventBus(logger)
		bus.Subscribe(events.AllEvents, hub.HandleEvent)

		server = httptest.NewServer(hub)
	})

	AfterEach(func() {
		server.Close()
		cancel()
	})

	dial := func(origin string) (*websocket.Conn, error) {
		url := "ws" + strings.TrimPrefix(server.URL, "http")
		header := map[string][]string{}
		if origin != "" {
			header["Origin"] = []string{origin}
		}
		conn, _, err := websocket.DefaultDialer.Dial(url, header)
		return conn, err
	}

	It("should forward published events to connected clients", func() {
		conn, err := dial("http://allowed.test")
		Expect(err).NotTo(HaveOccurred())
		defer conn.Close()

		Eventually(hub.ClientCount).Should(Equal(1))

		event := events.NewInventoryEvent(events.EventTypeAssetIssued, "asset", 7, events.ActionUpdated, map[string]int64{"assignment_id": 3})
		Expect(bus.Publish(context.Background(), event)).To(Succeed())

		Expect(conn.SetReadDeadline(time.Now().Add(2 * time.Second))).To(Succeed())
		_, raw, err := conn.ReadMessage()
		Expect(err).NotTo(HaveOccurred())

		var msg realtime.Message
		Expect(json.Unmarshal(raw, &msg)).To(Succeed())
		Expect(msg.Type).To(Equal(events.EventTypeAssetIssued))
		Expect(msg.ID).To(Equal(event.EventID()))

		data, ok := msg.Data.(map[string]interface{})
		Expect(ok).To(BeTrue())
		Expect(data["entity"]).To(Equal("asset"))
		Expect(data["entity_id"]).To(BeNumerically("==", 7))
		Expect(data["assignment_id"]).To(BeNumerically("==", 3))
	})

	It("should reject a foreign origin", func() {
		_, err := dial("http://evil.test")
		Expect(err).To(HaveOccurred())
	})

	It("should drop clients that disconnect", func() {
		conn, err := dial("")
		Expect(err).NotTo(HaveOccurred())
		Eventually(hub.ClientCount).Should(Equal(1))

		Expect(conn.Close()).To(Succeed())
		Eventually(hub.ClientCount).Should(Equal(0))
	})
})
