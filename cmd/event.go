package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/asset-management/internal/core/events"
	"github.com/frahmantamala/asset-management/internal/realtime"
	"github.com/frahmantamala/asset-management/pkg/logger"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "events",
	Short: "Event management commands",
	Long:  `Inspect inventory change events: publish test events in-process or tail a running server's change feed`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a test event",
	Long:  `Publish a test inventory event to an in-process event bus for testing and debugging`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		publishTestEvent(args[0])
	},
}

var tailEventCmd = &cobra.Command{
	Use:   "tail",
	Short: "Print the change feed of a running server",
	Long:  `Connect to the websocket change feed and print every event until interrupted`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := tailEvents(feedURL); err != nil {
			fmt.Fprintf(os.Stderr, "tail failed: %v\n", err)
			os.Exit(1)
		}
	},
}

var (
	eventEntity   string
	eventEntityID int64
	feedURL       string
)

func publishTestEvent(eventType string) {
	logger := logger.LoggerWrapper()

	eventBus := events.NewEventBus(logger)

	eventBus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
		logger.Info("test handler received event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	})

	testEvent := events.NewInventoryEvent(eventType, eventEntity, eventEntityID, events.ActionUpdated, nil)

	logger.Info("publishing test event", "event_type", eventType, "event_id", testEvent.EventID())

	if err := eventBus.PublishSync(context.Background(), testEvent); err != nil {
		logger.Error("failed to publish event", "error", err)
		return
	}

	logger.Info("test event published successfully")
}

func tailEvents(url string) error {
	logger := logger.LoggerWrapper()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", url, err)
	}
	defer conn.Close()

	logger.Info("connected to change feed", "url", url)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan error, 1)
	go func() {
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				done <- err
				return
			}

			var msg realtime.Message
			if err := json.Unmarshal(raw, &msg); err != nil {
				logger.Warn("unreadable frame", "error", err)
				continue
			}
			fmt.Printf("%s %-22s %v\n", msg.Timestamp, msg.Type, msg.Data)
		}
	}()

	select {
	case sig := <-sigChan:
		logger.Info("received signal, closing change feed", "signal", sig)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		return nil
	case err := <-done:
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return nil
		}
		return err
	}
}

func init() {
	publishEventCmd.Flags().StringVar(&eventEntity, "entity", "asset", "Entity named in the test event")
	publishEventCmd.Flags().Int64Var(&eventEntityID, "id", 1, "Entity id carried by the test event")
	tailEventCmd.Flags().StringVar(&feedURL, "url", "ws://localhost:8080/api/v1/ws", "Change feed websocket URL")

	eventCmd.AddCommand(publishEventCmd)
	eventCmd.AddCommand(tailEventCmd)

	rootCmd.AddCommand(eventCmd)
}
