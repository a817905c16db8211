package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeAssetIssued         = "asset.issued"
	EventTypeAssetReturned       = "asset.returned"
	EventTypeAssetStatusChanged  = "asset.status_changed"
	EventTypeRepairLogged        = "repair.logged"
	EventTypeAccessoryInstalled  = "accessory.installed"
	EventTypeAccessoryRemoved    = "accessory.removed"
	EventTypeCameraReplaced      = "cctv.replaced"
	EventTypeCameraStatusChanged = "cctv.status_changed"
	EventTypeInventoryChanged    = "inventory.changed"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// InventoryEvent reports a committed change to one record. Related carries the ids of other
// records touched by the same transaction, e.g. the assignment closed by a return.
type InventoryEvent struct {
	BaseEvent
	Entity   string           `json:"entity"`
	EntityID int64            `json:"entity_id"`
	Action   string           `json:"action"`
	Related  map[string]int64 `json:"related,omitempty"`
}

func NewInventoryEvent(eventType, entity string, entityID int64, action string, related map[string]int64) *InventoryEvent {
	data := map[string]interface{}{
		"entity":    entity,
		"entity_id": entityID,
		"action":    action,
	}
	for k, v := range related {
		data[k] = v
	}

	return &InventoryEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data:      data,
		},
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Related:  related,
	}
}

// NewChangedEvent is the generic create/update/delete notification for plain CRUD.
func NewChangedEvent(entity string, entityID int64, action string) *InventoryEvent {
	return NewInventoryEvent(EventTypeInventoryChanged, entity, entityID, action, nil)
}
