package settings

import (
	"context"

	"boulder-rain/logging"
)

const (
	// EventLoaded is emitted when the settings file was read (or created) at startup.
	EventLoaded logging.EventType = "settings.loaded"
	// EventReloaded is emitted after an explicit reload.
	EventReloaded logging.EventType = "settings.reloaded"
	// EventLoadFailed is emitted when the settings file could not be parsed.
	EventLoadFailed logging.EventType = "settings.load_failed"
	// EventSaved is emitted after the settings file was written.
	EventSaved logging.EventType = "settings.saved"
)

// LoadedPayload summarises the settings that are now in effect.
type LoadedPayload struct {
	Path             string `json:"path"`
	Created          bool   `json:"created,omitempty"`
	Homing           bool   `json:"homing"`
	AutoEnableOnJoin bool   `json:"autoEnableOnJoin"`
	MaxEffects       int    `json:"maxEffects"`
}

// LoadFailedPayload records why the file was rejected.
type LoadFailedPayload struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// SavedPayload records where settings were written.
type SavedPayload struct {
	Path string `json:"path"`
}

// Loaded publishes the settings that were loaded at startup.
func Loaded(ctx context.Context, pub logging.Publisher, payload LoadedPayload) {
	publish(ctx, pub, EventLoaded, logging.SeverityInfo, payload)
}

// Reloaded publishes the settings that replaced the previous ones.
func Reloaded(ctx context.Context, pub logging.Publisher, payload LoadedPayload) {
	publish(ctx, pub, EventReloaded, logging.SeverityInfo, payload)
}

// LoadFailed publishes a rejected settings file.
func LoadFailed(ctx context.Context, pub logging.Publisher, payload LoadFailedPayload) {
	publish(ctx, pub, EventLoadFailed, logging.SeverityError, payload)
}

// Saved publishes a successful write.
func Saved(ctx context.Context, pub logging.Publisher, payload SavedPayload) {
	publish(ctx, pub, EventSaved, logging.SeverityDebug, payload)
}

func publish(ctx context.Context, pub logging.Publisher, eventType logging.EventType, severity logging.Severity, payload any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     eventType,
		Actor:    logging.EntityRef{Kind: logging.EntityKindWorld},
		Severity: severity,
		Category: logging.CategorySystem,
		Payload:  payload,
	})
}
