// Package atom enumerates the telemetry atom kinds the collector can pull.
package atom

import "fmt"

// Kind identifies one category of telemetry record with its own schema and
// pull cadence. Values outside the declared set are rejected at dispatch.
type Kind int32

const (
	// KindUnknown is the zero value and never dispatches.
	KindUnknown Kind = iota

	// Live-snapshot kinds, computed from the radio subsystem at pull time.
	KindSimSlotState
	KindSupportedRadioAccessFamily
	KindCarrierIDTableVersion

	// Buffered kinds, consumed from the event store under cooldown.
	KindVoiceCallRatUsage
	KindVoiceCallSession
	KindIncomingSms
	KindOutgoingSms
	KindDataCallSession
)

var kindNames = map[Kind]string{
	KindSimSlotState:               "sim_slot_state",
	KindSupportedRadioAccessFamily: "supported_radio_access_family",
	KindCarrierIDTableVersion:      "carrier_id_table_version",
	KindVoiceCallRatUsage:          "voice_call_rat_usage",
	KindVoiceCallSession:           "voice_call_session",
	KindIncomingSms:                "incoming_sms",
	KindOutgoingSms:                "outgoing_sms",
	KindDataCallSession:            "data_call_session",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

// String returns the snake_case name used on the wire and in metrics labels.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int32(k))
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// Buffered reports whether records of this kind are consumed from the event
// store (and therefore subject to pull cooldown) rather than computed live.
func (k Kind) Buffered() bool {
	switch k {
	case KindVoiceCallRatUsage, KindVoiceCallSession, KindIncomingSms,
		KindOutgoingSms, KindDataCallSession:
		return true
	default:
		return false
	}
}

// Parse resolves a kind from its wire name.
// Returns ErrUnknownKind for names outside the declared set.
func Parse(name string) (Kind, error) {
	if k, ok := kindsByName[name]; ok {
		return k, nil
	}
	return KindUnknown, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Kinds returns all declared kinds in dispatch order.
func Kinds() []Kind {
	return []Kind{
		KindSimSlotState,
		KindSupportedRadioAccessFamily,
		KindCarrierIDTableVersion,
		KindVoiceCallRatUsage,
		KindVoiceCallSession,
		KindIncomingSms,
		KindOutgoingSms,
		KindDataCallSession,
	}
}
