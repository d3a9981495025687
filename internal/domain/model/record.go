// Package model contains the telemetry record types passed between layers.
//
// Records are immutable once appended to the store; the collector only
// reads them. Field order in the serialized output is defined by the
// encode adapter, not by struct layout.
package model

import "github.com/okian/atompull/internal/domain/atom"

// VoiceCallRatUsage is an aggregate bucket keyed by carrier and radio
// access technology. Raw store entries of this kind may repeat a key;
// the collector folds them by (CarrierID, Rat) at pull time, summing
// duration and call count. The fold is lossy: only the sums survive.
type VoiceCallRatUsage struct {
	CarrierID           int32 `json:"carrier_id"`
	Rat                 int32 `json:"rat"`
	TotalDurationMillis int64 `json:"total_duration_millis"`
	CallCount           int64 `json:"call_count"`
}

// Key returns the composite sort/fold key. The carrier dominates.
func (u VoiceCallRatUsage) Key() int64 {
	return int64(u.CarrierID)<<32 | int64(u.Rat)
}

// VoiceCallSession describes one completed voice call.
type VoiceCallSession struct {
	BearerAtStart              int32  `json:"bearer_at_start"`
	BearerAtEnd                int32  `json:"bearer_at_end"`
	Direction                  int32  `json:"direction"`
	SetupDurationMillis        int32  `json:"setup_duration_millis"`
	SetupFailed                bool   `json:"setup_failed"`
	DisconnectReasonCode       int32  `json:"disconnect_reason_code"`
	DisconnectExtraCode        int32  `json:"disconnect_extra_code"`
	DisconnectExtraMessage     string `json:"disconnect_extra_message"`
	RatAtStart                 int32  `json:"rat_at_start"`
	RatAtEnd                   int32  `json:"rat_at_end"`
	RatSwitchCount             int64  `json:"rat_switch_count"`
	CodecBitmask               int64  `json:"codec_bitmask"`
	ConcurrentCallCountAtStart int32  `json:"concurrent_call_count_at_start"`
	ConcurrentCallCountAtEnd   int32  `json:"concurrent_call_count_at_end"`
	SimSlotIndex               int32  `json:"sim_slot_index"`
	IsMultiSim                 bool   `json:"is_multi_sim"`
	IsEsim                     bool   `json:"is_esim"`
	CarrierID                  int32  `json:"carrier_id"`
	SrvccCompleted             bool   `json:"srvcc_completed"`
	SrvccFailureCount          int64  `json:"srvcc_failure_count"`
	SrvccCancellationCount     int64  `json:"srvcc_cancellation_count"`
	RttEnabled                 bool   `json:"rtt_enabled"`
	IsEmergency                bool   `json:"is_emergency"`
	IsRoaming                  bool   `json:"is_roaming"`
}

// IncomingSms describes one received SMS.
type IncomingSms struct {
	SmsFormat     int32 `json:"sms_format"`
	SmsTech       int32 `json:"sms_tech"`
	Rat           int32 `json:"rat"`
	SmsType       int32 `json:"sms_type"`
	TotalParts    int32 `json:"total_parts"`
	ReceivedParts int32 `json:"received_parts"`
	Blocked       bool  `json:"blocked"`
	Error         int32 `json:"error"`
	IsRoaming     bool  `json:"is_roaming"`
	SimSlotIndex  int32 `json:"sim_slot_index"`
	IsMultiSim    bool  `json:"is_multi_sim"`
	IsEsim        bool  `json:"is_esim"`
	CarrierID     int32 `json:"carrier_id"`
	MessageID     int64 `json:"message_id"`
}

// OutgoingSms describes one sent SMS.
type OutgoingSms struct {
	SmsFormat        int32 `json:"sms_format"`
	SmsTech          int32 `json:"sms_tech"`
	Rat              int32 `json:"rat"`
	SendResult       int32 `json:"send_result"`
	ErrorCode        int32 `json:"error_code"`
	IsRoaming        bool  `json:"is_roaming"`
	IsFromDefaultApp bool  `json:"is_from_default_app"`
	SimSlotIndex     int32 `json:"sim_slot_index"`
	IsMultiSim       bool  `json:"is_multi_sim"`
	IsEsim           bool  `json:"is_esim"`
	CarrierID        int32 `json:"carrier_id"`
	MessageID        int64 `json:"message_id"`
	RetryID          int32 `json:"retry_id"`
}

// DataCallSession describes one data-call session.
type DataCallSession struct {
	Dimension            int32 `json:"dimension"`
	IsMultiSim           bool  `json:"is_multi_sim"`
	IsEsim               bool  `json:"is_esim"`
	Profile              int32 `json:"profile"`
	ApnTypeBitmask       int32 `json:"apn_type_bitmask"`
	CarrierID            int32 `json:"carrier_id"`
	IsRoaming            bool  `json:"is_roaming"`
	RatAtEnd             int32 `json:"rat_at_end"`
	OosAtEnd             bool  `json:"oos_at_end"`
	RatSwitchCount       int64 `json:"rat_switch_count"`
	IsOpportunistic      bool  `json:"is_opportunistic"`
	IPType               int32 `json:"ip_type"`
	SetupFailed          bool  `json:"setup_failed"`
	FailureCause         int32 `json:"failure_cause"`
	SuggestedRetryMillis int32 `json:"suggested_retry_millis"`
	DeactivateReason     int32 `json:"deactivate_reason"`
	DurationMinutes      int64 `json:"duration_minutes"`
	Ongoing              bool  `json:"ongoing"`
}

// SimSlotState is a live snapshot of SIM slot population.
type SimSlotState struct {
	ActiveSlotCount int32 `json:"active_slot_count"`
	ActiveSimCount  int32 `json:"active_sim_count"`
	ActiveEsimCount int32 `json:"active_esim_count"`
}

// RawEvent is the ingest envelope carrying exactly one buffered record.
// EventID provides idempotency across retried submissions.
type RawEvent struct {
	EventID string    `json:"event_id"`
	Kind    atom.Kind `json:"-"`

	VoiceCallRatUsage *VoiceCallRatUsage `json:"voice_call_rat_usage,omitempty"`
	VoiceCallSession  *VoiceCallSession  `json:"voice_call_session,omitempty"`
	IncomingSms       *IncomingSms       `json:"incoming_sms,omitempty"`
	OutgoingSms       *OutgoingSms       `json:"outgoing_sms,omitempty"`
	DataCallSession   *DataCallSession   `json:"data_call_session,omitempty"`
}

// Resolve infers and stores the kind from the populated payload.
// Exactly one payload pointer must be set.
func (e *RawEvent) Resolve() error {
	e.Kind = atom.KindUnknown
	set := 0
	if e.VoiceCallRatUsage != nil {
		e.Kind = atom.KindVoiceCallRatUsage
		set++
	}
	if e.VoiceCallSession != nil {
		e.Kind = atom.KindVoiceCallSession
		set++
	}
	if e.IncomingSms != nil {
		e.Kind = atom.KindIncomingSms
		set++
	}
	if e.OutgoingSms != nil {
		e.Kind = atom.KindOutgoingSms
		set++
	}
	if e.DataCallSession != nil {
		e.Kind = atom.KindDataCallSession
		set++
	}
	if set != 1 {
		e.Kind = atom.KindUnknown
		return ErrAmbiguousPayload
	}
	return nil
}
