package collector

import (
	"github.com/okian/atompull/internal/adapters/encode"
	"github.com/okian/atompull/internal/domain/atom"
	"github.com/okian/atompull/internal/domain/model"
)

// Per-kind record schemas. Field order is the wire contract; do not
// reorder writes.

func buildRatUsageRecord(u model.VoiceCallRatUsage) encode.Record {
	return encode.New(atom.KindVoiceCallRatUsage).
		WriteInt(u.CarrierID).
		WriteInt(u.Rat).
		WriteLong(u.TotalDurationMillis / millisPerSecond).
		WriteLong(u.CallCount).
		Build()
}

func buildVoiceCallSessionRecord(s model.VoiceCallSession, nonce int32) encode.Record {
	return encode.New(atom.KindVoiceCallSession).
		WriteInt(s.BearerAtStart).
		WriteInt(s.BearerAtEnd).
		WriteInt(s.Direction).
		WriteInt(s.SetupDurationMillis).
		WriteBool(s.SetupFailed).
		WriteInt(s.DisconnectReasonCode).
		WriteInt(s.DisconnectExtraCode).
		WriteString(s.DisconnectExtraMessage).
		WriteInt(s.RatAtStart).
		WriteInt(s.RatAtEnd).
		WriteLong(s.RatSwitchCount).
		WriteLong(s.CodecBitmask).
		WriteInt(s.ConcurrentCallCountAtStart).
		WriteInt(s.ConcurrentCallCountAtEnd).
		WriteInt(s.SimSlotIndex).
		WriteBool(s.IsMultiSim).
		WriteBool(s.IsEsim).
		WriteInt(s.CarrierID).
		WriteBool(s.SrvccCompleted).
		WriteLong(s.SrvccFailureCount).
		WriteLong(s.SrvccCancellationCount).
		WriteBool(s.RttEnabled).
		WriteBool(s.IsEmergency).
		WriteBool(s.IsRoaming).
		WriteInt(nonce).
		Build()
}

func buildIncomingSmsRecord(sms model.IncomingSms) encode.Record {
	return encode.New(atom.KindIncomingSms).
		WriteInt(sms.SmsFormat).
		WriteInt(sms.SmsTech).
		WriteInt(sms.Rat).
		WriteInt(sms.SmsType).
		WriteInt(sms.TotalParts).
		WriteInt(sms.ReceivedParts).
		WriteBool(sms.Blocked).
		WriteInt(sms.Error).
		WriteBool(sms.IsRoaming).
		WriteInt(sms.SimSlotIndex).
		WriteBool(sms.IsMultiSim).
		WriteBool(sms.IsEsim).
		WriteInt(sms.CarrierID).
		WriteLong(sms.MessageID).
		Build()
}

func buildOutgoingSmsRecord(sms model.OutgoingSms) encode.Record {
	return encode.New(atom.KindOutgoingSms).
		WriteInt(sms.SmsFormat).
		WriteInt(sms.SmsTech).
		WriteInt(sms.Rat).
		WriteInt(sms.SendResult).
		WriteInt(sms.ErrorCode).
		WriteBool(sms.IsRoaming).
		WriteBool(sms.IsFromDefaultApp).
		WriteInt(sms.SimSlotIndex).
		WriteBool(sms.IsMultiSim).
		WriteBool(sms.IsEsim).
		WriteInt(sms.CarrierID).
		WriteLong(sms.MessageID).
		WriteInt(sms.RetryID).
		Build()
}

func buildDataCallSessionRecord(s model.DataCallSession) encode.Record {
	return encode.New(atom.KindDataCallSession).
		WriteInt(s.Dimension).
		WriteBool(s.IsMultiSim).
		WriteBool(s.IsEsim).
		WriteInt(s.Profile).
		WriteInt(s.ApnTypeBitmask).
		WriteInt(s.CarrierID).
		WriteBool(s.IsRoaming).
		WriteInt(s.RatAtEnd).
		WriteBool(s.OosAtEnd).
		WriteLong(s.RatSwitchCount).
		WriteBool(s.IsOpportunistic).
		WriteInt(s.IPType).
		WriteBool(s.SetupFailed).
		WriteInt(s.FailureCause).
		WriteInt(s.SuggestedRetryMillis).
		WriteInt(s.DeactivateReason).
		WriteLong(s.DurationMinutes).
		WriteBool(s.Ongoing).
		Build()
}

func buildSimSlotStateRecord(state model.SimSlotState) encode.Record {
	return encode.New(atom.KindSimSlotState).
		WriteInt(state.ActiveSlotCount).
		WriteInt(state.ActiveSimCount).
		WriteInt(state.ActiveEsimCount).
		Build()
}

func buildRadioAccessFamilyRecord(raf int64) encode.Record {
	return encode.New(atom.KindSupportedRadioAccessFamily).
		WriteLong(raf).
		Build()
}

func buildCarrierIDTableVersionRecord(version int32) encode.Record {
	return encode.New(atom.KindCarrierIDTableVersion).
		WriteInt(version).
		Build()
}
