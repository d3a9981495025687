package radio

import (
	"context"
	"sync"

	"github.com/okian/atompull/internal/domain/model"
)

// StaticInfo is an Info implementation backed by fixed values, settable
// at construction or later via Set*. A zero StaticInfo reports not
// ready for every query, mirroring a radio subsystem that has not
// finished initializing.
type StaticInfo struct {
	mu             sync.RWMutex
	ready          bool
	slotState      model.SimSlotState
	accessFamily   int64
	carrierVersion int32
}

// Option applies a configuration option to the StaticInfo.
type Option func(*StaticInfo)

// WithSimSlotState sets the slot snapshot and marks the provider ready.
func WithSimSlotState(s model.SimSlotState) Option {
	return func(i *StaticInfo) {
		i.slotState = s
		i.ready = true
	}
}

// WithRadioAccessFamily sets the supported RAF bitmask and marks the
// provider ready.
func WithRadioAccessFamily(raf int64) Option {
	return func(i *StaticInfo) {
		i.accessFamily = raf
		i.ready = true
	}
}

// WithCarrierIDTableVersion sets the carrier ID table version.
func WithCarrierIDTableVersion(v int32) Option {
	return func(i *StaticInfo) {
		i.carrierVersion = v
	}
}

// NewStaticInfo creates a provider from the given options. With no
// options it reports not ready until SetReady is called.
func NewStaticInfo(opts ...Option) *StaticInfo {
	i := &StaticInfo{carrierVersion: UnknownCarrierIDTableVersion}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// SetReady flips the provider into the ready state.
func (i *StaticInfo) SetReady() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.ready = true
}

// SimSlotState implements Info.
func (i *StaticInfo) SimSlotState(ctx context.Context) (model.SimSlotState, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if !i.ready {
		return model.SimSlotState{}, ErrNotReady
	}
	return i.slotState, nil
}

// RadioAccessFamily implements Info.
func (i *StaticInfo) RadioAccessFamily(ctx context.Context) (int64, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if !i.ready {
		return 0, ErrNotReady
	}
	return i.accessFamily, nil
}

// CarrierIDTableVersion implements Info.
func (i *StaticInfo) CarrierIDTableVersion(ctx context.Context) (int32, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if !i.ready {
		return UnknownCarrierIDTableVersion, ErrNotReady
	}
	return i.carrierVersion, nil
}
