package vortex

// rawState exposes the engine state so lifecycle tests can inspect it
// after Destroy.
func (h *Hasher) rawState() *engineState { return h.st }

func withTierSet(s *tierSet) DispatcherOption {
	return func(o *dispatcherOptions) {
		o.tiers = s
	}
}
