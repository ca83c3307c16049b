package render

// State is the render-readiness state of the manager. A single
// authoritative value guarded by the manager's state lock.
//
// Transitions:
//
//	StateUnconfigured → StateConfiguring → StateConfigured
//	StateConfigured   → StateReconfiguring → StateConfigured
//
// The step into StateConfigured happens on the tick after a successful
// Configure call, never synchronously, so the host notification fires on
// the render-tick thread exactly once per configuration. There is no
// terminal state: Deinitialize resets to StateUnconfigured.
type State int

const (
	// StateUnconfigured means no stream has been configured.
	StateUnconfigured State = iota
	// StateConfiguring means Configure ran from unconfigured and the
	// next tick will commit the transition.
	StateConfiguring
	// StateConfigured means frames are accepted and renderable.
	StateConfigured
	// StateReconfiguring means Configure ran on an already configured
	// stream and live renderers will be reconfigured on the next tick.
	StateReconfiguring
)

// String returns a human-readable state name for diagnostics.
func (s State) String() string {
	switch s {
	case StateUnconfigured:
		return "unconfigured"
	case StateConfiguring:
		return "configuring"
	case StateConfigured:
		return "configured"
	case StateReconfiguring:
		return "reconfiguring"
	}
	return "unknown"
}
