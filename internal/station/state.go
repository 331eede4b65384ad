package station

// State names one step of the wake cycle. Transitions run strictly in
// declaration order whatever the step outcomes; only a fatal fault leaves
// the sequence, into StateError.
type State int

const (
	StateInit State = iota
	StateConnecting
	StateSyncing
	StateSampling
	StateFetching
	StateRendering
	StateUploading
	StateSuspending
	StateError
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateConnecting:
		return "connecting"
	case StateSyncing:
		return "syncing"
	case StateSampling:
		return "sampling"
	case StateFetching:
		return "fetching"
	case StateRendering:
		return "rendering"
	case StateUploading:
		return "uploading"
	case StateSuspending:
		return "suspending"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
