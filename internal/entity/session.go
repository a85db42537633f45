package entity

// SessionStatus is the lifecycle state of the extraction session.
type SessionStatus string

const (
	SessionIdle     SessionStatus = "IDLE"
	SessionRunning  SessionStatus = "RUNNING"
	SessionStopping SessionStatus = "STOPPING"
)

// Session is a consistent view of the process-wide extraction session. At most
// one session is RUNNING at any time.
type Session struct {
	IsRunning      bool
	Status         SessionStatus
	SnapshotName   string
	TotalExtracted int64
}
