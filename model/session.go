package model

import "time"

// SessionInfo holds the baselines package install times are compared with.
type SessionInfo struct {
	BootTime    time.Time `json:"boot_time" yaml:"boot_time"`
	SessionTime time.Time `json:"session_time" yaml:"session_time"`
}
