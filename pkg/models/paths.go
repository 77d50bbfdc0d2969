package models

// Filesystem locations used by hostprep on the target host.
const (
	// HostprepPath holds configuration files.
	HostprepPath = "/etc/hostprep"

	// HostprepLibPath holds hostprep state (setup ID, install manifest).
	HostprepLibPath = "/var/lib/hostprep"

	// HostprepLogPath is the rotated log file location.
	HostprepLogPath = "/var/log/hostprep.log"
)
