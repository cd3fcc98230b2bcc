package config

// SnapshotConfig controls on-disk copies of reconciled auction state.
// An empty Dir disables snapshot persistence.
type SnapshotConfig struct {
	Dir           string
	RetentionDays int
}

func loadSnapshots() SnapshotConfig {
	return SnapshotConfig{
		Dir:           envOrDefault(envSnapshotDir, ""),
		RetentionDays: intEnvOrDefault(envSnapshotDays, defaultSnapshotDays),
	}
}

// Enabled reports whether snapshots should be written and read.
func (c SnapshotConfig) Enabled() bool {
	return c.Dir != ""
}
