package snapshots

import (
	"fmt"
	"path/filepath"
)

const (
	auctionDir   = "auction"
	manifestFile = "manifest.json"
)

// AuctionSnapshotPath builds the path to the auction snapshot for a given date.
func AuctionSnapshotPath(basePath, date string) string {
	return filepath.Join(basePath, auctionDir, fmt.Sprintf("%s.json", date))
}

// ManifestPath builds the path to the snapshot manifest.
func ManifestPath(basePath string) string {
	return filepath.Join(basePath, manifestFile)
}
