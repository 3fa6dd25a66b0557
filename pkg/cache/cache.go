// Package cache provides pluggable byte caches and the cache-key
// scheme for the inspection pipeline. Pipeline stages cache on the
// content hash of the plan document, so any edit to the plan changes
// every downstream key and stale reports can never be served.
package cache

import (
	"context"
	"time"
)

// TTLs per stage. Reports and artifacts derive deterministically from
// the plan hash, so long TTLs are safe; they exist to bound disk usage,
// not to enforce freshness.
const (
	// TTLReport is the lifetime of cached inspection reports.
	TTLReport = 7 * 24 * time.Hour

	// TTLArtifact is the lifetime of cached rendered artifacts.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores raw bytes under string keys.
type Cache interface {
	// Get retrieves a value. The boolean reports a hit; a miss is not
	// an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// ReportKeyOpts are the engine parameters that affect an inspection
// report. Two runs with the same plan but different parameters must not
// share a cache entry.
type ReportKeyOpts struct {
	GridSize      float64
	SnapThreshold float64
	SearchStep    float64
	SearchRadius  float64
}

// ArtifactKeyOpts are the render parameters that affect an artifact.
type ArtifactKeyOpts struct {
	Format     string
	Scale      float64
	ShowGrid   bool
	ShowSwings bool
	ShowLabels bool
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// PlanKey is the key for a stored plan document snapshot.
	PlanKey(planHash string) string

	// ReportKey is the key for an inspection report of the given plan.
	ReportKey(planHash string, opts ReportKeyOpts) string

	// ArtifactKey is the key for one rendered artifact of the given plan.
	ArtifactKey(planHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key scheme: a stage prefix plus a hash
// of the plan hash and the stage options.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// PlanKey generates a key for a plan snapshot.
func (k *DefaultKeyer) PlanKey(planHash string) string {
	return "plan:" + planHash
}

// ReportKey generates a key for an inspection report.
func (k *DefaultKeyer) ReportKey(planHash string, opts ReportKeyOpts) string {
	return hashKey("report", planHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", planHash, opts)
}
