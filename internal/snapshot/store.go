package snapshot

import "context"

// Store is the single interface all snapshot storage providers implement.
type Store interface {
	// Ping verifies the storage backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any held resources.
	Close() error

	// Put persists the snapshot and returns the object key it was
	// stored under.
	Put(ctx context.Context, snap *Snapshot) (string, error)

	// Get loads the snapshot stored under key.
	Get(ctx context.Context, key string) (*Snapshot, error)

	// List returns the keys of all snapshots under prefix, oldest first.
	// Use "" to list every snapshot in the bucket.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Config holds all settings needed to connect to a snapshot store.
type Config struct {
	// Endpoint is the host:port of the object storage server.
	// Example: "localhost:9000" for local MinIO.
	Endpoint string

	// AccessKey is the access key ID (MinIO / S3 style).
	AccessKey string

	// SecretKey is the secret access key.
	SecretKey string

	// Bucket is the bucket all snapshots are written to.
	Bucket string

	// Region is used by region-aware backends. Leave empty for MinIO.
	Region string

	// UseSSL controls whether TLS is used for the connection.
	UseSSL bool
}
