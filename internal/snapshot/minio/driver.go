// Package minio provides a MinIO implementation of snapshot.Store.
//
// Usage:
//
//	cfg := &snapshot.Config{Endpoint: "localhost:9000", AccessKey: "…", SecretKey: "…", Bucket: "schemas"}
//	store, err := minio.New(ctx, cfg)
//	if err != nil { ... }
//	defer store.Close()
//
//	key, err := store.Put(ctx, snap)
package minio

import (
	"bytes"
	"context"
	"encoding/json"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/lakereflect/lakereflect/internal/snapshot"
)

// Driver is a MinIO implementation of snapshot.Store.
// It is safe for concurrent use by multiple goroutines.
type Driver struct {
	client *miniogo.Client
	bucket string
}

// New connects to MinIO using the provided Config and returns a Driver.
// It calls Ping to validate the connection before returning.
func New(ctx context.Context, cfg *snapshot.Config) (*Driver, error) {
	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, mapError(err, "failed to create minio client")
	}

	d := &Driver{client: client, bucket: cfg.Bucket}

	if err := d.Ping(ctx); err != nil {
		return nil, err
	}

	return d, nil
}

// --- snapshot.Store implementation ---

// Ping verifies the bucket exists and is reachable.
func (d *Driver) Ping(ctx context.Context) error {
	_, err := d.client.BucketExists(ctx, d.bucket)
	if err != nil {
		return mapError(err, "ping failed")
	}
	return nil
}

// Close is a no-op for MinIO — the SDK client holds no persistent connections.
func (d *Driver) Close() error {
	return nil
}

// Put persists the snapshot as a JSON object and returns its key.
func (d *Driver) Put(ctx context.Context, snap *snapshot.Snapshot) (string, error) {
	payload, err := json.Marshal(snap)
	if err != nil {
		return "", mapError(err, "failed to encode snapshot")
	}

	key := snap.Key()
	_, err = d.client.PutObject(ctx, d.bucket, key,
		bytes.NewReader(payload), int64(len(payload)),
		miniogo.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", mapError(err, "failed to put snapshot")
	}
	return key, nil
}

// Get loads and decodes the snapshot stored under key.
func (d *Driver) Get(ctx context.Context, key string) (*snapshot.Snapshot, error) {
	obj, err := d.client.GetObject(ctx, d.bucket, key, miniogo.GetObjectOptions{})
	if err != nil {
		return nil, mapError(err, "failed to get snapshot")
	}
	defer obj.Close()

	var snap snapshot.Snapshot
	if err := json.NewDecoder(obj).Decode(&snap); err != nil {
		return nil, mapError(err, "failed to decode snapshot")
	}
	return &snap, nil
}

// List returns the keys of all snapshots under prefix.
// Keys embed an RFC3339 timestamp, so lexical order is chronological order.
func (d *Driver) List(ctx context.Context, prefix string) ([]string, error) {
	if prefix == "" {
		prefix = snapshot.KeyPrefix + "/"
	}

	opts := miniogo.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}

	keys := []string{}
	for obj := range d.client.ListObjects(ctx, d.bucket, opts) {
		if obj.Err != nil {
			return nil, mapError(obj.Err, "failed to list snapshots")
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}
