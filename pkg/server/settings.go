package server

import (
	"context"
	"log"

	"github.com/matst80/slask-filters/pkg/storage"
	"github.com/matst80/slask-filters/pkg/types"
)

// AttributeReloader applies the custom attribute file on a settings change.
// With a Store, redis is authoritative: the file is written to redis and
// every instance picks it up from the change channel.
type AttributeReloader struct {
	Disk   *storage.DiskStorage
	Config *types.CustomAttributeConfig
	Store  *AttributeStore
}

// Reload keeps the current attributes when the file cannot be read.
func (r *AttributeReloader) Reload(ctx context.Context) error {
	if r.Store == nil {
		return r.Disk.LoadCustomAttributes(r.Config)
	}
	next := types.NewCustomAttributeConfig()
	if err := r.Disk.LoadCustomAttributes(next); err != nil {
		return err
	}
	if err := r.Store.Save(ctx, next.List()); err != nil {
		return err
	}
	log.Printf("Pushed %d custom attributes to redis", len(next.Names()))
	return nil
}
