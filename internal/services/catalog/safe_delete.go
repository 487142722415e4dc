// Package catalog holds the dependency-aware delete workflow shared by
// professions and service offerings.
package catalog

import (
	"context"

	"github.com/taskfixer/servicios-api/internal/auth"
	"github.com/taskfixer/servicios-api/internal/authz"
	"github.com/taskfixer/servicios-api/internal/storage"
)

// DeletableStore is what an entity must provide to participate in
// safe-delete: a fetch, a dependency census, and both mutation paths.
type DeletableStore interface {
	FindRecord(ctx context.Context, id string) (*storage.Record, error)
	CountDependents(ctx context.Context, id string) (int64, error)
	Deactivate(ctx context.Context, id string) error
	Remove(ctx context.Context, id string) error
}

type Result struct {
	Status      string `json:"status"` // "deleted" | "deactivated"
	ID          string `json:"id"`
	LinkedCount int64  `json:"linked_count"`
}

type SafeDeleter struct {
	Store DeletableStore
}

// Delete runs the linear fetch → authorize → census → branch sequence.
// Records with live dependents are deactivated and stay re-activatable;
// unreferenced records are removed permanently. The census is taken fresh on
// every call. A dependent created between census and mutation is an accepted
// race: there is no multi-document transaction here.
func (d *SafeDeleter) Delete(ctx context.Context, id string, ident auth.Identity) (*Result, error) {
	rec, err := d.Store.FindRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.CanMutate(rec.OwnerRef, ident); err != nil {
		return nil, err
	}

	linked, err := d.Store.CountDependents(ctx, rec.ID)
	if err != nil {
		return nil, err
	}

	if linked > 0 {
		if err := d.Store.Deactivate(ctx, rec.ID); err != nil {
			return nil, err
		}
		return &Result{Status: "deactivated", ID: rec.ID, LinkedCount: linked}, nil
	}

	if err := d.Store.Remove(ctx, rec.ID); err != nil {
		return nil, err
	}
	return &Result{Status: "deleted", ID: rec.ID, LinkedCount: 0}, nil
}
