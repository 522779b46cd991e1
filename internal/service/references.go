package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/escolalab/escolar-api/internal/tenancy"
)

// schoolLookup resolves the owning school of a record by id. Every repository
// exposes one as SchoolIDOf.
type schoolLookup func(ctx context.Context, id uint) (uint, error)

// guard denies the operation unless the permission table allows it.
func guard(role tenancy.Role, entity tenancy.Entity, op tenancy.Operation) error {
	if !tenancy.Can(role, entity, op) {
		return ErrNotPermitted
	}
	return nil
}

// ensureSameSchool verifies that the referenced record exists and belongs to
// the operating school. A record missing globally yields notFound; one owned
// by another school yields ErrWrongSchool. An empty-listing scope only checks
// existence, since it can only be held by an administrator on a read path.
func ensureSameSchool(ctx context.Context, scope tenancy.Scope, id uint, lookup schoolLookup, notFound error) error {
	owner, err := lookup(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound
		}
		return err
	}
	if scope.EmptyListing {
		return nil
	}
	if owner != scope.SchoolID {
		return ErrWrongSchool
	}
	return nil
}
