package wishlist

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jordanvasquez/threadline-backend/internal/catalog"
	"github.com/jordanvasquez/threadline-backend/internal/users"
	pkgerrors "github.com/jordanvasquez/threadline-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := openTestDB(t)
	svc, err := NewService(ServiceParams{
		WishlistRepo: NewRepository(conn),
		CatalogRepo:  catalog.NewRepository(conn),
		UserRepo:     users.NewRepository(conn),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, conn
}

func TestServiceRequiresDependencies(t *testing.T) {
	if _, err := NewService(ServiceParams{}); err == nil {
		t.Fatal("expected error for missing wishlist repo")
	}
}

func TestServiceAddReportsNewVersusExisting(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	user := mustCreateTestUser(t, conn)
	product := mustCreateTestProduct(t, conn, 11, true)

	result, err := svc.Add(ctx, user.ID, 11)
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	if !result.NewlyAdded {
		t.Fatal("first add must report newly added")
	}
	if len(result.Refs) != 1 || result.Refs[0] != product.ID {
		t.Fatalf("expected canonical set [%s], got %v", product.ID, result.Refs)
	}

	result, err = svc.Add(ctx, user.ID, 11)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if result.NewlyAdded {
		t.Fatal("second add must report already present")
	}
	if len(result.Refs) != 1 {
		t.Fatalf("set must stay a set, got %v", result.Refs)
	}
}

func TestServiceAddUnknownProduct(t *testing.T) {
	svc, conn := newTestService(t)
	user := mustCreateTestUser(t, conn)

	_, err := svc.Add(context.Background(), user.ID, 40404)
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestServiceRemoveReturnsCanonicalSet(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	user := mustCreateTestUser(t, conn)
	keep := mustCreateTestProduct(t, conn, 1, true)
	mustCreateTestProduct(t, conn, 2, true)

	if _, err := svc.Add(ctx, user.ID, 1); err != nil {
		t.Fatalf("add 1: %v", err)
	}
	if _, err := svc.Add(ctx, user.ID, 2); err != nil {
		t.Fatalf("add 2: %v", err)
	}

	refs, err := svc.Remove(ctx, user.ID, 2)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(refs) != 1 || refs[0] != keep.ID {
		t.Fatalf("expected canonical set [%s], got %v", keep.ID, refs)
	}

	// Removing again is a no-op that still returns the canonical set.
	refs, err = svc.Remove(ctx, user.ID, 2)
	if err != nil {
		t.Fatalf("remove non-member: %v", err)
	}
	if len(refs) != 1 {
		t.Fatalf("expected unchanged set, got %v", refs)
	}
}

func TestServiceRemoveUnknownProduct(t *testing.T) {
	svc, conn := newTestService(t)
	user := mustCreateTestUser(t, conn)

	_, err := svc.Remove(context.Background(), user.ID, 40404)
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestServiceRemoveResolvesInactiveProducts(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	user := mustCreateTestUser(t, conn)
	mustCreateTestProduct(t, conn, 1, false)

	// An inactive product still resolves for mutations so stale members
	// stay removable.
	if _, err := svc.Add(ctx, user.ID, 1); err != nil {
		t.Fatalf("add inactive product: %v", err)
	}
	refs, err := svc.Remove(ctx, user.ID, 1)
	if err != nil {
		t.Fatalf("remove inactive product: %v", err)
	}
	if len(refs) != 0 {
		t.Fatalf("expected empty set, got %v", refs)
	}
}

func TestServiceClear(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	user := mustCreateTestUser(t, conn)
	mustCreateTestProduct(t, conn, 1, true)
	if _, err := svc.Add(ctx, user.ID, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	refs, err := svc.Clear(ctx, user.ID)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(refs) != 0 {
		t.Fatalf("clear must return the empty set, got %v", refs)
	}

	// Unconditional: clearing an empty wishlist also succeeds.
	if _, err := svc.Clear(ctx, user.ID); err != nil {
		t.Fatalf("clear empty: %v", err)
	}
}

func TestServiceGetResolvesProjection(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	user := mustCreateTestUser(t, conn)
	active := mustCreateTestProduct(t, conn, 1, true)
	mustCreateTestProduct(t, conn, 2, false)

	if _, err := svc.Add(ctx, user.ID, 1); err != nil {
		t.Fatalf("add active: %v", err)
	}
	if _, err := svc.Add(ctx, user.ID, 2); err != nil {
		t.Fatalf("add inactive: %v", err)
	}

	view, err := svc.Get(ctx, user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(view.Products) != 1 {
		t.Fatalf("expected 1 resolved product, got %d", len(view.Products))
	}
	got := view.Products[0]
	if got.ProductID != active.PublicID {
		t.Fatalf("expected product %d, got %d", active.PublicID, got.ProductID)
	}
	if got.ProductName != active.Name || got.Brand != active.Brand {
		t.Fatalf("unexpected projection %+v", got)
	}
	if !got.InStock {
		t.Fatal("stocked product must project InStock=true")
	}

	// The filtered read must leave the raw set intact.
	refs, err := NewRepository(conn).ListRefs(ctx, user.ID)
	if err != nil {
		t.Fatalf("list refs: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("read must not mutate the set, got %d refs", len(refs))
	}
}

func TestServiceGetUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), uuid.New())
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected user-not-found error, got %v", err)
	}
}
