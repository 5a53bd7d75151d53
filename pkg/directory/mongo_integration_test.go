//go:build integration

package directory

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestMongoSource_Integration(t *testing.T) {
	uri := os.Getenv("ORGCHART_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("ORGCHART_TEST_MONGO_URI not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	src, err := DialMongo(ctx, uri, "orgchart_test", "employees_"+time.Now().Format("150405"))
	if err != nil {
		t.Fatalf("DialMongo() error: %v", err)
	}
	defer src.Close(ctx)
	defer src.coll.Drop(ctx)

	if err := src.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}
	if err := src.Replace(ctx, staff()); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	got, err := src.Employees(ctx)
	if err != nil {
		t.Fatalf("Employees: %v", err)
	}
	if diff := cmp.Diff(staff(), got); diff != "" {
		t.Errorf("Employees mismatch (-want +got):\n%s", diff)
	}
}
