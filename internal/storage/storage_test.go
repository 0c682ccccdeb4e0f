package storage

import (
	"context"
	"errors"
	"testing"

	"homelytics/internal/catalog"
)

type stubSource struct {
	entries []catalog.Entry
	err     error
}

func (s stubSource) Load(context.Context) ([]catalog.Entry, error) {
	return s.entries, s.err
}

func (stubSource) Name() string { return "stub" }

func (stubSource) Close() {}

func TestNewCatalogSourceWithoutDatabase(t *testing.T) {
	src, err := NewCatalogSource(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	cat, err := LoadCatalog(context.Background(), src)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if e, ok := cat.Lookup("sofa"); !ok || e.Price != 107800 {
		t.Fatalf("unexpected sofa entry %+v", e)
	}
}

func TestLoadCatalogErrors(t *testing.T) {
	boom := errors.New("boom")
	if _, err := LoadCatalog(context.Background(), stubSource{err: boom}); !errors.Is(err, boom) {
		t.Errorf("expected wrapped source error, got %v", err)
	}
	if _, err := LoadCatalog(context.Background(), stubSource{}); err == nil {
		t.Error("expected error for empty catalog")
	}
	bad := stubSource{entries: []catalog.Entry{{Key: "sofa", Name: "Sofa", Price: -1}}}
	if _, err := LoadCatalog(context.Background(), bad); !errors.Is(err, catalog.ErrInvalidEntry) {
		t.Errorf("expected ErrInvalidEntry, got %v", err)
	}
}

func TestLoadCatalogOverridesPrices(t *testing.T) {
	src := stubSource{entries: []catalog.Entry{{Key: "sofa", Name: "Sofa", Price: 90000}}}
	cat, err := LoadCatalog(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	if e, _ := cat.Lookup("sofa"); e.Price != 90000 {
		t.Fatalf("price = %d", e.Price)
	}
}
