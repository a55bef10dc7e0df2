package runtime

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/custodia-labs/deep-core/internal/core/domain"
	"github.com/custodia-labs/deep-core/internal/core/ports/driven/mocks"
)

func namedMock(name string) *mocks.MockSearchProvider {
	m := new(mocks.MockSearchProvider)
	m.On("Name").Return(name).Maybe()
	m.On("CancelSearch").Return().Maybe()
	return m
}

func TestNewProviders(t *testing.T) {
	p := NewProviders()
	if p == nil {
		t.Fatal("expected non-nil registry")
	}
	if p.Name() != "None" {
		t.Errorf("expected None, got %s", p.Name())
	}

	_, err := p.Search(context.Background(), "x")
	if !errors.Is(err, domain.ErrSearchFailed) {
		t.Errorf("expected ErrSearchFailed without providers, got %v", err)
	}
}

func TestProviders_FirstRegisteredIsActive(t *testing.T) {
	p := NewProviders()
	p.Register("stub", namedMock("Stub Provider"))
	p.Register("filesystem", namedMock("Files"))

	key, _ := p.Active()
	if key != "stub" {
		t.Errorf("expected stub active, got %s", key)
	}
	if p.Name() != "Stub Provider" {
		t.Errorf("expected Stub Provider, got %s", p.Name())
	}

	keys := p.Keys()
	if len(keys) != 2 || keys[0] != "filesystem" || keys[1] != "stub" {
		t.Errorf("unexpected keys %v", keys)
	}
}

func TestProviders_SetActive(t *testing.T) {
	stub := new(mocks.MockSearchProvider)
	stub.On("CancelSearch").Return().Once()
	files := namedMock("Files")

	p := NewProviders()
	p.Register("stub", stub)
	p.Register("filesystem", files)

	if err := p.SetActive("filesystem"); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}
	stub.AssertExpectations(t)

	// Re-selecting the active provider cancels nothing
	if err := p.SetActive("filesystem"); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}

	if err := p.SetActive("spotlight"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if key, _ := p.Active(); key != "filesystem" {
		t.Errorf("failed switch must keep the active provider, got %s", key)
	}
}

func TestProviders_SearchDelegates(t *testing.T) {
	files := namedMock("Files")
	results := []*domain.SearchResult{{ID: "1", Title: "Notes.md"}}
	files.On("Search", mock.Anything, "notes").Return(results, nil).Once()
	files.On("Search", mock.Anything, "boom").Return(nil, domain.ErrSearchFailed).Once()

	p := NewProviders()
	p.Register("filesystem", files)

	got, err := p.Search(context.Background(), "notes")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("unexpected results %v", got)
	}

	_, err = p.Search(context.Background(), "boom")
	if !errors.Is(err, domain.ErrSearchFailed) {
		t.Errorf("expected wrapped ErrSearchFailed, got %v", err)
	}

	files.AssertExpectations(t)
}

func TestProviders_CancelSearchFansOut(t *testing.T) {
	a := new(mocks.MockSearchProvider)
	b := new(mocks.MockSearchProvider)
	a.On("CancelSearch").Return().Once()
	b.On("CancelSearch").Return().Once()

	p := NewProviders()
	p.Register("a", a)
	p.Register("b", b)
	p.CancelSearch()

	a.AssertExpectations(t)
	b.AssertExpectations(t)
}
