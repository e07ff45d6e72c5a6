package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Olprog59/go-realty/internal/domain"
	"github.com/Olprog59/go-realty/internal/dto"
	"github.com/Olprog59/go-realty/internal/mocks"
)

type traceFixture struct {
	svc        *TraceService
	traces     *mocks.TraceRepositoryMock
	properties *mocks.PropertyRepositoryMock
	cache      *mocks.CacheMock
}

func newTraceFixture() *traceFixture {
	f := &traceFixture{
		traces:     mocks.NewTraceRepositoryMock(),
		properties: mocks.NewPropertyRepositoryMock(),
		cache:      mocks.NewCacheMock(),
	}
	f.svc = NewTraceService(f.traces, f.properties, f.cache)
	return f
}

func (f *traceFixture) seedProperty(t *testing.T) *domain.Property {
	t.Helper()
	p := &domain.Property{Name: "Host", Address: "1 Main St", Price: 100, CodeInternal: 1, Year: 2001}
	_, err := f.properties.Insert(context.Background(), p)
	require.NoError(t, err)
	return p
}

func TestTraceCreate_GetByIDRoundTrip(t *testing.T) {
	f := newTraceFixture()
	p := f.seedProperty(t)

	when := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	created, err := f.svc.Create(context.Background(), &dto.TraceRequest{
		IDProperty: p.ID.Hex(),
		DateSale:   when,
		Name:       "First sale",
		Value:      300_000,
		Tax:        9_000,
	})
	require.NoError(t, err)

	fetched, err := f.svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
	assert.True(t, fetched.DateSale.Equal(when))
}

func TestTraceCreate_RejectsUnknownProperty(t *testing.T) {
	f := newTraceFixture()

	_, err := f.svc.Create(context.Background(), &dto.TraceRequest{
		IDProperty: primitive.NewObjectID().Hex(),
		DateSale:   time.Now(),
		Name:       "Ghost sale",
		Value:      100,
		Tax:        1,
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields[0], "idProperty")
}

func TestTraceList_FiltersByProperty(t *testing.T) {
	f := newTraceFixture()
	first := f.seedProperty(t)
	second := f.seedProperty(t)

	ctx := context.Background()
	_, err := f.traces.Insert(ctx, &domain.PropertyTrace{PropertyID: first.ID, Name: "A", Value: 1, Tax: 0})
	require.NoError(t, err)
	_, err = f.traces.Insert(ctx, &domain.PropertyTrace{PropertyID: second.ID, Name: "B", Value: 1, Tax: 0})
	require.NoError(t, err)

	page, err := f.svc.List(ctx, domain.TraceFilter{PropertyID: first.ID.Hex()}, 1, 10, false)
	require.NoError(t, err)

	require.Len(t, page.Data, 1)
	assert.Equal(t, "A", page.Data[0].Name)
}

func TestTracePatch_UpdatesSaleDate(t *testing.T) {
	f := newTraceFixture()
	p := f.seedProperty(t)

	id, err := f.traces.Insert(context.Background(), &domain.PropertyTrace{PropertyID: p.ID, Name: "Sale", Value: 1, Tax: 0})
	require.NoError(t, err)

	resp, err := f.svc.Patch(context.Background(), id, map[string]any{
		"dateSale": "2023-01-15T09:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, 2023, resp.DateSale.Year())
}

func TestTraceReplace_NotFound(t *testing.T) {
	f := newTraceFixture()
	p := f.seedProperty(t)

	_, err := f.svc.Replace(context.Background(), primitive.NewObjectID().Hex(), &dto.TraceRequest{
		IDProperty: p.ID.Hex(),
		DateSale:   time.Now(),
		Name:       "Sale",
		Value:      1,
		Tax:        0,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
