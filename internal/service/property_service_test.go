package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Olprog59/go-realty/internal/domain"
	"github.com/Olprog59/go-realty/internal/dto"
	"github.com/Olprog59/go-realty/internal/mocks"
)

type propertyFixture struct {
	svc        *PropertyService
	properties *mocks.PropertyRepositoryMock
	owners     *mocks.OwnerRepositoryMock
	images     *mocks.ImageRepositoryMock
	traces     *mocks.TraceRepositoryMock
	cache      *mocks.CacheMock
}

func newPropertyFixture() *propertyFixture {
	f := &propertyFixture{
		properties: mocks.NewPropertyRepositoryMock(),
		owners:     mocks.NewOwnerRepositoryMock(),
		images:     mocks.NewImageRepositoryMock(),
		traces:     mocks.NewTraceRepositoryMock(),
		cache:      mocks.NewCacheMock(),
	}
	f.svc = NewPropertyService(f.properties, f.owners, f.images, f.traces, f.cache)
	return f
}

func (f *propertyFixture) seedOwner(t *testing.T) *domain.Owner {
	t.Helper()
	o := &domain.Owner{Name: "Jane Smith", Address: "12 Oak Ave", Photo: "jane.jpg", Birthday: "1980-04-02"}
	_, err := f.owners.Insert(context.Background(), o)
	require.NoError(t, err)
	return o
}

func (f *propertyFixture) seedProperty(t *testing.T, name string, price int64) *domain.Property {
	t.Helper()
	p := &domain.Property{Name: name, Address: "1 Main St", Price: price, CodeInternal: 7, Year: 2001}
	_, err := f.properties.Insert(context.Background(), p)
	require.NoError(t, err)
	return p
}

func validPropertyRequest(ownerID string) *dto.PropertyRequest {
	return &dto.PropertyRequest{
		Name:         "Seaside Villa",
		Address:      "1 Shore Rd",
		Price:        350_000,
		CodeInternal: 42,
		Year:         2010,
		IDOwner:      ownerID,
	}
}

func TestPropertyList_SecondCallServedFromCache(t *testing.T) {
	f := newPropertyFixture()
	f.seedProperty(t, "A", 100)
	f.seedProperty(t, "B", 200)

	first, err := f.svc.List(context.Background(), domain.PropertyFilter{}, 1, 10, false)
	require.NoError(t, err)

	second, err := f.svc.List(context.Background(), domain.PropertyFilter{}, 1, 10, false)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.properties.FindCalls, "second call must not hit the store")
	assert.Equal(t, 1, f.properties.CountCalls)
}

func TestPropertyList_RefreshBypassesCache(t *testing.T) {
	f := newPropertyFixture()
	f.seedProperty(t, "A", 100)

	_, err := f.svc.List(context.Background(), domain.PropertyFilter{}, 1, 10, false)
	require.NoError(t, err)

	_, err = f.svc.List(context.Background(), domain.PropertyFilter{}, 1, 10, true)
	require.NoError(t, err)

	assert.Equal(t, 2, f.properties.FindCalls, "refresh must rebuild the page")

	// The refreshed page replaced the cached one
	_, err = f.svc.List(context.Background(), domain.PropertyFilter{}, 1, 10, false)
	require.NoError(t, err)
	assert.Equal(t, 2, f.properties.FindCalls)
}

func TestPropertyList_DistinctFiltersUseDistinctEntries(t *testing.T) {
	f := newPropertyFixture()
	f.seedProperty(t, "Villa", 100)
	f.seedProperty(t, "Loft", 200)

	_, err := f.svc.List(context.Background(), domain.PropertyFilter{Name: "villa"}, 1, 10, false)
	require.NoError(t, err)
	_, err = f.svc.List(context.Background(), domain.PropertyFilter{Name: "loft"}, 1, 10, false)
	require.NoError(t, err)

	assert.Equal(t, 2, f.properties.FindCalls)
	assert.Equal(t, 2, f.cache.SetCalls)
}

func TestPropertyList_LastPageMath(t *testing.T) {
	f := newPropertyFixture()
	for i := 0; i < 20; i++ {
		f.seedProperty(t, "Row House", 100)
	}

	page, err := f.svc.List(context.Background(), domain.PropertyFilter{}, 1, 6, false)
	require.NoError(t, err)

	assert.Equal(t, int64(20), page.Meta.Total)
	assert.Equal(t, int64(4), page.Meta.LastPage)
	assert.Len(t, page.Data, 6)
}

func TestPropertyList_EmptyResultHasLastPageZero(t *testing.T) {
	f := newPropertyFixture()

	page, err := f.svc.List(context.Background(), domain.PropertyFilter{}, 1, 10, false)
	require.NoError(t, err)

	assert.Equal(t, int64(0), page.Meta.Total)
	assert.Equal(t, int64(0), page.Meta.LastPage)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
}

func TestPropertyList_ClampsPageAndLimit(t *testing.T) {
	f := newPropertyFixture()
	f.seedProperty(t, "A", 100)

	page, err := f.svc.List(context.Background(), domain.PropertyFilter{}, 0, 0, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Meta.Page)
	assert.Equal(t, int64(10), page.Meta.Limit)

	page, err = f.svc.List(context.Background(), domain.PropertyFilter{}, -3, 5000, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Meta.Page)
	assert.Equal(t, int64(100), page.Meta.Limit)
}

func TestPropertyList_PicksEnabledCoverImage(t *testing.T) {
	f := newPropertyFixture()
	p := f.seedProperty(t, "With Images", 100)
	bare := f.seedProperty(t, "Without Images", 100)

	_, err := f.images.Insert(context.Background(), &domain.PropertyImage{PropertyID: p.ID, File: "dark.jpg", Enabled: false})
	require.NoError(t, err)
	_, err = f.images.Insert(context.Background(), &domain.PropertyImage{PropertyID: p.ID, File: "front.jpg", Enabled: true})
	require.NoError(t, err)

	page, err := f.svc.List(context.Background(), domain.PropertyFilter{}, 1, 10, false)
	require.NoError(t, err)
	require.Len(t, page.Data, 2)

	byID := map[string]*dto.PropertyResponse{}
	for _, resp := range page.Data {
		byID[resp.ID] = resp
	}

	withImage := byID[p.ID.Hex()]
	require.NotNil(t, withImage.Image)
	assert.Equal(t, "front.jpg", withImage.Image.File)
	assert.True(t, withImage.Image.Enabled)

	assert.Nil(t, byID[bare.ID.Hex()].Image)
}

func TestPropertyCreate_GetByIDRoundTrip(t *testing.T) {
	f := newPropertyFixture()
	owner := f.seedOwner(t)

	req := validPropertyRequest(owner.ID.Hex())
	req.Image = &dto.ImageRequest{File: "villa.jpg"}

	created, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	fetched, err := f.svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, created, fetched)
	assert.Equal(t, "Seaside Villa", fetched.Name)
	assert.Equal(t, owner.ID.Hex(), fetched.IDOwner)
	require.NotNil(t, fetched.Image, "embedded image must be attached")
	assert.Equal(t, "villa.jpg", fetched.Image.File)
	assert.True(t, fetched.Image.Enabled, "embedded image defaults to enabled")
}

func TestPropertyCreate_RejectsInvalidPayload(t *testing.T) {
	f := newPropertyFixture()

	req := validPropertyRequest("")
	req.Name = ""
	req.Year = 1500

	_, err := f.svc.Create(context.Background(), req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Fields)
}

func TestPropertyCreate_RejectsUnknownOwner(t *testing.T) {
	f := newPropertyFixture()

	req := validPropertyRequest(primitive.NewObjectID().Hex())

	_, err := f.svc.Create(context.Background(), req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields[0], "idOwner")
}

func TestPropertyReplace_NotFound(t *testing.T) {
	f := newPropertyFixture()

	_, err := f.svc.Replace(context.Background(), primitive.NewObjectID().Hex(), validPropertyRequest(""))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPropertyPatch_AppliesRecognizedFields(t *testing.T) {
	f := newPropertyFixture()
	p := f.seedProperty(t, "Old Name", 100)

	// Keys match case-insensitively; numbers arrive as float64 from JSON
	resp, err := f.svc.Patch(context.Background(), p.ID.Hex(), map[string]any{
		"Name":  "New Name",
		"PRICE": float64(250_000),
	})
	require.NoError(t, err)

	assert.Equal(t, "New Name", resp.Name)
	assert.Equal(t, int64(250_000), resp.Price)
	assert.Equal(t, "1 Main St", resp.Address, "untouched fields keep their value")
}

func TestPropertyPatch_EmptyObjectRejected(t *testing.T) {
	f := newPropertyFixture()
	p := f.seedProperty(t, "A", 100)

	_, err := f.svc.Patch(context.Background(), p.ID.Hex(), map[string]any{})
	assert.ErrorIs(t, err, ErrEmptyPatch)
}

func TestPropertyPatch_UnknownKeysOnlyRejected(t *testing.T) {
	f := newPropertyFixture()
	p := f.seedProperty(t, "A", 100)

	_, err := f.svc.Patch(context.Background(), p.ID.Hex(), map[string]any{
		"surface": float64(80),
		"garden":  true,
	})
	assert.ErrorIs(t, err, ErrEmptyPatch)

	stored, getErr := f.properties.GetByID(context.Background(), p.ID.Hex())
	require.NoError(t, getErr)
	assert.Equal(t, "A", stored.Name, "rejected patch must not write anything")
}

func TestPropertyPatch_BadValueRejected(t *testing.T) {
	f := newPropertyFixture()
	p := f.seedProperty(t, "A", 100)

	_, err := f.svc.Patch(context.Background(), p.ID.Hex(), map[string]any{
		"price": "expensive",
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestPropertyPatch_NotFound(t *testing.T) {
	f := newPropertyFixture()

	_, err := f.svc.Patch(context.Background(), primitive.NewObjectID().Hex(), map[string]any{
		"name": "x",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPropertyDelete_CascadesToImagesAndTraces(t *testing.T) {
	f := newPropertyFixture()
	doomed := f.seedProperty(t, "Doomed", 100)
	survivor := f.seedProperty(t, "Survivor", 100)

	ctx := context.Background()
	for _, propertyID := range []primitive.ObjectID{doomed.ID, survivor.ID} {
		_, err := f.images.Insert(ctx, &domain.PropertyImage{PropertyID: propertyID, File: "a.jpg", Enabled: true})
		require.NoError(t, err)
		_, err = f.traces.Insert(ctx, &domain.PropertyTrace{PropertyID: propertyID, Name: "Sale", Value: 1, Tax: 0})
		require.NoError(t, err)
	}

	require.NoError(t, f.svc.Delete(ctx, doomed.ID.Hex()))

	_, err := f.properties.GetByID(ctx, doomed.ID.Hex())
	assert.Error(t, err)

	remainingImages, err := f.images.FindByPropertyIDs(ctx, []string{doomed.ID.Hex(), survivor.ID.Hex()})
	require.NoError(t, err)
	require.Len(t, remainingImages, 1)
	assert.Equal(t, survivor.ID, remainingImages[0].PropertyID)

	remainingTraces, err := f.traces.Find(ctx, domain.TraceFilter{}, 0, 100)
	require.NoError(t, err)
	require.Len(t, remainingTraces, 1)
	assert.Equal(t, survivor.ID, remainingTraces[0].PropertyID)
}

func TestPropertyDelete_NotFound(t *testing.T) {
	f := newPropertyFixture()

	err := f.svc.Delete(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPropertyList_StoreErrorPropagates(t *testing.T) {
	f := newPropertyFixture()
	f.properties.Err = errors.New("boom")

	_, err := f.svc.List(context.Background(), domain.PropertyFilter{}, 1, 10, false)
	assert.Error(t, err)
	assert.Equal(t, 0, f.cache.SetCalls, "failed pages are never cached")
}
