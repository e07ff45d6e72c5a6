package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Olprog59/go-realty/internal/domain"
	"github.com/Olprog59/go-realty/internal/dto"
	"github.com/Olprog59/go-realty/internal/mocks"
)

type imageFixture struct {
	svc        *ImageService
	images     *mocks.ImageRepositoryMock
	properties *mocks.PropertyRepositoryMock
	cache      *mocks.CacheMock
}

func newImageFixture() *imageFixture {
	f := &imageFixture{
		images:     mocks.NewImageRepositoryMock(),
		properties: mocks.NewPropertyRepositoryMock(),
		cache:      mocks.NewCacheMock(),
	}
	f.svc = NewImageService(f.images, f.properties, f.cache)
	return f
}

func (f *imageFixture) seedProperty(t *testing.T) *domain.Property {
	t.Helper()
	p := &domain.Property{Name: "Host", Address: "1 Main St", Price: 100, CodeInternal: 1, Year: 2001}
	_, err := f.properties.Insert(context.Background(), p)
	require.NoError(t, err)
	return p
}

func TestImageCreate_DefaultsToEnabled(t *testing.T) {
	f := newImageFixture()
	p := f.seedProperty(t)

	resp, err := f.svc.Create(context.Background(), &dto.ImageRequest{
		IDProperty: p.ID.Hex(),
		File:       "front.jpg",
	})
	require.NoError(t, err)

	assert.True(t, resp.Enabled)
	assert.Equal(t, p.ID.Hex(), resp.IDProperty)
}

func TestImageCreate_RejectsUnknownProperty(t *testing.T) {
	f := newImageFixture()

	_, err := f.svc.Create(context.Background(), &dto.ImageRequest{
		IDProperty: primitive.NewObjectID().Hex(),
		File:       "front.jpg",
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields[0], "idProperty")
}

func TestImageList_FiltersByEnabled(t *testing.T) {
	f := newImageFixture()
	p := f.seedProperty(t)

	ctx := context.Background()
	_, err := f.images.Insert(ctx, &domain.PropertyImage{PropertyID: p.ID, File: "on.jpg", Enabled: true})
	require.NoError(t, err)
	_, err = f.images.Insert(ctx, &domain.PropertyImage{PropertyID: p.ID, File: "off.jpg", Enabled: false})
	require.NoError(t, err)

	enabled := true
	page, err := f.svc.List(ctx, domain.ImageFilter{PropertyID: p.ID.Hex(), Enabled: &enabled}, 1, 10, false)
	require.NoError(t, err)

	require.Len(t, page.Data, 1)
	assert.Equal(t, "on.jpg", page.Data[0].File)
	assert.Equal(t, int64(1), page.Meta.Total)
}

func TestImagePatch_MoveToUnknownPropertyRejected(t *testing.T) {
	f := newImageFixture()
	p := f.seedProperty(t)

	id, err := f.images.Insert(context.Background(), &domain.PropertyImage{PropertyID: p.ID, File: "a.jpg", Enabled: true})
	require.NoError(t, err)

	_, err = f.svc.Patch(context.Background(), id, map[string]any{
		"idProperty": primitive.NewObjectID().Hex(),
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestImagePatch_TogglesEnabled(t *testing.T) {
	f := newImageFixture()
	p := f.seedProperty(t)

	id, err := f.images.Insert(context.Background(), &domain.PropertyImage{PropertyID: p.ID, File: "a.jpg", Enabled: true})
	require.NoError(t, err)

	resp, err := f.svc.Patch(context.Background(), id, map[string]any{"enabled": false})
	require.NoError(t, err)
	assert.False(t, resp.Enabled)
}

func TestImageDelete_NotFound(t *testing.T) {
	f := newImageFixture()

	err := f.svc.Delete(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}
