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

type ownerFixture struct {
	svc    *OwnerService
	owners *mocks.OwnerRepositoryMock
	cache  *mocks.CacheMock
}

func newOwnerFixture() *ownerFixture {
	f := &ownerFixture{
		owners: mocks.NewOwnerRepositoryMock(),
		cache:  mocks.NewCacheMock(),
	}
	f.svc = NewOwnerService(f.owners, f.cache)
	return f
}

func TestOwnerCreate_GetByIDRoundTrip(t *testing.T) {
	f := newOwnerFixture()

	created, err := f.svc.Create(context.Background(), &dto.OwnerRequest{
		Name:     "Jane Smith",
		Address:  "12 Oak Ave",
		Photo:    "jane.jpg",
		Birthday: "1980-04-02",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	fetched, err := f.svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func TestOwnerCreate_RejectsInvalidPayload(t *testing.T) {
	f := newOwnerFixture()

	_, err := f.svc.Create(context.Background(), &dto.OwnerRequest{Name: ""})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestOwnerList_NameFilter(t *testing.T) {
	f := newOwnerFixture()
	ctx := context.Background()

	_, err := f.owners.Insert(ctx, &domain.Owner{Name: "Jane Smith", Address: "12 Oak Ave", Photo: "a.jpg", Birthday: "1980-04-02"})
	require.NoError(t, err)
	_, err = f.owners.Insert(ctx, &domain.Owner{Name: "Bob Stone", Address: "3 Elm St", Photo: "b.jpg", Birthday: "1975-09-20"})
	require.NoError(t, err)

	page, err := f.svc.List(ctx, domain.OwnerFilter{Name: "jane"}, 1, 10, false)
	require.NoError(t, err)

	require.Len(t, page.Data, 1)
	assert.Equal(t, "Jane Smith", page.Data[0].Name)
	assert.Equal(t, int64(1), page.Meta.Total)
}

func TestOwnerPatch_UpdatesAddress(t *testing.T) {
	f := newOwnerFixture()

	id, err := f.owners.Insert(context.Background(), &domain.Owner{Name: "Jane", Address: "Old", Photo: "a.jpg", Birthday: "1980-04-02"})
	require.NoError(t, err)

	resp, err := f.svc.Patch(context.Background(), id, map[string]any{"address": "New Address"})
	require.NoError(t, err)
	assert.Equal(t, "New Address", resp.Address)
	assert.Equal(t, "Jane", resp.Name)
}

func TestOwnerDelete_KeepsListingReferences(t *testing.T) {
	f := newOwnerFixture()

	id, err := f.owners.Insert(context.Background(), &domain.Owner{Name: "Jane", Address: "Addr", Photo: "a.jpg", Birthday: "1980-04-02"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), id))

	_, err = f.svc.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOwnerDelete_NotFound(t *testing.T) {
	f := newOwnerFixture()

	err := f.svc.Delete(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}
