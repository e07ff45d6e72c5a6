package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Olprog59/go-realty/internal/domain"
)

func hasField(msgs []string, field string) bool {
	for _, m := range msgs {
		if strings.HasPrefix(m, field+":") {
			return true
		}
	}
	return false
}

func TestProperty_Valid(t *testing.T) {
	msgs := Property(&domain.Property{
		Name:         "Seaside Villa",
		Address:      "1 Shore Rd",
		Price:        350_000,
		CodeInternal: 42,
		Year:         2010,
	})
	assert.Empty(t, msgs)
}

func TestProperty_CollectsAllFailures(t *testing.T) {
	msgs := Property(&domain.Property{})

	assert.True(t, hasField(msgs, "name"))
	assert.True(t, hasField(msgs, "address"))
	assert.True(t, hasField(msgs, "price"))
	assert.True(t, hasField(msgs, "codeInternal"))
	assert.True(t, hasField(msgs, "year"))
}

func TestProperty_YearBounds(t *testing.T) {
	base := domain.Property{Name: "A", Address: "B", Price: 1, CodeInternal: 1}

	tooOld := base
	tooOld.Year = domain.MinConstructionYear - 1
	assert.True(t, hasField(Property(&tooOld), "year"))

	future := base
	future.Year = time.Now().Year() + 1
	assert.True(t, hasField(Property(&future), "year"))

	edge := base
	edge.Year = domain.MinConstructionYear
	assert.Empty(t, Property(&edge))
}

func TestProperty_PriceMustBePositive(t *testing.T) {
	p := domain.Property{Name: "A", Address: "B", Price: -5, CodeInternal: 1, Year: 2000}
	assert.True(t, hasField(Property(&p), "price"))
}

func TestOwner_RequiresAllFields(t *testing.T) {
	assert.Empty(t, Owner(&domain.Owner{Name: "Jane", Address: "Addr", Photo: "a.jpg", Birthday: "1980-04-02"}))

	msgs := Owner(&domain.Owner{Name: "Jane"})
	assert.True(t, hasField(msgs, "address"))
	assert.True(t, hasField(msgs, "photo"))
	assert.True(t, hasField(msgs, "birthday"))
}

func TestImage_RequiresPropertyAndFile(t *testing.T) {
	assert.Empty(t, Image(&domain.PropertyImage{PropertyID: primitive.NewObjectID(), File: "a.jpg"}))

	msgs := Image(&domain.PropertyImage{})
	assert.True(t, hasField(msgs, "idProperty"))
	assert.True(t, hasField(msgs, "file"))
}

func TestTrace_Rules(t *testing.T) {
	valid := domain.PropertyTrace{
		PropertyID: primitive.NewObjectID(),
		Name:       "First sale",
		DateSale:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Value:      100,
		Tax:        0,
	}
	assert.Empty(t, Trace(&valid))

	missing := domain.PropertyTrace{}
	msgs := Trace(&missing)
	assert.True(t, hasField(msgs, "idProperty"))
	assert.True(t, hasField(msgs, "name"))
	assert.True(t, hasField(msgs, "dateSale"))
	assert.True(t, hasField(msgs, "value"))
}

func TestUser_Rules(t *testing.T) {
	valid := domain.User{Name: "Ada", Email: "ada@example.com", Password: "password1", Role: domain.RoleUser}
	assert.Empty(t, User(&valid))

	badEmail := valid
	badEmail.Email = "not-an-email"
	assert.True(t, hasField(User(&badEmail), "email"))

	shortPassword := valid
	shortPassword.Password = "short"
	assert.True(t, hasField(User(&shortPassword), "password"))

	badRole := valid
	badRole.Role = "superuser"
	assert.True(t, hasField(User(&badRole), "role"))
}

func TestMessages_AreSortedByField(t *testing.T) {
	msgs := Property(&domain.Property{})
	require.NotEmpty(t, msgs)

	for i := 1; i < len(msgs); i++ {
		assert.LessOrEqual(t, msgs[i-1], msgs[i])
	}
}
