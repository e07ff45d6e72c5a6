// Package mocks provides map-backed doubles of the repository and cache
// ports. They keep call counters so tests can assert how often the store was
// actually hit, which is how the caching behavior of the query pipeline is
// verified.
package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Olprog59/go-realty/internal/domain"
	"github.com/Olprog59/go-realty/internal/ports"
	"github.com/Olprog59/go-realty/internal/repository"
)

var (
	_ ports.PropertyRepository = (*PropertyRepositoryMock)(nil)
	_ ports.OwnerRepository    = (*OwnerRepositoryMock)(nil)
	_ ports.ImageRepository    = (*ImageRepositoryMock)(nil)
	_ ports.TraceRepository    = (*TraceRepositoryMock)(nil)
	_ ports.UserRepository     = (*UserRepositoryMock)(nil)
)

// PropertyRepositoryMock is an in-memory property store / Store de propriétés en mémoire
type PropertyRepositoryMock struct {
	mu         sync.Mutex
	Properties map[string]*domain.Property

	FindCalls  int
	CountCalls int

	// Err, when set, is returned by every call / Err, si défini, est retourné par chaque appel
	Err error
}

// NewPropertyRepositoryMock creates an empty property mock / Crée un mock de propriétés vide
func NewPropertyRepositoryMock() *PropertyRepositoryMock {
	return &PropertyRepositoryMock{Properties: make(map[string]*domain.Property)}
}

func (m *PropertyRepositoryMock) Find(_ context.Context, filter domain.PropertyFilter, skip, limit int64) ([]*domain.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindCalls++
	if m.Err != nil {
		return nil, m.Err
	}

	matched := m.matching(filter)
	return paginate(matched, skip, limit), nil
}

func (m *PropertyRepositoryMock) Count(_ context.Context, filter domain.PropertyFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CountCalls++
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.matching(filter))), nil
}

func (m *PropertyRepositoryMock) GetByID(_ context.Context, id string) (*domain.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.Properties[id]
	if !ok {
		return nil, repository.ErrNoRecord
	}
	clone := *p
	return &clone, nil
}

func (m *PropertyRepositoryMock) Insert(_ context.Context, p *domain.Property) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	clone := *p
	m.Properties[p.ID.Hex()] = &clone
	return p.ID.Hex(), nil
}

func (m *PropertyRepositoryMock) Replace(_ context.Context, id string, p *domain.Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	existing, ok := m.Properties[id]
	if !ok {
		return repository.ErrNoRecord
	}
	clone := *p
	clone.ID = existing.ID
	m.Properties[id] = &clone
	return nil
}

func (m *PropertyRepositoryMock) UpdateFields(_ context.Context, id string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	p, ok := m.Properties[id]
	if !ok {
		return repository.ErrNoRecord
	}
	for column, value := range fields {
		switch column {
		case "name":
			p.Name = value.(string)
		case "address":
			p.Address = value.(string)
		case "price":
			p.Price = value.(int64)
		case "codeInternal":
			p.CodeInternal = int(value.(int64))
		case "year":
			p.Year = int(value.(int64))
		case "idOwner":
			p.OwnerID = value.(primitive.ObjectID)
		}
	}
	return nil
}

func (m *PropertyRepositoryMock) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Properties[id]; !ok {
		return repository.ErrNoRecord
	}
	delete(m.Properties, id)
	return nil
}

func (m *PropertyRepositoryMock) matching(filter domain.PropertyFilter) []*domain.Property {
	var matched []*domain.Property
	for _, p := range m.Properties {
		if filter.Name != "" && !containsFold(p.Name, filter.Name) {
			continue
		}
		if filter.Address != "" && !containsFold(p.Address, filter.Address) {
			continue
		}
		if filter.MinPrice != nil && p.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
			continue
		}
		if filter.OwnerID != "" && p.OwnerID.Hex() != filter.OwnerID {
			continue
		}
		clone := *p
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID.Hex() < matched[j].ID.Hex() })
	return matched
}

// OwnerRepositoryMock is an in-memory owner store / Store de propriétaires en mémoire
type OwnerRepositoryMock struct {
	mu     sync.Mutex
	Owners map[string]*domain.Owner

	FindCalls  int
	CountCalls int

	Err error
}

// NewOwnerRepositoryMock creates an empty owner mock / Crée un mock de propriétaires vide
func NewOwnerRepositoryMock() *OwnerRepositoryMock {
	return &OwnerRepositoryMock{Owners: make(map[string]*domain.Owner)}
}

func (m *OwnerRepositoryMock) Find(_ context.Context, filter domain.OwnerFilter, skip, limit int64) ([]*domain.Owner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	return paginate(m.matching(filter), skip, limit), nil
}

func (m *OwnerRepositoryMock) Count(_ context.Context, filter domain.OwnerFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CountCalls++
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.matching(filter))), nil
}

func (m *OwnerRepositoryMock) GetByID(_ context.Context, id string) (*domain.Owner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	o, ok := m.Owners[id]
	if !ok {
		return nil, repository.ErrNoRecord
	}
	clone := *o
	return &clone, nil
}

func (m *OwnerRepositoryMock) Insert(_ context.Context, o *domain.Owner) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	clone := *o
	m.Owners[o.ID.Hex()] = &clone
	return o.ID.Hex(), nil
}

func (m *OwnerRepositoryMock) Replace(_ context.Context, id string, o *domain.Owner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	existing, ok := m.Owners[id]
	if !ok {
		return repository.ErrNoRecord
	}
	clone := *o
	clone.ID = existing.ID
	m.Owners[id] = &clone
	return nil
}

func (m *OwnerRepositoryMock) UpdateFields(_ context.Context, id string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	o, ok := m.Owners[id]
	if !ok {
		return repository.ErrNoRecord
	}
	for column, value := range fields {
		switch column {
		case "name":
			o.Name = value.(string)
		case "address":
			o.Address = value.(string)
		case "photo":
			o.Photo = value.(string)
		case "birthday":
			o.Birthday = value.(string)
		}
	}
	return nil
}

func (m *OwnerRepositoryMock) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Owners[id]; !ok {
		return repository.ErrNoRecord
	}
	delete(m.Owners, id)
	return nil
}

func (m *OwnerRepositoryMock) matching(filter domain.OwnerFilter) []*domain.Owner {
	var matched []*domain.Owner
	for _, o := range m.Owners {
		if filter.Name != "" && !containsFold(o.Name, filter.Name) {
			continue
		}
		if filter.Address != "" && !containsFold(o.Address, filter.Address) {
			continue
		}
		clone := *o
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID.Hex() < matched[j].ID.Hex() })
	return matched
}

// ImageRepositoryMock is an in-memory image store / Store d'images en mémoire
type ImageRepositoryMock struct {
	mu     sync.Mutex
	Images map[string]*domain.PropertyImage

	FindCalls  int
	CountCalls int

	Err error
}

// NewImageRepositoryMock creates an empty image mock / Crée un mock d'images vide
func NewImageRepositoryMock() *ImageRepositoryMock {
	return &ImageRepositoryMock{Images: make(map[string]*domain.PropertyImage)}
}

func (m *ImageRepositoryMock) Find(_ context.Context, filter domain.ImageFilter, skip, limit int64) ([]*domain.PropertyImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	return paginate(m.matching(filter), skip, limit), nil
}

func (m *ImageRepositoryMock) Count(_ context.Context, filter domain.ImageFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CountCalls++
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.matching(filter))), nil
}

func (m *ImageRepositoryMock) GetByID(_ context.Context, id string) (*domain.PropertyImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	img, ok := m.Images[id]
	if !ok {
		return nil, repository.ErrNoRecord
	}
	clone := *img
	return &clone, nil
}

func (m *ImageRepositoryMock) Insert(_ context.Context, img *domain.PropertyImage) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	if img.ID.IsZero() {
		img.ID = primitive.NewObjectID()
	}
	clone := *img
	m.Images[img.ID.Hex()] = &clone
	return img.ID.Hex(), nil
}

func (m *ImageRepositoryMock) Replace(_ context.Context, id string, img *domain.PropertyImage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	existing, ok := m.Images[id]
	if !ok {
		return repository.ErrNoRecord
	}
	clone := *img
	clone.ID = existing.ID
	m.Images[id] = &clone
	return nil
}

func (m *ImageRepositoryMock) UpdateFields(_ context.Context, id string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	img, ok := m.Images[id]
	if !ok {
		return repository.ErrNoRecord
	}
	for column, value := range fields {
		switch column {
		case "file":
			img.File = value.(string)
		case "enabled":
			img.Enabled = value.(bool)
		case "idProperty":
			img.PropertyID = value.(primitive.ObjectID)
		}
	}
	return nil
}

func (m *ImageRepositoryMock) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Images[id]; !ok {
		return repository.ErrNoRecord
	}
	delete(m.Images, id)
	return nil
}

func (m *ImageRepositoryMock) FindByPropertyIDs(_ context.Context, propertyIDs []string) ([]*domain.PropertyImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	wanted := make(map[string]bool, len(propertyIDs))
	for _, id := range propertyIDs {
		wanted[id] = true
	}

	var matched []*domain.PropertyImage
	for _, img := range m.Images {
		if wanted[img.PropertyID.Hex()] {
			clone := *img
			matched = append(matched, &clone)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID.Hex() < matched[j].ID.Hex() })
	return matched, nil
}

func (m *ImageRepositoryMock) DeleteByProperty(_ context.Context, propertyID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for id, img := range m.Images {
		if img.PropertyID.Hex() == propertyID {
			delete(m.Images, id)
		}
	}
	return nil
}

func (m *ImageRepositoryMock) matching(filter domain.ImageFilter) []*domain.PropertyImage {
	var matched []*domain.PropertyImage
	for _, img := range m.Images {
		if filter.PropertyID != "" && img.PropertyID.Hex() != filter.PropertyID {
			continue
		}
		if filter.Enabled != nil && img.Enabled != *filter.Enabled {
			continue
		}
		clone := *img
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID.Hex() < matched[j].ID.Hex() })
	return matched
}

// TraceRepositoryMock is an in-memory sale trace store / Store de traces de vente en mémoire
type TraceRepositoryMock struct {
	mu     sync.Mutex
	Traces map[string]*domain.PropertyTrace

	FindCalls  int
	CountCalls int

	Err error
}

// NewTraceRepositoryMock creates an empty trace mock / Crée un mock de traces vide
func NewTraceRepositoryMock() *TraceRepositoryMock {
	return &TraceRepositoryMock{Traces: make(map[string]*domain.PropertyTrace)}
}

func (m *TraceRepositoryMock) Find(_ context.Context, filter domain.TraceFilter, skip, limit int64) ([]*domain.PropertyTrace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	return paginate(m.matching(filter), skip, limit), nil
}

func (m *TraceRepositoryMock) Count(_ context.Context, filter domain.TraceFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CountCalls++
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.matching(filter))), nil
}

func (m *TraceRepositoryMock) GetByID(_ context.Context, id string) (*domain.PropertyTrace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	t, ok := m.Traces[id]
	if !ok {
		return nil, repository.ErrNoRecord
	}
	clone := *t
	return &clone, nil
}

func (m *TraceRepositoryMock) Insert(_ context.Context, t *domain.PropertyTrace) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	clone := *t
	m.Traces[t.ID.Hex()] = &clone
	return t.ID.Hex(), nil
}

func (m *TraceRepositoryMock) Replace(_ context.Context, id string, t *domain.PropertyTrace) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	existing, ok := m.Traces[id]
	if !ok {
		return repository.ErrNoRecord
	}
	clone := *t
	clone.ID = existing.ID
	m.Traces[id] = &clone
	return nil
}

func (m *TraceRepositoryMock) UpdateFields(_ context.Context, id string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	t, ok := m.Traces[id]
	if !ok {
		return repository.ErrNoRecord
	}
	for column, value := range fields {
		switch column {
		case "name":
			t.Name = value.(string)
		case "value":
			t.Value = value.(int64)
		case "tax":
			t.Tax = value.(int64)
		case "dateSale":
			t.DateSale = value.(time.Time)
		case "idProperty":
			t.PropertyID = value.(primitive.ObjectID)
		}
	}
	return nil
}

func (m *TraceRepositoryMock) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Traces[id]; !ok {
		return repository.ErrNoRecord
	}
	delete(m.Traces, id)
	return nil
}

func (m *TraceRepositoryMock) DeleteByProperty(_ context.Context, propertyID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for id, t := range m.Traces {
		if t.PropertyID.Hex() == propertyID {
			delete(m.Traces, id)
		}
	}
	return nil
}

func (m *TraceRepositoryMock) matching(filter domain.TraceFilter) []*domain.PropertyTrace {
	var matched []*domain.PropertyTrace
	for _, t := range m.Traces {
		if filter.PropertyID != "" && t.PropertyID.Hex() != filter.PropertyID {
			continue
		}
		clone := *t
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID.Hex() < matched[j].ID.Hex() })
	return matched
}

// UserRepositoryMock is an in-memory user store with a unique email rule / Store d'utilisateurs en mémoire avec règle d'email unique
type UserRepositoryMock struct {
	mu    sync.Mutex
	Users map[string]*domain.User

	ListCalls  int
	CountCalls int

	Err error
}

// NewUserRepositoryMock creates an empty user mock / Crée un mock d'utilisateurs vide
func NewUserRepositoryMock() *UserRepositoryMock {
	return &UserRepositoryMock{Users: make(map[string]*domain.User)}
}

func (m *UserRepositoryMock) List(_ context.Context, skip, limit int64) ([]*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	if m.Err != nil {
		return nil, m.Err
	}

	var all []*domain.User
	for _, u := range m.Users {
		clone := *u
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID.Hex() < all[j].ID.Hex() })
	return paginate(all, skip, limit), nil
}

func (m *UserRepositoryMock) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CountCalls++
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.Users)), nil
}

func (m *UserRepositoryMock) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, repository.ErrNoRecord
	}
	clone := *u
	return &clone, nil
}

func (m *UserRepositoryMock) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	email = strings.ToLower(email)
	for _, u := range m.Users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNoRecord
}

func (m *UserRepositoryMock) Insert(_ context.Context, u *domain.User) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	email := strings.ToLower(u.Email)
	for _, existing := range m.Users {
		if existing.Email == email {
			return "", repository.ErrDup
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	clone := *u
	clone.Email = email
	m.Users[u.ID.Hex()] = &clone
	return u.ID.Hex(), nil
}

func (m *UserRepositoryMock) UpdateFields(_ context.Context, id string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	u, ok := m.Users[id]
	if !ok {
		return repository.ErrNoRecord
	}
	for column, value := range fields {
		switch column {
		case "name":
			u.Name = value.(string)
		case "email":
			email := strings.ToLower(value.(string))
			for otherID, other := range m.Users {
				if otherID != id && other.Email == email {
					return repository.ErrDup
				}
			}
			u.Email = email
		case "password":
			u.Password = value.(string)
		case "role":
			u.Role = domain.UserRole(value.(string))
		}
	}
	return nil
}

func (m *UserRepositoryMock) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Users[id]; !ok {
		return repository.ErrNoRecord
	}
	delete(m.Users, id)
	return nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func paginate[T any](all []T, skip, limit int64) []T {
	if skip >= int64(len(all)) {
		return nil
	}
	all = all[skip:]
	if limit > 0 && limit < int64(len(all)) {
		all = all[:limit]
	}
	return all
}
