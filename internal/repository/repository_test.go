package repository

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/go-photodesk/internal/models"
	"github.com/diewo77/go-photodesk/internal/store"
	"github.com/diewo77/go-photodesk/internal/store/gormstore"
)

func setupTestStore(t *testing.T) store.Store {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return gormstore.New(db)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Select(ctx context.Context, table string, q store.Query, dest any) error {
	return m.Called(ctx, table, q, dest).Error(0)
}

func (m *mockStore) Count(ctx context.Context, table string, filters ...store.Filter) (int64, error) {
	args := m.Called(ctx, table, filters)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) Insert(ctx context.Context, table string, row any) error {
	return m.Called(ctx, table, row).Error(0)
}

func (m *mockStore) Update(ctx context.Context, table string, row any, filters ...store.Filter) error {
	return m.Called(ctx, table, row, filters).Error(0)
}

func (m *mockStore) Delete(ctx context.Context, table string, filters ...store.Filter) error {
	return m.Called(ctx, table, filters).Error(0)
}

func TestClientsCRUDIsScopedToAccount(t *testing.T) {
	set := NewSet(setupTestStore(t))
	ctx := context.Background()

	older := &models.Client{Owned: models.Owned{UserID: "u1", CreatedAt: time.Now().Add(-time.Hour)}, Name: "Bruno", Status: models.ClientLead}
	newer := &models.Client{Owned: models.Owned{UserID: "u1"}, Name: "Ana", Email: "ana@x.com", Status: models.ClientContacted}
	other := &models.Client{Owned: models.Owned{UserID: "u2"}, Name: "Zé", Status: models.ClientLead}
	for _, c := range []*models.Client{older, newer, other} {
		require.NoError(t, set.Clients.Create(ctx, c))
	}

	list, err := set.Clients.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ana", list[0].Name, "newest first")
	assert.Equal(t, "Bruno", list[1].Name)

	opts, err := set.Clients.Options(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []models.ClientOption{{ID: newer.ID, Name: "Ana"}, {ID: older.ID, Name: "Bruno"}}, opts)

	_, err = set.Clients.Get(ctx, "u1", other.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	got, err := set.Clients.Get(ctx, "u1", newer.ID)
	require.NoError(t, err)
	got.Status = models.ClientClosed
	got.Phone = "11 99999-0000"
	require.NoError(t, set.Clients.Update(ctx, "u1", got.ID, got))
	got, err = set.Clients.Get(ctx, "u1", newer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ClientClosed, got.Status)
	assert.Equal(t, "11 99999-0000", got.Phone)

	// deleting another account's row is a no-op
	require.NoError(t, set.Clients.Delete(ctx, "u1", other.ID))
	n, err := set.Clients.Count(ctx, "u2")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, set.Clients.Delete(ctx, "u1", older.ID))
	n, err = set.Clients.Count(ctx, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestQuotesExpandClient(t *testing.T) {
	set := NewSet(setupTestStore(t))
	ctx := context.Background()

	ana := &models.Client{Owned: models.Owned{UserID: "u1"}, Name: "Ana Silva", Email: "ana@x.com", Status: models.ClientLead}
	require.NoError(t, set.Clients.Create(ctx, ana))
	q := &models.Quote{Owned: models.Owned{UserID: "u1"}, ClientID: ana.ID, PhotographyType: "Casamento", Description: "Sessão no parque", Price: 1500, Status: models.QuoteDraft}
	require.NoError(t, set.Quotes.Create(ctx, q))

	list, err := set.Quotes.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ana Silva", list[0].ClientName())
	assert.Equal(t, "ana@x.com", list[0].ClientEmail())

	got, err := set.Quotes.Get(ctx, "u1", q.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Silva", got.ClientName())
}

func TestJobsKeepChecklist(t *testing.T) {
	set := NewSet(setupTestStore(t))
	ctx := context.Background()

	ana := &models.Client{Owned: models.Owned{UserID: "u1"}, Name: "Ana", Status: models.ClientLead}
	require.NoError(t, set.Clients.Create(ctx, ana))
	job := &models.Job{Owned: models.Owned{UserID: "u1"}, ClientID: ana.ID, Title: "Casamento Ana", Date: "2024-05-10",
		Status: models.JobScheduled, Checklist: []string{"Baterias", "Cartões"}}
	require.NoError(t, set.Jobs.Create(ctx, job))

	list, err := set.Jobs.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"Baterias", "Cartões"}, list[0].Checklist)
	assert.Equal(t, "Ana", list[0].ClientName())
	assert.Nil(t, list[0].QuoteID)
}

func TestPortfolioPublicOrder(t *testing.T) {
	set := NewSet(setupTestStore(t))
	ctx := context.Background()
	for i, title := range []string{"Terceiro", "Primeiro", "Segundo"} {
		pos := map[string]int{"Primeiro": 0, "Segundo": 1, "Terceiro": 2}[title]
		item := &models.PortfolioItem{Owned: models.Owned{UserID: "u1"}, Title: title, ImageURL: "https://img.example.com/" + title, Position: pos}
		require.NoError(t, set.Portfolio.Create(ctx, item), i)
	}
	items, err := set.Portfolio.Public(ctx, "u1")
	require.NoError(t, err)
	titles := make([]string, 0, len(items))
	for _, it := range items {
		titles = append(titles, it.Title)
	}
	assert.Equal(t, []string{"Primeiro", "Segundo", "Terceiro"}, titles)
}

func TestCreateRequiresOwner(t *testing.T) {
	s := new(mockStore)
	repo := NewTemplates(s)
	err := repo.Create(context.Background(), &models.EmailTemplate{Name: "x"})
	assert.ErrorIs(t, err, ErrNoOwner)
	s.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateRequiresMatchingOwner(t *testing.T) {
	s := new(mockStore)
	repo := NewClients(s)
	row := &models.Client{Owned: models.Owned{ID: "c1", UserID: "u2"}, Name: "x"}
	assert.ErrorIs(t, repo.Update(context.Background(), "u1", "c1", row), ErrNoOwner)
	s.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStoreErrorsKeepBackendMessage(t *testing.T) {
	s := new(mockStore)
	backendErr := &store.Error{Status: http.StatusForbidden, Message: "new row violates row-level security policy"}
	s.On("Delete", mock.Anything, store.Clients, []store.Filter{store.Eq("id", "c1"), store.Eq("user_id", "u1")}).Return(backendErr)
	s.On("Select", mock.Anything, store.Quotes, mock.Anything, mock.Anything).Return(errors.New("dial tcp: connection refused"))

	repo := NewSet(s)
	err := repo.Clients.Delete(context.Background(), "u1", "c1")
	require.Error(t, err)
	assert.Equal(t, "new row violates row-level security policy", store.MessageOf(err, "fallback"))

	_, err = repo.Quotes.List(context.Background(), "u1")
	require.Error(t, err)
	assert.Equal(t, "fallback", store.MessageOf(err, "fallback"))
	s.AssertExpectations(t)
}

func TestListQueryShape(t *testing.T) {
	s := new(mockStore)
	want := store.Query{
		Filters: []store.Filter{store.Eq("user_id", "u1")},
		Order:   []store.Order{{Column: "created_at", Desc: true}},
		Expand:  []store.Expand{{Table: "clients", Columns: []string{"name", "email"}}},
	}
	s.On("Select", mock.Anything, "quotes", want, mock.Anything).Return(nil)
	_, err := NewQuotes(s).List(context.Background(), "u1")
	require.NoError(t, err)
	s.AssertExpectations(t)
}
