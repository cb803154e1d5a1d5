package repositories

import (
	"context"
	"testing"
	"time"

	"vcard.link/models"
	"vcard.link/pkg/queryparams"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// :memory: veritabanı bağlantı başına ayrıdır
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.BusinessCard{}, &models.Contact{}, &models.Feedback{}))
	return db
}

func newCard(owner, name string, status models.CardStatus) *models.BusinessCard {
	return &models.BusinessCard{
		OwnerEmail:     owner,
		Name:           name,
		Company:        "Acme",
		Role:           "CTO",
		Email:          "jane@acme.io",
		Mobile:         "+14155551234",
		OfficeAddress:  "1 Main St",
		CompanyWebsite: "https://acme.io",
		Status:         status,
	}
}

func TestBusinessCardRepository_CreateAndFind(t *testing.T) {
	repo := NewBusinessCardRepository(newTestDB(t))
	ctx := context.Background()

	card := newCard("a@x.com", "Jane", models.CardStatusValid)
	require.NoError(t, repo.Create(ctx, card))
	require.NotEmpty(t, card.ID)

	got, err := repo.FindByOwnerAndID(ctx, "a@x.com", card.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.Name)

	_, err = repo.FindByOwnerAndID(ctx, "b@x.com", card.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBusinessCardRepository_UpdateStatusIsConditional(t *testing.T) {
	repo := NewBusinessCardRepository(newTestDB(t))
	ctx := context.Background()

	card := newCard("a@x.com", "Jane", models.CardStatusValid)
	require.NoError(t, repo.Create(ctx, card))

	changed, err := repo.UpdateStatus(ctx, "a@x.com", card.ID, models.CardStatusValid, models.CardStatusInvalid)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.UpdateStatus(ctx, "a@x.com", card.ID, models.CardStatusValid, models.CardStatusInvalid)
	require.NoError(t, err)
	assert.False(t, changed)

	got, err := repo.FindByOwnerAndID(ctx, "a@x.com", card.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CardStatusInvalid, got.Status)
}

func TestBusinessCardRepository_UpdateLeavesStatusAlone(t *testing.T) {
	repo := NewBusinessCardRepository(newTestDB(t))
	ctx := context.Background()

	card := newCard("a@x.com", "Jane", models.CardStatusInvalid)
	require.NoError(t, repo.Create(ctx, card))

	card.Name = "Jane D."
	card.Status = models.CardStatusValid
	require.NoError(t, repo.Update(ctx, card))

	got, err := repo.FindByOwnerAndID(ctx, "a@x.com", card.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane D.", got.Name)
	assert.Equal(t, models.CardStatusInvalid, got.Status)

	missing := newCard("a@x.com", "Nobody", models.CardStatusValid)
	missing.ID = "does-not-exist"
	assert.ErrorIs(t, repo.Update(ctx, missing), ErrNotFound)
}

func TestBusinessCardRepository_Paginated(t *testing.T) {
	repo := NewBusinessCardRepository(newTestDB(t))
	ctx := context.Background()

	for i, name := range []string{"Ada", "Ben", "Cem", "Deniz"} {
		status := models.CardStatusValid
		if i == 1 {
			status = models.CardStatusInvalid
		}
		require.NoError(t, repo.Create(ctx, newCard("a@x.com", name, status)))
	}
	require.NoError(t, repo.Create(ctx, newCard("b@x.com", "Eda", models.CardStatusValid)))

	cards, total, err := repo.FindAllByOwnerPaginated(ctx, "a@x.com", queryparams.ListParams{
		Page: 1, PerPage: 2, Status: "valid", SortBy: "name", OrderBy: "asc",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, cards, 2)
	assert.Equal(t, "Ada", cards[0].Name)
	assert.Equal(t, "Cem", cards[1].Name)

	cards, _, err = repo.FindAllByOwnerPaginated(ctx, "a@x.com", queryparams.ListParams{
		Page: 2, PerPage: 2, Status: "valid", SortBy: "name; DROP TABLE business_cards", OrderBy: "asc",
	})
	require.NoError(t, err)
	assert.Len(t, cards, 1)

	cards, total, err = repo.FindAllByOwnerPaginated(ctx, "nobody@x.com", queryparams.ListParams{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, cards)
}

func TestContactRepository_CreateIfAbsent(t *testing.T) {
	repo := NewContactRepository(newTestDB(t))
	ctx := context.Background()

	contact := &models.Contact{
		ID: "11111111-1111-5111-8111-111111111111", OwnerEmail: "a@x.com",
		DonorEmail: "b@x.com", DonorCardID: "card-1", CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.CreateIfAbsent(ctx, contact))

	again := *contact
	assert.ErrorIs(t, repo.CreateIfAbsent(ctx, &again), ErrDuplicate)

	// Farklı ID, aynı (owner, card) çifti: benzersiz indeks yakalar
	other := *contact
	other.ID = "22222222-2222-5222-8222-222222222222"
	assert.ErrorIs(t, repo.CreateIfAbsent(ctx, &other), ErrDuplicate)

	contacts, err := repo.FindAllByOwner(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Len(t, contacts, 1)

	assert.Error(t, repo.CreateIfAbsent(ctx, &models.Contact{OwnerEmail: "a@x.com"}))
}

func TestFeedbackRepository(t *testing.T) {
	repo := NewFeedbackRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Feedback{OwnerEmail: "a@x.com", Message: "güzel"}))
	require.NoError(t, repo.Create(ctx, &models.Feedback{OwnerEmail: "a@x.com", Message: "çok güzel"}))

	n, err := repo.CountByOwner(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))
	assert.ErrorIs(t, translateError(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, translateError(gorm.ErrDuplicatedKey), ErrDuplicate)

	err := translateError(gorm.ErrInvalidDB)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, gorm.ErrInvalidDB)
}
