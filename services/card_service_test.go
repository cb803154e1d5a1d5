package services

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"vcard.link/models"
	"vcard.link/pkg/cardcodec"
	"vcard.link/pkg/queryparams"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCard_StartsValid(t *testing.T) {
	repo := newFakeCardRepo()
	svc := NewBusinessCardService(repo)

	card, err := svc.CreateCard(context.Background(), " Alice@Example.com", sampleInput())
	require.NoError(t, err)
	assert.NotEmpty(t, card.ID)
	assert.Equal(t, ownerA, card.OwnerEmail)
	assert.Equal(t, models.CardStatusValid, card.Status)
}

func TestCreateCard_Validation(t *testing.T) {
	svc := NewBusinessCardService(newFakeCardRepo())

	in := sampleInput()
	in.Mobile = "4155551234"
	in.Company = "Acme, Inc"

	_, err := svc.CreateCard(context.Background(), ownerA, in)
	require.ErrorIs(t, err, ErrCardInvalidInput)

	var fe cardcodec.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "mobile")
	assert.Contains(t, fe, "company")
}

func TestCreateCard_RequiresOwner(t *testing.T) {
	svc := NewBusinessCardService(newFakeCardRepo())
	_, err := svc.CreateCard(context.Background(), "", sampleInput())
	assert.ErrorIs(t, err, ErrCardOwnerRequired)
}

func TestUpdateCard_KeepsStatus(t *testing.T) {
	repo := newFakeCardRepo()
	repo.put(storedCard(ownerA, "card-1", models.CardStatusInvalid))
	svc := NewBusinessCardService(repo)

	in := sampleInput()
	in.Role = "CEO"
	card, err := svc.UpdateCard(context.Background(), ownerA, "card-1", in)
	require.NoError(t, err)
	assert.Equal(t, "CEO", card.Role)
	assert.Equal(t, models.CardStatusInvalid, card.Status)

	_, err = svc.UpdateCard(context.Background(), ownerA, "missing", in)
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestGetCard_IsScopedToOwner(t *testing.T) {
	repo := newFakeCardRepo()
	repo.put(storedCard(ownerA, "card-1", models.CardStatusValid))
	svc := NewBusinessCardService(repo)

	_, err := svc.GetCard(context.Background(), ownerA, "card-1")
	require.NoError(t, err)
	_, err = svc.GetCard(context.Background(), ownerB, "card-1")
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestArchiveRestore(t *testing.T) {
	repo := newFakeCardRepo()
	repo.put(storedCard(ownerA, "card-1", models.CardStatusValid))
	svc := NewBusinessCardService(repo)
	ctx := context.Background()

	card, err := svc.ArchiveCard(ctx, ownerA, "card-1")
	require.NoError(t, err)
	assert.Equal(t, models.CardStatusInvalid, card.Status)

	// İkinci arşivleme etkisiz
	card, err = svc.ArchiveCard(ctx, ownerA, "card-1")
	require.NoError(t, err)
	assert.Equal(t, models.CardStatusInvalid, card.Status)

	card, err = svc.RestoreCard(ctx, ownerA, "card-1")
	require.NoError(t, err)
	assert.Equal(t, models.CardStatusValid, card.Status)

	card, err = svc.RestoreCard(ctx, ownerA, "card-1")
	require.NoError(t, err)
	assert.Equal(t, models.CardStatusValid, card.Status)

	_, err = svc.ArchiveCard(ctx, ownerA, "missing")
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestListCards_FiltersByStatus(t *testing.T) {
	repo := newFakeCardRepo()
	repo.put(storedCard(ownerA, "card-1", models.CardStatusValid))
	repo.put(storedCard(ownerA, "card-2", models.CardStatusInvalid))
	repo.put(storedCard(ownerA, "card-3", models.CardStatusValid))
	repo.put(storedCard(ownerB, "card-4", models.CardStatusValid))
	svc := NewBusinessCardService(repo)
	ctx := context.Background()

	all, err := svc.ListCards(ctx, ownerA, queryparams.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Meta.TotalItems)

	valid, err := svc.ListCards(ctx, ownerA, queryparams.ListParams{Status: "VALID", PerPage: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), valid.Meta.TotalItems)
	assert.Equal(t, 2, valid.Meta.TotalPages)
	assert.Len(t, valid.Data, 1)

	_, err = svc.ListCards(ctx, ownerA, queryparams.ListParams{Status: "deleted"})
	assert.ErrorIs(t, err, ErrCardInvalidInput)
}

func TestSharePayload(t *testing.T) {
	repo := newFakeCardRepo()
	repo.put(storedCard(ownerA, "card-1", models.CardStatusValid))
	repo.put(storedCard(ownerA, "card-2", models.CardStatusInvalid))
	svc := NewBusinessCardService(repo)
	ctx := context.Background()

	payload, err := svc.SharePayload(ctx, ownerA, "card-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(payload, cardcodec.Marker+","+ownerA+",card-1,Jane Doe,valid,"))

	decoded, err := cardcodec.Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, ownerA, decoded.OwnerEmail)
	assert.Equal(t, "https://www.linkedin.com/in/jane-doe", decoded.LinkedinURL)

	_, err = svc.SharePayload(ctx, ownerA, "card-2")
	assert.ErrorIs(t, err, ErrCardArchived)
}

func TestShareQR_ReturnsPNG(t *testing.T) {
	repo := newFakeCardRepo()
	repo.put(storedCard(ownerA, "card-1", models.CardStatusValid))
	svc := NewBusinessCardService(repo)

	png, err := svc.ShareQR(context.Background(), ownerA, "card-1", 256)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestCreateCard_RejectsOversizedFields(t *testing.T) {
	svc := NewBusinessCardService(newFakeCardRepo())

	in := sampleInput()
	in.OfficeAddress = strings.Repeat("a", 3000)

	_, err := svc.CreateCard(context.Background(), ownerA, in)
	require.ErrorIs(t, err, ErrCardInvalidInput)

	var fe cardcodec.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "officeAddress")
}

func TestShareQR_LargestAcceptedCardFits(t *testing.T) {
	svc := NewBusinessCardService(newFakeCardRepo())
	ctx := context.Background()
	owner := strings.Repeat("o", cardcodec.MaxEmailLen-len("@example.com")) + "@example.com"

	in := sampleInput()
	in.Name = strings.Repeat("n", 150)
	in.Company = strings.Repeat("c", 150)
	in.Role = strings.Repeat("r", 100)
	in.OfficeAddress = strings.Repeat("a", 150)
	in.ProfileURL = "https://jane.dev/" + strings.Repeat("p", 483)
	in.CompanyWebsite = "https://acme.io/" + strings.Repeat("w", 484)

	card, err := svc.CreateCard(ctx, owner, in)
	require.NoError(t, err)

	png, err := svc.ShareQR(ctx, owner, card.ID, 256)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestGetPublicCard_HidesArchived(t *testing.T) {
	repo := newFakeCardRepo()
	repo.put(storedCard(ownerA, "card-1", models.CardStatusInvalid))
	svc := NewBusinessCardService(repo)

	_, err := svc.GetPublicCard(context.Background(), ownerA, "card-1")
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestSubscribeCards_SnapshotAfterTransition(t *testing.T) {
	repo := newFakeCardRepo()
	repo.put(storedCard(ownerA, "card-1", models.CardStatusValid))
	svc := NewBusinessCardService(repo)

	updates := make(chan []models.BusinessCard, 4)
	unsubscribe, err := svc.SubscribeCards(context.Background(), ownerA, func(cards []models.BusinessCard) { updates <- cards })
	require.NoError(t, err)
	defer unsubscribe()

	initial := <-updates
	require.Len(t, initial, 1)
	assert.Equal(t, models.CardStatusValid, initial[0].Status)

	_, err = svc.ArchiveCard(context.Background(), ownerA, "card-1")
	require.NoError(t, err)

	select {
	case snap := <-updates:
		require.Len(t, snap, 1)
		assert.Equal(t, models.CardStatusInvalid, snap[0].Status)
	case <-time.After(2 * time.Second):
		t.Fatal("snapshot gelmedi")
	}
}
