package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackSubmit(t *testing.T) {
	repo := &fakeFeedbackRepo{}
	svc := NewFeedbackService(repo)
	ctx := context.Background()

	fb, err := svc.Submit(ctx, "Alice@Example.com", "  harika  ")
	require.NoError(t, err)
	assert.Equal(t, ownerA, fb.OwnerEmail)
	assert.Equal(t, "harika", fb.Message)

	n, err := repo.CountByOwner(ctx, ownerA)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestFeedbackSubmit_Rejects(t *testing.T) {
	svc := NewFeedbackService(&fakeFeedbackRepo{})
	ctx := context.Background()

	_, err := svc.Submit(ctx, ownerA, "   ")
	assert.ErrorIs(t, err, ErrFeedbackEmpty)

	_, err = svc.Submit(ctx, ownerA, strings.Repeat("ş", maxFeedbackRunes+1))
	assert.ErrorIs(t, err, ErrFeedbackTooLong)

	_, err = svc.Submit(ctx, "", "merhaba")
	assert.ErrorIs(t, err, ErrFeedbackOwnerRequired)

	_, err = svc.Submit(ctx, ownerA, strings.Repeat("ş", maxFeedbackRunes))
	assert.NoError(t, err)
}
