package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scribnotes/scribnotes/internal/app/models/dto"
	"github.com/scribnotes/scribnotes/internal/pkg/apperrors"
)

func newTermService() (*TermService, *fakeTermStore) {
	store := &fakeTermStore{}
	return NewTermService(store), store
}

func TestCreateTermDerivesSlugFromSession(t *testing.T) {
	svc, _ := newTermService()
	year := 2024

	term, err := svc.CreateTerm(context.Background(), 1, &dto.CreateTermRequest{
		School:  "University of Toronto",
		Year:    &year,
		Session: "Fall Semester",
	})

	require.NoError(t, err)
	assert.Equal(t, "fall-semester", term.Slug)
	assert.Equal(t, "University of Toronto", term.School)
	assert.False(t, term.Current)
	assert.NotZero(t, term.ID)
}

func TestCreateTermRejectsEmptyFields(t *testing.T) {
	svc, _ := newTermService()

	_, err := svc.CreateTerm(context.Background(), 1, &dto.CreateTermRequest{
		School:  "  ",
		Session: "Fall",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.CreateTerm(context.Background(), 1, &dto.CreateTermRequest{
		School:  "University of Toronto",
		Session: "",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateTermRejectsSymbolOnlySession(t *testing.T) {
	svc, _ := newTermService()

	_, err := svc.CreateTerm(context.Background(), 1, &dto.CreateTermRequest{
		School:  "University of Toronto",
		Session: "!!!",
	})

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateTermKeepsSlug(t *testing.T) {
	svc, _ := newTermService()

	created, err := svc.CreateTerm(context.Background(), 1, &dto.CreateTermRequest{
		School:  "University of Toronto",
		Session: "Fall",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateTerm(context.Background(), 1, created.Slug, &dto.UpdateTermRequest{
		School:  "McGill",
		Session: "Winter",
	})
	require.NoError(t, err)

	assert.Equal(t, "fall", updated.Slug)
	assert.Equal(t, "Winter", updated.Session)
	assert.Equal(t, "McGill", updated.School)
}

func TestGetTermBySlugScopedToOwner(t *testing.T) {
	svc, _ := newTermService()

	_, err := svc.CreateTerm(context.Background(), 1, &dto.CreateTermRequest{
		School:  "University of Toronto",
		Session: "Fall",
	})
	require.NoError(t, err)

	_, err = svc.GetTermBySlug(context.Background(), 2, "fall")
	assert.ErrorIs(t, err, apperrors.ErrTermNotFound)
}

func TestSetCurrentTermIsExclusive(t *testing.T) {
	svc, store := newTermService()

	_, err := svc.CreateTerm(context.Background(), 1, &dto.CreateTermRequest{
		School:  "University of Toronto",
		Session: "Fall",
	})
	require.NoError(t, err)
	_, err = svc.CreateTerm(context.Background(), 1, &dto.CreateTermRequest{
		School:  "University of Toronto",
		Session: "Winter",
	})
	require.NoError(t, err)

	first, err := svc.SetCurrentTerm(context.Background(), 1, "fall")
	require.NoError(t, err)
	assert.True(t, first.Current)

	second, err := svc.SetCurrentTerm(context.Background(), 1, "winter")
	require.NoError(t, err)
	assert.True(t, second.Current)

	currentCount := 0
	for _, term := range store.terms {
		if term.Current {
			currentCount++
			assert.Equal(t, "winter", term.Slug)
		}
	}
	assert.Equal(t, 1, currentCount)
}

func TestSetCurrentTermUnknownSlug(t *testing.T) {
	svc, _ := newTermService()

	_, err := svc.SetCurrentTerm(context.Background(), 1, "missing")
	assert.ErrorIs(t, err, apperrors.ErrTermNotFound)
}

func TestDeleteTermRemovesIt(t *testing.T) {
	svc, _ := newTermService()

	_, err := svc.CreateTerm(context.Background(), 1, &dto.CreateTermRequest{
		School:  "University of Toronto",
		Session: "Fall",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTerm(context.Background(), 1, "fall"))

	_, err = svc.GetTermBySlug(context.Background(), 1, "fall")
	assert.ErrorIs(t, err, apperrors.ErrTermNotFound)
}
