package validator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldcheck/internal/domain"
	"fieldcheck/internal/validator"
)

func successCheck(summary string) validator.CheckFunc {
	return func(_ context.Context, _ domain.ValidatorInput) (*domain.ValidatorResult, error) {
		return &domain.ValidatorResult{Status: domain.StatusSuccess, Summary: summary}, nil
	}
}

func TestRegistry_ResolveRegistered(t *testing.T) {
	reg := validator.NewRegistry()
	require.NoError(t, reg.Register(domain.ValidatorWatchlistScreening, successCheck("clear")))

	check, err := reg.Resolve(domain.ValidatorWatchlistScreening)
	require.NoError(t, err)

	res, err := check.Check(context.Background(), domain.ValidatorInput{FieldID: "name"})
	require.NoError(t, err)
	assert.Equal(t, "clear", res.Summary)
}

func TestRegistry_ResolveUnknown(t *testing.T) {
	reg := validator.NewRegistry()

	for _, id := range []domain.ValidatorID{"", "credit_score", domain.ValidatorTaxIDLookup} {
		check, err := reg.Resolve(id)
		assert.Nil(t, check)
		assert.ErrorIs(t, err, domain.ErrUnknownValidator)
	}
}

func TestRegistry_RegisterRejectsDuplicatesAndNil(t *testing.T) {
	reg := validator.NewRegistry()
	require.NoError(t, reg.Register(domain.ValidatorTaxIDLookup, successCheck("ok")))

	assert.Error(t, reg.Register(domain.ValidatorTaxIDLookup, successCheck("again")))
	assert.Error(t, reg.Register(domain.ValidatorNationalIDLookup, nil))
	assert.Error(t, reg.Register(" ", successCheck("blank")))
}

func TestRegistry_IDsAndMissing(t *testing.T) {
	reg := validator.NewRegistry()
	require.NoError(t, reg.Register(domain.ValidatorWatchlistScreening, successCheck("ok")))
	require.NoError(t, reg.Register(domain.ValidatorDocumentSignatureStatus, successCheck("ok")))

	assert.Equal(t, []domain.ValidatorID{
		domain.ValidatorDocumentSignatureStatus,
		domain.ValidatorWatchlistScreening,
	}, reg.IDs())
	assert.ElementsMatch(t, []domain.ValidatorID{
		domain.ValidatorNationalIDLookup,
		domain.ValidatorTaxIDLookup,
	}, reg.Missing())
}
