package lending_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-lending-go/lending"
)

func Test_GetConsistencyLevel_DefaultsToStrong(t *testing.T) {
	assert.Equal(t, lending.StrongConsistency, lending.GetConsistencyLevel(context.Background()))
}

func Test_GetConsistencyLevel_ReadsLevelFromContext(t *testing.T) {
	eventual := lending.WithEventualConsistency(context.Background())
	strong := lending.WithStrongConsistency(eventual)

	assert.Equal(t, lending.EventualConsistency, lending.GetConsistencyLevel(eventual))
	assert.Equal(t, lending.StrongConsistency, lending.GetConsistencyLevel(strong))
}

func Test_ConsistencyLevel_String(t *testing.T) {
	assert.Equal(t, "strong", lending.StrongConsistency.String())
	assert.Equal(t, "eventual", lending.EventualConsistency.String())
	assert.Equal(t, "unknown", lending.ConsistencyLevel(42).String())
}
