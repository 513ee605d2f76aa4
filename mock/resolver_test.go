package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/nerview"
	"github.com/fwojciec/nerview/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_ImplementsInterface(t *testing.T) {
	t.Parallel()

	// Verify mock can be used where Resolver is expected
	var _ nerview.Resolver = &mock.Resolver{}
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("delegates to ResolveFn", func(t *testing.T) {
		t.Parallel()

		var calledWith string
		r := &mock.Resolver{
			ResolveFn: func(_ context.Context, qid string) (*nerview.Place, error) {
				calledWith = qid
				return &nerview.Place{QID: qid}, nil
			},
		}

		place, err := r.Resolve(context.Background(), "Q46")

		require.NoError(t, err)
		assert.Equal(t, "Q46", calledWith)
		assert.Equal(t, "Q46", place.QID)
	})

	t.Run("returns error from ResolveFn", func(t *testing.T) {
		t.Parallel()

		r := &mock.Resolver{
			ResolveFn: func(_ context.Context, qid string) (*nerview.Place, error) {
				return nil, nerview.Errorf(nerview.ENOTFOUND, "no coordinates for %s", qid)
			},
		}

		_, err := r.Resolve(context.Background(), "Q46")

		assert.Equal(t, nerview.ENOTFOUND, nerview.ErrorCode(err))
	})
}
