package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	opaque := errors.New("driver exploded")

	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, ErrNotFound},
		{"wrapped no rows", fmt.Errorf("query: %w", sql.ErrNoRows), ErrNotFound},
		{"deadline", context.DeadlineExceeded, ErrUnavailable},
		{"canceled", context.Canceled, ErrUnavailable},
		{"duplicate key", errors.New("Error 1062 (23000): Duplicate entry 'a@b.com'"), ErrDuplicate},
		{"referenced rows", errors.New("Error 1451 (23000): Cannot delete or update a parent row"), ErrConflict},
		{"missing parent", errors.New("Error 1452 (23000): Cannot add or update a child row"), ErrNotFound},
		{"opaque passthrough", opaque, opaque},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.in)
			if tc.want == nil {
				require.NoError(t, got)
				return
			}
			require.ErrorIs(t, got, tc.want)
		})
	}
}
