package mcp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rpggio/ccsearch/internal/domain/activity"
	"github.com/rpggio/ccsearch/internal/domain/project"
	"github.com/rpggio/ccsearch/internal/domain/search"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	require.Nil(t, MapError(nil))

	cases := []struct {
		err  error
		code string
	}{
		{search.ErrEmptyQuery, CodeInvalidInput},
		{fmt.Errorf("wrapped: %w", search.ErrInvalidInput), CodeInvalidInput},
		{activity.ErrInvalidInput, CodeInvalidInput},
		{project.ErrInvalidInput, CodeInvalidInput},
		{fmt.Errorf("selecting projects: %w", project.ErrProjectNotFound), CodeNotFound},
		{project.ErrRecordNotFound, CodeNotFound},
		{fmt.Errorf("loading projects: %w", project.ErrRootNotFound), CodeUnavailable},
		{errors.New("boom"), CodeInternal},
	}
	for _, tc := range cases {
		apiErr := MapError(tc.err)
		require.Equal(t, tc.code, apiErr.Code, tc.err.Error())
		require.ErrorIs(t, apiErr, tc.err)
	}
}

func TestMapError_PassesThroughAPIError(t *testing.T) {
	orig := invalidInput("id %q is not a uuid", "x")
	require.Same(t, orig, MapError(fmt.Errorf("ctx: %w", orig)))
	require.Equal(t, `INVALID_INPUT: id "x" is not a uuid`, orig.Error())
}
