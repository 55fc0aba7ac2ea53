package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	size  int
	name  string
	calls []string
}

var errNegativeSize = errors.New("size cannot be negative")

func (c *testConfig) Validate() error {
	if c.size == 0 {
		return errors.New("size is required")
	}

	return nil
}

func withSize(n int) Option[*testConfig] {
	return New(func(c *testConfig) error {
		if n < 0 {
			return errNegativeSize
		}
		c.size = n
		c.calls = append(c.calls, "size")

		return nil
	})
}

func withName(name string) Option[*testConfig] {
	return NoError(func(c *testConfig) {
		c.name = name
		c.calls = append(c.calls, "name")
	})
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg, withName("a"), withSize(3), withName("b"))
		require.NoError(t, err)
		require.Equal(t, 3, cfg.size)
		require.Equal(t, "b", cfg.name)
		require.Equal(t, []string{"name", "size", "name"}, cfg.calls)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg, withSize(-1), withName("never"))
		require.ErrorIs(t, err, errNegativeSize)
		require.Empty(t, cfg.name)
	})

	t.Run("skips nil options", func(t *testing.T) {
		cfg := &testConfig{}
		require.NoError(t, Apply(cfg, nil, withSize(1)))
		require.Equal(t, 1, cfg.size)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &testConfig{}
		require.NoError(t, Apply[*testConfig](cfg))
		require.Empty(t, cfg.calls)
	})
}

func TestApplyAndValidate(t *testing.T) {
	cfg := &testConfig{}
	require.Error(t, ApplyAndValidate(cfg, withName("x")))

	cfg = &testConfig{}
	require.NoError(t, ApplyAndValidate(cfg, withSize(8)))

	cfg = &testConfig{}
	require.ErrorIs(t, ApplyAndValidate(cfg, withSize(-8)), errNegativeSize)
}
