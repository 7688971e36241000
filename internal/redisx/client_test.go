package redisx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	rdb := New("127.0.0.1:6379")
	require.NotNil(t, rdb)

	opts := rdb.Options()
	assert.Equal(t, "127.0.0.1:6379", opts.Addr)
	assert.Equal(t, 2*time.Second, opts.DialTimeout)
	assert.Equal(t, 2*time.Second, opts.ReadTimeout)
	assert.Equal(t, 2*time.Second, opts.WriteTimeout)
}
