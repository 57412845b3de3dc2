package tokens

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	id := Identity{UserID: 3, Name: "Jane Smith", Role: "team"}

	raw, err := Issue(id, "s3cret", time.Hour)
	require.NoError(t, err)

	got, err := Parse(raw, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = Parse(raw, "other")
	assert.Error(t, err)

	expired, err := Issue(id, "s3cret", -time.Minute)
	require.NoError(t, err)
	_, err = Parse(expired, "s3cret")
	assert.Error(t, err)

	_, err = Parse("garbage", "s3cret")
	assert.Error(t, err)
}

func TestIdentityContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), Identity{UserID: 2, Name: "John Doe"})
	id, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "John Doe", id.Name)
}
