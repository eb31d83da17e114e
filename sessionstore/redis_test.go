package sessionstore

import (
	"context"
	"encoding/json"
	"slices"
	"testing"
	"time"

	"github.com/redis/rueidis/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRedisStoreLoad(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)
	state := testState()
	data, err := json.Marshal(state)
	require.NoError(t, err)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "passwords:session:k")).
		Return(mock.Result(mock.RedisString(string(data))))

	got, err := NewRedisStore(c).Load(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, state, got)
}

func TestRedisStoreLoadMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "p:k")).
		Return(mock.Result(mock.RedisNil()))

	_, err := NewRedisStore(c, WithPrefix("p:")).Load(context.Background(), "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreLoadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "passwords:session:k")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	_, err := NewRedisStore(c).Load(context.Background(), "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreSaveOutlivesKeepAlive(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)
	state := testState()
	require.Positive(t, state.KeepAliveInterval())

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "SET" && cmd[1] == "passwords:session:k" && len(cmd) == 3 &&
				!slices.Contains(cmd, "EX")
		})).
		Return(mock.Result(mock.RedisString("OK")))

	require.NoError(t, NewRedisStore(c).Save(context.Background(), "k", state))
}

func TestRedisStoreSaveFixedTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "SET" && slices.Equal(cmd[len(cmd)-2:], []string{"EX", "3600"})
		})).
		Return(mock.Result(mock.RedisString("OK")))
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "SET" && len(cmd) == 3
		})).
		Return(mock.Result(mock.RedisString("OK")))

	ctx := context.Background()
	require.NoError(t, NewRedisStore(c, WithTTL(time.Hour)).Save(ctx, "k", testState()))
	require.NoError(t, NewRedisStore(c, WithTTL(0)).Save(ctx, "k", testState()))
}

func TestRedisStoreDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("DEL", "passwords:session:k")).
		Return(mock.Result(mock.RedisInt64(1)))
	c.EXPECT().
		Do(gomock.Any(), mock.Match("DEL", "passwords:session:k")).
		Return(mock.ErrorResult(context.Canceled))

	s := NewRedisStore(c)
	require.NoError(t, s.Delete(context.Background(), "k"))
	assert.ErrorIs(t, s.Delete(context.Background(), "k"), context.Canceled)
}
