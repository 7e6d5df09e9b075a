package redis

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/alicebob/miniredis/v2/server"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/vectorset/pkg/vectorset"
)

// fakeVectorSets emulates the read side of the vector set commands on top of
// miniredis. Keys are also added as plain sets so EXISTS sees them.
type fakeVectorSets struct {
	mu   sync.Mutex
	sets map[string]map[string]string
}

func newMiniredis(t *testing.T, withRange bool) (*miniredis.Miniredis, *fakeVectorSets) {
	t.Helper()
	s := miniredis.RunT(t)
	f := &fakeVectorSets{sets: map[string]map[string]string{}}

	srv := s.Server()
	require.NoError(t, srv.Register("VCARD", f.vcard))
	require.NoError(t, srv.Register("VRANDMEMBER", f.vrandmember))
	require.NoError(t, srv.Register("VEMB", f.vemb))
	require.NoError(t, srv.Register("VGETATTR", f.vgetattr))
	if withRange {
		require.NoError(t, srv.Register("VRANGE", f.vrange))
	}
	return s, f
}

func (f *fakeVectorSets) add(s *miniredis.Miniredis, key, name, attrs string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sets[key] == nil {
		f.sets[key] = map[string]string{}
	}
	f.sets[key][name] = attrs
	_, _ = s.SAdd(key, name)
}

func (f *fakeVectorSets) names(key string) []string {
	names := make([]string, 0, len(f.sets[key]))
	for n := range f.sets[key] {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (f *fakeVectorSets) vcard(c *server.Peer, cmd string, args []string) {
	if len(args) != 1 {
		c.WriteError("ERR wrong number of arguments for '" + strings.ToLower(cmd) + "' command")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	c.WriteInt(len(f.sets[args[0]]))
}

// vrandmember repeats the first member for negative counts, like the real command.
func (f *fakeVectorSets) vrandmember(c *server.Peer, cmd string, args []string) {
	if len(args) != 2 {
		c.WriteError("ERR wrong number of arguments for '" + strings.ToLower(cmd) + "' command")
		return
	}
	count, err := strconv.Atoi(args[1])
	if err != nil {
		c.WriteError("ERR value is not an integer or out of range")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	names := f.names(args[0])
	if len(names) == 0 {
		c.WriteLen(0)
		return
	}
	if count < 0 {
		c.WriteLen(-count)
		for i := 0; i < -count; i++ {
			c.WriteBulk(names[0])
		}
		return
	}
	if count < len(names) {
		names = names[:count]
	}
	c.WriteLen(len(names))
	for _, n := range names {
		c.WriteBulk(n)
	}
}

func (f *fakeVectorSets) vrange(c *server.Peer, cmd string, args []string) {
	if len(args) != 4 {
		c.WriteError("ERR wrong number of arguments for '" + strings.ToLower(cmd) + "' command")
		return
	}
	count, err := strconv.Atoi(args[3])
	if err != nil {
		c.WriteError("ERR value is not an integer or out of range")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	names := f.names(args[0])
	if count >= 0 && count < len(names) {
		names = names[:count]
	}
	c.WriteLen(len(names))
	for _, n := range names {
		c.WriteBulk(n)
	}
}

func (f *fakeVectorSets) vemb(c *server.Peer, cmd string, args []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sets[args[0]][args[1]]; !ok {
		c.WriteNull()
		return
	}
	c.WriteLen(2)
	c.WriteBulk("0.5")
	c.WriteBulk("-0.25")
}

func (f *fakeVectorSets) vgetattr(c *server.Peer, cmd string, args []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	attrs, ok := f.sets[args[0]][args[1]]
	if !ok || attrs == "" {
		c.WriteNull()
		return
	}
	c.WriteBulk(attrs)
}

func newTransport(t *testing.T, s *miniredis.Miniredis) *RedisClient {
	t.Helper()
	port, err := strconv.Atoi(s.Port())
	require.NoError(t, err)

	client, err := NewClient(Config{Host: s.Host(), Port: port})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestScanKeys_Standalone(t *testing.T) {
	s := miniredis.RunT(t)
	_, _ = s.SAdd("docs:1", "a")
	_, _ = s.SAdd("docs:2", "a")
	_, _ = s.SAdd("other", "a")
	require.NoError(t, s.Set("docs:3", "plain"))
	transport := newTransport(t, s)

	keys, err := transport.ScanKeys(context.Background(), "docs:*", "set", 1)

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"docs:1", "docs:2"}, keys)
}

func TestScanKeys_ClusterVisitsEveryMaster(t *testing.T) {
	first, second := miniredis.RunT(t), miniredis.RunT(t)
	_, _ = first.SAdd("docs:1", "a")
	_, _ = second.SAdd("docs:2", "a")
	_, _ = second.SAdd("docs:3", "a")

	cluster := goredis.NewClusterClient(&goredis.ClusterOptions{
		Protocol: 2,
		ClusterSlots: func(context.Context) ([]goredis.ClusterSlot, error) {
			return []goredis.ClusterSlot{
				{Start: 0, End: 8191, Nodes: []goredis.ClusterNode{{Addr: first.Addr()}}},
				{Start: 8192, End: 16383, Nodes: []goredis.ClusterNode{{Addr: second.Addr()}}},
			}, nil
		},
	})
	transport := NewFromUniversalClient(cluster)
	t.Cleanup(func() { _ = transport.Close() })

	keys, err := transport.ScanKeys(context.Background(), "", "set", 10)

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"docs:1", "docs:2", "docs:3"}, keys)
}

func TestExecute_NullReply(t *testing.T) {
	s, _ := newMiniredis(t, false)
	client := newTransport(t, s)

	val, err := client.Execute(context.Background(), vectorset.Command{"GET", "missing"})

	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestExecute_EmptyCommand(t *testing.T) {
	s, _ := newMiniredis(t, false)
	client := newTransport(t, s)

	_, err := client.Execute(context.Background(), vectorset.Command{})
	assert.ErrorIs(t, err, ErrEmptyCommand)
}

func TestExecuteBatch_PerCommandErrors(t *testing.T) {
	s, _ := newMiniredis(t, false)
	client := newTransport(t, s)

	replies, err := client.ExecuteBatch(context.Background(), []vectorset.Command{
		{"SET", "str", "v"},
		{"LPUSH", "str", "x"},
		{"VRANGE", "str", "-", "+", "10"},
		{"GET", "str"},
		{"GET", "missing"},
	})

	require.NoError(t, err)
	require.Len(t, replies, 5)

	assert.NoError(t, replies[0].Err)
	assert.Equal(t, "OK", replies[0].Value)

	require.Error(t, replies[1].Err)
	assert.Contains(t, replies[1].Err.Error(), "WRONGTYPE")
	assert.True(t, IsServerError(replies[1].Err))

	require.Error(t, replies[2].Err)
	assert.Contains(t, strings.ToLower(replies[2].Err.Error()), "unknown command")

	assert.NoError(t, replies[3].Err)
	assert.Equal(t, "v", replies[3].Value)

	assert.NoError(t, replies[4].Err)
	assert.Nil(t, replies[4].Value)
}

func TestExecuteBatch_ConnectionFailure(t *testing.T) {
	s, _ := newMiniredis(t, false)
	client := newTransport(t, s)
	s.Close()

	_, err := client.ExecuteBatch(context.Background(), []vectorset.Command{{"GET", "k"}})

	require.Error(t, err)
	assert.False(t, IsServerError(err))
}

func TestConnectionIdentity(t *testing.T) {
	assert.Equal(t, vectorset.ConnectionID("redis://localhost:6379/2"), standaloneID("localhost:6379", 2))
	assert.Equal(t,
		clusterID([]string{"c:7002", "a:7000", "b:7001"}),
		clusterID([]string{"a:7000", "b:7001", "c:7002"}))
	assert.Equal(t, vectorset.ConnectionID("redis-cluster://a:7000,b:7001"), clusterID([]string{"b:7001", "a:7000"}))
	assert.Equal(t, vectorset.ConnectionID("redis-sentinel://mymaster/0"), sentinelID("mymaster", 0))

	a := NewFromUniversalClient(goredis.NewClient(&goredis.Options{Addr: "localhost:0"}))
	b := NewFromUniversalClient(goredis.NewClient(&goredis.Options{Addr: "localhost:0"}))
	assert.NotEqual(t, a.ConnectionID(), b.ConnectionID())
	assert.True(t, strings.HasPrefix(string(a.ConnectionID()), "redis-client://"))
}

func TestNewClusterClient_RequiresAddresses(t *testing.T) {
	_, err := NewClusterClient(ClusterConfig{})
	assert.Error(t, err)
}

func TestNewFailoverClient_RequiresMaster(t *testing.T) {
	_, err := NewFailoverClient(FailoverConfig{SentinelAddrs: []string{"localhost:26379"}})
	assert.Error(t, err)
}

func TestVectorSetClient_FallbackOnServerWithoutRange(t *testing.T) {
	s, f := newMiniredis(t, false)
	for _, n := range []string{"c", "a", "b"} {
		f.add(s, "docs", n, "")
	}
	transport := newTransport(t, s)
	client := vectorset.NewClient(transport, vectorset.Config{})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := client.ListElements(ctx, vectorset.ListRequest{Key: "docs", Count: -2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), res.Total)
		assert.Len(t, res.Elements, 2)
		assert.NotEqual(t, res.Elements[0], res.Elements[1], "fallback must not return duplicates")
	}

	assert.Equal(t, vectorset.CapabilityUnsupported, client.Capabilities().Get(transport.ConnectionID()))
}

func TestVectorSetClient_RangeOnNewServer(t *testing.T) {
	s, f := newMiniredis(t, true)
	for _, n := range []string{"c", "a", "b"} {
		f.add(s, "docs", n, "")
	}
	transport := newTransport(t, s)
	client := vectorset.NewClient(transport, vectorset.Config{})

	res, err := client.ListElements(context.Background(), vectorset.ListRequest{Key: "docs", Count: 10})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, res.Elements)
	assert.Equal(t, vectorset.CapabilitySupported, client.Capabilities().Get(transport.ConnectionID()))
}

func TestVectorSetClient_NegativeCountMatchesAcrossServers(t *testing.T) {
	for _, withRange := range []bool{false, true} {
		s, f := newMiniredis(t, withRange)
		for _, n := range []string{"a", "b", "c", "d"} {
			f.add(s, "docs", n, "")
		}
		client := vectorset.NewClient(newTransport(t, s), vectorset.Config{})

		res, err := client.ListElements(context.Background(), vectorset.ListRequest{Key: "docs", Count: -2})

		require.NoError(t, err)
		assert.Equal(t, int64(4), res.Total)
		assert.Len(t, res.Elements, 2, "withRange=%v", withRange)
	}
}

func TestVectorSetClient_ElementData(t *testing.T) {
	s, f := newMiniredis(t, false)
	f.add(s, "docs", "a", `{"year":2020}`)
	f.add(s, "docs", "b", "")
	client := vectorset.NewClient(newTransport(t, s), vectorset.Config{})
	ctx := context.Background()

	vec, err := client.GetElementVector(ctx, "docs", "a")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, -0.25}, vec)

	_, err = client.GetElementVector(ctx, "docs", "zzz")
	assert.ErrorIs(t, err, vectorset.ErrElementNotFound)

	attrs, err := client.GetElementAttributes(ctx, "docs", "a")
	require.NoError(t, err)
	assert.Equal(t, vectorset.Attributes{"year": float64(2020)}, attrs)

	attrs, err = client.GetElementAttributes(ctx, "docs", "b")
	require.NoError(t, err)
	assert.Nil(t, attrs)

	_, err = client.GetElementVector(ctx, "nope", "a")
	assert.True(t, vectorset.IsNotFound(err))
}

func TestVectorSetClient_DeleteCountsOnlyRemoved(t *testing.T) {
	s, f := newMiniredis(t, false)
	f.add(s, "docs", "a", "")
	client := vectorset.NewClient(newTransport(t, s), vectorset.Config{})

	// VREM is not registered here, so every removal fails on its own and the
	// call still succeeds with nothing removed.
	removed, err := client.DeleteElements(context.Background(), vectorset.DeleteRequest{Key: "docs", Names: []string{"a", "b"}})

	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)
}
