package mcpserver

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/inputsets/internal/testutil"
	"github.com/erraggy/inputsets/parser"
)

func TestDocInput_ResolveFile(t *testing.T) {
	docCache.reset()
	path := testutil.WriteTempFile(t, "pipeline.yaml", testutil.PipelineYAML)

	result, err := docInput{File: path}.resolve()
	require.NoError(t, err)
	assert.Equal(t, parser.SourceFormatYAML, result.SourceFormat)
	assert.Equal(t, "deploy_service", result.Document.Get("pipeline").Get("identifier").Text())
}

func TestDocInput_ResolveContent(t *testing.T) {
	docCache.reset()
	result, err := docInput{Content: `{"pipeline": {"identifier": "p", "timeout": "<+input>"}}`}.resolve()
	require.NoError(t, err)
	assert.Equal(t, "content", result.SourcePath)
	assert.Equal(t, parser.SourceFormatJSON, result.SourceFormat)
	assert.Equal(t, "<+input>", result.Document.Get("pipeline").Get("timeout").Text())
}

func TestDocInput_ResolveNoneProvided(t *testing.T) {
	_, err := docInput{}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no input source specified (use one of file, url, content)")
}

func TestDocInput_ResolveMultipleProvided(t *testing.T) {
	_, err := docInput{File: "foo.yaml", Content: "bar"}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "got 2 (file, content)")
}

func TestDocInput_ResolveFileNotFound(t *testing.T) {
	docCache.reset()
	_, err := docInput{File: "/nonexistent/path.yaml"}.resolve()
	assert.Error(t, err)
}

func TestDocInput_InlineSizeLimit(t *testing.T) {
	old := cfg.MaxInlineSize
	cfg.MaxInlineSize = 16
	t.Cleanup(func() { cfg.MaxInlineSize = old })

	_, err := docInput{Content: strings.Repeat("a", 17)}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INPUTSETS_MAX_INLINE_SIZE")
}

func TestDocCache_HitOnSameFile(t *testing.T) {
	docCache.reset()
	input := docInput{File: testutil.WriteTempFile(t, "pipeline.yaml", testutil.PipelineYAML)}

	result1, err := input.resolve()
	require.NoError(t, err)
	assert.Equal(t, 1, docCache.size())

	result2, err := input.resolve()
	require.NoError(t, err)
	assert.Same(t, result1, result2, "expected same pointer from cache hit")
}

func TestDocCache_MissOnModifiedFile(t *testing.T) {
	docCache.reset()

	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pipeline:\n  identifier: v1\n"), 0600))

	input := docInput{File: path}
	result1, err := input.resolve()
	require.NoError(t, err)
	assert.Equal(t, "v1", result1.Document.Get("pipeline").Get("identifier").Text())

	require.NoError(t, os.WriteFile(path, []byte("pipeline:\n  identifier: v2\n"), 0600))

	// Ensure mtime differs from the first write on coarse-grained filesystems.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	result2, err := input.resolve()
	require.NoError(t, err)
	assert.NotSame(t, result1, result2)
	assert.Equal(t, "v2", result2.Document.Get("pipeline").Get("identifier").Text())
}

func TestDocCache_ContentHash(t *testing.T) {
	docCache.reset()
	input := docInput{Content: "pipeline:\n  identifier: hashed\n"}

	result1, err := input.resolve()
	require.NoError(t, err)
	result2, err := input.resolve()
	require.NoError(t, err)
	assert.Same(t, result1, result2)
}

func TestDocCache_Disabled(t *testing.T) {
	docCache.reset()
	old := cfg.CacheEnabled
	cfg.CacheEnabled = false
	t.Cleanup(func() { cfg.CacheEnabled = old })

	input := docInput{Content: "pipeline:\n  identifier: uncached\n"}
	result1, err := input.resolve()
	require.NoError(t, err)
	result2, err := input.resolve()
	require.NoError(t, err)
	assert.NotSame(t, result1, result2)
	assert.Zero(t, docCache.size())
}

func TestDocCache_LRUEviction(t *testing.T) {
	docCache.reset()

	var firstKey string
	for i := range docCache.maxSize + 1 {
		input := docInput{Content: "pipeline:\n  identifier: p" + string(rune('a'+i)) + "\n"}
		if i == 0 {
			firstKey = input.cacheKey()
		}
		_, err := input.resolve()
		require.NoError(t, err)
	}

	assert.Equal(t, docCache.maxSize, docCache.size())
	assert.Nil(t, docCache.get(firstKey), "expected oldest entry to be evicted")
}

func TestDocCache_SweepRemovesExpired(t *testing.T) {
	docCache.reset()
	docCache.putWithTTL("content:expired", &parser.ParseResult{}, -time.Second)
	docCache.putWithTTL("content:fresh", &parser.ParseResult{}, time.Minute)

	docCache.sweep()

	assert.Equal(t, 1, docCache.size())
	assert.Nil(t, docCache.get("content:expired"))
	assert.NotNil(t, docCache.get("content:fresh"))
}

func TestDocInput_CacheKey(t *testing.T) {
	assert.Empty(t, docInput{}.cacheKey())
	assert.Equal(t, "url:https://example.com/p.yaml", docInput{URL: "https://example.com/p.yaml"}.cacheKey())
	assert.True(t, strings.HasPrefix(docInput{Content: "x"}.cacheKey(), "content:"))
	assert.Empty(t, docInput{File: "/nonexistent/path.yaml"}.cacheKey(), "missing files are not cached")
}

func TestDocCache_ConcurrentResolveShared(t *testing.T) {
	docCache.reset()
	input := docInput{Content: testutil.PipelineYAML}

	const workers = 8
	results := make([]*parser.ParseResult, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := input.resolve()
			assert.NoError(t, err)
			results[i] = r
		}()
	}
	wg.Wait()

	require.NotNil(t, results[0])
	for _, r := range results[1:] {
		assert.Same(t, results[0], r)
	}
	assert.Equal(t, 1, docCache.size())
}
