package observability

import (
	"context"
	"testing"
	"time"
)

type testPipelineHooks struct {
	NoopPipelineHooks
	composites int
}

func (h *testPipelineHooks) OnCompositeStart(ctx context.Context, index, batchSize int) {
	h.composites++
}

type testCacheHooks struct {
	NoopCacheHooks
	hits int
}

func (h *testCacheHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.hits++
}

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnScanStart(ctx, "/photos")
	p.OnScanComplete(ctx, "/photos", 12, 1, time.Second, nil)
	p.OnPlanComplete(ctx, 12, 2)
	p.OnCompositeStart(ctx, 0, 9)
	p.OnCompositeComplete(ctx, 0, "square", time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "composite")
	c.OnCacheMiss(ctx, "composite")
	c.OnCacheSet(ctx, "composite", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()
	defer Reset()

	// Verify defaults are noop
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	// Set custom hooks
	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != PipelineHooks(customPipeline) {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != CacheHooks(customCache) {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Events reach custom hooks
	Pipeline().OnCompositeStart(context.Background(), 0, 9)
	if customPipeline.composites != 1 {
		t.Errorf("composite events = %d, want 1", customPipeline.composites)
	}
	Cache().OnCacheHit(context.Background(), "composite")
	if customCache.hits != 1 {
		t.Errorf("cache hits = %d, want 1", customCache.hits)
	}
}

func TestSetNilHooksKeepsCurrent(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)
	if Pipeline() != PipelineHooks(custom) {
		t.Error("SetPipelineHooks(nil) should keep the current hooks")
	}
}
