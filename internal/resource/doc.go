// Package resource bounds what a benchmark run may consume.
//
// A Controller governs three resources:
//
//   - Memory: bytes of datasets held at once (non-blocking, fail-fast)
//   - Workers: concurrent benchmark cases (weighted semaphore)
//   - IO: upload bandwidth for reports and datasets (token bucket)
//
// Example:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:   1 << 30,
//	    MaxWorkers:         4,
//	    IOLimitBytesPerSec: 8 << 20,
//	})
//
//	if err := rc.AcquireWorker(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseWorker()
//
//	if err := rc.AcquireIO(ctx, len(report)); err != nil {
//	    return err
//	}
//
// All methods are safe for concurrent use. A nil *Controller is valid and
// imposes no limits.
package resource
