package ecs

// Option configures id allocation for a Registry or a TimerManager.
type Option func(*allocOptions)

type allocOptions struct {
	first int64
	max   int64
}

func defaultAllocOptions() allocOptions {
	return allocOptions{first: DefaultFirstID, max: MaxSafeID}
}

// WithMaxID sets the exclusive ceiling for allocated ids. Negative values are
// treated as zero, which leaves no ids to allocate.
func WithMaxID(max int64) Option {
	return func(o *allocOptions) {
		if max < 0 {
			max = 0
		}
		o.max = max
	}
}

// WithFirstID sets where the fast allocation path starts. Negative values are
// ignored.
func WithFirstID(first int64) Option {
	return func(o *allocOptions) {
		if first < 0 {
			return
		}
		o.first = first
	}
}

func applyOptions(opts []Option) allocOptions {
	o := defaultAllocOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// idAllocator hands out ids from a monotonically increasing hint. Once the
// hint reaches the ceiling it scans upward from zero for the lowest id not in
// use, which is only needed after the id space has been churned through.
type idAllocator[K ~int64] struct {
	next K
	max  K
}

func newIDAllocator[K ~int64](o allocOptions) idAllocator[K] {
	return idAllocator[K]{next: K(o.first), max: K(o.max)}
}

func (a *idAllocator[K]) allocate(inUse func(K) bool) (K, bool) {
	if a.next < a.max {
		id := a.next
		a.next++
		return id, true
	}
	for id := K(0); id < a.max; id++ {
		if !inUse(id) {
			return id, true
		}
	}
	return 0, false
}
