package grammar

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"facet/internal/logger"
)

// Probe loads an optional backend once per process and remembers the
// outcome: present with a value, or absent with the reason.
type Probe[T any] struct {
	name string
	load func() (T, error)

	once  sync.Once
	value T
	err   error
}

// NewProbe returns an unchecked probe for the backend called name.
func NewProbe[T any](name string, load func() (T, error)) *Probe[T] {
	return &Probe[T]{name: name, load: load}
}

// Get runs the loader on first use and returns its memoized result. A
// failed load is logged once and wrapped in ErrUnavailable.
func (p *Probe[T]) Get(ctx context.Context) (T, error) {
	p.once.Do(func() {
		p.value, p.err = p.safeLoad()
		if p.err != nil {
			p.err = fmt.Errorf("%w: %s: %v", ErrUnavailable, p.name, p.err)
			logger.L(ctx).Warn("grammar backend unavailable", zap.String("backend", p.name), zap.Error(p.err))
		}
	})
	return p.value, p.err
}

// Available reports whether the backend loaded.
func (p *Probe[T]) Available(ctx context.Context) bool {
	_, err := p.Get(ctx)
	return err == nil
}

func (p *Probe[T]) safeLoad() (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("loader panicked: %v", r)
		}
	}()
	if p.load == nil {
		return v, fmt.Errorf("no loader")
	}
	return p.load()
}
