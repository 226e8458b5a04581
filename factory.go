// Copyright (c) 2024 The symdd Authors
//
// MIT License

package symdd

import "go.uber.org/zap"

// Factory owns one node store and the family of computed caches the engine
// consults while evaluating apply/ite/quantify/compose/restrict. Every Node
// a Factory produces is only valid with that same Factory; mixing Nodes
// across Factories is a KindModeViolation error.
type Factory struct {
	store store
	mode  Mode
	log   *zap.Logger

	applyCache   *cache
	iteCache     *cache
	quantCache   *cache
	appexCache   *cache
	composeCache *cache
	replaceCache *cache
	restrictCache *cache

	cacheratio int
	fdds       []fddDomain
}

// New builds a Factory with varnum initial Boolean variables (further ones
// may be added later with ExtVarnum/ExtDomain). Options configure table
// sizing, growth limits and which store backend and reduction mode to use.
func New(varnum int, opts ...Option) (*Factory, error) {
	if varnum < 0 {
		return nil, newError(KindDomain, "varnum must be non-negative, got %d", varnum)
	}
	c := makeconfigs(varnum)
	for _, opt := range opts {
		opt(c)
	}
	if c.cachesize == 0 {
		c.cachesize = 10000
	}

	var s store
	switch c.backend {
	case ArrayBackend:
		s = newArrayStore(c)
	default:
		s = newMapStore(c)
	}

	f := &Factory{
		store:         s,
		mode:          c.mode,
		log:           pkglog,
		cacheratio:    c.cacheratio,
		applyCache:    newCache(c.cachesize),
		iteCache:      newCache(c.cachesize),
		quantCache:    newCache(c.cachesize),
		appexCache:    newCache(c.cachesize),
		composeCache:  newCache(c.cachesize),
		replaceCache:  newCache(c.cachesize),
		restrictCache: newCache(c.cachesize),
	}
	s.setGCHook(f.invalidateCaches)

	if _, err := s.addvars(varnum); err != nil {
		return nil, err
	}
	f.log.Debug("symdd: factory created", zap.Int("varnum", varnum), zap.String("mode", c.mode.String()))
	return f, nil
}

// invalidateCaches drops every computed-table entry. Called after every gc
// sweep since cache entries may reference ids the sweep just reclaimed.
func (f *Factory) invalidateCaches() {
	f.applyCache.clear()
	f.iteCache.clear()
	f.quantCache.clear()
	f.appexCache.clear()
	f.composeCache.clear()
	f.replaceCache.clear()
	f.restrictCache.clear()
	if f.cacheratio > 0 {
		size := (f.store.size() * f.cacheratio) / 100
		f.applyCache.resize(size)
		f.iteCache.resize(size)
		f.quantCache.resize(size)
		f.appexCache.resize(size)
		f.composeCache.resize(size)
		f.replaceCache.resize(size)
		f.restrictCache.resize(size)
	}
}

// Varnum returns the number of Boolean variables currently declared.
func (f *Factory) Varnum() int32 { return f.store.varnum() }

// Mode returns the reduction rule this Factory was built with.
func (f *Factory) Mode() Mode { return f.mode }

// ExtVarnum declares n additional Boolean variables, appended after the
// existing ones, and returns the level of the first new one.
func (f *Factory) ExtVarnum(n int) (int32, error) {
	if n < 0 {
		return 0, newError(KindDomain, "cannot extend by a negative number of variables")
	}
	return f.store.addvars(n)
}

// False returns the constant-false diagram.
func (f *Factory) False() Node { return f.wrap(0) }

// True returns the constant-true diagram.
func (f *Factory) True() Node { return f.wrap(1) }

// Ithvar returns the diagram for the positive literal of variable v.
func (f *Factory) Ithvar(v int32) (Node, error) {
	if v < 0 || v >= f.store.varnum() {
		return Node{}, newError(KindDomain, "variable index %d out of range [0,%d)", v, f.store.varnum())
	}
	id, err := f.store.mk(v, 0, 1)
	if err != nil {
		return Node{}, err
	}
	return f.wrap(id), nil
}

// NIthvar returns the diagram for the negative literal of variable v.
func (f *Factory) NIthvar(v int32) (Node, error) {
	if v < 0 || v >= f.store.varnum() {
		return Node{}, newError(KindDomain, "variable index %d out of range [0,%d)", v, f.store.varnum())
	}
	id, err := f.store.mk(v, 1, 0)
	if err != nil {
		return Node{}, err
	}
	return f.wrap(id), nil
}

// Stats returns a human-readable snapshot of the node table's occupancy
// (operator caches are not included), intended for logs and diagnostics rather than programmatic use.
func (f *Factory) Stats() string {
	return f.store.stats()
}
