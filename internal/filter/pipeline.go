package filter

// Pipeline styles images by expression, memoizing results in a Cache.
//
// A Pipeline is safe for concurrent use and is meant to be shared by every
// request handler in the process.
type Pipeline struct {
	cache *Cache
}

// NewPipeline creates a pipeline with its own empty cache.
func NewPipeline() *Pipeline {
	return NewPipelineWithCache(NewCache())
}

// NewPipelineWithCache creates a pipeline backed by an existing cache.
func NewPipelineWithCache(cache *Cache) *Pipeline {
	return &Pipeline{cache: cache}
}

// Cache returns the cache backing the pipeline.
func (p *Pipeline) Cache() *Cache {
	return p.cache
}

// Apply returns img styled with the named expression.
//
// Unknown expressions are not an error: they resolve to the identity preset
// and yield a copy of img. The result is cached under (expression, width,
// height), so a later image of the same size and expression receives this
// same raster even if its pixels differ. Returned rasters are shared and
// must not be modified.
func (p *Pipeline) Apply(img *Raster, expression string) (*Raster, error) {
	if err := checkRaster(img); err != nil {
		return nil, err
	}

	key := CacheKey{
		Expression: normalizeExpression(expression),
		Width:      img.Width(),
		Height:     img.Height(),
	}
	return p.cache.GetOrCompute(key, func() (*Raster, error) {
		return Resolve(expression).Run(img)
	})
}
