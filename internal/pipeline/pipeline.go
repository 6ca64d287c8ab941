package pipeline

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Default is load, scope, canonicalize, extract, store.
func Default() *Pipeline {
	return New(
		&LoadProcessor{},
		&ScopeProcessor{},
		&CanonicalizeProcessor{},
		&ExtractProcessor{},
		&StoreProcessor{},
	)
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Continue on errors so every case reports its diagnostics
		// even when another case failed to decode.
	}
	return ctx
}
