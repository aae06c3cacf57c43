package model

// modelConfig holds the configuration for instantiating a model.
type modelConfig struct {
	routedStreams bool
	forInquiry    bool
}

// defaultModelConfig returns the default model configuration: routed
// streams on, inquiry mode on.
func defaultModelConfig() modelConfig {
	return modelConfig{
		routedStreams: true,
		forInquiry:    true,
	}
}

// Option configures how the model object is instantiated.
type Option func(*modelConfig)

// WithRoutedStreams sets whether the model application routes stream
// flows. Models built without a stream component pass false.
func WithRoutedStreams(routed bool) Option {
	return func(cfg *modelConfig) {
		cfg.routedStreams = routed
	}
}

// ForSimulation opens the model for time stepping instead of inquiry.
// Simulation controls such as AdvanceTime and SimulateForOneTimeStep
// only work on a model opened this way.
func ForSimulation() Option {
	return func(cfg *modelConfig) {
		cfg.forInquiry = false
	}
}
