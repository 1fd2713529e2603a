package shell

// OutputSink receives decoded output text as the relay captures it. Delivery
// is synchronous with the relay loop, so implementations must not block.
type OutputSink interface {
	OnOutput(text string)
}

// SinkFunc adapts a plain function to an OutputSink.
type SinkFunc func(text string)

func (f SinkFunc) OnOutput(text string) { f(text) }
