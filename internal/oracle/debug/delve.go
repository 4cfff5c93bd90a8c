package debug

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os/exec"
	"time"

	"github.com/go-delve/delve/service/rpc2"
)

// DelveDriver drives a headless `dlv --headless --api-version=2`
// subprocess through its RPC client (spec.md §1 "Compiler/debugger
// capability"), the same "spawn a debugger subprocess, talk to it over
// an RPC-ish API, poll for stop/exit" shape as the retrieved
// go-debug-skill e2e harness, but against delve's actual Go client
// (service/rpc2) instead of a CLI wrapper.
type DelveDriver struct {
	// DlvPath is the `dlv` executable; defaults to "dlv" on PATH.
	DlvPath string
}

// Run implements Driver. It launches the target under dlv, continues
// once, and reports where execution stopped. The debuggee's combined
// stdout/stderr (where an assertion or a signal message ordinarily
// lands) is treated as the session's status text for the oracle's
// message-substring test.
func (d *DelveDriver) Run(ctx context.Context, binaryPath string, timeout time.Duration) (StopReport, error) {
	addr, err := freeTCPAddr()
	if err != nil {
		return StopReport{}, fmt.Errorf("debug: allocate listen address: %w", err)
	}

	dlvPath := d.DlvPath
	if dlvPath == "" {
		dlvPath = "dlv"
	}

	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, dlvPath,
		"--headless", "--api-version=2",
		"--listen="+addr, "exec", binaryPath)
	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Start(); err != nil {
		return StopReport{}, fmt.Errorf("debug: launch dlv: %w", err)
	}
	defer cancelSession(cmd)

	client, err := dialWithTimeout(addr, timeout)
	if err != nil {
		return StopReport{}, fmt.Errorf("debug: connect to dlv: %w", err)
	}
	defer client.Detach(true) //nolint:errcheck // best-effort, the session is already over

	resultCh := make(chan StopReport, 1)
	go func() {
		for state := range client.Continue() {
			if state.Err != nil {
				resultCh <- StopReport{State: StateCrashed, Status: output.String()}
				return
			}
			if state.Exited {
				resultCh <- StopReport{State: StateExited, Status: output.String()}
				return
			}
			if state.CurrentThread != nil {
				resultCh <- StopReport{
					State:  StateStopped,
					File:   state.CurrentThread.File,
					Line:   state.CurrentThread.Line,
					Status: output.String(),
				}
				return
			}
		}
		resultCh <- StopReport{State: StateDetached, Status: output.String()}
	}()

	select {
	case <-ctx.Done():
		return StopReport{State: StateTimedOut, Status: output.String()}, nil
	case <-time.After(timeout):
		return StopReport{State: StateTimedOut, Status: output.String()}, nil
	case report := <-resultCh:
		return report, nil
	}
}

func cancelSession(cmd *exec.Cmd) {
	if cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
	_ = cmd.Wait()
}

func freeTCPAddr() (string, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	addr := l.Addr().String()
	_ = l.Close()
	return addr, nil
}

func dialWithTimeout(addr string, timeout time.Duration) (*rpc2.RPCClient, error) {
	deadline := time.Now().Add(timeout)
	var lastErr error
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, 200*time.Millisecond)
		if err == nil {
			conn.Close()
			return rpc2.NewClient(addr), nil
		}
		lastErr = err
		time.Sleep(50 * time.Millisecond)
	}
	return nil, lastErr
}
