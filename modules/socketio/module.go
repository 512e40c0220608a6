// Package socketio provides the 'socketio emit' task, which connects to a
// Socket.IO server, emits one event and optionally waits for a reply event.
package socketio

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/specialistvlad/gridtask/internal/argtype"
	"github.com/specialistvlad/gridtask/internal/ctxlog"
	"github.com/specialistvlad/gridtask/internal/decl"
	"github.com/specialistvlad/gridtask/internal/registry"
	"github.com/specialistvlad/gridtask/internal/task"
	"github.com/zclconf/go-cty/cty"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

const defaultTimeout = 10 * time.Second

// Module implements the registry.Module interface for this package.
type Module struct{}

// EmitInput defines the inputs of 'socketio emit'.
type EmitInput struct {
	URL       string   `cty:"url"`
	Event     string   `cty:"event"`
	Namespace *string  `cty:"namespace"`
	Data      *string  `cty:"data"`
	WaitFor   *string  `cty:"wait-for"`
	Timeout   *float64 `cty:"timeout"`
	Insecure  *bool    `cty:"insecure"`
}

// opResult is a private struct to safely pass results through the done channel.
type opResult struct {
	value cty.Value
	err   error
}

// OnRunEmit is the handler for the 'socketio emit' task.
func OnRunEmit(ctx context.Context, input *EmitInput) (any, error) {
	namespace := deref(input.Namespace, "/")
	waitFor := deref(input.WaitFor, "")

	logger := ctxlog.FromContext(ctx).With("task", "socketio emit", "url", input.URL, "event", input.Event, "waitFor", waitFor)
	logger.Debug("Handler started")
	defer logger.Debug("Handler finished")

	timeout := defaultTimeout
	if input.Timeout != nil {
		if *input.Timeout <= 0 {
			return nil, fmt.Errorf("timeout must be positive, got %v", *input.Timeout)
		}
		timeout = time.Duration(*input.Timeout * float64(time.Second))
	}

	payload, err := parsePayload(input.Data)
	if err != nil {
		return nil, err
	}

	parsedURL, err := url.Parse(input.URL)
	if err != nil || parsedURL.Host == "" {
		return nil, fmt.Errorf("'%s' is not an absolute URL", input.URL)
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		opts.SetPath(parsedURL.Path)
	}
	if input.Insecure != nil && *input.Insecure {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var isConnected atomic.Bool
	done := make(chan opResult, 1)
	finish := func(res opResult) {
		select {
		case done <- res:
		default:
		}
	}

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(namespace, opts)
	defer func() {
		logger.Debug("Disconnecting socket client")
		io.Disconnect()
	}()

	io.On(types.EventName("connect"), func(...any) {
		isConnected.Store(true)
		logger.Info("Successfully connected", "namespace", namespace, "sid", io.Id())

		if payload != nil {
			io.Emit(input.Event, payload)
		} else {
			io.Emit(input.Event)
		}
		logger.Info("Event emitted")

		if waitFor == "" {
			finish(opResult{value: cty.ObjectVal(map[string]cty.Value{
				"emitted": cty.BoolVal(true),
				"sid":     cty.StringVal(io.Id()),
			})})
		}
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		err := fmt.Errorf("connection failed")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = fmt.Errorf("connection failed: %w", e)
			}
		}
		finish(opResult{err: err})
	})

	if waitFor != "" {
		io.On(types.EventName(waitFor), func(data ...any) {
			var first any
			if len(data) > 0 {
				first = data[0]
			}
			v, err := toCtyValue(first)
			if err != nil {
				finish(opResult{err: err})
				return
			}
			finish(opResult{value: cty.ObjectVal(map[string]cty.Value{"response_data": v})})
		})
	}

	io.Connect()

	select {
	case <-opCtx.Done():
		if isConnected.Load() {
			return nil, fmt.Errorf("timed out after connecting while waiting for event '%s'", waitFor)
		}
		return nil, fmt.Errorf("timed out while waiting for initial connection")
	case res := <-done:
		if res.err != nil {
			return nil, res.err
		}
		return res.value, nil
	}
}

// Register registers the 'socketio' namespace and its 'emit' task.
func (m *Module) Register(r *registry.Registry) {
	emit := registry.MustTask("emit", func(b *task.Builder) error {
		b.Describe("Connects to a Socket.IO server and emits one event.")

		args := []struct {
			name, description string
		}{
			{"url", "Server URL. A path other than / selects the Socket.IO endpoint path."},
			{"event", "Event name to emit."},
		}
		for _, a := range args {
			if err := b.AddArgument(a.name, argtype.String, func(c *decl.Config) {
				c.Description = a.description
				c.Required = true
			}); err != nil {
				return err
			}
		}

		opts := []struct {
			name        string
			kind        argtype.Kind
			description string
		}{
			{"namespace", argtype.String, "Namespace to join. Defaults to /."},
			{"data", argtype.String, "JSON payload sent with the event."},
			{"wait-for", argtype.String, "Event to wait for after emitting. Its first argument is printed."},
			{"timeout", argtype.Number, "Seconds to wait for the connection and reply. Defaults to 10."},
			{"insecure", argtype.Boolean, "Skip TLS certificate verification."},
		}
		for _, o := range opts {
			if err := b.AddOption(o.name, o.kind, func(c *decl.Config) {
				c.Description = o.description
			}); err != nil {
				return err
			}
		}

		b.Handle(task.Bind(OnRunEmit))
		return nil
	})

	r.RegisterTask(registry.MustTask("socketio", func(b *task.Builder) error {
		b.Describe("Socket.IO client helpers.")
		b.AddSubTask(emit)
		return nil
	}))
}

func deref(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
