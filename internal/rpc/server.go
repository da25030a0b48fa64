package rpc

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/pairjump/internal/app"
	"github.com/dshills/pairjump/internal/config/watcher"
	"github.com/dshills/pairjump/internal/delim"
	"github.com/dshills/pairjump/internal/dispatcher/handler"
	"github.com/dshills/pairjump/internal/dispatcher/handlers/pair"
	"github.com/dshills/pairjump/internal/engine"
	"github.com/dshills/pairjump/internal/engine/buffer"
	"github.com/dshills/pairjump/internal/input"
)

// Options configures a Server.
type Options struct {
	// WatchConfig reloads the config file when it changes.
	WatchConfig bool
	// Debounce is the quiet period before a config change is applied.
	Debounce time.Duration
}

// Server answers requests for one session.
type Server struct {
	app     *app.Application
	in      io.Reader
	out     *lineWriter
	opts    Options
	session string
	logger  *zap.Logger

	// maxCount is the repeat limit the dispatcher was built with. Config
	// reloads do not change it, so pair motions and dispatched actions
	// clamp alike.
	maxCount int
}

// NewServer creates a server reading requests from in and writing
// responses to out.
func NewServer(a *app.Application, in io.Reader, out io.Writer, opts Options) *Server {
	session := uuid.NewString()
	return &Server{
		app:     a,
		in:      in,
		out:     &lineWriter{w: out},
		opts:    opts,
		session: session,
		logger:  a.Logger().Named("rpc").With(zap.String("session", session)),

		maxCount: a.Dispatcher().Config().MaxRepeatCount,
	}
}

// Session returns the session id.
func (s *Server) Session() string {
	return s.session
}

// Serve handles requests until the input ends or ctx is cancelled.
// Requests are answered in order. When ctx is cancelled and the input is
// an io.Closer, it is closed to unblock the pending read.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.logger.Info("session started")
	defer s.logger.Info("session ended")

	g, gctx := errgroup.WithContext(ctx)
	lines := make(chan []byte)

	g.Go(func() error {
		return readLoop(gctx, newLineReader(s.in), lines)
	})

	g.Go(func() error {
		// The input ending ends the session.
		defer cancel()
		for line := range lines {
			if err := s.out.write(s.handle(line)); err != nil {
				return err
			}
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		if c, ok := s.in.(io.Closer); ok {
			_ = c.Close()
		}
		return nil
	})

	if s.opts.WatchConfig {
		if w := s.newWatcher(); w != nil {
			g.Go(func() error {
				return w.Run(gctx, func(ev watcher.Event) {
					s.logger.Debug("config changed", zap.String("op", ev.Op.String()))
					_, _ = s.app.ReloadConfig()
				})
			})
		}
	}

	return g.Wait()
}

func (s *Server) newWatcher() *watcher.Watcher {
	w, err := watcher.New(s.app.ConfigPath(),
		watcher.WithDebounce(s.opts.Debounce),
		watcher.WithErrorHandler(func(err error) {
			s.logger.Warn("config watch error", zap.Error(err))
		}),
	)
	if err != nil {
		s.logger.Warn("config watch disabled", zap.String("path", s.app.ConfigPath()), zap.Error(err))
		return nil
	}
	return w
}

// handle answers one request line.
func (s *Server) handle(line []byte) []byte {
	req, err := DecodeRequest(line)
	if err != nil {
		id := "null"
		if req != nil {
			id = req.ID
		}
		s.logger.Debug("bad request", zap.Error(err))
		return encodeError(id, err)
	}

	start := time.Now()
	resp, err := s.dispatch(req)
	if err != nil {
		s.logger.Debug("request failed",
			zap.String("method", req.Method),
			zap.Error(err),
		)
		return encodeError(req.ID, err)
	}
	s.logger.Debug("request",
		zap.String("method", req.Method),
		zap.Duration("duration", time.Since(start)),
	)
	return resp
}

func (s *Server) dispatch(req *Request) ([]byte, error) {
	switch req.Method {
	case "ping":
		return encodeValue(req.ID, "session", s.session), nil
	case "actions":
		return encodeValue(req.ID, "actions", s.app.Dispatcher().Actions()), nil
	case "metrics":
		m := s.app.Dispatcher().Metrics()
		if m == nil {
			return nil, ErrMetricsDisabled
		}
		return encodeMetrics(req.ID, m), nil
	}

	e, err := s.document(req)
	if err != nil {
		return nil, err
	}

	if strings.HasPrefix(req.Method, pair.Namespace+".") {
		return s.motion(req, e)
	}
	return s.action(req, e)
}

// document returns the engine for req, creating or replacing it when the
// request carries text.
func (s *Server) document(req *Request) (*engine.Engine, error) {
	e := s.app.Document()
	switch {
	case req.HasText && e == nil:
		e = engine.New(req.Text)
		s.app.SetDocument(e)
	case req.HasText && req.Text != e.Text():
		e.Replace(req.Text)
	case e == nil:
		return nil, ErrNoDocument
	}
	return e, nil
}

// motion runs a pair motion on each request cursor independently.
// The result keeps the request's order and length.
func (s *Server) motion(req *Request, e *engine.Engine) ([]byte, error) {
	name := strings.TrimPrefix(req.Method, pair.Namespace+".")
	m, ok := delim.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown pair action: %s", req.Method)
	}

	count := max(req.Count, 1)
	if s.maxCount > 0 {
		count = min(count, s.maxCount)
	}

	snap := e.Snapshot()
	points, err := requestPoints(req, e, snap)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	moved := delim.Apply(snap, delim.Repeat(m, count), points)
	status := handler.StatusNoOp
	for i := range moved {
		if moved[i] != points[i] {
			status = handler.StatusOK
			break
		}
	}
	if metrics := s.app.Dispatcher().Metrics(); metrics != nil {
		metrics.RecordDispatch(req.Method, time.Since(start), status)
	}

	e.SetCursorPoints(moved)
	return encodeResult(req.ID, status.String(), toPositions(snap, moved, req.Encoding)), nil
}

// action dispatches req.Method against the document.
func (s *Server) action(req *Request, e *engine.Engine) ([]byte, error) {
	if req.Cursors != nil {
		points, err := requestPoints(req, e, e.Snapshot())
		if err != nil {
			return nil, err
		}
		e.SetCursorPoints(points)
	}

	action := input.NewAction(req.Method, input.SourceAPI).WithCount(req.Count)
	result := s.app.Dispatch(action)
	if result.Error != nil {
		return nil, result.Error
	}
	return encodeResult(req.ID, result.Status.String(), toPositions(e.Snapshot(), e.CursorPoints(), req.Encoding)), nil
}

// requestPoints converts the request cursors to code-point points. With no
// cursors in the request the document's current cursors are used.
func requestPoints(req *Request, e *engine.Engine, snap *buffer.Snapshot) ([]buffer.Point, error) {
	if req.Cursors == nil {
		return e.CursorPoints(), nil
	}
	points := make([]buffer.Point, len(req.Cursors))
	for i, c := range req.Cursors {
		if c.Line < 0 || c.Character < 0 {
			return nil, fmt.Errorf("%w: %d:%d", ErrInvalidCursor, c.Line, c.Character)
		}
		var offset buffer.Offset
		if req.Encoding == EncodingUTF16 {
			offset = snap.PointUTF16ToOffset(buffer.PointUTF16{Line: uint32(c.Line), Column: uint32(c.Character)})
		} else {
			offset = snap.PointToOffset(buffer.Point{Line: uint32(c.Line), Column: uint32(c.Character)})
		}
		points[i] = snap.OffsetToPoint(offset)
	}
	return points, nil
}

func toPositions(snap *buffer.Snapshot, points []buffer.Point, enc Encoding) []Position {
	out := make([]Position, len(points))
	for i, p := range points {
		if enc == EncodingUTF16 {
			u := snap.OffsetToPointUTF16(snap.PointToOffset(p))
			out[i] = Position{Line: int(u.Line), Character: int(u.Column)}
			continue
		}
		out[i] = Position{Line: int(p.Line), Character: int(p.Column)}
	}
	return out
}
