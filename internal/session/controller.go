package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/joseph-ayodele/idcard-extractor/constants"
	"github.com/joseph-ayodele/idcard-extractor/internal/client"
	"github.com/joseph-ayodele/idcard-extractor/internal/common"
	"github.com/joseph-ayodele/idcard-extractor/internal/entity"
	"github.com/joseph-ayodele/idcard-extractor/internal/ingest"
	"github.com/joseph-ayodele/idcard-extractor/internal/results"
)

// Controller serializes transitions. Decoding and the network call run
// outside the lock so GoBack stays responsive while a request is in flight.
type Controller struct {
	mu        sync.Mutex
	state     State
	ingestor  *ingest.Ingestor
	extractor client.Extractor
	logger    *slog.Logger
}

func NewController(ing *ingest.Ingestor, ext client.Extractor, dt constants.DocumentType, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		state:     Initial(dt),
		ingestor:  ing,
		extractor: ext,
		logger:    logger,
	}
}

// State returns a snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) apply(fn func(State) State) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = fn(c.state)
	return c.state
}

func (c *Controller) applyErr(fn func(State) (State, error)) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := fn(c.state)
	c.state = next
	return next, err
}

func (c *Controller) SetDocumentType(dt constants.DocumentType) error {
	_, err := c.applyErr(func(s State) (State, error) { return SelectDocumentType(s, dt) })
	return err
}

// Select validates the first file of src. On acceptance the preview is
// decoded in the background; the returned channel closes once it has been
// applied (or dropped because another file was chosen). It is nil when
// nothing was selected.
func (c *Controller) Select(ctx context.Context, src ingest.Source) (<-chan struct{}, error) {
	f, err := c.ingestor.SelectFile(ctx, src)
	if err != nil {
		c.apply(func(s State) State { return Reject(s, err) })
		return nil, err
	}
	if f == nil {
		return nil, nil
	}
	c.apply(func(s State) State { return Select(s, f) })

	done := make(chan struct{})
	go func() {
		defer close(done)
		res := <-c.ingestor.Preview(ctx, f)
		if res.Err != nil {
			c.logger.WarnContext(ctx, "session.preview.failed", "path", f.Path, "error", res.Err)
			return
		}
		c.apply(func(s State) State { return PreviewReady(s, f, res.DataURL) })
	}()
	return done, nil
}

// Extract runs one extraction for the selected file. The returned error is
// what the user sees; ErrStaleResponse means the outcome was discarded.
func (c *Controller) Extract(ctx context.Context) (State, error) {
	var (
		ticket string
		file   *ingest.File
		dt     constants.DocumentType
	)
	if _, err := c.applyErr(func(s State) (State, error) {
		next, t, err := BeginExtract(s)
		ticket, file, dt = t, s.File, s.DocumentType
		return next, err
	}); err != nil {
		return c.State(), err
	}

	start := time.Now()
	c.logger.InfoContext(ctx, "session.extract.start", "ticket", ticket, "card_type", dt, "file", file.Name)

	res, err := c.run(ctx, file, dt)

	var applied bool
	final := c.apply(func(s State) State {
		next, ok := CompleteExtract(s, ticket, res, err)
		applied = ok
		return next
	})
	if !applied {
		c.logger.InfoContext(ctx, "session.extract.stale", "ticket", ticket, "elapsed_ms", time.Since(start).Milliseconds())
		return final, ErrStaleResponse
	}
	if err != nil {
		c.logger.WarnContext(ctx, "session.extract.failed", "ticket", ticket, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return final, err
	}
	c.logger.InfoContext(ctx, "session.extract.ok", "ticket", ticket, "card_type", res.Type, "elapsed_ms", time.Since(start).Milliseconds())
	return final, nil
}

func (c *Controller) run(ctx context.Context, f *ingest.File, dt constants.DocumentType) (entity.ExtractionResult, error) {
	payload, mt, err := c.ingestor.ToBase64Payload(ctx, f)
	if err != nil {
		return entity.ExtractionResult{}, err
	}
	req, err := entity.NewExtractionRequest(payload, mt, dt)
	if err != nil {
		return entity.ExtractionResult{}, common.NewAppError(common.CodeDecodeFailure, common.MsgDecodeFailure, err)
	}
	return c.extractor.Extract(ctx, req)
}

// GoBack resets to the upload screen; an in-flight response will be ignored.
func (c *Controller) GoBack() State {
	return c.apply(GoBack)
}

func (c *Controller) StartEdit(path string) (State, error) {
	return c.applyErr(func(s State) (State, error) { return StartEdit(s, path) })
}

func (c *Controller) Change(text string) (State, error) {
	return c.applyErr(func(s State) (State, error) { return Change(s, text) })
}

func (c *Controller) CloseEdit(trigger results.CloseTrigger) (State, error) {
	return c.applyErr(func(s State) (State, error) { return CloseEdit(s, trigger) })
}

func (c *Controller) Revert() (State, error) {
	return c.applyErr(Revert)
}
