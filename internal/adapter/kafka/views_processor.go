package kafka

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/lovoo/goka"
	"github.com/sanjibtex/storefront/pkg/schema"
)

// A processor is used for composition.
//
// Running and closing the underlying [goka.Processor]
type processor struct {
	opPrefix string
	gp       *goka.Processor
}

func (p *processor) run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer wg.Done()

	go p.runProc(ctx, stopFn)

	log.Info("preparing...")
	p.waitForReady(ctx)
	log.Info("running")
}

func (p *processor) runProc(ctx context.Context, stopFn context.CancelFunc) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer stopFn()

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *processor) waitForReady(ctx context.Context) {
	const op = "waitForReady"
	log := slog.With("op", makeOp(p.opPrefix, op))

	err := p.gp.WaitForReadyContext(ctx)
	if err != nil {
		log.Error("fall down while preparing", "err", err)
	}
}

func (p *processor) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// A viewEventCodec used for serde [schema.ProductViewV1]
type viewEventCodec struct {
	serde Serde
}

func newViewEventCodec(s Serde) viewEventCodec {
	return viewEventCodec{s}
}

func (c viewEventCodec) Encode(v any) ([]byte, error) {
	const op = "viewEventCodec.Encode"
	if _, ok := v.(schema.ProductViewV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c viewEventCodec) Decode(data []byte) (any, error) {
	const op = "viewEventCodec.Decode"
	var s schema.ProductViewV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// A countValue is a running view total for one product.
type countValue int64

// A countValueCodec used for serde [countValue]
type countValueCodec struct{}

func (countValueCodec) Encode(v any) ([]byte, error) {
	const op = "countValueCodec.Encode"
	cv, ok := v.(countValue)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	data := strconv.AppendInt([]byte(nil), int64(cv), 10)
	return data, nil
}

func (countValueCodec) Decode(data []byte) (any, error) {
	const op = "countValueCodec.Decode"
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return nil, opErr(err, op)
	}
	return countValue(n), nil
}

// A ViewCounterProcessor folds the product views stream into a
// per-product running total in the group table.
type ViewCounterProcessor struct {
	opPrefix string
	proc     processor
}

func NewViewCounterProc(
	seedBrokers []string,
	inputStream string,
	group string,
	viewSerde Serde,
) (*ViewCounterProcessor, error) {
	const op = "NewViewCounterProc"

	var p ViewCounterProcessor
	p.opPrefix = "ViewCounterProcessor"

	gg := goka.DefineGroup(goka.Group(group),
		goka.Input(
			goka.Stream(inputStream),
			newViewEventCodec(viewSerde),
			p.processFn,
		),
		goka.Persist(countValueCodec{}),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNonlogProcOpt())
	if err != nil {
		return nil, opErr(err, op)
	}

	p.proc = processor{
		opPrefix: p.opPrefix,
		gp:       gp,
	}

	return &p, nil
}

func (p *ViewCounterProcessor) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	p.proc.run(ctx, stopFn, wg)
}

func (p *ViewCounterProcessor) Close() {
	p.proc.close()
}

func (p *ViewCounterProcessor) processFn(ctx goka.Context, msg any) {
	var total countValue
	if v, ok := ctx.Value().(countValue); ok {
		total = v
	}
	total++
	ctx.SetValue(total)
}

// A ViewCounterView serves live per-product view totals from the
// counter group table.
type ViewCounterView struct {
	gv *goka.View
}

func NewViewCounterView(
	seedBrokers []string, group string,
) (*ViewCounterView, error) {
	const op = "NewViewCounterView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(group)),
		countValueCodec{},
		withNonlogViewOpt(),
	)
	if err != nil {
		return nil, opErr(err, op)
	}

	return &ViewCounterView{gv}, nil
}

func (v *ViewCounterView) Run(ctx context.Context) {
	const op = "ViewCounterView.Run"
	log := slog.With("op", op)

	err := v.gv.Run(ctx)
	if err != nil {
		log.Error("unexpected fail on run", "err", err)
	}
}

// ProductViewCount returns the live view total for one product.
// A product never seen on the stream has a zero total.
func (v *ViewCounterView) ProductViewCount(productID int64) (int64, error) {
	const op = "ViewCounterView.ProductViewCount"

	key := strconv.FormatInt(productID, 10)
	val, err := v.gv.Get(key)
	if err != nil {
		return 0, opErr(err, op)
	}
	if val == nil {
		return 0, nil
	}

	cv, ok := val.(countValue)
	if !ok {
		return 0, opErr(ErrInvalidValueType, op)
	}
	return int64(cv), nil
}
