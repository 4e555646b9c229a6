package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/igefined/hft-engine/internal/config"
	"github.com/igefined/hft-engine/internal/domain"
)

const (
	venueName    = "BINANCE_FUTURES"
	streamSuffix = "@bookTicker"
)

// ConnState is the connection lifecycle of the streaming adapter.
type ConnState int32

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateConnected
	StateReconnecting
	StateFailed
)

func (s ConnState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// bookTicker is the venue-native best-bid/ask tick. All numeric fields arrive
// as strings.
type bookTicker struct {
	Symbol      string `json:"s"`
	BidPrice    string `json:"b"`
	BidQuantity string `json:"B"`
	AskPrice    string `json:"a"`
	AskQuantity string `json:"A"`
	EventTime   int64  `json:"T"`
}

// session is one multiplexed socket and its supervise loop. A new subscription
// supersedes the previous session; Stop closes the current one.
type session struct {
	url  string
	conn *websocket.Conn
}

// Venue streams Binance USDⓈ-M futures book-ticker quotes into the gateway.
// Credentials are accepted for the order path; public market data does not use
// them.
type Venue struct {
	cfg     config.BinanceConfig
	sink    domain.QuoteSink
	metrics domain.MetricsObserver
	logger  *zap.Logger

	state   atomic.Int32
	stopped atomic.Bool
	wg      sync.WaitGroup

	mu      sync.Mutex
	current *session
}

func New(cfg config.BinanceConfig, sink domain.QuoteSink, metrics domain.MetricsObserver, logger *zap.Logger) *Venue {
	return &Venue{
		cfg:     cfg,
		sink:    sink,
		metrics: metrics,
		logger:  logger.Named("binance"),
	}
}

func (v *Venue) Name() string {
	return venueName
}

// State returns the current connection state.
func (v *Venue) State() ConnState {
	return ConnState(v.state.Load())
}

func (v *Venue) setState(s ConnState) {
	v.state.Store(int32(s))
}

// streamURL joins one book-ticker stream per symbol onto a single socket path.
func streamURL(base string, symbols []string) string {
	streams := make([]string, 0, len(symbols))
	for _, s := range symbols {
		streams = append(streams, strings.ToLower(s)+streamSuffix)
	}
	return base + "/" + strings.Join(streams, "/")
}

// SubscribeQuotes connects one multiplexed socket for the given symbols and
// starts the receive loop. A previous subscription on this adapter is closed
// and replaced.
func (v *Venue) SubscribeQuotes(ctx context.Context, symbols []string) error {
	if len(symbols) == 0 {
		return fmt.Errorf("%w: empty symbol list", domain.ErrSubscriptionFailed)
	}
	if v.stopped.Load() {
		return fmt.Errorf("%w: adapter stopped", domain.ErrSubscriptionFailed)
	}

	url := streamURL(v.cfg.WsURL, symbols)
	v.logger.Info("Connecting to Binance WebSocket", zap.String("url", url))

	conn, err := v.connectWithRetry(ctx, url)
	if err != nil {
		return err
	}

	sess := &session{url: url, conn: conn}
	v.mu.Lock()
	// Stop may have completed while dialing; adopting the session then would
	// leak the socket, since no supervise loop would ever close it.
	if v.stopped.Load() {
		v.mu.Unlock()
		conn.Close()
		v.setState(StateDisconnected)
		return fmt.Errorf("%w: adapter stopped", domain.ErrSubscriptionFailed)
	}
	old := v.current
	v.current = sess
	v.mu.Unlock()
	if old != nil {
		old.conn.Close()
	}

	v.wg.Add(1)
	go v.supervise(sess)

	return nil
}

// connectWithRetry dials with a bounded attempt budget and a fixed delay
// between attempts. Exhausting the budget leaves the adapter in StateFailed.
func (v *Venue) connectWithRetry(ctx context.Context, url string) (*websocket.Conn, error) {
	attempts := v.cfg.ReconnectAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if v.stopped.Load() {
			v.setState(StateDisconnected)
			return nil, fmt.Errorf("%w: adapter stopped", domain.ErrConnectionFailed)
		}

		v.setState(StateConnecting)
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
		if err == nil {
			v.setState(StateConnected)
			v.metrics.VenueConnected(venueName, true)
			v.logger.Info("WebSocket connected", zap.Int("attempt", attempt))
			return conn, nil
		}
		lastErr = err
		v.logger.Error("WebSocket connection error", zap.Error(err))

		if attempt == attempts {
			break
		}

		v.setState(StateReconnecting)
		v.metrics.VenueReconnect(venueName)
		v.logger.Warn("Retrying connection",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
			zap.Duration("delay", v.cfg.ReconnectDelay))

		select {
		case <-ctx.Done():
			v.setState(StateFailed)
			return nil, fmt.Errorf("%w: %v", domain.ErrConnectionFailed, ctx.Err())
		case <-time.After(v.cfg.ReconnectDelay):
		}
	}

	v.setState(StateFailed)
	return nil, fmt.Errorf("%w: failed after %d attempts: %v", domain.ErrConnectionFailed, attempts, lastErr)
}

// supervise runs the receive loop and drives the reconnect state machine when
// the transport fails. It exits when the adapter is stopped, the session is
// superseded, or the retry budget is exhausted.
func (v *Venue) supervise(sess *session) {
	defer v.wg.Done()

	for {
		err := v.readLoop(sess.conn)
		v.metrics.VenueConnected(venueName, false)

		if v.stopped.Load() {
			v.setState(StateDisconnected)
			return
		}
		if !v.isCurrent(sess) {
			return
		}

		v.logger.Error("WebSocket transport failure, reconnecting", zap.Error(err))
		conn, cerr := v.connectWithRetry(context.Background(), sess.url)
		if cerr != nil {
			v.logger.Error("Giving up on reconnection", zap.Error(cerr))
			return
		}

		v.mu.Lock()
		if v.stopped.Load() || v.current != sess {
			v.mu.Unlock()
			conn.Close()
			return
		}
		sess.conn = conn
		v.mu.Unlock()
	}
}

// readLoop receives and handles messages until the transport fails. Malformed
// messages are dropped in handleMessage and never terminate the loop.
func (v *Venue) readLoop(conn *websocket.Conn) error {
	for {
		if v.stopped.Load() {
			return nil
		}
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrWebSocket, err)
		}
		v.handleMessage(data)
	}
}

// handleMessage parses one inbound tick and forwards it as a Quote. Any parse
// failure or non-positive price/size drops the tick with a log line; garbage
// market data must never reach the book.
func (v *Venue) handleMessage(data []byte) {
	var tick bookTicker
	if err := json.Unmarshal(data, &tick); err != nil {
		v.logger.Warn("Failed to parse message", zap.Error(err))
		return
	}

	bid, err := strconv.ParseFloat(tick.BidPrice, 64)
	if err != nil {
		v.logger.Warn("Invalid bid price", zap.String("symbol", tick.Symbol), zap.Error(err))
		return
	}
	ask, err := strconv.ParseFloat(tick.AskPrice, 64)
	if err != nil {
		v.logger.Warn("Invalid ask price", zap.String("symbol", tick.Symbol), zap.Error(err))
		return
	}
	bidSize, err := strconv.ParseFloat(tick.BidQuantity, 64)
	if err != nil {
		v.logger.Warn("Invalid bid size", zap.String("symbol", tick.Symbol), zap.Error(err))
		return
	}
	askSize, err := strconv.ParseFloat(tick.AskQuantity, 64)
	if err != nil {
		v.logger.Warn("Invalid ask size", zap.String("symbol", tick.Symbol), zap.Error(err))
		return
	}

	if bid <= 0 || ask <= 0 || bidSize <= 0 || askSize <= 0 {
		v.logger.Warn("Invalid quote data received",
			zap.String("symbol", tick.Symbol),
			zap.Float64("bid", bid),
			zap.Float64("ask", ask),
			zap.Float64("bid_size", bidSize),
			zap.Float64("ask_size", askSize))
		return
	}

	timestamp := tick.EventTime
	if timestamp == 0 {
		timestamp = time.Now().UnixMilli()
	}

	quote := domain.Quote{
		Symbol:    tick.Symbol,
		Bid:       bid,
		Ask:       ask,
		BidSize:   bidSize,
		AskSize:   askSize,
		Venue:     venueName,
		Timestamp: timestamp,
	}

	if err := v.sink.ForwardQuote(quote); err != nil {
		v.logger.Error("Failed to forward quote",
			zap.String("symbol", quote.Symbol),
			zap.Error(err))
	}
}

func (v *Venue) isCurrent(sess *session) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current == sess
}

// SubmitOrder validates and submits an order. The signed REST submission is
// not wired yet; the credentials on the config are reserved for it.
// TODO: implement the signed fapi order endpoint.
func (v *Venue) SubmitOrder(ctx context.Context, order domain.Order) (string, error) {
	if order.Quantity <= 0 {
		return "", fmt.Errorf("%w: invalid quantity: %v", domain.ErrOrderSubmissionFailed, order.Quantity)
	}
	if order.Type == domain.Limit && order.Price <= 0 {
		return "", fmt.Errorf("%w: invalid price for limit order: %v", domain.ErrOrderSubmissionFailed, order.Price)
	}

	start := time.Now()
	orderID := fmt.Sprintf("binance_%s_%d", strings.ToLower(order.Symbol), start.UnixMilli())

	v.logger.Info("Order submitted",
		zap.String("symbol", order.Symbol),
		zap.String("side", string(order.Side)),
		zap.Float64("quantity", order.Quantity),
		zap.Float64("price", order.Price),
		zap.String("type", string(order.Type)))

	v.metrics.OrderSubmitted(venueName, order.Type, time.Since(start))
	v.metrics.ActiveOrders(venueName, 1)

	return orderID, nil
}

// Stop signals the background task to terminate. Cooperative: a loop blocked
// in a socket read observes the stop once the connection close unblocks it.
// Idempotent.
func (v *Venue) Stop() error {
	if v.stopped.Swap(true) {
		return nil
	}
	v.logger.Info("Stopping Binance adapter")

	v.mu.Lock()
	if v.current != nil {
		v.current.conn.Close()
	}
	v.mu.Unlock()

	v.wg.Wait()
	v.setState(StateDisconnected)
	return nil
}
