// Package functions implements the Datapad query handlers. Every handler
// takes named query-string parameters, runs one database operation on a
// scoped connection and answers with a JSON envelope.
package functions

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"time"

	"github.com/kasuganosora/datapad/audit"
	"github.com/kasuganosora/datapad/cache"
	"github.com/kasuganosora/datapad/metrics"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Event is one handler invocation.
type Event struct {
	QueryStringParameters map[string]string `json:"queryStringParameters"`

	// Caller metadata, recorded in the audit log of mutating functions.
	TraceID  string `json:"-"`
	UserName string `json:"-"`
	IP       string `json:"-"`
}

// Response carries the status and the serialized body: the payload on
// success, {"message": ...} on failure.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// HandlerFunc produces the success payload of one function.
type HandlerFunc func(ctx context.Context, ev Event) (any, error)

// Function is a named handler. Mutates marks functions that write and are
// therefore audited and gated behind authentication.
type Function struct {
	Name    string
	Mutates bool
	Handle  HandlerFunc
}

// Options wires a Service. Cache, PubSub, Audit and Metrics are optional.
type Options struct {
	DB           *gorm.DB
	Cache        cache.Cache
	PubSub       cache.PubSub
	InventoryTTL time.Duration
	Audit        *audit.Service
	Metrics      *metrics.Metrics
	Logger       *zap.Logger
}

// Service dispatches events to the registered functions.
type Service struct {
	db        *gorm.DB
	inventory *inventoryCache
	audit     *audit.Service
	metrics   *metrics.Metrics
	logger    *zap.Logger
	funcs     map[string]Function
}

// New creates a Service with every Datapad function registered.
func New(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		db:        opts.DB,
		inventory: newInventoryCache(opts.Cache, opts.PubSub, opts.InventoryTTL, logger),
		audit:     opts.Audit,
		metrics:   opts.Metrics,
		logger:    logger,
		funcs:     make(map[string]Function),
	}
	for _, f := range s.catalog() {
		s.funcs[f.Name] = f
	}
	return s
}

func (s *Service) catalog() []Function {
	return []Function{
		{Name: "GetAllContacts", Handle: s.getAllContacts},
		{Name: "InsertContact", Mutates: true, Handle: s.insertContact},
		{Name: "EditContact", Mutates: true, Handle: s.editContact},
		{Name: "DeleteContact", Mutates: true, Handle: s.deleteContact},

		{Name: "GetAllCharacters", Handle: s.getAllCharacters},
		{Name: "GetAllPlayerCharacters", Handle: s.getAllPlayerCharacters},
		{Name: "GetKnownCharacters", Handle: s.getKnownCharacters},
		{Name: "GetPlayerCharacters", Handle: s.getPlayerCharacters},
		{Name: "InsertCharacter", Mutates: true, Handle: s.insertCharacter},
		{Name: "EditCharacter", Mutates: true, Handle: s.editCharacter},
		{Name: "DeleteCharacter", Mutates: true, Handle: s.deleteCharacter},

		{Name: "GetPlayer", Handle: s.getPlayer},

		{Name: "GetShopInventory", Handle: s.getShopInventory},
		{Name: "InsertInventoryItem", Mutates: true, Handle: s.insertInventoryItem},
		{Name: "EditInventoryItem", Mutates: true, Handle: s.editInventoryItem},
		{Name: "DeleteInventoryItem", Mutates: true, Handle: s.deleteInventoryItem},

		{Name: "GetTimeline", Handle: s.getTimeline},
		{Name: "InsertTimelineEvent", Mutates: true, Handle: s.insertTimelineEvent},
		{Name: "EditTimelineEvent", Mutates: true, Handle: s.editTimelineEvent},
		{Name: "DeleteTimelineEvent", Mutates: true, Handle: s.deleteTimelineEvent},
	}
}

// Lookup returns the function registered under name.
func (s *Service) Lookup(name string) (Function, bool) {
	f, ok := s.funcs[name]
	return f, ok
}

// Names lists the registered function names in sorted order.
func (s *Service) Names() []string {
	return slices.Sorted(maps.Keys(s.funcs))
}

// Listen keeps the inventory cache coherent with peer instances until ctx
// is cancelled. It is a no-op when caching is disabled.
func (s *Service) Listen(ctx context.Context) error {
	return s.inventory.listen(ctx)
}

// Invoke runs the named function. Errors never escape: they are converted
// into the {"message": ...} envelope.
func (s *Service) Invoke(ctx context.Context, name string, ev Event) Response {
	f, ok := s.funcs[name]
	if !ok {
		return errorResponse(fmt.Errorf("%w: %q", ErrUnknownFunction, name))
	}

	log := s.logger.With(zap.String("function", name), zap.String("trace_id", ev.TraceID))
	log.Debug("function invoked", zap.Any("params", ev.QueryStringParameters))

	start := time.Now()
	payload, err := f.Handle(ctx, ev)
	var resp Response
	if err == nil {
		resp, err = jsonResponse(payload)
	}
	if err != nil {
		resp = errorResponse(err)
		if resp.StatusCode >= http.StatusInternalServerError {
			log.Error("function failed", zap.Error(err))
		} else {
			log.Info("function rejected", zap.Error(err))
		}
	}
	elapsed := time.Since(start)
	log.Debug("function finished", zap.Int("status", resp.StatusCode), zap.Duration("elapsed", elapsed))

	if s.metrics != nil {
		s.metrics.Observe(name, resp.StatusCode, elapsed)
	}
	if f.Mutates && s.audit != nil {
		entry := audit.Entry{
			TraceID:    ev.TraceID,
			UserName:   ev.UserName,
			Function:   name,
			Params:     ev.QueryStringParameters,
			IP:         ev.IP,
			DurationMs: int(elapsed.Milliseconds()),
		}
		if err != nil {
			entry.Error = err.Error()
		}
		s.audit.Log(entry)
	}
	return resp
}

func jsonResponse(payload any) (Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Response{}, fmt.Errorf("encode response: %w", err)
	}
	return Response{StatusCode: http.StatusOK, Body: string(body)}, nil
}

func errorResponse(err error) Response {
	body, _ := json.Marshal(map[string]string{"message": err.Error()})
	return Response{StatusCode: statusFor(err), Body: string(body)}
}

// param returns a required query parameter.
func param(ev Event, key string) (string, error) {
	v := ev.QueryStringParameters[key]
	if v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingParameter, key)
	}
	return v, nil
}
