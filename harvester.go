/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package rifcsharvest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/suparena/rifcsharvest/errors"
	"github.com/suparena/rifcsharvest/internal/logging"
	"github.com/suparena/rifcsharvest/internal/metrics"
	"github.com/suparena/rifcsharvest/mapper"
	"github.com/suparena/rifcsharvest/mapping"
	"github.com/suparena/rifcsharvest/notify"
	"github.com/suparena/rifcsharvest/objectstore"
	"github.com/suparena/rifcsharvest/rifcs"
	"github.com/suparena/rifcsharvest/storagemodels"
)

const (
	// DefaultPayloadID names the payload holding the harvested JSON.
	DefaultPayloadID = "metadata.json"
	// RenderPendingProperty is set on every harvested object.
	RenderPendingProperty = "render-pending"

	tracerName = "github.com/suparena/rifcsharvest"
)

// Config holds the settings of one harvest.
type Config struct {
	FileLocation   string
	PayloadID      string
	RecordIDPrefix string
	// IgnoreFields and IncludedFields are reported at startup but do not filter output.
	IgnoreFields   []string
	IncludedFields []string
	Table          *mapping.Table
	Categories     mapping.Categories
}

// ObjectStore is the storage the harvester writes to.
type ObjectStore interface {
	GetObject(ctx context.Context, oid string) (*objectstore.Object, error)
	CreateObject(ctx context.Context, oid string) (*objectstore.Object, error)
}

// Result describes one stored registry object.
type Result struct {
	Seq      int    `json:"seq"`
	ObjectID string `json:"objectId"`
	RecordID string `json:"recordId"`
	Group    string `json:"group"`
	Key      string `json:"key"`
	Class    string `json:"class"`
	Created  bool   `json:"created"`
}

// Harvester converts the registry objects of one RIF-CS file into JSON payloads.
type Harvester struct {
	cfg       Config
	filename  string
	doc       *rifcs.RegistryObjects
	store     ObjectStore
	mapper    *mapper.Mapper
	logger    *slog.Logger
	metrics   *metrics.Metrics
	publisher notify.Publisher
	tracer    trace.Tracer
	now       func() time.Time
	hasMore   bool
}

// Option configures a Harvester.
type Option func(*Harvester)

// WithLogger sets the logger. The mapper logs recoverable field problems to it as well.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harvester) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithMetrics records harvest counters in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Harvester) {
		h.metrics = m
	}
}

// WithPublisher announces every stored object through p.
func WithPublisher(p notify.Publisher) Option {
	return func(h *Harvester) {
		if p != nil {
			h.publisher = p
		}
	}
}

// WithTracer sets the tracer used for the harvest span.
func WithTracer(t trace.Tracer) Option {
	return func(h *Harvester) {
		if t != nil {
			h.tracer = t
		}
	}
}

// WithClock overrides the time source for event timestamps and run durations.
func WithClock(now func() time.Time) Option {
	return func(h *Harvester) {
		h.now = now
	}
}

// New loads and parses the RIF-CS file named by cfg.FileLocation. Every failure is an
// errors.HarvestError.
func New(cfg Config, store ObjectStore, opts ...Option) (*Harvester, error) {
	if cfg.FileLocation == "" {
		return nil, errors.NewHarvestError("init", errors.NewValidationError("fileLocation", "no data file provided"))
	}
	if store == nil {
		return nil, errors.NewHarvestError("init", errors.NewValidationError("store", "object store is required"))
	}
	info, err := os.Stat(cfg.FileLocation)
	if err != nil {
		return nil, errors.NewHarvestError("init", fmt.Errorf("could not find rif-cs file %q: %w", cfg.FileLocation, err))
	}
	if info.IsDir() {
		return nil, errors.NewHarvestError("init", fmt.Errorf("rif-cs file %q is a directory", cfg.FileLocation))
	}
	if cfg.PayloadID == "" {
		cfg.PayloadID = DefaultPayloadID
	}

	doc, err := rifcs.ReadFile(cfg.FileLocation)
	if err != nil {
		return nil, errors.NewHarvestError("parse", err)
	}

	h := &Harvester{
		cfg:       cfg,
		filename:  filepath.Base(cfg.FileLocation),
		doc:       doc,
		store:     store,
		logger:    slog.Default(),
		publisher: notify.NopPublisher{},
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
		hasMore:   true,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.mapper = mapper.New(cfg.Table, mapper.WithCategories(cfg.Categories), mapper.WithLogger(h.logger))

	if len(cfg.IgnoreFields) > 0 {
		h.logger.Info("ignoreFields configured but not applied", "fields", cfg.IgnoreFields)
	}
	if len(cfg.IncludedFields) > 0 {
		h.logger.Info("includedFields configured but not applied", "fields", cfg.IncludedFields)
	}
	h.logger.Debug("loaded rif-cs file",
		"file", h.filename,
		"objects", len(doc.RegistryObjects),
		"categories", cfg.Categories.String())
	return h, nil
}

// HasMoreObjects reports whether the file still has to be harvested.
func (h *Harvester) HasMoreObjects() bool {
	return h.hasMore
}

// Filename is the base name of the harvested file.
func (h *Harvester) Filename() string {
	return h.filename
}

// Harvest stores every registry object of the file, in document order, and returns one
// Result per object. Every object is checked for a supported class element before the first
// write, so an unsupported object leaves the store untouched.
func (h *Harvester) Harvest(ctx context.Context) ([]Result, error) {
	start := h.now()
	defer func() { h.metrics.ObserveHarvest(h.now().Sub(start)) }()

	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	log := logging.FromContext(ctx, h.logger).With("file", h.filename)

	ctx, span := h.tracer.Start(ctx, "rifcs.harvest", trace.WithAttributes(
		attribute.String("rifcs.file", h.filename),
		attribute.String("rifcs.run_id", runID),
		attribute.Int("rifcs.objects", len(h.doc.RegistryObjects)),
	))
	defer span.End()

	objs := h.doc.RegistryObjects
	for i := range objs {
		if _, err := objs[i].Variant(); err != nil {
			herr := errors.NewHarvestError("validate", err)
			span.RecordError(herr)
			span.SetStatus(codes.Error, "unsupported registry object")
			return nil, herr
		}
	}

	results := make([]Result, 0, len(objs))
	for i := range objs {
		res, err := h.HarvestEntry(ctx, &objs[i], i+1)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "harvest entry failed")
			return results, err
		}
		results = append(results, res)
	}

	h.hasMore = false
	if len(results) > 0 {
		log.Debug("created objects", "count", len(results))
	}
	return results, nil
}

// ObjectIDList harvests the file and returns the identifiers of the stored objects.
func (h *Harvester) ObjectIDList(ctx context.Context) ([]string, error) {
	results, err := h.Harvest(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.ObjectID)
	}
	return ids, nil
}

// HarvestEntry maps obj and upserts it as the seq-th object of the file.
func (h *Harvester) HarvestEntry(ctx context.Context, obj *rifcs.RegistryObject, seq int) (Result, error) {
	v, err := obj.Variant()
	if err != nil {
		return Result{}, errors.NewHarvestError("validate", err)
	}
	data, err := h.mapper.Map(obj)
	if err != nil {
		return Result{}, errors.NewHarvestError("map", err)
	}

	res := Result{
		Seq:      seq,
		ObjectID: ObjectID(h.filename, obj.Group, seq),
		RecordID: RecordID(h.cfg.RecordIDPrefix, seq),
		Group:    obj.Group,
		Key:      obj.Key,
		Class:    v.Class.String(),
	}
	log := logging.FromContext(ctx, h.logger).With("object_id", res.ObjectID, "seq", seq)

	meta := map[string]string{MetadataIdentifier: res.RecordID}
	res.Created, err = h.storeJSONInObject(ctx, log, res.ObjectID, data, meta)
	if err != nil {
		return res, err
	}
	h.metrics.IncrementEntries(res.Class)
	h.metrics.IncrementStored(res.Created)

	ev := notify.Event{
		ObjectID:  res.ObjectID,
		PayloadID: h.cfg.PayloadID,
		RecordID:  res.RecordID,
		Source:    h.filename,
		Seq:       seq,
		RunID:     logging.RunID(ctx),
		Timestamp: storagemodels.FormatTime(h.now()),
	}
	if err := h.publisher.Publish(ctx, ev); err != nil {
		log.Error("error publishing render-pending event", "error", err)
	}

	log.Debug("stored registry object", "key", obj.Key, "class", res.Class, "created", res.Created)
	return res, nil
}
