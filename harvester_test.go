/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package rifcsharvest

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/mock/gomock"

	"github.com/suparena/rifcsharvest/datastore/mock"
	"github.com/suparena/rifcsharvest/errors"
	"github.com/suparena/rifcsharvest/internal/metrics"
	"github.com/suparena/rifcsharvest/mapping"
	"github.com/suparena/rifcsharvest/notify"
	"github.com/suparena/rifcsharvest/notify/mocks"
	"github.com/suparena/rifcsharvest/objectstore"
	"github.com/suparena/rifcsharvest/storagemodels"
)

type HarvesterSuite struct {
	suite.Suite
	ctx       context.Context
	ctrl      *gomock.Controller
	publisher *mocks.MockPublisher
	ds        *mock.DataStore[storagemodels.DigitalObject]
	store     *objectstore.Storage
	table     *mapping.Table
	logger    *slog.Logger
	clock     time.Time
}

func TestHarvesterSuite(t *testing.T) {
	suite.Run(t, new(HarvesterSuite))
}

func (s *HarvesterSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.publisher = mocks.NewMockPublisher(s.ctrl)
	s.ds = mock.New[storagemodels.DigitalObject]().WithGetKeyFunc(storagemodels.ObjectKey)
	s.clock = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	s.store = objectstore.New(s.ds, objectstore.WithClock(func() time.Time { return s.clock }))
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	table, err := mapping.LoadFile(fixture("fields-mapping.yaml"))
	s.Require().NoError(err)
	s.table = table
}

func (s *HarvesterSuite) TearDownTest() {
	s.ctrl.Finish()
}

func fixture(name string) string {
	return filepath.Join("testdata", name)
}

func (s *HarvesterSuite) newHarvester(file string, opts ...Option) *Harvester {
	opts = append([]Option{
		WithLogger(s.logger),
		WithPublisher(s.publisher),
		WithTracer(noop.NewTracerProvider().Tracer("test")),
		WithClock(func() time.Time { return s.clock }),
	}, opts...)
	h, err := New(Config{
		FileLocation:   fixture(file),
		RecordIDPrefix: "rifcs:",
		Table:          s.table,
	}, s.store, opts...)
	s.Require().NoError(err)
	return h
}

func (s *HarvesterSuite) expectPublish(times int) *[]notify.Event {
	var events []notify.Event
	s.publisher.EXPECT().
		Publish(gomock.Any(), gomock.AssignableToTypeOf(notify.Event{})).
		DoAndReturn(func(_ context.Context, ev notify.Event) error {
			events = append(events, ev)
			return nil
		}).
		Times(times)
	return &events
}

// storedPayload returns the decoded payload sections and the object handle state.
func (s *HarvesterSuite) storedPayload(oid string) (map[string]any, *objectstore.Object) {
	obj, err := s.store.GetObject(s.ctx, oid)
	s.Require().NoError(err)

	p, err := obj.Payload(DefaultPayloadID)
	s.Require().NoError(err)
	s.Equal(ContentTypeJSON, p.ContentType())

	rc, err := p.Open()
	s.Require().NoError(err)
	defer rc.Close()

	var sections map[string]any
	s.Require().NoError(json.NewDecoder(rc).Decode(&sections))
	return sections, obj
}

func (s *HarvesterSuite) rawPayload(oid string) string {
	rec, err := s.ds.GetOne(s.ctx, oid)
	s.Require().NoError(err)
	return rec.Payloads[DefaultPayloadID].Content
}

func (s *HarvesterSuite) TestHarvest_PartyPerson() {
	events := s.expectPublish(1)
	h := s.newHarvester("parties_people.xml")
	s.True(h.HasMoreObjects())

	results, err := h.Harvest(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.False(h.HasMoreObjects())

	res := results[0]
	s.Equal(ObjectID("parties_people.xml", "Macquarie University", 1), res.ObjectID)
	s.Equal("rifcs:1", res.RecordID)
	s.Equal("party", res.Class)
	s.True(res.Created)
	s.Equal(1, s.ds.Count())

	sections, obj := s.storedPayload(res.ObjectID)
	s.Equal("rifcs:", sections["recordIDPrefix"])
	s.Equal(map[string]any{"dc.identifier": "rifcs:1"}, sections["metadata"])

	data := sections["data"].(map[string]any)
	s.Equal("mq.edu.au/party/MQ12345678", data["key"])
	s.Equal("person", data["type"])
	s.Equal("James", data["Given_Name"])
	s.Equal("0801", data["ANZSRC_FOR_1"])
	s.Equal("0602", data["ANZSRC_FOR_3"])

	flag, ok := obj.Property(RenderPendingProperty)
	s.True(ok)
	s.Equal("true", flag)
	s.Equal(DefaultPayloadID, obj.SourceID())

	s.Require().Len(*events, 1)
	ev := (*events)[0]
	s.Equal(res.ObjectID, ev.ObjectID)
	s.Equal("parties_people.xml", ev.Source)
	s.Equal("rifcs:1", ev.RecordID)
	s.NotEmpty(ev.RunID)
}

func (s *HarvesterSuite) TestHarvest_CognitiveScienceGroup() {
	s.expectPublish(1)
	results, err := s.newHarvester("parties_groups.xml").Harvest(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(results, 1)

	sections, _ := s.storedPayload(results[0].ObjectID)
	data := sections["data"].(map[string]any)
	s.Equal("Cognitive Science", data["Name"])
	s.Equal("2201", data["ID"])
	s.Equal("3200", data["Parent_Group_ID"])
	s.Equal("1702", data["ANZSRC_FOR"])
	s.NotContains(data, "NLA_Party_Identifier")
}

func (s *HarvesterSuite) TestHarvest_SingleEntryFixtures() {
	for _, name := range []string{"activity.xml", "service.xml", "collection.xml"} {
		s.Run(name, func() {
			s.ds.Clear()
			s.expectPublish(1)
			ids, err := s.newHarvester(name).ObjectIDList(s.ctx)
			s.Require().NoError(err)
			s.Len(ids, 1)
			s.Equal(1, s.ds.Count())
		})
	}
}

func (s *HarvesterSuite) TestHarvest_MultipleEntries() {
	events := s.expectPublish(3)
	results, err := s.newHarvester("multi.xml").Harvest(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(results, 3)

	seen := map[string]bool{}
	for i, r := range results {
		s.Equal(i+1, r.Seq)
		s.Equal(ObjectID("multi.xml", "Macquarie University", i+1), r.ObjectID)
		seen[r.ObjectID] = true
	}
	s.Len(seen, 3)
	s.Equal(3, s.ds.Count())
	s.Equal("activity", results[2].Class)
	s.Len(*events, 3)
}

func (s *HarvesterSuite) TestHarvest_MergePreservesOtherSections() {
	oid := ObjectID("parties_groups.xml", "Macquarie University", 1)
	obj, err := s.store.CreateObject(s.ctx, oid)
	s.Require().NoError(err)
	_, err = obj.CreateStoredPayload(s.ctx, DefaultPayloadID, strings.NewReader(`{
		"data": {"Stale": "x"},
		"metadata": {"dc.identifier": "old:7", "note": "gone"},
		"workflow": {"step": "review", "id": 12}
	}`))
	s.Require().NoError(err)
	s.Require().NoError(obj.Close(s.ctx))

	s.expectPublish(1)
	results, err := s.newHarvester("parties_groups.xml").Harvest(s.ctx)
	s.Require().NoError(err)
	s.False(results[0].Created)

	sections, _ := s.storedPayload(oid)
	s.Equal(map[string]any{"step": "review", "id": float64(12)}, sections["workflow"])
	s.Equal(map[string]any{"dc.identifier": "rifcs:1"}, sections["metadata"])
	data := sections["data"].(map[string]any)
	s.NotContains(data, "Stale")
	s.Equal("Cognitive Science", data["Name"])
}

func (s *HarvesterSuite) TestHarvest_ExistingObjectWithoutPayload() {
	oid := ObjectID("parties_groups.xml", "Macquarie University", 1)
	_, err := s.store.CreateObject(s.ctx, oid)
	s.Require().NoError(err)

	s.expectPublish(1)
	results, err := s.newHarvester("parties_groups.xml").Harvest(s.ctx)
	s.Require().NoError(err)
	s.False(results[0].Created)

	sections, _ := s.storedPayload(oid)
	s.Contains(sections, "data")
}

func (s *HarvesterSuite) TestHarvest_Idempotent() {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	s.expectPublish(6)
	_, err := s.newHarvester("multi.xml", WithMetrics(m)).Harvest(s.ctx)
	s.Require().NoError(err)
	oid := ObjectID("multi.xml", "Macquarie University", 2)
	first := s.rawPayload(oid)

	_, err = s.newHarvester("multi.xml", WithMetrics(m)).Harvest(s.ctx)
	s.Require().NoError(err)
	s.Equal(first, s.rawPayload(oid))
	s.Equal(3, s.ds.Count())

	s.Equal(3.0, testutil.ToFloat64(m.ObjectsCreated))
	s.Equal(3.0, testutil.ToFloat64(m.ObjectsUpdated))
	s.Equal(4.0, testutil.ToFloat64(m.EntriesHarvested.WithLabelValues("party")))
}

func (s *HarvesterSuite) TestHarvest_DurationUsesClock() {
	reg := prometheus.NewRegistry()
	now := s.clock
	tick := func() time.Time {
		now = now.Add(time.Second)
		return now
	}

	s.expectPublish(1)
	_, err := s.newHarvester("parties_groups.xml", WithMetrics(metrics.New(reg)), WithClock(tick)).Harvest(s.ctx)
	s.Require().NoError(err)

	mfs, err := reg.Gather()
	s.Require().NoError(err)
	var observed bool
	for _, mf := range mfs {
		if mf.GetName() != "rifcs_harvest_duration_seconds" {
			continue
		}
		h := mf.GetMetric()[0].GetHistogram()
		s.Equal(uint64(1), h.GetSampleCount())
		// start, event timestamp and end each read the clock once
		s.Equal(2.0, h.GetSampleSum())
		observed = true
	}
	s.True(observed)
}

func (s *HarvesterSuite) TestHarvest_UnsupportedElementWritesNothing() {
	h := s.newHarvester("error.xml")

	_, err := h.Harvest(s.ctx)
	s.Require().Error(err)
	s.True(errors.IsHarvestError(err))
	s.ErrorIs(err, errors.ErrUnsupportedElement)
	s.Equal(0, s.ds.Puts())
	s.True(h.HasMoreObjects())
}

func (s *HarvesterSuite) TestHarvest_StorageFailure() {
	s.ds.WithPutError(stderrors.New("disk full"))

	_, err := s.newHarvester("parties_groups.xml").Harvest(s.ctx)
	s.Require().Error(err)
	s.True(errors.IsHarvestError(err))
	s.Contains(err.Error(), "disk full")
}

func (s *HarvesterSuite) TestHarvest_GetFailure() {
	s.ds.WithGetError(stderrors.New("throttled"))

	_, err := s.newHarvester("parties_groups.xml").Harvest(s.ctx)
	s.Require().Error(err)
	s.True(errors.IsHarvestError(err))
	s.Equal(0, s.ds.Puts())
}

func (s *HarvesterSuite) TestHarvest_CorruptPayload() {
	oid := ObjectID("parties_groups.xml", "Macquarie University", 1)
	obj, err := s.store.CreateObject(s.ctx, oid)
	s.Require().NoError(err)
	_, err = obj.CreateStoredPayload(s.ctx, DefaultPayloadID, strings.NewReader("[1, 2"))
	s.Require().NoError(err)
	s.Require().NoError(obj.Close(s.ctx))

	_, err = s.newHarvester("parties_groups.xml").Harvest(s.ctx)
	s.Require().Error(err)
	s.True(errors.IsHarvestError(err))
}

func (s *HarvesterSuite) TestHarvest_FlagFailureIsLoggedOnly() {
	s.ds.WithPutHook(func(o storagemodels.DigitalObject) error {
		if o.Metadata[RenderPendingProperty] == "true" {
			return stderrors.New("metadata write rejected")
		}
		return nil
	})
	var logs bytes.Buffer
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	s.expectPublish(1)
	results, err := s.newHarvester("parties_groups.xml",
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
		WithMetrics(m),
	).Harvest(s.ctx)
	s.Require().NoError(err)

	rec, err := s.ds.GetOne(s.ctx, results[0].ObjectID)
	s.Require().NoError(err)
	s.NotContains(rec.Metadata, RenderPendingProperty)
	s.Contains(rec.Payloads, DefaultPayloadID)
	s.Contains(logs.String(), "error setting render-pending flag")
	s.Equal(1.0, testutil.ToFloat64(m.FlagFailures))
}

func (s *HarvesterSuite) TestHarvest_PublishFailureIsLoggedOnly() {
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(stderrors.New("broker down"))

	results, err := s.newHarvester("parties_groups.xml").Harvest(s.ctx)
	s.Require().NoError(err)
	s.Len(results, 1)
}

func TestNew_Errors(t *testing.T) {
	store := objectstore.New(mock.New[storagemodels.DigitalObject]().WithGetKeyFunc(storagemodels.ObjectKey))

	_, err := New(Config{}, store)
	assert.True(t, errors.IsHarvestError(err))

	_, err = New(Config{FileLocation: fixture("missing.xml")}, store)
	assert.True(t, errors.IsHarvestError(err))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = New(Config{FileLocation: "testdata"}, store)
	assert.True(t, errors.IsHarvestError(err))

	_, err = New(Config{FileLocation: fixture("multi.xml")}, nil)
	assert.True(t, errors.IsHarvestError(err))

	broken := filepath.Join(t.TempDir(), "broken.xml")
	require.NoError(t, os.WriteFile(broken, []byte("<registryObjects><registryObject"), 0o644))
	_, err = New(Config{FileLocation: broken}, store)
	assert.True(t, errors.IsHarvestError(err))
}

func TestNew_Defaults(t *testing.T) {
	store := objectstore.New(mock.New[storagemodels.DigitalObject]().WithGetKeyFunc(storagemodels.ObjectKey))

	h, err := New(Config{
		FileLocation: fixture("multi.xml"),
		IgnoreFields: []string{"dateModified"},
	}, store, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	assert.Equal(t, DefaultPayloadID, h.cfg.PayloadID)
	assert.Equal(t, "multi.xml", h.Filename())
	assert.True(t, h.HasMoreObjects())
}
