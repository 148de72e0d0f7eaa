/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package rifcsharvest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/suparena/rifcsharvest/errors"
	"github.com/suparena/rifcsharvest/mapper"
	"github.com/suparena/rifcsharvest/objectstore"
)

// Payload sections.
const (
	SectionData           = "data"
	SectionMetadata       = "metadata"
	SectionRecordIDPrefix = "recordIDPrefix"

	MetadataIdentifier = "dc.identifier"
	ContentTypeJSON    = "application/json"
)

// storeJSONInObject writes the mapped document into object oid, creating the object when it
// does not exist yet, and flags it for rendering. It reports whether the object was created.
func (h *Harvester) storeJSONInObject(ctx context.Context, log *slog.Logger, oid string, data mapper.Document, meta map[string]string) (bool, error) {
	created := false
	obj, err := h.store.GetObject(ctx, oid)
	if err != nil {
		if !errors.IsNotFound(err) {
			return false, errors.NewHarvestError("get object "+oid, err)
		}
		obj, err = h.store.CreateObject(ctx, oid)
		if err != nil {
			return false, errors.NewHarvestError("create object "+oid, err)
		}
		created = true
	}

	if err := h.storeJSONInPayload(ctx, log, obj, data, meta); err != nil {
		if cerr := obj.Close(ctx); cerr != nil {
			log.Error("error closing object", "error", cerr)
		}
		return created, err
	}

	flagErr := obj.SetProperty(RenderPendingProperty, "true")
	if err := obj.Close(ctx); err != nil && flagErr == nil {
		flagErr = err
	}
	if flagErr != nil {
		h.metrics.IncrementFlagFailures()
		log.Error("error setting render-pending flag", "error", flagErr)
	}
	return created, nil
}

// storeJSONInPayload merges the document into the configured payload of obj.
func (h *Harvester) storeJSONInPayload(ctx context.Context, log *slog.Logger, obj *objectstore.Object, data mapper.Document, meta map[string]string) error {
	pid := h.cfg.PayloadID

	payload, err := obj.Payload(pid)
	switch {
	case err == nil:
		existing, rerr := readJSON(payload)
		_ = payload.Close()
		if rerr != nil {
			log.Error("error parsing existing JSON", "payload_id", pid, "error", rerr)
			return errors.NewHarvestError("parse payload "+pid, rerr)
		}
		body, merr := mergeJSON(existing, data, meta, h.cfg.RecordIDPrefix)
		if merr != nil {
			return errors.NewHarvestError("encode payload "+pid, merr)
		}
		payload, err = obj.UpdatePayload(ctx, pid, bytes.NewReader(body))
		if err != nil {
			return errors.NewHarvestError("update payload "+pid, err)
		}
	case errors.IsNotFound(err):
		body, merr := mergeJSON(nil, data, meta, h.cfg.RecordIDPrefix)
		if merr != nil {
			return errors.NewHarvestError("encode payload "+pid, merr)
		}
		payload, err = obj.CreateStoredPayload(ctx, pid, bytes.NewReader(body))
		if err != nil {
			return errors.NewHarvestError("create payload "+pid, err)
		}
	default:
		return errors.NewHarvestError("open payload "+pid, err)
	}

	if err := payload.SetContentType(ContentTypeJSON); err != nil {
		log.Error("error setting payload content type", "payload_id", pid, "error", err)
	}
	if err := payload.Close(); err != nil {
		log.Error("error closing payload", "payload_id", pid, "error", err)
	}
	return nil
}

// readJSON decodes the top-level sections of a stored payload. An empty payload has no
// sections.
func readJSON(p *objectstore.Payload) (map[string]json.RawMessage, error) {
	rc, err := p.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	sections := make(map[string]json.RawMessage)
	if len(bytes.TrimSpace(raw)) == 0 {
		return sections, nil
	}
	if err := json.Unmarshal(raw, &sections); err != nil {
		return nil, fmt.Errorf("payload is not a JSON object: %w", err)
	}
	return sections, nil
}

// mergeJSON replaces the data and metadata sections wholesale, sets recordIDPrefix and keeps
// every other existing section as is.
func mergeJSON(existing map[string]json.RawMessage, data mapper.Document, meta map[string]string, prefix string) ([]byte, error) {
	out := make(map[string]any, len(existing)+3)
	for k, v := range existing {
		out[k] = v
	}
	out[SectionData] = data
	out[SectionMetadata] = meta
	out[SectionRecordIDPrefix] = prefix
	return json.MarshalIndent(out, "", "    ")
}
