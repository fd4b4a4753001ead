package pipeline

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"churnprep/domain/core"
)

// artifactEnvelope is the on-disk form of a fitted pipeline. The
// fingerprint is recomputed on load, so a corrupted or hand-edited artifact
// fails fast instead of transforming data with the wrong parameters.
type artifactEnvelope struct {
	Fingerprint string          `json:"fingerprint"`
	Pipeline    json.RawMessage `json:"pipeline"`
}

// SaveTo serializes the fitted pipeline to the given path, overwriting any
// prior artifact. The write goes to a temp file in the destination
// directory and is renamed into place, so a failed run never leaves a
// truncated artifact behind.
func (p *Pipeline) SaveTo(path string) error {
	if !p.fitted {
		return core.NewPersistenceError(path, core.NewSchemaError("", "pipeline has not been fitted"))
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return core.NewPersistenceError(path, err)
	}
	envelope := artifactEnvelope{
		Fingerprint: core.NewArtifactFingerprint(payload).String(),
		Pipeline:    payload,
	}
	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return core.NewPersistenceError(path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return core.NewPersistenceError(path, err)
	}

	tmp, err := os.CreateTemp(dir, ".preprocessor-*.json")
	if err != nil {
		return core.NewPersistenceError(path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return core.NewPersistenceError(path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return core.NewPersistenceError(path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return core.NewPersistenceError(path, err)
	}
	return nil
}

// LoadFrom restores a fitted pipeline from disk. The loaded pipeline
// applies identically to the one that was saved.
func LoadFrom(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.NewLoadError(path, err)
	}

	var envelope artifactEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, core.NewLoadError(path, err)
	}

	// The stored payload is indented; the fingerprint was taken over the
	// compact form, so compact before hashing.
	var compact bytes.Buffer
	if err := json.Compact(&compact, envelope.Pipeline); err != nil {
		return nil, core.NewLoadError(path, err)
	}
	if got := core.NewArtifactFingerprint(compact.Bytes()).String(); got != envelope.Fingerprint {
		return nil, core.NewLoadError(path, core.NewSchemaError("", "artifact fingerprint mismatch"))
	}

	var p Pipeline
	if err := json.Unmarshal(envelope.Pipeline, &p); err != nil {
		return nil, core.NewLoadError(path, err)
	}
	p.fitted = true
	return &p, nil
}
