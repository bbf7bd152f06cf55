package server

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// readResourceFixture loads {dataDir}/{dataPath}/{resource}.json and returns
// the collection it contains. Fixture documents key their array under the
// resource name (dashes stored as underscores); documents already using a
// plain "data" key are accepted too, and anything else is returned whole.
func readResourceFixture(dataDir, dataPath, resource string) (json.RawMessage, error) {
	raw, err := os.ReadFile(filepath.Join(dataDir, dataPath, resource+".json"))
	if err != nil {
		return nil, errors.Wrap(err, "[readResourceFixture]")
	}

	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "[readResourceFixture] decode")
	}

	for _, key := range []string{resource, strings.ReplaceAll(resource, "-", "_"), "data"} {
		if data, ok := doc[key]; ok {
			return data, nil
		}
	}
	return json.RawMessage(raw), nil
}

// readFixtureDoc loads a whole {dataDir}/{dataPath}/{name}.json document as a
// key map so sibling keys survive a rewrite. A missing file is an empty
// document, so create operations can start a collection.
func readFixtureDoc(dataDir, dataPath, name string) (map[string]json.RawMessage, error) {
	raw, err := os.ReadFile(filepath.Join(dataDir, dataPath, name+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, errors.Wrap(err, "[readFixtureDoc]")
	}
	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "[readFixtureDoc] decode")
	}
	return doc, nil
}

// writeFixture atomically replaces {dataDir}/{dataPath}/{name}.json.
func writeFixture(dataDir, dataPath, name string, doc interface{}) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "[writeFixture] encode")
	}
	path := filepath.Join(dataDir, dataPath, name+".json")
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrap(err, "[writeFixture] create folder")
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return errors.Wrap(err, "[writeFixture] write")
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrap(err, "[writeFixture] rename")
	}
	return nil
}
