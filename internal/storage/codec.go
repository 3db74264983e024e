package storage

import (
	"encoding/json"
	"errors"
	"fmt"
)

const CurrentSchemaVersion = 1

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeRun(run RunRecord) ([]byte, error) {
	if run.SchemaVersion == 0 {
		run.SchemaVersion = CurrentSchemaVersion
	}
	return json.Marshal(run)
}

func DecodeRun(data []byte) (RunRecord, error) {
	var run RunRecord
	if err := json.Unmarshal(data, &run); err != nil {
		return RunRecord{}, err
	}
	if run.SchemaVersion != CurrentSchemaVersion {
		return RunRecord{}, fmt.Errorf("%w: schema=%d", ErrVersionMismatch, run.SchemaVersion)
	}
	return run, nil
}
