package history

import (
	"bytes"
	"encoding/gob"
)

// encodeSteps gob-encodes a run's step records for blob storage.
func encodeSteps(steps []StepRecord) ([]byte, error) {
	if len(steps) == 0 {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(steps); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeSteps reverses encodeSteps. Empty input yields a nil slice.
func decodeSteps(data []byte) ([]StepRecord, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var steps []StepRecord
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&steps); err != nil {
		return nil, err
	}
	return steps, nil
}
