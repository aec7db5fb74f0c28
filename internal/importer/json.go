package importer

import (
	"encoding/json"

	apperrors "github.com/wayplan/wayplan-backend/errors"
	"github.com/wayplan/wayplan-backend/types"
)

// JSONParser trusts the document's own shape: either a days[].activities[]
// tree (as produced by the JSON exporter) or a flat activities[] array.
type JSONParser struct{}

func (JSONParser) Parse(data []byte) (*types.TripImport, error) {
	var imported types.TripImport
	if err := json.Unmarshal(data, &imported); err != nil {
		return nil, apperrors.ImportFailed("file is not valid JSON", err.Error())
	}
	imported.Missing = nil
	markMissing(&imported)
	return &imported, nil
}
