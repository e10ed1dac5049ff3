package sequence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads an authored sequence from a YAML or JSON file. The engine
// itself never touches the filesystem; this is the authoring-side entry
// point used by the preview tools.
func LoadFile(path string) (*PosableCharacterSequence, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s PosableCharacterSequence
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(b, &s)
	default:
		err = yaml.Unmarshal(b, &s)
	}
	if err != nil {
		return nil, fmt.Errorf("parse sequence %s: %w", path, err)
	}
	return &s, nil
}
