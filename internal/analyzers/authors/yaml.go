package authors

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// RenderYAML serializes the rows as a YAML document.
func RenderYAML(rows []Row, writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)
	defer encoder.Close()

	err := encoder.Encode(map[string][]Row{"authors": rows})
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	return nil
}
