package document

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

type codec interface {
	name() string
	marshal(file fileSchema) ([]byte, error)
	unmarshal(data []byte, file *fileSchema) error
}

type jsonCodec struct{}

func (jsonCodec) name() string { return FormatJSON }

func (jsonCodec) marshal(file fileSchema) ([]byte, error) {
	data, err := json.MarshalIndent(file, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (jsonCodec) unmarshal(data []byte, file *fileSchema) error {
	return json.Unmarshal(data, file)
}

type tomlCodec struct{}

func (tomlCodec) name() string { return FormatTOML }

func (tomlCodec) marshal(file fileSchema) ([]byte, error) {
	return toml.Marshal(file)
}

func (tomlCodec) unmarshal(data []byte, file *fileSchema) error {
	return toml.Unmarshal(data, file)
}

// codecFor picks the codec by explicit format, falling back to the file
// extension and then JSON.
func codecFor(format, path string) (codec, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		return jsonCodec{}, nil
	case FormatTOML:
		return tomlCodec{}, nil
	case "":
		if strings.EqualFold(filepath.Ext(path), ".toml") {
			return tomlCodec{}, nil
		}
		return jsonCodec{}, nil
	default:
		return nil, fmt.Errorf("unsupported store format %q", format)
	}
}
