package book

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
)

//go:embed data/*.json
var sources embed.FS

var ErrUnknownSource = errors.New("unknown opening source")

// Sources lists the names of the opening trees bundled with the module.
func Sources() []string {
	entries, err := sources.ReadDir("data")
	if err != nil {
		return []string{}
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}

// LoadSource parses a bundled opening tree by name.
func LoadSource(name string) (*MoveNode, error) {
	data, err := sources.ReadFile(path.Join("data", name+".json"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, name)
	}
	return ParseJSON(data)
}
