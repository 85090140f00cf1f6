package dataset

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ReadYAML decodes a column-oriented YAML mapping. Each key is a column and
// each value is a sequence of scalars or a single scalar. Shorter columns are
// padded with missing cells.
func ReadYAML(r io.Reader, opts ...Option) (*Table, error) {
	cfg := defaultCSVConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, readError(cfg.source, ErrEmptySource)
		}
		return nil, readError(cfg.source, err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, readError(cfg.source, fmt.Errorf("%w: top level must be a mapping of columns", ErrInvalidDocument))
	}

	columns := make([]string, 0, len(root.Content)/2)
	data := make([][]Cell, 0, len(root.Content)/2)
	height := 0
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, readError(cfg.source, fmt.Errorf("%w: column names must be scalars (line %d)", ErrInvalidDocument, key.Line))
		}
		cells, err := yamlColumn(val)
		if err != nil {
			return nil, readError(cfg.source, fmt.Errorf("column %q: %w", key.Value, err))
		}
		columns = append(columns, key.Value)
		data = append(data, cells)
		height = max(height, len(cells))
	}

	rows := make([][]Cell, height)
	for r := range rows {
		rows[r] = make([]Cell, len(columns))
		for c, cells := range data {
			if r < len(cells) {
				rows[r][c] = cells[r]
			}
		}
	}
	return NewTable(columns, rows), nil
}

func yamlColumn(n *yaml.Node) ([]Cell, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return []Cell{yamlCell(n)}, nil
	case yaml.SequenceNode:
		cells := make([]Cell, 0, len(n.Content))
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: nested value at line %d", ErrInvalidDocument, item.Line)
			}
			cells = append(cells, yamlCell(item))
		}
		return cells, nil
	default:
		return nil, fmt.Errorf("%w: expected a list of values at line %d", ErrInvalidDocument, n.Line)
	}
}

func yamlCell(n *yaml.Node) Cell {
	if n.ShortTag() == "!!null" {
		return Missing()
	}
	return Text(n.Value)
}
