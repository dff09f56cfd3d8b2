package config

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/types"
	"gopkg.in/yaml.v3"
)

// DirectiveDefaults is the name of the directive that sets per-directive defaults
const DirectiveDefaults = "defaults"

// Task is one directive of the install configuration with its raw data
type Task struct {
	Directive string
	Data      *yaml.Node
	// Source is the file the task came from, for messages
	Source string
	Line   int
}

// LoadInstallConfig reads and parses the install configuration files in order.
// Tasks of later files follow those of earlier ones.
func LoadInstallConfig(files ...string) ([]Task, error) {
	var tasks []Task
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read %s", path)
		}
		fileTasks, err := ParseInstallConfig(data)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid configuration %s", path)
		}
		for i := range fileTasks {
			fileTasks[i].Source = path
		}
		tasks = append(tasks, fileTasks...)
	}
	return tasks, nil
}

// ParseInstallConfig parses a YAML (or JSON) install configuration.
//
// The top level is either a sequence of mappings, each holding one or more
// directives, or a single mapping of directive to data. Directive order is
// kept either way.
func ParseInstallConfig(data []byte) ([]Task, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse configuration")
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := resolve(doc.Content[0])
	if root == nil {
		return nil, nil
	}
	switch root.Kind {
	case yaml.SequenceNode:
		var tasks []Task
		for _, item := range root.Content {
			item = resolve(item)
			if isNull(item) {
				continue
			}
			if item.Kind != yaml.MappingNode {
				return nil, errors.Newf(errors.ErrConfigParse,
					"line %d: each task must be a mapping of directive to data", item.Line)
			}
			tasks = append(tasks, tasksFromMapping(item)...)
		}
		return tasks, nil
	case yaml.MappingNode:
		return tasksFromMapping(root), nil
	default:
		if isNull(root) {
			return nil, nil
		}
		return nil, errors.Newf(errors.ErrConfigParse,
			"line %d: configuration must be a list of tasks or a mapping of directives", root.Line)
	}
}

func tasksFromMapping(node *yaml.Node) []Task {
	tasks := make([]Task, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], resolve(node.Content[i+1])
		tasks = append(tasks, Task{
			Directive: key.Value,
			Data:      value,
			Line:      key.Line,
		})
	}
	return tasks
}

// DecodeDefaults decodes the data of a defaults directive
func DecodeDefaults(node *yaml.Node) (types.Defaults, error) {
	var defaults types.Defaults
	node = resolve(node)
	if isNull(node) {
		return defaults, nil
	}
	if node.Kind != yaml.MappingNode {
		return defaults, errors.Newf(errors.ErrConfigInvalid,
			"line %d: defaults must be a mapping of directive to options", node.Line)
	}
	if err := node.Decode(&defaults); err != nil {
		return defaults, errors.Wrap(err, errors.ErrConfigInvalid, "invalid defaults")
	}
	return defaults, nil
}

// DecodeLinkEntries decodes the data of a link directive. Each key is a
// destination; its value is a source path, null, or an options mapping.
// A destination declared twice keeps its first position and its last value.
func DecodeLinkEntries(node *yaml.Node) ([]types.LinkEntry, error) {
	node = resolve(node)
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, errors.Newf(errors.ErrConfigInvalid,
			"line %d: link expects a mapping of destination to source", node.Line)
	}

	var entries []types.LinkEntry
	index := make(map[string]int)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], resolve(node.Content[i+1])
		entry := types.LinkEntry{Destination: key.Value}

		switch {
		case isNull(value):
			// source defaults to the destination's basename
		case value.Kind == yaml.ScalarNode:
			source := value.Value
			entry.Options.Path = &source
		case value.Kind == yaml.MappingNode:
			if err := value.Decode(&entry.Options); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigInvalid, "invalid options for link %s", key.Value)
			}
		default:
			return nil, errors.Newf(errors.ErrConfigInvalid,
				"line %d: link %s must map to a path or an options mapping", value.Line, key.Value)
		}

		if at, seen := index[entry.Destination]; seen {
			entries[at] = entry
			continue
		}
		index[entry.Destination] = len(entries)
		entries = append(entries, entry)
	}
	return entries, nil
}

// DecodeCreateEntries decodes the data of a create directive. The mapping
// form maps each path to null or an options mapping. The legacy list form
// is a plain list of paths; legacy reports which form was used.
func DecodeCreateEntries(node *yaml.Node) (entries []types.CreateEntry, legacy bool, err error) {
	node = resolve(node)
	if isNull(node) {
		return nil, false, nil
	}

	switch node.Kind {
	case yaml.SequenceNode:
		for _, item := range node.Content {
			item = resolve(item)
			if item == nil {
				continue
			}
			if item.Kind != yaml.ScalarNode || isNull(item) {
				return nil, true, errors.Newf(errors.ErrConfigInvalid,
					"line %d: create options are only supported with the mapping syntax "+
						"(use 'path:' entries instead of '- path' items)", item.Line)
			}
			entries = append(entries, types.CreateEntry{Path: item.Value})
		}
		return entries, true, nil

	case yaml.MappingNode:
		index := make(map[string]int)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], resolve(node.Content[i+1])
			entry := types.CreateEntry{Path: key.Value}
			switch {
			case isNull(value):
			case value.Kind == yaml.MappingNode:
				if err := value.Decode(&entry.Options); err != nil {
					return nil, false, errors.Wrapf(err, errors.ErrConfigInvalid, "invalid options for path %s", key.Value)
				}
			default:
				return nil, false, errors.Newf(errors.ErrConfigInvalid,
					"line %d: path %s must map to null or an options mapping", value.Line, key.Value)
			}
			if at, seen := index[entry.Path]; seen {
				entries[at] = entry
				continue
			}
			index[entry.Path] = len(entries)
			entries = append(entries, entry)
		}
		return entries, false, nil

	default:
		return nil, false, errors.Newf(errors.ErrConfigInvalid,
			"line %d: create expects a mapping or a list of paths", node.Line)
	}
}

// resolve follows aliases and unwraps documents
func resolve(node *yaml.Node) *yaml.Node {
	for node != nil {
		switch node.Kind {
		case yaml.AliasNode:
			node = node.Alias
		case yaml.DocumentNode:
			if len(node.Content) == 0 {
				return nil
			}
			node = node.Content[0]
		default:
			return node
		}
	}
	return nil
}

func isNull(node *yaml.Node) bool {
	return node == nil || (node.Kind == yaml.ScalarNode && node.Tag == "!!null")
}

// String returns a short description of the task for log messages
func (t Task) String() string {
	if t.Source == "" {
		return fmt.Sprintf("%s (line %d)", t.Directive, t.Line)
	}
	return fmt.Sprintf("%s (%s:%d)", t.Directive, t.Source, t.Line)
}
