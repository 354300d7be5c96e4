package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatBrief     Format = "brief"
	FormatExtensive Format = "extensive"
	FormatJSON      Format = "json"
	FormatYAML      Format = "yaml"
)

// ParseFormat accepts the --output values.
func ParseFormat(value string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(value))); f {
	case FormatBrief, FormatExtensive, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatBrief, nil
	default:
		return "", errors.Errorf("unknown output format %q (brief, extensive, json or yaml)", value)
	}
}

// table is the brief rendering of a value.
type table struct {
	header []string
	rows   [][]string
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Printer renders command results in the selected format.
type Printer struct {
	out    io.Writer
	format Format
}

func NewPrinter(out io.Writer, format Format) *Printer {
	return &Printer{out: out, format: format}
}

// Print writes v. brief builds the table shown for the brief format.
func (p *Printer) Print(v any, brief func() table) error {
	switch p.format {
	case FormatJSON:
		encoder := json.NewEncoder(p.out)
		encoder.SetIndent("", "  ")
		return errors.Wrap(encoder.Encode(v), "[Printer.Print] json")
	case FormatYAML:
		generic, err := toGeneric(v)
		if err != nil {
			return err
		}
		encoder := yaml.NewEncoder(p.out)
		encoder.SetIndent(2)
		if err := encoder.Encode(generic); err != nil {
			return errors.Wrap(err, "[Printer.Print] yaml")
		}
		return errors.Wrap(encoder.Close(), "[Printer.Print] yaml")
	case FormatExtensive:
		return p.printExtensive(v)
	default:
		if brief == nil {
			return p.printExtensive(v)
		}
		p.render(brief())
		return nil
	}
}

func (p *Printer) render(t table) {
	if len(t.rows) == 0 {
		fmt.Fprintln(p.out, "No results")
		return
	}
	w := tablewriter.NewWriter(p.out)
	w.SetHeader(t.header)
	w.SetAutoWrapText(false)
	w.SetAutoFormatHeaders(true)
	w.SetAlignment(tablewriter.ALIGN_LEFT)
	w.AppendBulk(t.rows)
	w.Render()
}

// printExtensive shows every field as a flattened key/value table, one per item for lists.
func (p *Printer) printExtensive(v any) error {
	generic, err := toGeneric(v)
	if err != nil {
		return err
	}

	items, ok := generic.([]any)
	if !ok {
		items = []any{generic}
	}
	if len(items) == 0 {
		fmt.Fprintln(p.out, "No results")
		return nil
	}

	for i, item := range items {
		if i > 0 {
			fmt.Fprintln(p.out)
		}
		fields := map[string]string{}
		flatten("", item, fields)

		keys := make([]string, 0, len(fields))
		for key := range fields {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		t := table{header: []string{"Field", "Value"}}
		for _, key := range keys {
			t.add(key, fields[key])
		}
		p.render(t)
	}
	return nil
}

// toGeneric round trips v through JSON so structs, maps and raw messages render alike.
func toGeneric(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "[toGeneric] marshal")
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, errors.Wrap(err, "[toGeneric] unmarshal")
	}
	return generic, nil
}

func flatten(prefix string, v any, out map[string]string) {
	switch value := v.(type) {
	case map[string]any:
		if len(value) == 0 && prefix != "" {
			out[prefix] = "{}"
		}
		for key, child := range value {
			flatten(join(prefix, key), child, out)
		}
	case []any:
		if len(value) == 0 {
			out[prefix] = "[]"
		}
		for i, child := range value {
			flatten(fmt.Sprintf("%s[%d]", prefix, i), child, out)
		}
	case nil:
		out[prefix] = ""
	default:
		out[prefix] = fmt.Sprint(value)
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
