package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/packlist/internal/model"
	"github.com/idilsaglam/packlist/internal/packing"
	"github.com/idilsaglam/packlist/internal/ui"
)

const maxDescriptionWidth = 60

// listing is the structured form of `ls`.
type listing struct {
	Items []model.Item  `json:"items" yaml:"items"`
	Stats packing.Stats `json:"stats" yaml:"stats"`
}

func writeStructured(w io.Writer, format string, v any) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("yaml encode: %w", err)
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

func statsHeader(s packing.Stats) string {
	t := ui.Current()
	return fmt.Sprintf("%s  %s %d  %s %d  %s",
		t.Title.Render("My Travel List"),
		t.Accent.Render("Total"), s.Total,
		t.Success.Render("Packed"), s.Packed,
		t.Title.Render(fmt.Sprintf("%d%% done", s.Percent)),
	)
}

func renderList(items []model.Item, s packing.Stats, group bool) string {
	lines := []string{
		statsHeader(s),
		ui.Current().Muted.Render(ui.ProgressBar(s.Percent, 28)),
		"",
	}
	if group {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, flatLines(items)...)
	}
	lines = append(lines, "", ui.Current().Muted.Render("Tip: add with `packlist add -q 2 Socks`"))
	return ui.Panel(lines)
}

func flatLines(items []model.Item) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{t.Muted.Render("no items")}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		box := t.Muted.Render(t.BoxUnchecked)
		desc := it.Description
		if r := []rune(desc); len(r) > maxDescriptionWidth {
			desc = string(r[:maxDescriptionWidth-3]) + "..."
		}
		if it.Packed {
			box = t.Success.Render(t.BoxChecked)
			desc = t.Done.Render(desc)
		}
		out = append(out, fmt.Sprintf("%s %s %s  %s",
			box, desc,
			t.Accent.Render(fmt.Sprintf("x%d", it.Quantity)),
			t.Muted.Render(it.ID.String())))
	}
	return out
}

func groupLines(items []model.Item) []string {
	var unpacked, packed []model.Item
	for _, it := range items {
		if it.Packed {
			packed = append(packed, it)
		} else {
			unpacked = append(unpacked, it)
		}
	}
	t := ui.Current()
	section := func(title string, xs []model.Item) []string {
		lines := []string{t.Accent.Render(title)}
		if len(xs) == 0 {
			return append(lines, t.Muted.Render("(none)"))
		}
		return append(lines, flatLines(xs)...)
	}
	lines := section("Unpacked", unpacked)
	lines = append(lines, "")
	return append(lines, section("Packed", packed)...)
}
