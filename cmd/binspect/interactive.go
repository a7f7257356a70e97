package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/structlab/binstruct"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	fieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	hexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// fieldRow is one leaf of the decoded record: a scalar field, an array
// element, or padding (shown but not editable). get and set close over
// the row's slot in its containing record or sequence.
type fieldRow struct {
	get      func() any
	set      func(any)
	typ      *binstruct.Type
	label    string
	editable bool
}

type inspectorModel struct {
	structure *binstruct.Structure
	record    *binstruct.Record
	err       error
	input     textinput.Model
	packed    []byte
	rows      []fieldRow
	selected  int
	editing   bool
}

func runInteractive(s *binstruct.Structure, data []byte) error {
	rec, err := s.Unpack(data)
	if err != nil {
		return err
	}
	packed, err := s.Pack(rec)
	if err != nil {
		return err
	}

	m := &inspectorModel{
		structure: s,
		record:    rec,
		packed:    packed,
		rows:      flattenRecord(s.Fields(), rec, ""),
	}
	_, err = tea.NewProgram(m).Run()
	return err
}

// flattenRecord walks a decoded record into a flat row list, nested
// structures and arrays expanded in layout order.
func flattenRecord(fields []binstruct.Field, rec *binstruct.Record, prefix string) []fieldRow {
	var rows []fieldRow
	for _, f := range fields {
		label := f.Name
		if prefix != "" {
			label = prefix + "." + f.Name
		}
		v, _ := rec.Get(f.Name)

		switch kind := f.Type.Kind(); {
		case kind == binstruct.KindStruct:
			rows = append(rows, flattenRecord(f.Type.Fields(), v.(*binstruct.Record), label)...)
		case kind == binstruct.KindArray:
			rows = append(rows, flattenSequence(f.Type, v.([]any), label)...)
		case kind.IsScalar():
			name := f.Name
			target := rec
			rows = append(rows, fieldRow{
				label:    label,
				typ:      f.Type,
				editable: true,
				get:      func() any { v, _ := target.Get(name); return v },
				set:      func(v any) { target.Set(name, v) },
			})
		default: // padding
			rows = append(rows, fieldRow{label: label, typ: f.Type})
		}
	}
	return rows
}

func flattenSequence(arr *binstruct.Type, seq []any, prefix string) []fieldRow {
	var rows []fieldRow
	elem := arr.Elem()
	for i := range seq {
		label := fmt.Sprintf("%s[%d]", prefix, i)
		switch kind := elem.Kind(); {
		case kind == binstruct.KindStruct:
			rows = append(rows, flattenRecord(elem.Fields(), seq[i].(*binstruct.Record), label)...)
		case kind == binstruct.KindArray:
			rows = append(rows, flattenSequence(elem, seq[i].([]any), label)...)
		case kind.IsScalar():
			idx := i
			rows = append(rows, fieldRow{
				label:    label,
				typ:      elem,
				editable: true,
				get:      func() any { return seq[idx] },
				set:      func(v any) { seq[idx] = v },
			})
		default: // padding
			rows = append(rows, fieldRow{label: label, typ: elem})
		}
	}
	return rows
}

func (m *inspectorModel) Init() tea.Cmd {
	return nil
}

func (m *inspectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.editing {
		switch key.String() {
		case "esc":
			m.editing = false
			m.err = nil
		case "enter":
			m.applyEdit()
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.selected < len(m.rows)-1 {
			m.selected++
		}

	case "enter":
		row := m.rows[m.selected]
		if !row.editable {
			break
		}
		m.input = textinput.New()
		m.input.SetValue(plainValue(row.get()))
		m.input.Focus()
		m.editing = true
		m.err = nil
	}
	return m, nil
}

func (m *inspectorModel) applyEdit() {
	row := m.rows[m.selected]
	value, err := parseValue(row.typ, m.input.Value())
	if err != nil {
		m.err = err
		return
	}
	row.set(value)

	packed, err := m.structure.Pack(m.record)
	if err != nil {
		m.err = err
		return
	}
	m.packed = packed
	m.editing = false
	m.err = nil
}

// parseValue converts editor input to the row's value type.
func parseValue(typ *binstruct.Type, s string) (any, error) {
	kind := typ.Kind()
	switch {
	case kind == binstruct.KindBool:
		return strconv.ParseBool(s)
	case kind == binstruct.KindChar:
		if len(s) != 1 {
			return nil, fmt.Errorf("char takes exactly one byte")
		}
		return s[0], nil
	case kind.IsSigned():
		return strconv.ParseInt(s, 0, 64)
	case kind.IsUnsigned():
		return strconv.ParseUint(s, 0, 64)
	case kind.IsFloat():
		return strconv.ParseFloat(s, 64)
	case kind == binstruct.KindString:
		return s, nil
	case kind == binstruct.KindBytes:
		return []byte(s), nil
	}
	return nil, fmt.Errorf("field is not editable")
}

func plainValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}

func (m *inspectorModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("binspect - %d fields, %d bytes", len(m.rows), m.structure.Width())))
	b.WriteString("\n\n")

	for i, row := range m.rows {
		value := "-"
		if row.get != nil {
			value = plainValue(row.get())
		}
		line := fmt.Sprintf("%-28s %-14s %s", row.label, row.typ.String(), value)
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + fieldStyle.Render(line))
		}
		b.WriteByte('\n')
	}

	b.WriteString("\n")
	b.WriteString(hexStyle.Render(hexDump(m.packed)))
	b.WriteString("\n")

	if m.editing {
		b.WriteString("\nnew value: " + m.input.View() + "\n")
		b.WriteString(hintStyle.Render("enter apply - esc cancel"))
	} else {
		b.WriteString("\n" + hintStyle.Render("up/down move - enter edit - q quit"))
	}

	if m.err != nil {
		b.WriteString("\n" + errStyle.Render(m.err.Error()))
	}
	b.WriteByte('\n')
	return b.String()
}

func hexDump(data []byte) string {
	var b strings.Builder
	for i, c := range data {
		if i > 0 {
			if i%16 == 0 {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		fmt.Fprintf(&b, "%02x", c)
	}
	return b.String()
}
