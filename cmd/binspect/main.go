// Command binspect inspects fixed-layout binary data against a TOML
// schema document: print the layout, decode to JSON, or browse and
// edit fields interactively.
package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/structlab/binstruct"
	"github.com/structlab/binstruct/schemafile"
)

func main() {
	var (
		schemaFile  = flag.String("schema", "", "Path to TOML schema document")
		dataFile    = flag.String("data", "", "Binary file to decode (defaults to stdin)")
		hexInput    = flag.String("hex", "", "Hex string to decode instead of a file")
		layout      = flag.Bool("layout", false, "Print field offsets and widths and exit")
		asJSON      = flag.Bool("json", false, "Print the decoded record as JSON")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *schemaFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: binspect -schema <file.toml> [-layout]")
		fmt.Fprintln(os.Stderr, "       binspect -schema <file.toml> -data <file> [-json]")
		fmt.Fprintln(os.Stderr, "       binspect -schema <file.toml> -hex '01 02 ...' [-json]")
		fmt.Fprintln(os.Stderr, "       binspect -schema <file.toml> -data <file> -i  (interactive mode)")
		os.Exit(1)
	}

	s, err := schemafile.Load(*schemaFile)
	if err != nil {
		fatalf("loading schema: %v", err)
	}

	if *layout {
		printLayout(os.Stdout, s)
		return
	}

	data, err := readData(*dataFile, *hexInput)
	if err != nil {
		fatalf("reading data: %v", err)
	}

	if *interactive {
		if err := runInteractive(s, data); err != nil {
			fatalf("interactive mode: %v", err)
		}
		return
	}

	rec, err := s.Unpack(data)
	if err != nil {
		fatalf("decoding: %v", err)
	}

	if *asJSON {
		raw, err := json.Marshal(rec)
		if err != nil {
			fatalf("rendering JSON: %v", err)
		}
		var out bytes.Buffer
		if err := json.Indent(&out, raw, "", "  "); err != nil {
			fatalf("rendering JSON: %v", err)
		}
		fmt.Println(out.String())
		return
	}

	printRecord(os.Stdout, s, rec)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "binspect: "+format+"\n", args...)
	os.Exit(1)
}

// readData resolves the decode input: -hex wins, then -data, then
// stdin.
func readData(dataFile, hexInput string) ([]byte, error) {
	if hexInput != "" {
		clean := strings.Map(func(r rune) rune {
			if r == ' ' || r == '\n' || r == '\t' {
				return -1
			}
			return r
		}, hexInput)
		return hex.DecodeString(clean)
	}
	if dataFile != "" {
		return os.ReadFile(dataFile)
	}
	return io.ReadAll(os.Stdin)
}

var (
	nameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98"))
	typeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// styled wraps s in style only when stdout is a terminal.
func styled(style lipgloss.Style, s string) string {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return s
	}
	return style.Render(s)
}

// printLayout walks the schema printing offset, width and type per
// field, nested fields indented.
func printLayout(w io.Writer, s *binstruct.Structure) {
	fmt.Fprintf(w, "total width: %d bytes\n", s.Width())
	walkLayout(w, s.Fields(), 0, 0)
}

func walkLayout(w io.Writer, fields []binstruct.Field, offset, depth int) int {
	indent := strings.Repeat("  ", depth)
	for _, f := range fields {
		typ := f.Type
		fmt.Fprintf(w, "%s%s%s  %s  %s\n",
			indent,
			styled(dimStyle, fmt.Sprintf("%04x", offset)),
			styled(dimStyle, fmt.Sprintf("+%-4d", typ.Width())),
			styled(nameStyle, f.Name),
			styled(typeStyle, typ.String()),
		)
		if typ.Kind() == binstruct.KindStruct {
			walkLayout(w, typ.Fields(), offset, depth+1)
		}
		offset += typ.Width()
	}
	return offset
}

// printRecord dumps the decoded record field by field, nested records
// indented.
func printRecord(w io.Writer, s *binstruct.Structure, rec *binstruct.Record) {
	walkRecord(w, s.Fields(), rec, 0)
}

func walkRecord(w io.Writer, fields []binstruct.Field, rec *binstruct.Record, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, f := range fields {
		v, _ := rec.Get(f.Name)
		switch f.Type.Kind() {
		case binstruct.KindStruct:
			fmt.Fprintf(w, "%s%s:\n", indent, styled(nameStyle, f.Name))
			walkRecord(w, f.Type.Fields(), v.(*binstruct.Record), depth+1)
		case binstruct.KindPadding:
			fmt.Fprintf(w, "%s%s: %s\n", indent, styled(nameStyle, f.Name), styled(dimStyle, "-"))
		default:
			fmt.Fprintf(w, "%s%s: %s %s\n",
				indent,
				styled(nameStyle, f.Name),
				styled(valueStyle, formatValue(v)),
				styled(typeStyle, f.Type.String()),
			)
		}
	}
}

func formatValue(v any) string {
	switch val := v.(type) {
	case []byte:
		return fmt.Sprintf("% x", val)
	case string:
		return fmt.Sprintf("%q", val)
	case []any:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = formatValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *binstruct.Record:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
