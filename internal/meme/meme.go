// Package meme reads and writes motif collections in MEME text format.
//
// The reader is line oriented and deliberately forgiving: a motif block
// whose probability matrix fails to parse is dropped silently and
// reading continues with the next block. The writer always emits the
// uniform background and both strands, mirroring what the engines
// assume.
package meme

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/motiflow/motiflow-go/internal/alphabet"
	"github.com/motiflow/motiflow-go/internal/motif"
)

// Document is an ordered motif collection: names keep their insertion
// order so a read-write round trip preserves file layout.
type Document struct {
	names []string
	pwms  map[string]motif.PWM
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{pwms: make(map[string]motif.PWM)}
}

// Add inserts or replaces a motif. A replaced motif keeps its original
// position in the order.
func (d *Document) Add(name string, p motif.PWM) {
	if _, ok := d.pwms[name]; !ok {
		d.names = append(d.names, name)
	}
	d.pwms[name] = p
}

// Get returns the motif with the given name.
func (d *Document) Get(name string) (motif.PWM, bool) {
	p, ok := d.pwms[name]
	return p, ok
}

// Names returns the motif names in insertion order.
func (d *Document) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Len returns the number of motifs.
func (d *Document) Len() int {
	return len(d.names)
}

// Motifs returns the motifs in insertion order.
func (d *Document) Motifs() []motif.Motif {
	out := make([]motif.Motif, 0, len(d.names))
	for _, name := range d.names {
		out = append(out, motif.Motif{Name: name, PWM: d.pwms[name]})
	}
	return out
}

// headerSearchWindow bounds how many lines after a MOTIF line may pass
// before the letter-probability header must appear.
const headerSearchWindow = 10

// Read parses MEME text. maxMotifs > 0 stops after that many successful
// motifs; 0 or negative reads everything. An ALPHABET line naming
// anything but ACGT is an error; malformed motif blocks are skipped.
func Read(text string, maxMotifs int) (*Document, error) {
	doc := NewDocument()
	lines := strings.Split(text, "\n")

	i := 0
	for i < len(lines) {
		line := lines[i]
		switch {
		case strings.HasPrefix(line, "ALPHABET="):
			if got := strings.TrimSpace(strings.TrimPrefix(line, "ALPHABET=")); got != "ACGT" {
				return nil, &motif.InvalidMatrixError{Reason: "unsupported alphabet " + got}
			}
			i++
		case strings.HasPrefix(line, "MOTIF"):
			name := strings.TrimSpace(strings.TrimPrefix(line, "MOTIF"))
			next, p, ok := parseBlock(lines, i+1)
			i = next
			if ok && name != "" {
				doc.Add(name, p)
				if maxMotifs > 0 && doc.Len() >= maxMotifs {
					return doc, nil
				}
			}
		default:
			i++
		}
	}
	return doc, nil
}

// parseBlock consumes one motif block starting just after its MOTIF
// line. It returns the index to resume scanning at, the parsed PWM, and
// whether the block parsed cleanly.
func parseBlock(lines []string, start int) (int, motif.PWM, bool) {
	// locate the letter-probability header within the search window
	width := 0
	i := start
	found := false
	for ; i < len(lines) && i < start+headerSearchWindow; i++ {
		if strings.HasPrefix(lines[i], "MOTIF") {
			return i, nil, false
		}
		if strings.HasPrefix(lines[i], "letter-probability matrix:") {
			width = parseWidth(lines[i])
			found = true
			i++
			break
		}
	}
	if !found || width <= 0 {
		return i, nil, false
	}

	// collect exactly `width` matrix rows; blank lines and non-numeric
	// lines before the first row are skipped, a non-numeric line after it
	// ends the block, a row with the wrong column count fails the block
	rows := make([][]float64, 0, width)
	for ; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], "MOTIF") {
			break
		}
		fields := strings.Fields(lines[i])
		if len(fields) == 0 {
			continue
		}
		row, numeric := parseRow(fields)
		if !numeric {
			if len(rows) > 0 {
				// block terminated by a trailing line such as URL
				i++
				break
			}
			continue
		}
		if row == nil {
			// numeric but not four columns
			return i + 1, nil, false
		}
		rows = append(rows, row)
		if len(rows) == width {
			i++
			break
		}
	}
	if len(rows) != width {
		return i, nil, false
	}

	// MEME rows are positions; the PWM is its transpose
	cells := make([][]float64, alphabet.Size)
	for a := 0; a < alphabet.Size; a++ {
		cells[a] = make([]float64, width)
		for j := 0; j < width; j++ {
			cells[a][j] = rows[j][a]
		}
	}
	p, err := motif.New(cells)
	if err != nil {
		return i, nil, false
	}
	return i, p, true
}

// parseWidth extracts the value of the w= field.
func parseWidth(line string) int {
	fields := strings.Fields(line)
	for k, f := range fields {
		if f == "w=" && k+1 < len(fields) {
			if w, err := strconv.Atoi(fields[k+1]); err == nil {
				return w
			}
			return 0
		}
		if rest, ok := strings.CutPrefix(f, "w="); ok && rest != "" {
			if w, err := strconv.Atoi(rest); err == nil {
				return w
			}
			return 0
		}
	}
	return 0
}

// parseRow parses a candidate matrix row. The second return reports
// whether the line was numeric at all; a numeric line with a column
// count other than four returns (nil, true).
func parseRow(fields []string) ([]float64, bool) {
	vals := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, false
		}
		vals = append(vals, v)
	}
	if len(vals) != alphabet.Size {
		return nil, true
	}
	return vals, true
}

// Write renders the document as MEME text with the uniform background
// and both strands declared.
func Write(doc *Document) string {
	var sb strings.Builder
	sb.WriteString("MEME version 4\n\n")
	sb.WriteString("ALPHABET= ACGT\n\n")
	sb.WriteString("strands: + -\n\n")
	sb.WriteString("Background letter frequencies\n")
	sb.WriteString("A 0.250000 C 0.250000 G 0.250000 T 0.250000\n\n")

	for _, m := range doc.Motifs() {
		w := m.PWM.Width()
		sb.WriteString("MOTIF " + m.Name + "\n")
		fmt.Fprintf(&sb, "letter-probability matrix: alength= %d w= %d\n", alphabet.Size, w)
		for j := 0; j < w; j++ {
			for a := 0; a < alphabet.Size; a++ {
				if a > 0 {
					sb.WriteByte(' ')
				}
				fmt.Fprintf(&sb, "%.6f", m.PWM[a][j])
			}
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
